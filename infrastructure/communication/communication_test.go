package communication

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	sent [][]byte
	err  error
}

func (f *fakeSES) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params.RawMessage.Data)
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type recorder struct {
	infos  []string
	errors []string
	err    error
}

func (r *recorder) Info(message string) error {
	r.infos = append(r.infos, message)
	return r.err
}

func (r *recorder) Error(message string) error {
	r.errors = append(r.errors, message)
	return r.err
}

func TestBuildEmail(t *testing.T) {
	data, err := BuildEmail(&EmailInfo{
		From:    "payroll@example.com",
		To:      []string{"hr@example.com", "ops@example.com"},
		Subject: "Punch log upload failed",
		Text:    "upload is empty",
	})
	require.NoError(t, err)

	raw := string(data)
	assert.True(t, strings.HasPrefix(raw, "From: payroll@example.com\r\n"))
	assert.Contains(t, raw, "To: hr@example.com, ops@example.com\r\n")
	assert.Contains(t, raw, "Subject: Punch log upload failed\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nupload is empty"))
}

func TestEmailNotifier(t *testing.T) {
	client := &fakeSES{}
	notifier := NewEmailNotifier(client, "payroll@example.com", []string{"hr@example.com"})

	require.NoError(t, notifier.Info("fine"))
	assert.Empty(t, client.sent)

	require.NoError(t, notifier.Error("broken"))
	require.Len(t, client.sent, 1)
	assert.Contains(t, string(client.sent[0]), "broken")

	client.err = errors.New("throttled")
	assert.ErrorContains(t, notifier.Error("broken"), "throttled")
}

func TestNotifiers(t *testing.T) {
	a := &recorder{}
	b := &recorder{err: errors.New("down")}
	n := Notifiers{a, b}

	err := n.Info("hello")
	assert.ErrorContains(t, err, "down")
	assert.Equal(t, []string{"hello"}, a.infos)
	assert.Equal(t, []string{"hello"}, b.infos)

	_ = n.Error("oops")
	assert.Equal(t, []string{"oops"}, a.errors)

	assert.NoError(t, Notifiers{}.Info("nobody"))
}

func TestSlackSkipsUnsetChannel(t *testing.T) {
	s := NewSlack("xoxb-test", SlackOption{})
	assert.NoError(t, s.Info("no channel configured"))
	assert.NoError(t, s.Error("no channel configured"))
}
