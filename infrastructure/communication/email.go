package communication

import (
	"bytes"
	"context"
	"fmt"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const emailTimeout = 10 * time.Second

// SESAPI is the part of the SES client used here.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

func NewSESClient(ctx context.Context) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Text    string
}

// BuildEmail renders a plain text message in the raw form SES expects.
func BuildEmail(info *EmailInfo) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteString(fmt.Sprintf("From: %s\r\n", info.From))
	raw.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(info.To, ", ")))
	raw.WriteString(fmt.Sprintf("Subject: %s\r\n", info.Subject))
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	raw.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	raw.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&raw)
	if _, err := qp.Write([]byte(info.Text)); err != nil {
		return nil, fmt.Errorf("failed to encode email body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode email body: %w", err)
	}
	return raw.Bytes(), nil
}

func SendEmail(ctx context.Context, client SESAPI, info *EmailInfo) error {
	data, err := BuildEmail(info)
	if err != nil {
		return err
	}

	res, err := client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: data},
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.MessageId != nil {
		fmt.Printf("[INFO] email sent: %s\n", *res.MessageId)
	}
	return nil
}

// EmailNotifier mails batch failures. Info messages are not mailed.
type EmailNotifier struct {
	client SESAPI
	from   string
	to     []string
}

func NewEmailNotifier(client SESAPI, from string, to []string) *EmailNotifier {
	return &EmailNotifier{client: client, from: from, to: to}
}

func (e *EmailNotifier) Info(message string) error {
	return nil
}

func (e *EmailNotifier) Error(message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
	defer cancel()

	return SendEmail(ctx, e.client, &EmailInfo{
		From:    e.from,
		To:      e.to,
		Subject: "Punch log upload failed",
		Text:    message,
	})
}
