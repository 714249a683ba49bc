package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/payroll/model"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}

type fakeStore struct {
	committed []*model.UploadHistory
	failed    []*model.UploadHistory
	punches   int
}

func (s *fakeStore) CommitBatch(ctx context.Context, history *model.UploadHistory, punches []payroll.PunchEvent) error {
	s.committed = append(s.committed, history)
	s.punches += len(punches)
	return nil
}

func (s *fakeStore) RecordFailedBatch(ctx context.Context, history *model.UploadHistory) error {
	s.failed = append(s.failed, history)
	return nil
}

const validLog = "No EnNo Name Mode DateTime\n" +
	"0001    1001       Juan Cruz        0 2025/01/10 08:00:00\n"

func s3Record(bucket, key string, at time.Time) events.S3EventRecord {
	return events.S3EventRecord{
		EventTime: at,
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: bucket},
			Object: events.S3Object{Key: key, URLDecodedKey: key},
		},
	}
}

func TestHandle(t *testing.T) {
	at := time.Date(2025, 1, 13, 1, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	h := &Handler{
		Store: store,
		Client: &fakeS3{objects: map[string]string{
			"drop/incoming/week2.txt": validLog,
			"drop/incoming/empty.txt": "header only\n",
		}},
	}

	err := h.Handle(context.Background(), events.S3Event{Records: []events.S3EventRecord{
		s3Record("drop", "incoming/week2.txt", at),
		s3Record("drop", "incoming/empty.txt", at),
		s3Record("drop", "incoming/missing.txt", at),
	}})
	require.Error(t, err)
	assert.Equal(t, "failed to process 2 of 3 punch logs", err.Error())

	require.Len(t, store.committed, 1)
	assert.Equal(t, "week2.txt", store.committed[0].FileName)
	assert.Equal(t, UploadedBy, store.committed[0].UploadedBy)
	assert.Equal(t, at, store.committed[0].UploadTime)
	assert.Equal(t, 1, store.punches)

	require.Len(t, store.failed, 1)
	assert.Equal(t, "empty.txt", store.failed[0].FileName)
}

func TestHandleAllSucceed(t *testing.T) {
	store := &fakeStore{}
	h := &Handler{Store: store, Client: &fakeS3{objects: map[string]string{"drop/a.txt": validLog}}}

	require.NoError(t, h.Handle(context.Background(), events.S3Event{Records: []events.S3EventRecord{
		s3Record("drop", "a.txt", time.Now()),
	}}))
	assert.Len(t, store.committed, 1)
}
