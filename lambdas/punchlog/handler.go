package main

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"timekeeper.com/timekeeper/infrastructure/filesystem"
	payroll "timekeeper.com/timekeeper/payroll/core"

	"github.com/aws/aws-lambda-go/events"
)

// UploadedBy is recorded in upload history for files dropped into the bucket.
const UploadedBy = "s3"

type Handler struct {
	Store   payroll.BatchStore
	Client  filesystem.S3API
	Options payroll.UploadOptions
}

// Handle ingests every object of the event. One failed object does not stop
// the others; the invocation fails when any did.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) error {
	failed := 0
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.URLDecodedKey
		if key == "" {
			key = record.S3.Object.Key
		}
		fmt.Printf("[INFO] processing s3://%s/%s\n", bucket, key)

		var stream bytes.Buffer
		if err := filesystem.ReadFile(ctx, h.Client, bucket, key, &stream); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			failed++
			continue
		}

		meta := payroll.UploadMeta{
			UploadedBy: UploadedBy,
			FileName:   path.Base(key),
			UploadTime: record.EventTime,
		}
		result, err := payroll.ProcessUpload(ctx, h.Store, meta, &stream, h.Options)
		if err != nil {
			// ProcessUpload already logged and notified
			failed++
			continue
		}
		fmt.Printf("[INFO] s3://%s/%s accepted=%d rejected=%d\n", bucket, key, result.Accepted, result.Rejected)
	}

	if failed > 0 {
		return fmt.Errorf("failed to process %d of %d punch logs", failed, len(event.Records))
	}
	return nil
}
