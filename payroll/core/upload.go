package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"timekeeper.com/timekeeper/payroll/model"
	"timekeeper.com/timekeeper/utils"

	"github.com/google/uuid"
)

// BatchStore persists upload batches.
type BatchStore interface {
	// CommitBatch stores the history row and all punches in one transaction.
	CommitBatch(ctx context.Context, history *model.UploadHistory, punches []PunchEvent) error
	// RecordFailedBatch stores only the history row of an aborted batch.
	RecordFailedBatch(ctx context.Context, history *model.UploadHistory) error
}

// Archiver keeps a copy of the raw upload and returns where it was stored.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte) (string, error)
}

type Notifier interface {
	Info(message string) error
	Error(message string) error
}

type UploadMeta struct {
	UploadedBy string
	FileName   string
	UploadTime time.Time
	Reference  string
}

type UploadOptions struct {
	Archiver Archiver
	Notifier Notifier
}

type UploadResult struct {
	History  *model.UploadHistory `json:"history"`
	Accepted int                  `json:"accepted"`
	Rejected int                  `json:"rejected"`
	Errors   []RowError           `json:"errors"`
}

// ProcessUpload parses a punch log and commits it as one batch. Row errors are
// reported in the result. Batch errors abort the upload: nothing but a Failed
// history row is stored, and the error is returned with the result.
func ProcessUpload(ctx context.Context, store BatchStore, meta UploadMeta, r io.Reader, opts UploadOptions) (*UploadResult, error) {
	if meta.Reference == "" {
		meta.Reference = uuid.New().String()
	}
	if meta.UploadTime.IsZero() {
		meta.UploadTime = time.Now()
	}
	if meta.UploadedBy == "" {
		meta.UploadedBy = "hr"
	}

	history := &model.UploadHistory{
		Reference:  meta.Reference,
		UploadedBy: meta.UploadedBy,
		FileName:   meta.FileName,
		UploadTime: meta.UploadTime,
	}
	result := &UploadResult{History: history}

	data, err := io.ReadAll(r)
	if err != nil {
		err = fmt.Errorf("failed to read upload: %w", err)
		return result, failBatch(ctx, store, history, opts.Notifier, err)
	}

	parsed, parseErr := ParsePunchLog(bytes.NewReader(data))
	if parsed != nil {
		result.Accepted = parsed.Accepted()
		result.Rejected = parsed.Rejected()
		result.Errors = parsed.Errors
		history.AcceptedRows = result.Accepted
		history.RejectedRows = result.Rejected
	}
	if parseErr != nil {
		return result, failBatch(ctx, store, history, opts.Notifier, parseErr)
	}

	if opts.Archiver != nil {
		key := ArchiveKey(meta)
		location, err := opts.Archiver.Archive(ctx, key, data)
		if err != nil {
			fmt.Printf("[WARN] failed to archive %s: %v\n", meta.FileName, err)
		} else {
			history.ArchiveKey = &location
		}
	}

	history.Status = model.UploadStatusSuccess
	history.Details = fmt.Sprintf("Successfully processed %d data rows, skipped %d.", result.Accepted, result.Rejected)
	if err := store.CommitBatch(ctx, history, parsed.Punches); err != nil {
		// the transaction rolled back; keep a trace of the attempt
		history.ID = 0
		history.Punches = nil
		cause := fmt.Errorf("failed to commit batch: %w", err)
		if history.ArchiveKey != nil {
			cause = fmt.Errorf("failed to commit batch, archived copy left at %s: %w", *history.ArchiveKey, err)
		}
		return result, failBatch(ctx, store, history, opts.Notifier, cause)
	}

	employees := utils.GroupBy(parsed.Punches, func(p PunchEvent) string { return p.EmployeeID })
	fmt.Printf("[INFO] upload %s (%s): accepted=%d rejected=%d employees=%d\n",
		history.Reference, history.FileName, result.Accepted, result.Rejected, len(employees))
	if opts.Notifier != nil {
		if err := opts.Notifier.Info(fmt.Sprintf("Punch log %s uploaded by %s: %s", history.FileName, history.UploadedBy, history.Details)); err != nil {
			fmt.Printf("[WARN] failed to send notification: %v\n", err)
		}
	}

	return result, nil
}

func failBatch(ctx context.Context, store BatchStore, history *model.UploadHistory, notifier Notifier, cause error) error {
	history.Status = model.UploadStatusFailed
	history.Details = fmt.Sprintf("Error during processing: %v", cause)

	fmt.Printf("[ERROR] upload %s (%s): %v\n", history.Reference, history.FileName, cause)
	if err := store.RecordFailedBatch(ctx, history); err != nil {
		cause = errors.Join(cause, fmt.Errorf("failed to record failed upload: %w", err))
	}
	if notifier != nil {
		if err := notifier.Error(fmt.Sprintf("Punch log %s uploaded by %s failed: %v", history.FileName, history.UploadedBy, cause)); err != nil {
			fmt.Printf("[WARN] failed to send notification: %v\n", err)
		}
	}
	return cause
}

// ArchiveKey is the object key of an archived upload.
func ArchiveKey(meta UploadMeta) string {
	return path.Join("punchlogs", meta.UploadTime.Format(dateKeyLayout), meta.Reference+"-"+path.Base(meta.FileName))
}
