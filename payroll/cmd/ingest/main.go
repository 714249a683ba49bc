package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/infrastructure/filesystem"
	"timekeeper.com/timekeeper/payroll/bootstrap"
	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/payroll/repository"
	"timekeeper.com/timekeeper/utils"
)

func open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "s3://") {
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s: %w", source, err)
		}
		return file, nil
	}

	bucket, key, err := filesystem.ParseS3URL(source)
	if err != nil {
		return nil, err
	}
	client, err := filesystem.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	var stream bytes.Buffer
	if err := filesystem.ReadFile(ctx, client, bucket, key, &stream); err != nil {
		return nil, err
	}
	return io.NopCloser(&stream), nil
}

func main() {
	uploadedBy := flag.String("uploaded-by", "hr", "user recorded in upload history")
	uploadedAt := flag.String("uploaded-at", "", "upload time (RFC3339 or yyyy-mm-dd), defaults to now")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ingest [flags] <file | s3://bucket/key>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	source := flag.Arg(0)

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	meta := payroll.UploadMeta{UploadedBy: *uploadedBy, FileName: path.Base(source)}
	if *uploadedAt != "" {
		t, err := utils.ParseISOTime(*uploadedAt)
		if err != nil {
			log.Fatal(err)
		}
		meta.UploadTime = *t
	}

	dm, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	opts, err := bootstrap.UploadOptions(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Fetching %s\n", source)
	stream, err := open(ctx, source)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	result, err := payroll.ProcessUpload(ctx, repository.NewPunchRepository(dm), meta, stream, opts)
	if result != nil {
		for _, rowErr := range result.Errors {
			fmt.Printf("  skipped %s\n", rowErr)
		}
		fmt.Printf("Accepted %d, rejected %d\n", result.Accepted, result.Rejected)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Completed, reference %s\n", result.History.Reference)
}
