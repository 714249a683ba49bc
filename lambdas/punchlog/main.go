package main

import (
	"context"
	"log"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/infrastructure/filesystem"
	"timekeeper.com/timekeeper/payroll/bootstrap"
	"timekeeper.com/timekeeper/payroll/repository"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	dm, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	client, err := filesystem.NewClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := bootstrap.UploadOptions(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	handler := &Handler{
		Store:   repository.NewPunchRepository(dm),
		Client:  client,
		Options: opts,
	}
	lambda.Start(handler.Handle)
}
