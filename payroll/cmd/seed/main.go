package main

import (
	"context"
	"log"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/payroll/bootstrap"
	"timekeeper.com/timekeeper/payroll/repository"

	"gorm.io/gorm"
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

	if err := dm.Exec(ctx, func(db *gorm.DB) error {
		return repository.Migrate(db)
	}); err != nil {
		log.Fatalf("failed to create tables: %v", err)
	}
	log.Println("tables ready")
}
