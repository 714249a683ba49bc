// Package bootstrap builds the shared dependencies of the payroll entry points
// from config.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/core"
	"timekeeper.com/timekeeper/infrastructure/communication"
	"timekeeper.com/timekeeper/infrastructure/filesystem"
	payroll "timekeeper.com/timekeeper/payroll/core"
)

func OpenDatabase(cfg *config.Config) (*core.DatabaseManager, error) {
	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		return nil, err
	}
	dm.LogLevel = core.ParseLogLevel(cfg.LogLevel)
	return dm, nil
}

// Notifiers returns the configured notification channels, possibly none.
func Notifiers(ctx context.Context, cfg *config.Config) (communication.Notifiers, error) {
	var notifiers communication.Notifiers
	if cfg.SlackEnabled() {
		notifiers = append(notifiers, communication.NewSlack(cfg.Slack.BotToken, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannel,
			ErrorChannelID: cfg.Slack.ErrorChannel,
		}))
	}
	if cfg.EmailEnabled() {
		client, err := communication.NewSESClient(ctx)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, communication.NewEmailNotifier(client, cfg.Email.From, splitAddresses(cfg.Email.To)))
	}
	return notifiers, nil
}

func UploadOptions(ctx context.Context, cfg *config.Config) (payroll.UploadOptions, error) {
	var opts payroll.UploadOptions

	notifiers, err := Notifiers(ctx, cfg)
	if err != nil {
		return opts, fmt.Errorf("failed to set up notifications: %w", err)
	}
	if len(notifiers) > 0 {
		opts.Notifier = notifiers
	}

	if cfg.ArchiveBucket != "" {
		client, err := filesystem.NewClient(ctx)
		if err != nil {
			return opts, fmt.Errorf("failed to set up archive: %w", err)
		}
		opts.Archiver = filesystem.NewArchiver(client, cfg.ArchiveBucket)
	}
	return opts, nil
}

func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
