package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
	"github.com/telhawk-systems/minisentinel/common/messaging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/events"

	natsclient "github.com/telhawk-systems/minisentinel/common/messaging/nats"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream simulator events from NATS",
	Long: `Subscribe to the events the service publishes when NATS is enabled and
print them as they arrive. Stops on Ctrl-C or after --count events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("nats")
		subject, _ := cmd.Flags().GetString("subject")
		count, _ := cmd.Flags().GetInt("count")
		if url == "" {
			url = cfg.NATSURL
		}

		natsCfg := natsclient.DefaultConfig()
		natsCfg.URL = url
		natsCfg.Name = "sentinelctl"
		natsCfg.MaxReconnects = 5
		nc, err := natsclient.NewClient(natsCfg)
		if err != nil {
			return err
		}
		defer nc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if format() == output.FormatTable {
			output.Info("Watching %s on %s", subject, url)
		}
		return watchEvents(ctx, nc, subject, count, printEvent)
	},
}

// watchEvents decodes events from sub until ctx ends or limit events (when
// limit > 0) have been handed to emit. emit runs on the calling goroutine.
func watchEvents(ctx context.Context, sub messaging.Subscriber, subject string, limit int, emit func(any) error) error {
	received := make(chan any, 64)
	s, err := sub.Subscribe(subject, func(ctx context.Context, msg *messaging.Message) error {
		ev, err := events.Decode(msg)
		if err != nil {
			return err
		}
		select {
		case received <- ev:
		default:
			return fmt.Errorf("watcher is behind, dropped %s", msg.Subject)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	defer s.Unsubscribe()

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-received:
			if err := emit(ev); err != nil {
				return err
			}
			seen++
			if limit > 0 && seen >= limit {
				return nil
			}
		}
	}
}

func printEvent(ev any) error {
	if format() != output.FormatTable {
		_, err := output.Structured(format(), ev)
		return err
	}
	output.Info("%s", describeEvent(ev))
	return nil
}

func describeEvent(ev any) string {
	switch e := ev.(type) {
	case *events.LogCreatedEvent:
		return fmt.Sprintf("%s log    %s [%s] %s %s: %s",
			e.Log.Timestamp.Local().Format(timeFormat), e.Log.ID,
			output.Severity(string(e.Log.Level)), e.Log.Source, e.Log.IP, e.Log.Message)
	case *events.AlertCreatedEvent:
		return fmt.Sprintf("%s alert  %s %s (%s) from %s",
			e.Alert.CreatedAt.Local().Format(timeFormat), e.Alert.ID,
			e.Alert.Type, output.Severity(string(e.Alert.Severity)), e.Alert.SourceIP)
	case *events.AlertUpdatedEvent:
		return fmt.Sprintf("%s update %s %s -> %s",
			e.UpdatedAt.Local().Format(timeFormat), e.AlertID, e.From, e.To)
	default:
		return fmt.Sprintf("%v", ev)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("nats", "", "NATS URL (default from config, nats://localhost:4222)")
	watchCmd.Flags().String("subject", messaging.SubjectAll, "subject to subscribe to")
	watchCmd.Flags().Int("count", 0, "exit after this many events (0 = until interrupted)")
}
