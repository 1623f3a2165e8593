package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autostream-assistant/internal/config"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/events"
	pktNats "autostream-assistant/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var durable string

// tailCmd prints LEAD_CAPTURED events from NATS as they arrive.
var tailCmd = &cobra.Command{
	Use:          "lead_tail",
	Short:        "Follow captured leads on the NATS event stream",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runTail,
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		return fmt.Errorf("NATS_URL is not set")
	}

	sysLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)
	defer sysLogger.Sync()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = sub.Subscribe(ctx, events.LeadCaptured, durable, func(ctx context.Context, event events.Event) error {
		printLead(out, event)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Waiting for leads (Ctrl+C to stop)...")
	<-ctx.Done()
	return nil
}

var (
	stamp = color.New(color.FgHiBlack).SprintFunc()
	plan  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func printLead(w io.Writer, event events.Event) {
	p := event.Payload()
	fmt.Fprintf(w, "%s %s %v <%v> on %v\n",
		stamp(event.Timestamp().Format(time.DateTime)),
		plan(fmt.Sprintf("[%v]", p["plan"])),
		p["name"], p["email"], p["platform"],
	)
}

func main() {
	tailCmd.Flags().StringVar(&durable, "durable", "lead-tail", "durable consumer name")

	if err := tailCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
