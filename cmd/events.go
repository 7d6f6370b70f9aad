package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bhargavvz/todoapp/broker"
	"github.com/Bhargavvz/todoapp/models"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print todo change events published on NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			consumer, err := broker.InitConsumer(cfg)
			if err != nil {
				return fmt.Errorf("events requires NATS_URL: %w", err)
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = consumer.Consume(ctx, printEvent(cmd.OutOrStdout()))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// printEvent writes one line per event and skips events that cannot be encoded.
func printEvent(out io.Writer) func(subject string, event models.TodoEvent) {
	return func(subject string, event models.TodoEvent) {
		data, err := event.ToJSON()
		if err != nil {
			log.Printf("Failed to encode event %s from %s: %v", event.ID, subject, err)
			return
		}
		fmt.Fprintf(out, "%s %s\n", subject, data)
	}
}
