package main

import (
	"log"
	"os"

	"github.com/Bhargavvz/todoapp/config"

	"github.com/spf13/cobra"
)

var cfg config.Config

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:   "todoapp",
		Short: "Todo CRUD API backed by a document store",
		Long: "todoapp serves the /api/todos HTTP API over MongoDB, PostgreSQL or SQLite.\n\n" +
			config.Description(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		// serve is the default command
		RunE: serveCmd.RunE,
	}

	rootCmd.AddCommand(serveCmd, newMigrateCmd(), newEventsCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
