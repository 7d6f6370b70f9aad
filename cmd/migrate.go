package main

import (
	"log"

	"github.com/Bhargavvz/todoapp/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the todos table or collection indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			// opening the store runs migrations and ensures indexes
			_, closeStore, err := database.NewTodoRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			closeStore()
			log.Printf("Migration for %s store completed", cfg.StoreDriver)
			return nil
		},
	}
}
