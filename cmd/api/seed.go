package main

import (
	"errors"

	"github.com/maozinhas/api/internal/config"
	"github.com/maozinhas/api/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with a demo seeker and approved workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if a.cfg.StorageDriver == config.StorageMemory {
			return errors.New("seed needs STORAGE_DRIVER=mongo, in-memory data does not outlive the command")
		}

		summary, err := seed.Run(cmd.Context(), a.store, a.logger)
		if err != nil {
			return err
		}
		a.logger.Info("seeding complete", "seekers", summary.Seekers, "workers", summary.Workers)
		return nil
	},
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes used by worker search and user lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if a.repo == nil {
			return errors.New("indexes needs STORAGE_DRIVER=mongo")
		}
		if err := a.repo.EnsureIndexes(cmd.Context()); err != nil {
			return err
		}
		a.logger.Info("indexes are up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexesCmd)
}
