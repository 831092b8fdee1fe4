package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/tavola/config"
	"github.com/shashiranjanraj/tavola/database/seeders"
	"github.com/shashiranjanraj/tavola/pkg/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with the initial admin and starter menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		st, err := store.Connect(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Seeding %s store…\n", config.StoreDriver())
		return seeders.RunAll(cmd.Context(), st)
	},
}
