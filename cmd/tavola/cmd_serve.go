package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/tavola/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
