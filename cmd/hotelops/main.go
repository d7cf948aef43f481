package main

import (
	"os"

	"github.com/spf13/cobra"

	"hotelops/internal/interfaces/cli/migrate"
	"hotelops/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hotelops",
		Short: "hotelops - hotel operations backend",
		Long:  `hotelops serves room, ticket and staff data over HTTP, with a natural-language query endpoint and schema migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
