package main

import (
	"os"

	"github.com/spf13/cobra"

	"pulsefit/internal/interfaces/cli/migrate"
	"pulsefit/internal/interfaces/cli/server"
)

// @title PulseFit API
// @version 1.0
// @description Gym membership management API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "pulsefit",
		Short: "PulseFit - gym membership management",
		Long:  `PulseFit manages gym members, plans, payments, and the membership lifecycle.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
