package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/JayDev810/working-project-list/cmd/tracker/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Daily work tracker server",
		Long:  `Daily work tracker: contributors log per-day, per-project hours; an administrator reviews, filters and exports them.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
