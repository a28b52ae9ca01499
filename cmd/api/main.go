package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lingualog/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lingualog",
		Short: "LinguaLog API Server",
		Long:  `LinguaLog is the backend for a personal language-learning journal: a 30-day journey with daily practice tasks, streaks, a bilingual diary and vocabulary collections.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
