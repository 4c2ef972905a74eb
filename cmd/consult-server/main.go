package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pharmconsult/pharmconsult/internal/domain/consultation"
)

const version = "0.1.0"

const (
	exitError      = 1
	exitValidation = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if consultation.IsValidation(err) {
			os.Exit(exitValidation)
		}
		os.Exit(exitError)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "consult-server",
		Short:        "Pharmacist consultation intake and triage",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(servicesCmd())
	rootCmd.AddCommand(migrateCmd())
	return rootCmd
}

// newLogger writes JSON, or human-readable console output in development.
func newLogger(w io.Writer, console bool) zerolog.Logger {
	if console {
		return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
