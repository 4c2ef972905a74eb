package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pharmconsult/pharmconsult/internal/config"
	"github.com/pharmconsult/pharmconsult/internal/domain/consultation"
	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run one consultation from an intake file",
		Long: "Reads a YAML (or JSON) intake file, prints eligibility and the triage outcome, " +
			"and optionally writes the consultation summary to --out.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			out, _ := cmd.Flags().GetString("out")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), true)
			if !verbose {
				logger = logger.Level(zerolog.WarnLevel)
			}

			svc := consultation.NewService(consultationConfig(cfg), nil, nil, logger)
			p := consultation.NewTextPresenter(cmd.OutOrStdout())

			c, err := svc.Run(cmd.Context(), consultation.FileSource{Path: file}, p)
			if err != nil {
				return err
			}
			if err := p.Err(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if out != "" {
				if err := os.WriteFile(out, c.Summary.Bytes(), 0o600); err != nil {
					return fmt.Errorf("write summary: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "Path to the intake file")
	cmd.Flags().StringP("out", "o", "", "Write the consultation summary to this file")
	cmd.Flags().BoolP("verbose", "v", false, "Log consultation events to stderr")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the services and the questions each one asks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			catalogue := triage.Catalogue()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(catalogue)
			}

			for _, s := range catalogue {
				fmt.Fprintf(w, "%s\n", s.Kind)
				if len(s.Questions) == 0 {
					fmt.Fprintln(w, "  (no supplementary questions)")
				}
				for _, q := range s.Questions {
					fmt.Fprintf(w, "  %-26s %-8s %s", q.Field, q.Type, q.Prompt)
					if len(q.Options) > 0 {
						fmt.Fprintf(w, " [%s]", strings.Join(q.Options, " | "))
					}
					fmt.Fprintln(w)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the catalogue as JSON")
	return cmd
}
