package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fiche/pkg/form"
	"github.com/goliatone/go-fiche/pkg/submission"
	"github.com/goliatone/go-fiche/pkg/tui"
)

func wizardCmd(a *app) *cobra.Command {
	var (
		dryRun  bool
		prefill string
	)
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Fill in a fiche technique step by step and submit it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := a.client()
			if err != nil {
				return err
			}
			dir, err := a.directory(client)
			if err != nil {
				return err
			}
			contract, err := submission.DefaultContract()
			if err != nil {
				return err
			}

			opts := []form.Option{form.WithLogger(a.logger)}
			if prefill != "" {
				snap, err := readSnapshot(prefill)
				if err != nil {
					return err
				}
				opts = append(opts, form.WithInitial(snap))
			}
			f := form.New(opts...)

			var endpoint submission.Endpoint = submission.NewHTTPEndpoint(client)
			if dryRun {
				endpoint = submission.EndpointFunc(func(_ context.Context, p submission.Payload) error {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(p)
				})
			}
			sub := submission.NewSubmitter(endpoint,
				submission.WithContract(contract),
				submission.WithInitialStatus(a.cfg.Submission.InitialStatus),
				submission.WithNotifier(printNotifier{out: cmd.OutOrStdout()}),
				submission.WithLogger(a.logger),
			)

			runner, err := tui.New(f, dir, sub,
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithPageSize(a.cfg.Directory.PageSize),
				tui.WithAnneeUniv(a.cfg.Directory.AnneeUniv),
				tui.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if _, err := runner.Run(ctx); err != nil {
				if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Saisie abandonnée."))
					return nil
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the payload instead of sending it")
	cmd.Flags().StringVar(&prefill, "prefill", "", "YAML or JSON fiche used as starting values")
	return cmd
}
