package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fiche/pkg/config"
	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/recap"
	"github.com/goliatone/go-fiche/pkg/submission"
	"github.com/goliatone/go-fiche/pkg/validation"
)

func recapCmd(a *app) *cobra.Command {
	var (
		format string
		check  bool
	)
	cmd := &cobra.Command{
		Use:   "recap FILE",
		Short: "Render the review of a saved fiche (YAML or JSON, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			dir, err := a.recapDirectory()
			if err != nil {
				return err
			}
			sections := recap.NewBuilder(recap.WithDirectory(dir), recap.WithLogger(a.logger)).Build(cmd.Context(), snap)
			if err := writeRecap(cmd.OutOrStdout(), sections, format); err != nil {
				return err
			}
			if check {
				return reportIssues(cmd.OutOrStdout(), snap)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or html")
	cmd.Flags().BoolVar(&check, "check", false, "Also validate the fiche and list the issues")
	return cmd
}

// recapDirectory is the static directory unless HTTP is configured.
func (a *app) recapDirectory() (directory.Directory, error) {
	if a.cfg.Directory.Source != config.SourceHTTP {
		return a.directory(nil)
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	return a.directory(client)
}

func writeRecap(w io.Writer, sections []recap.Section, format string) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, recap.RenderText(sections))
		return err
	case "html":
		out, err := recap.RenderHTML(sections)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func reportIssues(w io.Writer, snap fiche.Snapshot) error {
	res := validation.NewSet().Validate(snap)
	if res.Valid {
		fmt.Fprintln(w, successStyle.Render("✓")+" Fiche complète")
		return nil
	}
	for _, issue := range res.Issues {
		fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("✗"), issue.Field, issue.Message)
	}
	return fmt.Errorf("%d issue(s) found", len(res.Issues))
}

func payloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "payload FILE",
		Short: "Print the submission body built from a saved fiche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			p, err := submission.Build(snap, a.cfg.Submission.InitialStatus)
			if err != nil {
				return err
			}
			contract, err := submission.DefaultContract()
			if err != nil {
				return err
			}
			if err := contract.Check(p); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}
