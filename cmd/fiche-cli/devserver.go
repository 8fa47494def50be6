package main

import (
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fiche/internal/devserver"
)

func devserverCmd(a *app) *cobra.Command {
	var (
		addr  string
		base  string
		token string
	)
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serve the directory and a submission sink locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.DevServer.Addr
			}
			if !cmd.Flags().Changed("base") {
				base = basePath(a.cfg.API.BaseURL)
			}
			srv, err := devserver.New(
				devserver.WithAddr(addr),
				devserver.WithBasePath(base),
				devserver.WithToken(token),
				devserver.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to devserver.addr)")
	cmd.Flags().StringVar(&base, "base", "", "Route prefix (defaults to the path of api.base_url)")
	cmd.Flags().StringVar(&token, "token", "", "Require this bearer token")
	return cmd
}

// basePath extracts the path of the configured API URL so the CLI and the
// dev server agree without extra flags.
func basePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}
