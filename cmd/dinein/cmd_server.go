package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dinein/app/routes"
	"github.com/shashiranjanraj/dinein/database/seeders"
	"github.com/shashiranjanraj/dinein/internal/server"
	"github.com/shashiranjanraj/dinein/pkg/router"
)

var seedOnServe bool

// dinein serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := server.Boot(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		if seedOnServe {
			if err := seeders.RunAll(ctx, cmd.OutOrStdout(), seeders.Target{Catalog: app.Catalog}); err != nil {
				return err
			}
		}
		return app.Run(ctx)
	},
}

// dinein route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r, routes.Services{})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnServe, "seed", false, "seed the demo menu into an empty catalog before serving")
}

// bootOnce boots the configured backends for a one-shot command.
func bootOnce() (*server.App, context.Context, func(), error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	app, err := server.Boot(ctx)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	return app, ctx, func() { app.Close(); stop() }, nil
}
