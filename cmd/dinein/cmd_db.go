package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dinein/database/seeders"
)

// dinein seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, done, err := bootOnce()
		if err != nil {
			return err
		}
		defer done()

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(ctx, cmd.OutOrStdout(), seeders.Target{Catalog: app.Catalog})
	},
}

// dinein orders:print
var ordersPrintCmd = &cobra.Command{
	Use:   "orders:print",
	Short: "Write the printable order summary to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, done, err := bootOnce()
		if err != nil {
			return err
		}
		defer done()

		return app.Services.Summary.Print(ctx, cmd.OutOrStdout())
	},
}
