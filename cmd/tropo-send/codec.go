package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwilkie/tropo-message/internal/codec"
)

func escapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escape VALUE...",
		Short: "Escape values the way session vars are written",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), codec.Escape(arg))
			}
			return nil
		},
	}
}

func unescapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unescape VALUE...",
		Short: "Decode escaped session var values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), codec.Unescape(arg))
			}
			return nil
		},
	}
}
