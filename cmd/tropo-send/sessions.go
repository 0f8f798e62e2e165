package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwilkie/tropo-message/internal/adapters/redis"
	"github.com/dwilkie/tropo-message/internal/codec"
	"github.com/dwilkie/tropo-message/internal/logging"
)

var errJournalDisabled = errors.New("session journal disabled: set REDIS_ADDR")

func sessionsCmd() *cobra.Command {
	var scanCount int64

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List journaled inbound session ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Redis() == nil {
				return errJournalDisabled
			}

			scanner := redis.NewScanner(a.Redis(), scanCount, logging.WithComponent(logger, "scanner"))
			ids, err := scanner.ScanSessionIDs(cmd.Context())
			if err != nil {
				return err
			}

			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&scanCount, "scan-count", 100, "keys requested per SCAN call")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show SESSION_ID",
		Short: "Print the response params of a journaled session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Redis() == nil {
				return errJournalDisabled
			}

			msg, err := a.Receiver.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(struct {
				Outgoing bool `json:"outgoing"`
				Params   any  `json:"params"`
			}{msg.Outgoing(), codec.ResponseParams(msg)}, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
