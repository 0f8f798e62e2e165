package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwilkie/tropo-message/internal/codec"
	"github.com/dwilkie/tropo-message/internal/domain"
)

func xmlCmd() *cobra.Command {
	var flags messageFlags

	cmd := &cobra.Command{
		Use:   "xml",
		Short: "Print the session request XML for a message",
		Long: `Builds a message from the flags, layered over --profile when given,
and prints the XML that would be posted to the session API. A token is
resolved from the environment when available; without one the token
element is left empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.toParams()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			msg, err := a.Sender.Build(cmd.Context(), flags.profile, params)
			if errors.Is(err, domain.ErrMissingToken) {
				msg, err = a.Sender.Compose(cmd.Context(), flags.profile, params)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), codec.RequestXML(msg))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func sendCmd() *cobra.Command {
	var flags messageFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Launch an outbound session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.toParams()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			receipt, err := a.Sender.Send(cmd.Context(), flags.profile, params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "session %s launched to %s (request %s)\n",
				receipt.SessionID, receipt.To, receipt.RequestID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
