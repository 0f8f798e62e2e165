package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dwilkie/tropo-message/internal/app"
	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/logging"
)

var logger *slog.Logger

func main() {
	cfg := logging.DefaultConfig()
	cfg.Output = os.Stderr
	logger = logging.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tropo-send",
		Short:        "Build and launch outbound Tropo sessions",
		SilenceUsage: true,
	}

	root.AddCommand(xmlCmd())
	root.AddCommand(sendCmd())
	root.AddCommand(escapeCmd())
	root.AddCommand(unescapeCmd())
	root.AddCommand(sessionsCmd())
	root.AddCommand(showCmd())

	return root
}

// messageFlags are the flags shared by commands that build a message.
type messageFlags struct {
	profile string
	token   string
	to      string
	from    string
	text    string
	channel string
	network string
	params  []string
}

func (f *messageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "outbound profile to layer the message over")
	cmd.Flags().StringVar(&f.token, "token", "", "application token (default: TROPO_TOKEN or TROPO_TOKEN_SECRET)")
	cmd.Flags().StringVar(&f.to, "to", "", "destination address")
	cmd.Flags().StringVar(&f.from, "from", "", "originating address")
	cmd.Flags().StringVar(&f.text, "text", "", "message text")
	cmd.Flags().StringVar(&f.channel, "channel", "", "channel (default TEXT)")
	cmd.Flags().StringVar(&f.network, "network", "", "network (default SMS)")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "extra session var as key=value (repeatable)")
}

// toParams returns the flag values as params, in flag order followed by
// --param values in the order given. Unset flags are left out.
func (f *messageFlags) toParams() (domain.Params, error) {
	var p domain.Params
	for _, kv := range []struct {
		field domain.Field
		value string
	}{
		{domain.FieldToken, f.token},
		{domain.FieldTo, f.to},
		{domain.FieldFrom, f.from},
		{domain.FieldText, f.text},
		{domain.FieldChannel, f.channel},
		{domain.FieldNetwork, f.network},
	} {
		if kv.value != "" {
			p.Set(kv.field.String(), kv.value)
		}
	}

	for _, raw := range f.params {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return domain.Params{}, fmt.Errorf("invalid --param %q: want key=value", raw)
		}
		p.Set(key, value)
	}

	return p, nil
}

func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, app.Options{Config: cfg, Logger: logger})
}
