package main

import (
	"context"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	envFiles []string
	profile  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "qrbench",
		Short:         "Benchmark QR code encoders",
		Long:          `Generates QR codes with several encoders, records render time, memory and file size per generation and compares the libraries.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default .env when present)")
	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "YAML file with initial settings")

	cmd.AddCommand(
		newServeCmd(opts),
		newRunCmd(opts),
		newInfoCmd(opts),
	)
	return cmd
}

// bootstrap loads configuration and the profile and builds the app.
func (o *rootOptions) bootstrap(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(o.envFiles)
	if err != nil {
		return nil, err
	}
	profile, err := loadProfile(o.profile)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, profile)
}
