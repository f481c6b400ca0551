package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/svc/report"
)

type runOptions struct {
	value      string
	size       int
	iterations int
	logo       string
	export     []string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one batch and print a comparison table",
		Example: `  # Benchmark every encoder 100 times
  qrbench run --iterations 100

  # Encode a custom value with a logo and store CSV and JSON reports
  qrbench run --value "https://example.com" --logo logo.png --export csv,json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := root.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.close(ctx) }()

			formats := make([]report.Format, 0, len(opts.export))
			for _, s := range opts.export {
				f, err := report.ParseFormat(s)
				if err != nil {
					return err
				}
				formats = append(formats, f)
			}

			if err := opts.apply(a); err != nil {
				return err
			}

			res, err := a.runner.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s generations in %s (batch %s)\n",
				report.FormatNumber(float64(res.Generations)),
				report.FormatTime(float64(res.Duration.Microseconds())/1000),
				res.BatchID)

			state := a.store.State()
			if err := writeSummary(out, state, a.runner.Libraries()); err != nil {
				return err
			}

			for _, lib := range a.runner.Libraries() {
				for _, f := range formats {
					stored, err := a.exporter.Export(ctx, lib, state.Stacks[lib], f)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "exported %s\n", stored.URL)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.value, "value", "", "content to encode")
	cmd.Flags().IntVar(&opts.size, "size", 0, "edge length in pixels")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", 0, "number of iterations")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "PNG, JPEG or GIF logo placed in the center")
	cmd.Flags().StringSliceVar(&opts.export, "export", nil, "formats to store after the run (json, csv, png, svg)")
	return cmd
}

// apply overrides the profile settings with the flags that were given.
func (o *runOptions) apply(a *app) error {
	if o.value != "" {
		a.store.SetValue(o.value)
	}
	if o.size > 0 {
		a.store.SetSize(o.size)
	}
	if o.iterations > 0 {
		a.store.SetIterations(o.iterations)
	}
	if o.logo != "" {
		data, err := os.ReadFile(o.logo)
		if err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
		mime, err := file.ValidateLogo(data)
		if err != nil {
			return err
		}
		a.store.SetLogo(qrcode.EncodeDataURL(mime, data))
	}
	return nil
}
