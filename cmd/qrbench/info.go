package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrbench/svc/registry"
	"github.com/dmitrymomot/qrbench/svc/report"
)

func newInfoCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show registry information of a package",
		Args:  cobra.ExactArgs(1),
		Example: `  qrbench info qrcode
  qrbench info @scope/name --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := root.bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.close(ctx) }()

			info, err := a.registry.PackageInfo(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			return writeInfo(out, info)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw record as JSON")
	return cmd
}

func writeInfo(w io.Writer, info registry.PackageInfo) error {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-18s %s\n", label+":", value)
		}
	}

	line("Name", info.Name)
	line("Version", info.Version)
	line("Description", info.Description)
	line("License", info.License)
	if info.Size > 0 {
		line("Size", report.FormatBytes(float64(info.Size)))
	}
	if info.UnpackedSize > 0 {
		line("Unpacked size", report.FormatBytes(float64(info.UnpackedSize)))
	}
	line("Weekly downloads", report.FormatNumber(float64(info.WeeklyDownloads)))
	if info.DownloadStats != nil {
		line("Last 30 days", report.FormatNumber(float64(info.DownloadStats.Total())))
	}
	line("Dependencies", report.FormatNumber(float64(len(info.Dependencies))))
	if info.LastPublish != nil {
		line("Last publish", info.LastPublish.Format("2006-01-02"))
	}
	line("Homepage", info.Homepage)
	if info.Repository != nil {
		line("Repository", info.Repository.URL)
	}
	if info.Author != nil {
		line("Author", info.Author.Name)
	}
	line("Keywords", strings.Join(info.Keywords, ", "))

	_, err := io.WriteString(w, b.String())
	return err
}
