package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/asnreport/internal/cli"
	"github.com/Veraticus/asnreport/internal/common"
	"github.com/Veraticus/asnreport/internal/config"
	"github.com/Veraticus/asnreport/internal/engine"
	"github.com/Veraticus/asnreport/internal/paperless"
	"github.com/Veraticus/asnreport/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write ASN reports as tab-separated files",
		Long: `Fetch every document whose archive serial number lies in the requested
range and write tab-separated reports.

Without --no-grouping the documents are classified by a select custom field
and, besides the combined report sorted by correspondent, one report per
classification label is written sorted by correspondent and another sorted
by ASN.`,
		RunE: runReport,
	}

	addRunFlags(cmd, "report")

	return cmd
}

// addRunFlags registers the flags shared by commands that fetch documents
// and binds them under prefix, e.g. "report.asn_from".
func addRunFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().Int("asn-from", engine.DefaultASNFrom, "lowest archive serial number to include")
	cmd.Flags().Int("asn-to", engine.DefaultASNTo, "highest archive serial number to include")
	cmd.Flags().Int("field", engine.DefaultFieldID, "ID of the select custom field used for grouping")
	cmd.Flags().Bool("no-grouping", false, "skip grouping by the custom field")

	_ = viper.BindPFlag(prefix+".asn_from", cmd.Flags().Lookup("asn-from"))
	_ = viper.BindPFlag(prefix+".asn_to", cmd.Flags().Lookup("asn-to"))
	_ = viper.BindPFlag(prefix+".field", cmd.Flags().Lookup("field"))
	_ = viper.BindPFlag(prefix+".no_grouping", cmd.Flags().Lookup("no-grouping"))
}

// runOptions reads the engine options bound by addRunFlags.
func runOptions(prefix string) engine.Options {
	return engine.Options{
		ASNFrom:    viper.GetInt(prefix + ".asn_from"),
		ASNTo:      viper.GetInt(prefix + ".asn_to"),
		FieldID:    viper.GetInt(prefix + ".field"),
		NoGrouping: viper.GetBool(prefix + ".no_grouping"),
	}
}

// newClient builds a Paperless client from configuration, with a
// progress bar on stderr unless progress output is disabled.
func newClient() (*paperless.Client, error) {
	cfg, err := config.LoadPaperlessConfig()
	if err != nil {
		return nil, common.NewUserError("failed to load Paperless config", err)
	}

	var opts []paperless.Option
	if viper.GetBool(config.KeyProgress) {
		opts = append(opts, paperless.WithProgress(cli.NewPageProgress(os.Stderr)))
	}

	client, err := paperless.NewClient(*cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Paperless client: %w", err)
	}
	return client, nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	opts := runOptions("report")
	if err := opts.Validate(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	eng := engine.New(client, report.NewWriter(config.OutputDir())).
		WithAnnouncer(func(path string) {
			fmt.Fprintln(out, cli.FormatSuccess("Data exported to "+path))
		})

	paths, err := eng.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if len(paths) > 1 {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d reports written", len(paths))))
	}
	return nil
}
