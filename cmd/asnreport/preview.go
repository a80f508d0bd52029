package main

import (
	"fmt"

	"github.com/Veraticus/asnreport/internal/cli"
	"github.com/Veraticus/asnreport/internal/engine"
	"github.com/Veraticus/asnreport/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print grouped documents without writing reports",
		Long: `Fetch documents the same way as "report" and print them grouped by the
classification field, either per correspondent or in ASN order.`,
		RunE: runPreview,
	}

	addRunFlags(cmd, "preview")
	cmd.Flags().String("by", "correspondent", "inner ordering: correspondent or asn")
	_ = viper.BindPFlag("preview.by", cmd.Flags().Lookup("by"))

	return cmd
}

// previewOrder maps the --by flag to a report ordering.
func previewOrder(by string) (report.Order, error) {
	switch by {
	case "", "correspondent":
		return report.OrderCorrespondent, nil
	case "asn":
		return report.OrderASN, nil
	default:
		return "", fmt.Errorf("invalid --by value %q: must be correspondent or asn", by)
	}
}

func runPreview(cmd *cobra.Command, _ []string) error {
	order, err := previewOrder(viper.GetString("preview.by"))
	if err != nil {
		return err
	}

	opts := runOptions("preview")
	if err := opts.Validate(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ds, err := engine.New(client, nil).Load(cmd.Context(), opts)
	if err != nil {
		return err
	}

	return cli.WritePreview(cmd.OutOrStdout(), ds.Groups, ds.Names, order)
}
