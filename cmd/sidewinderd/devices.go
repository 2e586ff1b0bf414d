package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sidewinderd/internal/device"
)

func newDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "devices",
		Short:              "List supported keyboards",
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 2)
			for _, model := range device.SupportedModels() {
				rows = append(rows, []string{
					model.Name,
					strings.ToUpper(model.Vendor),
					strings.ToUpper(model.Product),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Model", "Vendor ID", "Product ID"}, rows))
			return nil
		},
	}
}
