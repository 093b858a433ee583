package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show fleet totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			stats, err := unwrap(wire.Inverters.Dashboard(ctx, settings.Partner))
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Inverters:  %d\n", stats.TotalInverters)
			fmt.Fprintf(w, "Power:      %g\n", stats.TotalPower)
			fmt.Fprintf(w, "Energy:     %g\n", stats.TotalEnergy)
			return nil
		},
	}
}

func dataTypesCmd() *cobra.Command {
	var (
		all    bool
		search string
	)
	cmd := &cobra.Command{
		Use:   "data-types",
		Short: "List telemetry channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := wire.Inverters.NewDataTypeLoader(search)
			defer l.Close()
			items, _, err := collect(cmd.Context(), l, all, requestTimeout())
			if err != nil {
				return err
			}
			return printDataTypes(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search titles")
	return cmd
}
