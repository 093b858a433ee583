package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"asempv/internal/domain"
)

func invertersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inverters",
		Aliases: []string{"inv"},
		Short:   "Query inverters",
	}
	cmd.AddCommand(inverterListCmd(), inverterShowCmd(), inverterRealtimeCmd(), inverterStatsCmd(), inverterDataCmd())
	return cmd
}

func inverterListCmd() *cobra.Command {
	var (
		all                bool
		search             string
		city, region       int
		minPower, maxPower float64
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inverters",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.InverterFilters{Search: search, Partner: settings.Partner}
			if cmd.Flags().Changed("city") {
				f.City = &city
			}
			if cmd.Flags().Changed("region") {
				f.Region = &region
			}
			if cmd.Flags().Changed("min-power") {
				f.MinPower = &minPower
			}
			if cmd.Flags().Changed("max-power") {
				f.MaxPower = &maxPower
			}

			l := wire.Inverters.NewInverterLoader(f)
			defer l.Close()
			items, more, err := collect(cmd.Context(), l, all, requestTimeout())
			if err != nil {
				return err
			}
			if err := printInverters(cmd.OutOrStdout(), items); err != nil {
				return err
			}
			if more && output != "json" {
				fmt.Fprintln(cmd.ErrOrStderr(), "more results available, use --all")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search title, address and owner")
	cmd.Flags().IntVar(&city, "city", 0, "city id")
	cmd.Flags().IntVar(&region, "region", 0, "region id")
	cmd.Flags().Float64Var(&minPower, "min-power", 0, "minimum inverter power")
	cmd.Flags().Float64Var(&maxPower, "max-power", 0, "maximum inverter power")
	return cmd
}

func parseID(arg string) (domain.InverterID, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid inverter id %q", arg)
	}
	return domain.InverterID(n), nil
}

func inverterShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one inverter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			inv, err := unwrap(wire.Inverters.Inverter(ctx, id))
			if err != nil {
				return err
			}
			return printInverter(cmd.OutOrStdout(), inv)
		},
	}
}

func inverterRealtimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realtime ID",
		Short: "Show the live state of one inverter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			inv, err := unwrap(wire.Inverters.Realtime(ctx, id))
			if err != nil {
				return err
			}
			return printInverter(cmd.OutOrStdout(), inv)
		},
	}
}

func inverterStatsCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stats ID",
		Short: "Show aggregated statistics of one inverter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			inv, err := unwrap(wire.Inverters.Statistics(ctx, id, domain.StatisticsPeriod(period)))
			if err != nil {
				return err
			}
			return printInverter(cmd.OutOrStdout(), inv)
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "today, week, month or year")
	return cmd
}

func inverterDataCmd() *cobra.Command {
	var (
		all bool
		q   domain.EnergyDataQuery
	)
	cmd := &cobra.Command{
		Use:   "data ID",
		Short: "List telemetry samples of one inverter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			l := wire.Inverters.NewEnergyDataLoader(id, q)
			defer l.Close()
			items, _, err := collect(cmd.Context(), l, all, requestTimeout())
			if err != nil {
				return err
			}
			return printEnergyData(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().StringVar(&q.Aggregation, "aggregation", "", "aggregation window")
	cmd.Flags().StringVar(&q.StartDate, "from", "", "start date")
	cmd.Flags().StringVar(&q.EndDate, "to", "", "end date")
	cmd.Flags().StringSliceVar(&q.Types, "type", nil, "data type keys (repeatable)")
	return cmd
}
