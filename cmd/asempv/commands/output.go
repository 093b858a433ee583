package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"asempv/internal/domain"
	"asempv/internal/netresult"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// unwrap turns a result into a value or an error for RunE.
func unwrap[T any](res netresult.Result[T]) (T, error) {
	if e := res.Err(); e != nil {
		var zero T
		return zero, e
	}
	v, ok := res.Data()
	if !ok {
		var zero T
		return zero, fmt.Errorf("no result")
	}
	return v, nil
}

func optFloat(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func printInverters(w io.Writer, list []domain.Inverter) error {
	if output == "json" {
		return printJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCITY\tMAX POWER\tLATEST DATA")
	for _, inv := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", inv.ID, inv.Title, inv.City.Title, optFloat(inv.InverterMaxPower), inv.LatestData)
	}
	return tw.Flush()
}

func printInverter(w io.Writer, inv domain.Inverter) error {
	if output == "json" {
		return printJSON(w, inv)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"id", inv.ID.String()},
		{"title", inv.Title},
		{"device type", inv.DeviceType},
		{"address", inv.Address},
		{"owner", inv.Owner},
		{"region", inv.Region.Title},
		{"city", inv.City.Title},
		{"power station", inv.PowerStation},
		{"inverter max power", optFloat(inv.InverterMaxPower)},
		{"solar max power", optFloat(inv.SolarMaxPower)},
		{"battery size", optFloat(inv.BatterySize)},
		{"location", fmt.Sprintf("%.5f, %.5f", inv.Latitude, inv.Longitude)},
		{"latest data", inv.LatestData},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func printEnergyData(w io.Writer, list []domain.EnergyData) error {
	if output == "json" {
		return printJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tVALUE")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%g %s\n", d.CreatedAt, d.DataTypeName, d.Value, d.Measure)
	}
	return tw.Flush()
}

func printDataTypes(w io.Writer, list []domain.DataType) error {
	if output == "json" {
		return printJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tMEASURE")
	for _, d := range list {
		k := "-"
		if d.FoundKey != nil {
			k = *d.FoundKey
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, d.Title, d.Measure)
	}
	return tw.Flush()
}
