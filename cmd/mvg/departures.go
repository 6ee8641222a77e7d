package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvgsensor/mvg-go/internal/models"
	"github.com/mvgsensor/mvg-go/pkg/mvg"
)

var departuresCmd = &cobra.Command{
	Use:   "departures <station or id>",
	Short: "Show the next departures at a station",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		typesFlag, _ := cmd.Flags().GetString("types")

		client := newClient()
		station, err := resolveStation(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		opts := mvg.DepartureOptions{Limit: limit, Offset: offset}
		if typesFlag != "" {
			for _, tag := range strings.Split(typesFlag, ",") {
				tt, ok := models.TransportTypeByTag(strings.ToUpper(strings.TrimSpace(tag)))
				if !ok {
					return fmt.Errorf("unknown transport type %q", tag)
				}
				opts.Types = append(opts.Types, tt)
			}
		}

		departures, err := client.Departures(cmd.Context(), station.ID, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Departures at %s, %s (%s)\n\n", station.Name, station.Place, station.ID)
		if len(departures) == 0 {
			fmt.Println("No upcoming departures.")
			return nil
		}

		for _, d := range departures {
			delay := ""
			if d.Realtime && d.Time != d.Planned {
				delay = fmt.Sprintf(" (+%d min)", (d.Time-d.Planned)/60)
			}
			status := ""
			if d.Cancelled {
				status = "  CANCELLED"
			}
			platform := ""
			if d.Platform != "" {
				platform = "  platform " + d.Platform
			}
			fmt.Printf("  %s%s  %-12s %-6s %s%s%s\n",
				time.Unix(d.Time, 0).Format("15:04"),
				delay,
				d.Type,
				d.Line,
				d.Destination,
				platform,
				status,
			)
		}
		return nil
	},
}

// resolveStation accepts either a global station id or a free-text query.
func resolveStation(ctx context.Context, client *mvg.Client, query string) (*models.Station, error) {
	station, err := client.FindStation(ctx, query)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, fmt.Errorf("no station found for %q", query)
	}
	return station, nil
}

func init() {
	departuresCmd.Flags().Int("limit", mvg.DefaultDepartureLimit, "Maximum number of departures")
	departuresCmd.Flags().Int("offset", 0, "Offset into the future in minutes")
	departuresCmd.Flags().String("types", "", "Comma-separated transport type tags (e.g. UBAHN,TRAM)")

	rootCmd.AddCommand(departuresCmd)
}
