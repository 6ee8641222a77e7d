package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mvgsensor/mvg-go/internal/board"
	"github.com/mvgsensor/mvg-go/internal/models"
	"github.com/mvgsensor/mvg-go/pkg/mvg"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boardLineStyle  = lipgloss.NewStyle().Bold(true).Width(6)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cancelledStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("9"))
)

var boardCmd = &cobra.Command{
	Use:   "board <station or id>",
	Short: "Show a filtered live departure board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destinations, _ := cmd.Flags().GetStringSlice("destinations")
		lines, _ := cmd.Flags().GetStringSlice("lines")
		offset, _ := cmd.Flags().GetInt("offset")
		number, _ := cmd.Flags().GetInt("number")
		products, _ := cmd.Flags().GetStringSlice("products")

		client := newClient()
		station, err := resolveStation(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		departures, err := client.Departures(cmd.Context(), station.ID, mvg.DepartureOptions{
			Limit:  number,
			Offset: offset,
			Types:  models.TransportTypesByLabel(products),
		})
		if err != nil {
			return err
		}

		entries := board.Filter(departures, board.Options{
			Destinations: destinations,
			Lines:        lines,
			TimeOffset:   offset,
		}, time.Now())

		fmt.Println(boardTitleStyle.Render(fmt.Sprintf("%s, %s", station.Name, station.Place)))
		if len(entries) == 0 {
			fmt.Println(boardDimStyle.Render("No departures match."))
			return nil
		}

		for _, e := range entries {
			destination := e.Destination
			if e.Cancelled {
				destination = cancelledStyle.Render(destination)
			}
			platform := ""
			if e.Platform != "" {
				platform = boardDimStyle.Render("  platform " + e.Platform)
			}
			fmt.Printf("%s %s %s%s\n",
				boardLineStyle.Render(e.Line),
				fmt.Sprintf("%3d min", e.TimeInMins),
				destination,
				platform,
			)
		}
		return nil
	},
}

func init() {
	boardCmd.Flags().StringSlice("destinations", nil, "Only departures towards these headsigns")
	boardCmd.Flags().StringSlice("lines", nil, "Only departures of these lines")
	boardCmd.Flags().StringSlice("products", nil, "Only these products, by label (e.g. U-Bahn,Tram)")
	boardCmd.Flags().Int("offset", 0, "Hide departures leaving in fewer than this many minutes")
	boardCmd.Flags().Int("number", 10, "Number of departures requested")

	rootCmd.AddCommand(boardCmd)
}
