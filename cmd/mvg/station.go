package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stationCmd = &cobra.Command{
	Use:   "station <name or id>",
	Short: "Resolve a station by name and place or by global station id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		station, err := newClient().FindStation(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if station == nil {
			fmt.Printf("No station found for %q.\n", args[0])
			return nil
		}

		fmt.Printf("%s, %s\n", station.Name, station.Place)
		fmt.Printf("  id:          %s\n", station.ID)
		fmt.Printf("  coordinates: %.5f, %.5f\n", station.Latitude, station.Longitude)
		return nil
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Find the station closest to a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")

		station, err := newClient().FindNearby(cmd.Context(), lat, lon)
		if err != nil {
			return err
		}
		if station == nil {
			fmt.Printf("No station found near %.5f, %.5f.\n", lat, lon)
			return nil
		}

		fmt.Printf("%s, %s\n", station.Name, station.Place)
		fmt.Printf("  id:          %s\n", station.ID)
		fmt.Printf("  coordinates: %.5f, %.5f\n", station.Latitude, station.Longitude)
		return nil
	},
}

func init() {
	nearbyCmd.Flags().Float64("lat", 48.13725, "Latitude in decimal degrees")
	nearbyCmd.Flags().Float64("lon", 11.57542, "Longitude in decimal degrees")

	rootCmd.AddCommand(stationCmd)
	rootCmd.AddCommand(nearbyCmd)
}
