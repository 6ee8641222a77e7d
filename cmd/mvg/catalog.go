package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvgsensor/mvg-go/internal/models"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Summarize the static MVG master data (stations, lines, ids)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		var (
			ids      []string
			stations []map[string]any
			lines    []map[string]any
		)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			ids, err = client.StationIDs(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			stations, err = client.Stations(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			lines, err = client.Lines(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("station ids: %d\n", len(ids))
		fmt.Printf("stations:    %d\n", len(stations))
		fmt.Printf("lines:       %d\n", len(lines))

		fmt.Println("\nproducts:")
		for _, tt := range models.AllTransportTypes {
			fmt.Printf("  %-13s %s\n", tt.Tag, tt.Label)
		}
		return nil
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show current network-wide service messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := newClient().Messages(cmd.Context())
		if err != nil {
			return err
		}

		if len(messages) == 0 {
			fmt.Println("No current service messages.")
			return nil
		}
		for _, msg := range messages {
			fmt.Printf("[%s] %s\n", msg.Type, msg.Title)
			if len(msg.Lines) > 0 {
				fmt.Printf("  lines: %v\n", msg.Lines)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(messagesCmd)
}
