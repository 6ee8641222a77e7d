package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvgsensor/mvg-go/pkg/mvg"
)

var (
	fibBaseURL string
	zdmBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "mvg",
	Short: "Munich public transit lookups from the command line",
	Long: `mvg resolves MVG stations by name, id or coordinates and shows
live departures, either raw or as a filtered departure board.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fibBaseURL, "fib-url", "", "Override the live API base URL")
	rootCmd.PersistentFlags().StringVar(&zdmBaseURL, "zdm-url", "", "Override the master data API base URL")
}

func newClient() *mvg.Client {
	return mvg.New(mvg.Config{
		FIBBaseURL: fibBaseURL,
		ZDMBaseURL: zdmBaseURL,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
