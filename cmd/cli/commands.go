package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	userID  string
	fieldID string
	from    string
	to      string
	date    string
)

func init() {
	mineCmd.Flags().StringVar(&userID, "user", "", "The user id to list match requests for")
	mineCmd.MarkFlagRequired("user")
	scheduleCmd.Flags().StringVar(&fieldID, "field", "", "Narrow the schedule to a single field id")
	scheduleCmd.Flags().StringVar(&from, "from", "", "Start of the date range (YYYY-MM-DD)")
	scheduleCmd.Flags().StringVar(&to, "to", "", "End of the date range (YYYY-MM-DD)")
	scheduleCmd.MarkFlagRequired("from")
	scheduleCmd.MarkFlagRequired("to")
	availabilityCmd.Flags().StringVar(&date, "date", "", "The date to list availability for (YYYY-MM-DD)")
	availabilityCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(clearCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "List the match requests still collecting players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match-requests/open")
	},
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the match requests a user created or joined",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match-requests/mine?userID=" + url.QueryEscape(userID))
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the classified field schedule for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/fields/schedule?from=" + url.QueryEscape(from) + "&to=" + url.QueryEscape(to)
		if fieldID != "" {
			endpoint += "&fieldID=" + url.QueryEscape(fieldID)
		}
		return performGetRequest(endpoint)
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "List the availability records for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/availability?date=" + url.QueryEscape(date))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all stores on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clear")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
