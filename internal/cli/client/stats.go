package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// QueryCount pairs a query with how often it was searched.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// RecentSearch is one of the latest searches.
type RecentSearch struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// Statistics represents the aggregate search statistics.
type Statistics struct {
	TotalSearches     int64            `json:"totalSearches"`
	MostSearched      []QueryCount     `json:"mostSearched"`
	RecentSearches    []RecentSearch   `json:"recentSearches"`
	SearchCategories  map[string]int64 `json:"searchCategories"`
	AverageSearchTime float64          `json:"averageSearchTime"`
	LastUpdated       time.Time        `json:"lastUpdated"`
}

// StatsResponse represents the statistics API response.
type StatsResponse struct {
	Stats *Statistics `json:"stats"`
}

// StatsCmd creates the stats command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show search statistics",
		Long:  "Displays aggregate statistics for your searches.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStats(cmd, outputJSON)
		},
	}
}

func runStats(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/search/stats")
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}

	var resp StatsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse statistics: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	stats := resp.Stats
	if stats == nil || stats.TotalSearches == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	fmt.Printf("Total searches: %d\n", stats.TotalSearches)
	fmt.Printf("Average search time: %.0fms\n", stats.AverageSearchTime)

	if len(stats.MostSearched) > 0 {
		fmt.Println("\nMost searched:")
		for _, qc := range stats.MostSearched {
			fmt.Printf("  %3dx  %s\n", qc.Count, qc.Query)
		}
	}

	if len(stats.SearchCategories) > 0 {
		fmt.Println("\nCategories:")
		for category, count := range stats.SearchCategories {
			fmt.Printf("  %3dx  %s\n", count, category)
		}
	}

	if len(stats.RecentSearches) > 0 {
		fmt.Println("\nRecent searches:")
		for _, rs := range stats.RecentSearches {
			fmt.Printf("  %s  %s\n", rs.Timestamp.Format("2006-01-02 15:04"), rs.Query)
		}
	}

	return nil
}
