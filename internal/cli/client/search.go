package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// SearchRequest represents the search API request.
type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// SearchFilters are per-request overrides for the stored preferences.
type SearchFilters struct {
	SafeSearch *bool   `json:"safeSearch,omitempty"`
	Language   *string `json:"language,omitempty"`
	Region     *string `json:"region,omitempty"`
}

// SearchResult represents a single enriched result.
type SearchResult struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Snippet   string `json:"snippet"`
	Summary   string `json:"summary,omitempty"`
	Category  string `json:"category,omitempty"`
	Relevance int    `json:"relevance,omitempty"`
}

// SearchMetadata carries timing and count info for a search.
type SearchMetadata struct {
	TotalResults int   `json:"totalResults"`
	SearchTime   int64 `json:"searchTime"`
}

// SearchResponse represents the search API response.
type SearchResponse struct {
	Results  []SearchResult `json:"results"`
	Metadata SearchMetadata `json:"metadata"`
	SearchID string         `json:"searchId"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var (
		safeSearch bool
		language   string
		region     string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the web",
		Long:  "Performs a web search with AI enrichment and records it in your history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			req := SearchRequest{Query: args[0]}
			var filters SearchFilters
			if cmd.Flags().Changed("safe-search") {
				filters.SafeSearch = &safeSearch
			}
			if cmd.Flags().Changed("lang") {
				filters.Language = &language
			}
			if cmd.Flags().Changed("region") {
				filters.Region = &region
			}
			if filters.SafeSearch != nil || filters.Language != nil || filters.Region != nil {
				req.Filters = &filters
			}

			return runSearch(cmd, req, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&safeSearch, "safe-search", true, "Enable safe search filtering")
	cmd.Flags().StringVar(&language, "lang", "", "Result language (e.g. en, de)")
	cmd.Flags().StringVar(&region, "region", "", "Result region (e.g. US, DE)")

	return cmd
}

func runSearch(cmd *cobra.Command, req SearchRequest, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Post("/api/search", req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(data, &searchResp); err != nil {
		return fmt.Errorf("failed to parse search results: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(searchResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(searchResp.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results in %dms:\n\n", searchResp.Metadata.TotalResults, searchResp.Metadata.SearchTime)
	for i, result := range searchResp.Results {
		if result.Relevance > 0 {
			fmt.Printf("%d. %s (relevance %d)\n", i+1, result.Title, result.Relevance)
		} else {
			fmt.Printf("%d. %s\n", i+1, result.Title)
		}
		fmt.Printf("   %s\n", result.Link)
		if result.Summary != "" {
			summary := result.Summary
			if len(summary) > 100 {
				summary = summary[:97] + "..."
			}
			fmt.Printf("   %s\n", summary)
		} else if result.Snippet != "" {
			fmt.Printf("   %s\n", result.Snippet)
		}
		if result.Category != "" {
			fmt.Printf("   Category: %s\n", result.Category)
		}
		if i < len(searchResp.Results)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	fmt.Printf("\nSearch ID: %s (use 'lumina save %s <index>' to save a result)\n", searchResp.SearchID, searchResp.SearchID)

	return nil
}

// SuggestionsResponse represents the suggestions API response.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestionsCmd creates the suggestions command.
func SuggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions <query>",
		Short: "Get related query suggestions",
		Long:  "Generates AI query suggestions related to the given query.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSuggestions(cmd, args[0], outputJSON)
		},
	}
}

func runSuggestions(cmd *cobra.Command, query string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/search/suggestions?query=" + url.QueryEscape(query))
	if err != nil {
		return fmt.Errorf("failed to get suggestions: %w", err)
	}

	var resp SuggestionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse suggestions: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Suggestions) == 0 {
		fmt.Println("No suggestions available.")
		return nil
	}
	for _, s := range resp.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
	return nil
}

// FAQ is a generated question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQsResponse represents the faqs API response.
type FAQsResponse struct {
	FAQs []FAQ `json:"faqs"`
}

// FAQsCmd creates the faqs command.
func FAQsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faqs <query>",
		Short: "Get frequently asked questions",
		Long:  "Generates AI question and answer pairs for the given query.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runFAQs(cmd, args[0], outputJSON)
		},
	}
}

func runFAQs(cmd *cobra.Command, query string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/search/faqs?query=" + url.QueryEscape(query))
	if err != nil {
		return fmt.Errorf("failed to get faqs: %w", err)
	}

	var resp FAQsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse faqs: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.FAQs) == 0 {
		fmt.Println("No FAQs available.")
		return nil
	}
	for i, faq := range resp.FAQs {
		fmt.Printf("Q: %s\n", faq.Question)
		fmt.Printf("A: %s\n", faq.Answer)
		if i < len(resp.FAQs)-1 {
			fmt.Println()
		}
	}
	return nil
}

// HistoryItem represents one entry of the search history.
type HistoryItem struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Timestamp    time.Time `json:"timestamp"`
	ResultsCount int       `json:"resultsCount"`
}

// HistoryResponse represents the history API response.
type HistoryResponse struct {
	History []HistoryItem `json:"history"`
}

// HistoryCmd creates the history parent command.
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage search history",
		Long:  "List and delete search history entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHistoryList(cmd, outputJSON)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryDelete(cmd, args[0])
		},
	})

	return cmd
}

func runHistoryList(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/search/history")
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	var resp HistoryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse history: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.History) == 0 {
		fmt.Println("No search history.")
		return nil
	}
	for _, item := range resp.History {
		fmt.Printf("%s  %-40s  %d results  %s\n",
			item.Timestamp.Format("2006-01-02 15:04"),
			truncate(item.Query, 40),
			item.ResultsCount,
			item.ID,
		)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, id string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	if _, err := api.Delete("/api/search/history/" + id); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	fmt.Printf("History entry %s deleted\n", id)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
