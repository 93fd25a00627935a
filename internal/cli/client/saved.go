package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// SaveRequest represents the save result API request.
type SaveRequest struct {
	SearchID    string `json:"searchId"`
	ResultIndex int    `json:"resultIndex"`
}

// SavedResult represents a promoted search result.
type SavedResult struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	Snippet  string    `json:"snippet,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Category string    `json:"category"`
	SavedAt  time.Time `json:"savedAt"`
}

// SaveResponse represents the save result API response.
type SaveResponse struct {
	SavedResult *SavedResult `json:"savedResult"`
}

// SavedListResponse represents the saved results list API response.
type SavedListResponse struct {
	SavedResults []*SavedResult `json:"savedResults"`
}

// SaveCmd creates the save command.
func SaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <search-id> <index>",
		Short: "Save a search result",
		Long:  "Promotes a result from a past search (by its zero-based index) to your saved collection.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %s", args[1])
			}
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSave(cmd, args[0], index, outputJSON)
		},
	}
}

func runSave(cmd *cobra.Command, searchID string, index int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Post("/api/search/save", SaveRequest{SearchID: searchID, ResultIndex: index})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	var resp SaveResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Saved: %s\n", resp.SavedResult.Title)
	fmt.Printf("ID: %s\n", resp.SavedResult.ID)
	return nil
}

// SavedCmd creates the saved parent command.
func SavedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved results",
		Long:  "List and delete saved search results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSavedList(cmd, outputJSON)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavedDelete(cmd, args[0])
		},
	})

	return cmd
}

func runSavedList(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/search/saved")
	if err != nil {
		return fmt.Errorf("failed to list saved results: %w", err)
	}

	var resp SavedListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse saved results: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.SavedResults) == 0 {
		fmt.Println("No saved results.")
		return nil
	}
	for i, saved := range resp.SavedResults {
		fmt.Printf("%s\n", saved.Title)
		fmt.Printf("   %s\n", saved.Link)
		if saved.Summary != "" {
			fmt.Printf("   %s\n", truncate(saved.Summary, 100))
		}
		fmt.Printf("   Category: %s  Saved: %s  ID: %s\n",
			saved.Category, saved.SavedAt.Format("2006-01-02"), saved.ID)
		if i < len(resp.SavedResults)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	return nil
}

func runSavedDelete(cmd *cobra.Command, id string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	if _, err := api.Delete("/api/search/saved/" + id); err != nil {
		return fmt.Errorf("failed to delete saved result: %w", err)
	}

	fmt.Printf("Saved result %s deleted\n", id)
	return nil
}
