package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Profile represents the user profile.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileResponse represents the profile API response.
type ProfileResponse struct {
	User *Profile `json:"user"`
}

// SearchPreferences are the stored search defaults.
type SearchPreferences struct {
	DefaultEngine  string `json:"defaultEngine"`
	ResultsPerPage int    `json:"resultsPerPage"`
	SafeSearch     bool   `json:"safeSearch"`
	Language       string `json:"language"`
	Region         string `json:"region"`
}

// AIPreferences toggle the enrichment features.
type AIPreferences struct {
	Summarization  bool `json:"summarization"`
	Categorization bool `json:"categorization"`
}

// Preferences groups the stored user preferences.
type Preferences struct {
	Search SearchPreferences `json:"searchPreferences"`
	AI     AIPreferences     `json:"aiPreferences"`
}

// PreferencesResponse represents the preferences API response.
type PreferencesResponse struct {
	Preferences *Preferences `json:"preferences"`
}

// ProfileCmd creates the profile command.
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Long:  "Displays the profile of the authenticated user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runProfileGet(cmd, outputJSON)
		},
	}

	cmd.AddCommand(ProfileUpdateCmd())

	return cmd
}

// ProfileUpdateCmd creates the profile update command.
func ProfileUpdateCmd() *cobra.Command {
	var (
		username string
		email    string
		gender   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		Long:  "Updates username, email, or gender. Only provided flags are changed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			update := map[string]interface{}{}
			if cmd.Flags().Changed("username") {
				update["username"] = username
			}
			if cmd.Flags().Changed("email") {
				update["email"] = email
			}
			if cmd.Flags().Changed("gender") {
				update["gender"] = gender
			}
			if len(update) == 0 {
				return fmt.Errorf("nothing to update (use --username, --email or --gender)")
			}

			return runProfileUpdate(cmd, update, outputJSON)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (male, female or other)")

	return cmd
}

func runProfileGet(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/user/profile")
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	var resp ProfileResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	printProfile(resp.User)
	return nil
}

func runProfileUpdate(cmd *cobra.Command, update map[string]interface{}, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Put("/api/user/profile", update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	var resp ProfileResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println("Profile updated")
	printProfile(resp.User)
	return nil
}

func printProfile(p *Profile) {
	fmt.Printf("Username: %s\n", p.Username)
	fmt.Printf("Email: %s\n", p.Email)
	fmt.Printf("Gender: %s\n", p.Gender)
	fmt.Printf("Avatar: %s\n", p.AvatarURL)
	fmt.Printf("Member since: %s\n", p.CreatedAt.Format("2006-01-02"))
}

// PreferencesCmd creates the preferences command.
func PreferencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Show your preferences",
		Long:  "Displays the stored search and AI preferences.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runPreferencesGet(cmd, outputJSON)
		},
	}

	cmd.AddCommand(PreferencesUpdateCmd())

	return cmd
}

// PreferencesUpdateCmd creates the preferences update command.
func PreferencesUpdateCmd() *cobra.Command {
	var (
		resultsPerPage int
		safeSearch     bool
		language       string
		region         string
		summarization  bool
		categorization bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your preferences",
		Long:  "Updates search and AI preferences. Only provided flags are changed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			update := map[string]interface{}{}
			if cmd.Flags().Changed("results-per-page") {
				update["resultsPerPage"] = resultsPerPage
			}
			if cmd.Flags().Changed("safe-search") {
				update["safeSearch"] = safeSearch
			}
			if cmd.Flags().Changed("lang") {
				update["language"] = language
			}
			if cmd.Flags().Changed("region") {
				update["region"] = region
			}
			if cmd.Flags().Changed("summarization") {
				update["summarization"] = summarization
			}
			if cmd.Flags().Changed("categorization") {
				update["categorization"] = categorization
			}
			if len(update) == 0 {
				return fmt.Errorf("nothing to update")
			}

			return runPreferencesUpdate(cmd, update, outputJSON)
		},
	}

	cmd.Flags().IntVar(&resultsPerPage, "results-per-page", 10, "Results per search (1-50)")
	cmd.Flags().BoolVar(&safeSearch, "safe-search", true, "Enable safe search filtering")
	cmd.Flags().StringVar(&language, "lang", "", "Result language (e.g. en, de)")
	cmd.Flags().StringVar(&region, "region", "", "Result region (e.g. US, DE)")
	cmd.Flags().BoolVar(&summarization, "summarization", true, "Enable AI summaries")
	cmd.Flags().BoolVar(&categorization, "categorization", true, "Enable AI categorization")

	return cmd
}

func runPreferencesGet(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Get("/api/user/preferences")
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	var resp PreferencesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	printPreferences(resp.Preferences)
	return nil
}

func runPreferencesUpdate(cmd *cobra.Command, update map[string]interface{}, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	data, err := api.Put("/api/user/preferences", update)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	var resp PreferencesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println("Preferences updated")
	printPreferences(resp.Preferences)
	return nil
}

func printPreferences(p *Preferences) {
	fmt.Println("Search:")
	fmt.Printf("  Engine: %s\n", p.Search.DefaultEngine)
	fmt.Printf("  Results per page: %d\n", p.Search.ResultsPerPage)
	fmt.Printf("  Safe search: %t\n", p.Search.SafeSearch)
	fmt.Printf("  Language: %s\n", p.Search.Language)
	fmt.Printf("  Region: %s\n", p.Search.Region)
	fmt.Println("AI:")
	fmt.Printf("  Summarization: %t\n", p.AI.Summarization)
	fmt.Printf("  Categorization: %t\n", p.AI.Categorization)
}
