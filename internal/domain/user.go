package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Gender values accepted on a user profile
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// SearchPreferences holds per-user defaults applied to outbound searches
// when the request does not override them.
type SearchPreferences struct {
	DefaultEngine  string `json:"defaultEngine"`
	ResultsPerPage int    `json:"resultsPerPage"`
	SafeSearch     bool   `json:"safeSearch"`
	Language       string `json:"language"`
	Region         string `json:"region"`
}

// AIPreferences toggles the enrichment features for a user.
type AIPreferences struct {
	Summarization  bool `json:"summarization"`
	Categorization bool `json:"categorization"`
}

// Preferences groups all user-tunable settings.
type Preferences struct {
	Search SearchPreferences `json:"searchPreferences"`
	AI     AIPreferences     `json:"aiPreferences"`
}

// DefaultPreferences returns the preferences assigned to a new user.
func DefaultPreferences() Preferences {
	return Preferences{
		Search: SearchPreferences{
			DefaultEngine:  "google",
			ResultsPerPage: 10,
			SafeSearch:     true,
			Language:       "en",
			Region:         "US",
		},
		AI: AIPreferences{
			Summarization:  true,
			Categorization: true,
		},
	}
}

// User represents an account in the system
type User struct {
	ID          string
	Username    string
	Email       string
	Gender      Gender
	AvatarURL   string
	Preferences Preferences
	CreatedAt   time.Time
}

// NewUser creates a new User with default preferences and a derived avatar.
func NewUser(id, username, email string, gender Gender, createdAt time.Time) *User {
	u := &User{
		ID:          id,
		Username:    username,
		Email:       email,
		Gender:      gender,
		Preferences: DefaultPreferences(),
		CreatedAt:   createdAt,
	}
	u.AvatarURL = AvatarURL(username, gender)
	return u
}

// AvatarURL derives the public avatar URL for a username/gender pair.
func AvatarURL(username string, gender Gender) string {
	genderPath := "boy"
	if gender == GenderFemale {
		genderPath = "girl"
	}
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%s?username=%s",
		genderPath, url.QueryEscape(username))
}

// ValidateUser validates a User instance
func ValidateUser(u *User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if u.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if len(u.Username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidGender(u.Gender) {
		return fmt.Errorf("gender is invalid: %s", u.Gender)
	}
	return nil
}

func isValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// APIKey is a hashed credential that resolves to a user
type APIKey struct {
	ID        string
	UserID    string
	Name      string
	KeyHash   string
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the key has been revoked.
func (k *APIKey) Revoked() bool {
	return k.RevokedAt != nil
}

// ValidateAPIKey validates an APIKey instance
func ValidateAPIKey(k *APIKey) error {
	if k == nil {
		return fmt.Errorf("api key cannot be nil")
	}
	if k.ID == "" {
		return fmt.Errorf("api key ID is required")
	}
	if k.UserID == "" {
		return fmt.Errorf("api key UserID is required")
	}
	if k.KeyHash == "" {
		return fmt.Errorf("api key KeyHash is required")
	}
	return nil
}
