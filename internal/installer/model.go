package installer

import (
	"time"

	"github.com/lib/pq"
)

const (
	SortNewest         = "newest"
	SortExperienceDesc = "experience-desc"
	SortNameAsc        = "name-asc"
)

const DefaultPageSize = 12

type Installer struct {
	ID              int            `json:"id"`
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	LocationCity    string         `json:"location_city"`
	LocationState   string         `json:"location_state"`
	Trades          pq.StringArray `json:"trades"`
	YearsExperience int            `json:"years_experience"`
	Bio             string         `json:"bio"`
	Certifications  string         `json:"certifications,omitempty"`
	PortfolioURLs   pq.StringArray `json:"portfolio_urls,omitempty"`
	ResumeURL       string         `json:"resume_url,omitempty"`
	IsAvailable     bool           `json:"is_available"`
	// ManageToken is only populated on the create round trip, read
	// queries never select it
	ManageToken        string    `json:"manage_token,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedAtHumanized string    `json:"created_at_humanized,omitempty"`
}

type InstallerRq struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	LocationCity    string   `json:"location_city"`
	LocationState   string   `json:"location_state"`
	Trades          []string `json:"trades"`
	YearsExperience *int     `json:"years_experience"`
	Bio             string   `json:"bio"`
	Certifications  string   `json:"certifications"`
	PortfolioURLs   []string `json:"portfolio_urls"`
	ResumeURL       string   `json:"resume_url"`
	IsAvailable     *bool    `json:"is_available"`
}

// InstallerRqUpdate enumerates the fields a token-holder may change.
type InstallerRqUpdate struct {
	ManageToken     string    `json:"manage_token"`
	Name            *string   `json:"name,omitempty"`
	Email           *string   `json:"email,omitempty"`
	LocationCity    *string   `json:"location_city,omitempty"`
	LocationState   *string   `json:"location_state,omitempty"`
	Trades          *[]string `json:"trades,omitempty"`
	YearsExperience *int      `json:"years_experience,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	Certifications  *string   `json:"certifications,omitempty"`
	PortfolioURLs   *[]string `json:"portfolio_urls,omitempty"`
	ResumeURL       *string   `json:"resume_url,omitempty"`
	IsAvailable     *bool     `json:"is_available,omitempty"`
}
