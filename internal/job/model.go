package job

import (
	"time"

	"github.com/lib/pq"
)

const (
	StatusActive = "active"

	SortNewest     = "newest"
	SortHighestPay = "highest-pay"
	SortClosest    = "closest"
)

const DefaultPageSize = 20

// MaxMessageLen bounds the applicant message column.
const MaxMessageLen = 4000

type Job struct {
	ID             int            `json:"id"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	CompanyName    string         `json:"company_name"`
	CompanyEmail   string         `json:"company_email"`
	CompanyLogoURL string         `json:"company_logo_url,omitempty"`
	LocationCity   string         `json:"location_city"`
	LocationState  string         `json:"location_state"`
	Trades         pq.StringArray `json:"trades"`
	JobType        string         `json:"job_type"`
	PayMin         int            `json:"pay_min"`
	PayMax         int            `json:"pay_max"`
	PayType        string         `json:"pay_type,omitempty"`
	Description    string         `json:"description"`
	Requirements   string         `json:"requirements,omitempty"`
	HowToApply     string         `json:"how_to_apply,omitempty"`
	Status         string         `json:"status"`
	IsFeatured     bool           `json:"is_featured"`
	// ManageToken is only populated on the create round trip, read
	// queries never select it
	ManageToken        string    `json:"manage_token,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedAtHumanized string    `json:"created_at_humanized,omitempty"`
}

type JobRq struct {
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	CompanyEmail   string   `json:"company_email"`
	CompanyLogoURL string   `json:"company_logo_url"`
	LocationCity   string   `json:"location_city"`
	LocationState  string   `json:"location_state"`
	Trades         []string `json:"trades"`
	JobType        string   `json:"job_type"`
	PayMin         int      `json:"pay_min"`
	PayMax         int      `json:"pay_max"`
	PayType        string   `json:"pay_type"`
	Description    string   `json:"description"`
	Requirements   string   `json:"requirements"`
	HowToApply     string   `json:"how_to_apply"`
}

// JobRqUpdate enumerates the fields a token-holder may change. Pointers
// distinguish "absent" from zero values; unknown fields are rejected at
// decode time.
type JobRqUpdate struct {
	ManageToken    string    `json:"manage_token"`
	Title          *string   `json:"title,omitempty"`
	CompanyName    *string   `json:"company_name,omitempty"`
	CompanyEmail   *string   `json:"company_email,omitempty"`
	CompanyLogoURL *string   `json:"company_logo_url,omitempty"`
	LocationCity   *string   `json:"location_city,omitempty"`
	LocationState  *string   `json:"location_state,omitempty"`
	Trades         *[]string `json:"trades,omitempty"`
	JobType        *string   `json:"job_type,omitempty"`
	PayMin         *int      `json:"pay_min,omitempty"`
	PayMax         *int      `json:"pay_max,omitempty"`
	PayType        *string   `json:"pay_type,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Requirements   *string   `json:"requirements,omitempty"`
	HowToApply     *string   `json:"how_to_apply,omitempty"`
}

type Application struct {
	ID             string    `json:"id"`
	JobID          int       `json:"job_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	Message        string    `json:"message"`
	ResumeURL      string    `json:"resume_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ApplicationRq struct {
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
	Message        string `json:"message"`
	ResumeURL      string `json:"resume_url"`
}
