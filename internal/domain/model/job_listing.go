package model

// JobListing is an open position advertised on the careers page.
type JobListing struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	Type             string   `json:"type"`
	Department       string   `json:"department"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}
