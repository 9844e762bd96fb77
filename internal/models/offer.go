package models

// Offer is a sponsored profile slot. At least one of ImageURL/VideoURL
// is present on a stored offer.
type Offer struct {
	ID             int64    `json:"id"`
	RedirectionURL string   `json:"redirectionUrl"`
	Position       Position `json:"position"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	VideoURL       string   `json:"videoUrl,omitempty"`
}
