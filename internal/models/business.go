package models

import (
	"encoding/json"
	"strings"
)

// BusinessPartner is the client-side projection of a partner document.
// The server owns the canonical record; updates send the whole document
// back, never a patch.
type BusinessPartner struct {
	ID              int64       `json:"id"`
	BusinessName    string      `json:"businessName"`
	ProprietorName  string      `json:"proprietorName"`
	PhoneNumber     string      `json:"phoneNumber"`
	Email           string      `json:"email"`
	ServiceProvided string      `json:"serviceProvided"`
	Location        string      `json:"location"`
	State           string      `json:"state"`
	District        string      `json:"district"`
	Pincode         string      `json:"pincode"`
	ApproxLatitude  float64     `json:"approxLatitude"`
	ApproxLongitude float64     `json:"approxLongitude"`
	IsApproved      bool        `json:"isApproved"`
	SubCategories   []string    `json:"subCategories"`
	MoreDetails     MoreDetails `json:"moreDetails"`
	Images          []Image     `json:"images"`
}

// Image is one gallery entry. ID is zero for an image the client has
// previewed locally but the server has not confirmed yet.
type Image struct {
	ID  int64  `json:"id,omitempty"`
	URL string `json:"url"`
}

// DetailEntry is one name/detail pair from the custom-details editor.
type DetailEntry struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// MoreDetails normalizes the three shapes legacy documents arrive in:
// a proper array, a JSON-encoded string of that array, or free text.
// All shape guessing stays here; view logic only ever sees the slice.
type MoreDetails []DetailEntry

func (m *MoreDetails) UnmarshalJSON(data []byte) error {
	var entries []DetailEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		*m = entries
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Unrecognized shape; treat as absent rather than failing the
		// whole document decode.
		*m = nil
		return nil
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*m = nil
		return nil
	}

	if err := json.Unmarshal([]byte(raw), &entries); err == nil {
		*m = entries
		return nil
	}

	// Legacy free-text value: carry it as a single entry.
	*m = MoreDetails{{Name: "Details", Detail: raw}}
	return nil
}

// Compact drops entries with an empty name or empty detail. Approve and
// save flows run this before serializing the document.
func (m MoreDetails) Compact() MoreDetails {
	out := make(MoreDetails, 0, len(m))
	for _, e := range m {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Detail) == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
