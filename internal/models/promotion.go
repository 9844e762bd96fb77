package models

import "encoding/json"

// Position is an ordering key that arrives as either a JSON number or a
// string. It stays opaque; ordering compares the normalized string.
type Position string

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Position(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Position(n.String())
		return nil
	}

	*p = ""
	return nil
}

func (p Position) String() string {
	return string(p)
}

// Promotion is a business promotion row.
type Promotion struct {
	ID          int64    `json:"id"`
	BusinessID  int64    `json:"businessId"`
	Position    Position `json:"position"`
	IsApproved  bool     `json:"isApproved"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Discount    string   `json:"discount,omitempty"`
	Date        string   `json:"date,omitempty"`
}
