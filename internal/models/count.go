package models

import "encoding/json"

// FlexibleCount normalizes count endpoints that return either a bare
// number or {"count": n}. Anything unrecognized decodes to 0.
type FlexibleCount int

func (c *FlexibleCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = FlexibleCount(n)
		return nil
	}

	var wrapped struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*c = FlexibleCount(wrapped.Count)
		return nil
	}

	*c = 0
	return nil
}

func (c FlexibleCount) Int() int {
	return int(c)
}
