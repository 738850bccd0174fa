package models

import (
	"encoding/json"
	"fmt"
)

// TopArticle is one ranked entry of a top-articles item.
type TopArticle struct {
	Article string `json:"article"`
	Views   int64  `json:"views"`
	Rank    int    `json:"rank,omitempty"`
}

// PageviewItem covers both upstream item shapes: top-articles items carry
// Articles, per-article items carry Article, Timestamp and Views.
type PageviewItem struct {
	Project     string       `json:"project,omitempty"`
	Access      string       `json:"access,omitempty"`
	Year        string       `json:"year,omitempty"`
	Month       string       `json:"month,omitempty"`
	Day         string       `json:"day,omitempty"`
	Articles    []TopArticle `json:"articles,omitempty"`
	Article     string       `json:"article,omitempty"`
	Granularity string       `json:"granularity,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Agent       string       `json:"agent,omitempty"`
	Views       int64        `json:"views,omitempty"`
}

// PageviewResponse is the decoded body of a Wikimedia pageviews call.
// Error is set instead of Items when the call failed.
type PageviewResponse struct {
	Items []PageviewItem `json:"items,omitempty"`
	Error string         `json:"error,omitempty"`
}

// HasItems reports whether the response carries at least one item.
func (r PageviewResponse) HasItems() bool {
	return len(r.Items) > 0
}

// ParsePageviewResponse decodes an upstream body. A malformed body yields an
// empty response together with the decode error.
func ParsePageviewResponse(data []byte) (PageviewResponse, error) {
	var resp PageviewResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return PageviewResponse{}, fmt.Errorf("failed to unmarshal PageviewResponse: %w", err)
	}
	return resp, nil
}
