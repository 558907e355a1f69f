package models

import "time"

// SearchFilters is the user's current search form. Every field is optional.
type SearchFilters struct {
	Heads Heads
	From  *time.Time
	To    *time.Time
	Tags  TagSet
}

// SearchQuery is the request body of the search endpoint. Unset filters are
// omitted from the JSON rather than sent empty.
type SearchQuery struct {
	MajorHead string   `json:"major_head,omitempty"`
	MinorHead string   `json:"minor_head,omitempty"`
	FromDate  string   `json:"from_date,omitempty"`
	ToDate    string   `json:"to_date,omitempty"`
	Tags      []TagRef `json:"tags,omitempty"`
	UserID    string   `json:"user_id"`
}

// BuildQuery turns filters into a SearchQuery for userID. When both dates are
// set, From must not be after To.
func BuildQuery(f SearchFilters, userID string) (SearchQuery, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return SearchQuery{}, newValidationError("to_date", "must not be before from_date")
	}

	q := SearchQuery{
		MajorHead: string(f.Heads.Major()),
		MinorHead: f.Heads.Minor(),
		Tags:      f.Tags.Refs(),
		UserID:    userID,
	}
	if f.From != nil {
		q.FromDate = FormatWireDate(*f.From)
	}
	if f.To != nil {
		q.ToDate = FormatWireDate(*f.To)
	}
	return q, nil
}
