package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vijay-prabhu/campusfind/internal/match"
)

var (
	// ErrItemNotFound is returned when no item has the requested ID
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidStatus is returned for a status outside active, claimed and closed
	ErrInvalidStatus = errors.New("invalid item status")
)

// ItemStatus represents the lifecycle state of a report
type ItemStatus string

const (
	StatusActive  ItemStatus = "active"
	StatusClaimed ItemStatus = "claimed"
	StatusClosed  ItemStatus = "closed"
)

// Valid reports whether s is a known status
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusActive, StatusClaimed, StatusClosed:
		return true
	}
	return false
}

// Item represents a stored lost or found report
type Item struct {
	ID          string     `json:"id"`
	Kind        match.Kind `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Color       *string    `json:"color,omitempty"`
	Brand       *string    `json:"brand,omitempty"`
	Contact     *string    `json:"contact,omitempty"`
	Status      ItemStatus `json:"status"`
	ReportedAt  time.Time  `json:"reported_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MatchItem converts the record into the engine's item shape
func (i *Item) MatchItem() match.Item {
	return match.Item{
		ID:          i.ID,
		Kind:        i.Kind,
		Name:        i.Name,
		Description: i.Description,
		Location:    i.Location,
		Category:    i.Category,
		Color:       deref(i.Color),
		Brand:       deref(i.Brand),
	}
}

// DaysSinceReported returns the number of days since the item was reported
func (i *Item) DaysSinceReported() int {
	return int(time.Since(i.ReportedAt).Hours() / 24)
}

// Stats represents aggregate item counts
type Stats struct {
	TotalItems  int `json:"total_items"`
	ActiveLost  int `json:"active_lost"`
	ActiveFound int `json:"active_found"`
	Claimed     int `json:"claimed"`
	Closed      int `json:"closed"`
}

// ListOptions contains options for listing items
type ListOptions struct {
	Kind     *match.Kind
	Status   *ItemStatus
	Location *string
	Category *string
	Since    *time.Time
	Limit    int
	Offset   int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// OptionalString returns nil for an empty string
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
