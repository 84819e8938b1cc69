package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/match"
)

const defaultListLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["find_matches"] = s.handleFindMatches
	s.handlers["report_item"] = s.handleReportItem
	s.handlers["similar_items"] = s.handleSimilarItems
	s.handlers["list_items"] = s.handleListItems
	s.handlers["get_item"] = s.handleGetItem
	s.handlers["update_status"] = s.handleUpdateStatus
	s.handlers["get_stats"] = s.handleGetStats
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type itemParams struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Brand       string `json:"brand"`
}

func (p itemParams) query() match.Item {
	return match.Item{
		Kind:        match.Kind(p.Kind),
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		Location:    strings.TrimSpace(p.Location),
		Category:    strings.TrimSpace(p.Category),
		Color:       strings.TrimSpace(p.Color),
		Brand:       strings.TrimSpace(p.Brand),
	}
}

type findMatchesParams struct {
	itemParams
	MinScore *int `json:"min_score"`
	TopK     *int `json:"top_k"`
}

// scoredMatch is a match as presented to an assistant
type scoredMatch struct {
	Item        database.Item    `json:"item"`
	Score       int              `json:"score"`
	Confidence  match.Confidence `json:"confidence"`
	Explanation []string         `json:"explanation"`
}

type matchesResult struct {
	Item    *database.Item `json:"item,omitempty"`
	Matches []scoredMatch  `json:"matches"`
	Summary string         `json:"summary"`
}

func newMatchesResult(item *database.Item, matches []finder.Match) matchesResult {
	result := matchesResult{Item: item, Matches: make([]scoredMatch, len(matches))}
	for i, m := range matches {
		result.Matches[i] = scoredMatch{
			Item:        m.Item,
			Score:       m.Score,
			Confidence:  m.Confidence(),
			Explanation: m.Explain(),
		}
	}

	if len(matches) == 0 {
		result.Summary = "No potential matches yet."
	} else {
		result.Summary = fmt.Sprintf("%d potential match(es); best is %s at %d%%",
			len(matches), matches[0].Item.Name, matches[0].Score)
	}
	return result
}

func (s *Server) handleFindMatches(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p findMatchesParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	query := p.query()
	if p.MinScore == nil && p.TopK == nil {
		matches, err := s.finder.Preview(ctx, query)
		if err != nil {
			return nil, err
		}
		return newMatchesResult(nil, matches), nil
	}

	opts, err := s.finder.Options(finder.ProfileSearch)
	if err != nil {
		return nil, err
	}
	if p.MinScore != nil {
		opts.MinScore = *p.MinScore
	}
	if p.TopK != nil {
		opts.TopK = *p.TopK
	}
	if query.Kind == "" {
		query.Kind = match.KindLost
	}

	matches, err := s.finder.MatchWith(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return newMatchesResult(nil, matches), nil
}

type reportItemParams struct {
	itemParams
	Contact string `json:"contact"`
}

func (s *Server) handleReportItem(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p reportItemParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	q := p.query()
	item := &database.Item{
		Kind:        q.Kind,
		Name:        q.Name,
		Description: q.Description,
		Location:    q.Location,
		Category:    q.Category,
		Color:       database.OptionalString(q.Color),
		Brand:       database.OptionalString(q.Brand),
		Contact:     database.OptionalString(strings.TrimSpace(p.Contact)),
	}

	matches, err := s.finder.Report(ctx, item)
	if err != nil {
		return nil, err
	}
	return newMatchesResult(item, matches), nil
}

type idParams struct {
	ID string `json:"id"`
}

func (p idParams) validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

func (s *Server) handleSimilarItems(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p idParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	item, matches, err := s.finder.Similar(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return newMatchesResult(item, matches), nil
}

type listItemsParams struct {
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	Location string `json:"location"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleListItems(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listItemsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	opts := database.ListOptions{Limit: defaultListLimit}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	if p.Kind != "" && p.Kind != "all" {
		kind := match.Kind(p.Kind)
		if !kind.Valid() {
			return nil, finder.ErrInvalidKind
		}
		opts.Kind = &kind
	}
	if p.Status != "" && p.Status != "all" {
		status := database.ItemStatus(p.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", database.ErrInvalidStatus, p.Status)
		}
		opts.Status = &status
	}
	if p.Location != "" {
		opts.Location = &p.Location
	}
	if p.Category != "" {
		opts.Category = &p.Category
	}

	items, err := s.db.ListItems(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if items == nil {
		items = []database.Item{}
	}
	return items, nil
}

func (s *Server) handleGetItem(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p idParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return s.db.GetItem(ctx, p.ID)
}

type updateStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (s *Server) handleUpdateStatus(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p updateStatusParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	if err := s.db.UpdateItemStatus(ctx, p.ID, database.ItemStatus(p.Status)); err != nil {
		return nil, err
	}

	return s.db.GetItem(ctx, p.ID)
}

func (s *Server) handleGetStats(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriSummary:
		return s.getResourceSummary(ctx)
	case uriRecentLost:
		return s.getResourceRecent(ctx, match.KindLost)
	case uriRecentFound:
		return s.getResourceRecent(ctx, match.KindFound)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return "", err
	}

	summary := fmt.Sprintf(`Lost & Found Summary
====================
Total Items: %d
  - Active lost:  %d
  - Active found: %d
  - Claimed:      %d
  - Closed:       %d
`, stats.TotalItems, stats.ActiveLost, stats.ActiveFound, stats.Claimed, stats.Closed)

	if s.config != nil {
		summary += fmt.Sprintf("\nLocations:  %s\nCategories: %s\n",
			strings.Join(s.config.Catalog.Locations, ", "),
			strings.Join(s.config.Catalog.Categories, ", "))
	}

	return summary, nil
}

func (s *Server) getResourceRecent(ctx context.Context, kind match.Kind) (string, error) {
	status := database.StatusActive
	items, err := s.db.ListItems(ctx, database.ListOptions{
		Kind:   &kind,
		Status: &status,
		Limit:  10,
	})
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("Recent %s Items", strings.ToUpper(string(kind[:1]))+string(kind[1:]))
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	if len(items) == 0 {
		b.WriteString("Nothing reported yet. Use the report_item tool to add one.\n")
		return b.String(), nil
	}

	for _, i := range items {
		fmt.Fprintf(&b, "- %s | %s | %s | %s | %d day(s) ago | id=%s\n",
			i.Name, i.Location, i.Category, i.Status, i.DaysSinceReported(), i.ID)
	}

	return b.String(), nil
}
