package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/campusfind/internal/config"
	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/metrics"
)

var (
	// ErrInvalidKind is returned when a query is neither lost nor found
	ErrInvalidKind = errors.New("item kind must be 'lost' or 'found'")
	// ErrNameRequired is returned when a report has no item name
	ErrNameRequired = errors.New("item name is required")
	// ErrUnknownProfile is returned for a profile name with no configuration
	ErrUnknownProfile = errors.New("unknown match profile")
)

// Profile names a call site with its own threshold and result count
type Profile string

const (
	ProfileReport  Profile = "report"
	ProfileSearch  Profile = "search"
	ProfileSimilar Profile = "similar"
	ProfileCustom  Profile = "custom"
)

// Repository supplies stored items. ListActiveItemsByKind must return only
// active items of the requested kind, in a stable order.
type Repository interface {
	ListActiveItemsByKind(ctx context.Context, kind match.Kind) ([]database.Item, error)
	GetItem(ctx context.Context, id string) (*database.Item, error)
	CreateItem(ctx context.Context, item *database.Item) error
}

// Match is a stored candidate with its score and factor breakdown
type Match struct {
	Item    database.Item        `json:"item"`
	Score   int                  `json:"score"`
	Factors []match.FactorResult `json:"factors"`
}

// Confidence returns the display bucket of the score
func (m Match) Confidence() match.Confidence {
	return match.ConfidenceFor(m.Score)
}

// Explain returns the per-factor explanation lines
func (m Match) Explain() []string {
	return match.Explain(match.MatchResult{Item: m.Item.MatchItem(), Score: m.Score, Factors: m.Factors})
}

// Finder matches reports against the stored corpus
type Finder struct {
	repo     Repository
	engine   *match.Engine
	profiles map[Profile]match.Options
	logger   *zap.Logger
}

// New creates a Finder. logger may be nil.
func New(repo Repository, engine *match.Engine, cfg config.MatchingConfig, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		repo:   repo,
		engine: engine,
		profiles: map[Profile]match.Options{
			ProfileReport:  cfg.Report.Options(),
			ProfileSearch:  cfg.Search.Options(),
			ProfileSimilar: cfg.Similar.Options(),
		},
		logger: logger,
	}
}

// Options returns the ranking options of a profile
func (f *Finder) Options(p Profile) (match.Options, error) {
	opts, ok := f.profiles[p]
	if !ok {
		return match.Options{}, fmt.Errorf("%w: %s", ErrUnknownProfile, p)
	}
	return opts, nil
}

// Match ranks the active items of the opposite kind against query using the
// options of profile p
func (f *Finder) Match(ctx context.Context, query match.Item, p Profile) ([]Match, error) {
	opts, err := f.Options(p)
	if err != nil {
		return nil, err
	}
	return f.run(ctx, query, p, opts)
}

// MatchWith ranks like Match but with caller-supplied options
func (f *Finder) MatchWith(ctx context.Context, query match.Item, opts match.Options) ([]Match, error) {
	return f.run(ctx, query, ProfileCustom, opts)
}

// Report stores a new item and returns its matches
func (f *Finder) Report(ctx context.Context, item *database.Item) ([]Match, error) {
	if !item.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, ErrNameRequired
	}

	if err := f.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to store item: %w", err)
	}
	metrics.ItemsReportedTotal.WithLabelValues(string(item.Kind)).Inc()

	f.logger.Info("item reported",
		zap.String("id", item.ID),
		zap.String("kind", string(item.Kind)),
		zap.String("location", item.Location),
		zap.String("category", item.Category),
	)

	return f.Match(ctx, item.MatchItem(), ProfileReport)
}

// Preview scores a partial, unsaved query. A query without a kind is
// treated as a lost report and searched against found items.
func (f *Finder) Preview(ctx context.Context, query match.Item) ([]Match, error) {
	if query.Kind == "" {
		query.Kind = match.KindLost
	}
	return f.Match(ctx, query, ProfileSearch)
}

// Similar returns matches for an already stored item
func (f *Finder) Similar(ctx context.Context, id string) (*database.Item, []Match, error) {
	item, err := f.repo.GetItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	matches, err := f.Match(ctx, item.MatchItem(), ProfileSimilar)
	if err != nil {
		return nil, nil, err
	}
	return item, matches, nil
}

func (f *Finder) run(ctx context.Context, query match.Item, p Profile, opts match.Options) ([]Match, error) {
	start := time.Now()
	profile := string(p)

	if !query.Kind.Valid() {
		metrics.MatchRequestsTotal.WithLabelValues(profile, "invalid").Inc()
		return nil, ErrInvalidKind
	}

	records, err := f.repo.ListActiveItemsByKind(ctx, query.Kind.Opposite())
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues(profile, "error").Inc()
		f.logger.Warn("failed to load candidates", zap.String("profile", profile), zap.Error(err))
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	candidates := make([]match.Item, 0, len(records))
	byID := make(map[string]database.Item, len(records))
	for _, r := range records {
		// the stored item itself is never its own candidate
		if query.ID != "" && r.ID == query.ID {
			continue
		}
		candidates = append(candidates, r.MatchItem())
		byID[r.ID] = r
	}

	ranked := f.engine.FindMatches(query, candidates, opts)

	matches := make([]Match, len(ranked))
	for i, r := range ranked {
		matches[i] = Match{Item: byID[r.Item.ID], Score: r.Score, Factors: r.Factors}
	}

	f.observe(profile, len(candidates), matches, time.Since(start))
	f.logger.Debug("match complete",
		zap.String("profile", profile),
		zap.String("kind", string(query.Kind)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(matches)),
		zap.Int("min_score", opts.MinScore),
		zap.Int("top_k", opts.TopK),
		zap.Duration("duration", time.Since(start)),
	)

	return matches, nil
}

func (f *Finder) observe(profile string, candidates int, matches []Match, d time.Duration) {
	metrics.MatchRequestsTotal.WithLabelValues(profile, "ok").Inc()
	metrics.MatchCandidatesScored.WithLabelValues(profile).Add(float64(candidates))
	metrics.MatchResultsReturned.WithLabelValues(profile).Observe(float64(len(matches)))
	metrics.MatchDuration.WithLabelValues(profile).Observe(d.Seconds())
	if len(matches) > 0 {
		metrics.MatchTopScore.WithLabelValues(profile).Observe(float64(matches[0].Score))
	}
}
