package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/comparison"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 50
)

// ComparedPlayer is a resolved player with the profile used for comparison.
type ComparedPlayer struct {
	Player  player.Player
	Profile comparison.Profile
}

type RadarQuery struct {
	Player1    string
	Player2    string
	Metrics    []analytics.Metric
	Normalized bool
	Scale      comparison.Scale
	MinMinutes opt.Value[int]
}

type RadarComparison struct {
	Players [2]ComparedPlayer
	Metrics []analytics.Metric
	Result  comparison.RadarResult
}

type BarComparison struct {
	Players [2]ComparedPlayer
	Row     comparison.BarRow
}

type ScatterQuery struct {
	XMetric    analytics.Metric
	YMetric    analytics.Metric
	Highlight  []string
	MinMinutes opt.Value[int]
}

type ScatterComparison struct {
	MinMinutes int
	Result     comparison.ScatterResult
}

type SimilarityQuery struct {
	PlayerID   string
	Limit      int
	MinMinutes opt.Value[int]
}

type SimilarityResult struct {
	Reference ComparedPlayer
	Metrics   []analytics.Metric
	Similar   []comparison.Similarity
}

type PlayerComparisonService struct {
	registry *Registry
	events   event.Reader
	cfg      AnalyticsConfig
}

func NewPlayerComparisonService(registry *Registry, events event.Reader, cfg AnalyticsConfig) *PlayerComparisonService {
	return &PlayerComparisonService{registry: registry, events: events, cfg: cfg.normalized()}
}

func (s *PlayerComparisonService) Radar(ctx context.Context, scope analytics.Scope, q RadarQuery) (RadarComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerComparisonService.Radar")
	defer span.End()

	if len(q.Metrics) == 0 {
		q.Metrics = analytics.DefaultRadarMetrics()
	}
	minMinutes, err := s.minMinutes(q.MinMinutes)
	if err != nil {
		return RadarComparison{}, err
	}
	pair, err := s.pair(ctx, scope, q.Player1, q.Player2)
	if err != nil {
		return RadarComparison{}, err
	}

	opts := comparison.Options{Normalized: q.Normalized, Scale: q.Scale, Per90: true}
	if q.Scale == comparison.ScalePopulation {
		opts.Population, err = s.population(ctx, scope, minMinutes)
		if err != nil {
			return RadarComparison{}, err
		}
	}

	res, err := comparison.Radar(pair[0].Profile, pair[1].Profile, q.Metrics, opts)
	if err != nil {
		return RadarComparison{}, err
	}
	return RadarComparison{Players: pair, Metrics: q.Metrics, Result: res}, nil
}

func (s *PlayerComparisonService) Bar(ctx context.Context, scope analytics.Scope, player1, player2 string, m analytics.Metric) (BarComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerComparisonService.Bar")
	defer span.End()

	if _, ok := analytics.Info(m); !ok {
		return BarComparison{}, analytics.InvalidParam("metric", fmt.Sprintf("unsupported metric %s", m))
	}
	pair, err := s.pair(ctx, scope, player1, player2)
	if err != nil {
		return BarComparison{}, err
	}
	return BarComparison{Players: pair, Row: comparison.Bar(pair[0].Profile, pair[1].Profile, m)}, nil
}

func (s *PlayerComparisonService) Scatter(ctx context.Context, scope analytics.Scope, q ScatterQuery) (ScatterComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerComparisonService.Scatter")
	defer span.End()

	minMinutes, err := s.minMinutes(q.MinMinutes)
	if err != nil {
		return ScatterComparison{}, err
	}
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return ScatterComparison{}, err
	}
	for i, id := range q.Highlight {
		if _, err := s.registry.ResolvePlayer(ctx, scope, fmt.Sprintf("player%d", i+1), id); err != nil {
			return ScatterComparison{}, err
		}
	}

	population, err := s.population(ctx, scope, minMinutes)
	if err != nil {
		return ScatterComparison{}, err
	}
	res := comparison.Scatter(population, q.XMetric, q.YMetric, q.Highlight)
	if len(res.Points) == 0 {
		return ScatterComparison{}, analytics.InsufficientSample("no player has at least %d minutes", minMinutes)
	}
	return ScatterComparison{MinMinutes: minMinutes, Result: res}, nil
}

func (s *PlayerComparisonService) Similar(ctx context.Context, scope analytics.Scope, q SimilarityQuery) (SimilarityResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerComparisonService.Similar")
	defer span.End()

	if q.Limit == 0 {
		q.Limit = defaultSimilarLimit
	}
	if q.Limit < 1 || q.Limit > maxSimilarLimit {
		return SimilarityResult{}, analytics.InvalidParam("limit", fmt.Sprintf("limit must be between 1 and %d", maxSimilarLimit))
	}
	minMinutes, err := s.minMinutes(q.MinMinutes)
	if err != nil {
		return SimilarityResult{}, err
	}
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return SimilarityResult{}, err
	}
	ref, err := s.compared(ctx, scope, "player_id", q.PlayerID)
	if err != nil {
		return SimilarityResult{}, err
	}
	population, err := s.population(ctx, scope, minMinutes)
	if err != nil {
		return SimilarityResult{}, err
	}

	ms := analytics.DefaultRadarMetrics()
	similar, err := comparison.Similar(ref.Profile, population, ms, q.Limit)
	if err != nil {
		return SimilarityResult{}, err
	}
	return SimilarityResult{Reference: ref, Metrics: ms, Similar: similar}, nil
}

func (s *PlayerComparisonService) minMinutes(v opt.Value[int]) (int, error) {
	n := v.OrElse(s.cfg.MinMinutes)
	if n < 0 {
		return 0, analytics.InvalidParam("min_minutes", "min_minutes must be >= 0")
	}
	return n, nil
}

// pair builds both players' profiles concurrently.
func (s *PlayerComparisonService) pair(ctx context.Context, scope analytics.Scope, player1, player2 string) ([2]ComparedPlayer, error) {
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return [2]ComparedPlayer{}, err
	}

	var out [2]ComparedPlayer
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, id := range []string{player1, player2} {
		param := fmt.Sprintf("player%d", i+1)
		p.Go(func(ctx context.Context) error {
			c, err := s.compared(ctx, scope, param, id)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return [2]ComparedPlayer{}, err
	}
	return out, nil
}

func (s *PlayerComparisonService) compared(ctx context.Context, scope analytics.Scope, param, id string) (ComparedPlayer, error) {
	pl, err := s.registry.ResolvePlayer(ctx, scope, param, id)
	if err != nil {
		return ComparedPlayer{}, err
	}
	lines, err := playerMatchLines(ctx, s.registry, s.events, scope, pl.ID)
	if err != nil {
		return ComparedPlayer{}, err
	}

	prof := comparison.Profile{ID: pl.ID, Name: pl.Name}
	for _, l := range lines {
		prof.Tally = prof.Tally.Merge(l.Tally)
		prof.Minutes += float64(l.Minutes)
	}
	return ComparedPlayer{Player: pl, Profile: prof}, nil
}

// population tallies every player with an appearance in scope and keeps
// those with at least minMinutes. Profiles come back sorted by player ID.
func (s *PlayerComparisonService) population(ctx context.Context, scope analytics.Scope, minMinutes int) ([]comparison.Profile, error) {
	matches, err := s.registry.Matches(ctx, scope, match.Filter{})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	set, err := loadMatchEvents(ctx, s.events, matches)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	appearances, err := s.events.AppearancesFor(ctx, event.Filter{MatchIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list population appearances: %w", err)
	}

	type played struct {
		minutes int
		matches []string
	}
	byPlayer := make(map[string]*played)
	for _, a := range appearances {
		p, ok := byPlayer[a.PlayerID]
		if !ok {
			p = &played{}
			byPlayer[a.PlayerID] = p
		}
		p.minutes += a.MinutesPlayed
		p.matches = append(p.matches, a.MatchID)
	}

	playerIDs := make([]string, 0, len(byPlayer))
	for id, p := range byPlayer {
		if p.minutes >= minMinutes && p.minutes > 0 {
			playerIDs = append(playerIDs, id)
		}
	}
	slices.Sort(playerIDs)

	names, err := s.registry.PlayerNames(ctx, playerIDs)
	if err != nil {
		return nil, err
	}

	profiles := make([]comparison.Profile, len(playerIDs))
	workers, err := ants.NewPool(s.cfg.PopulationWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i, id := range playerIDs {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			p := byPlayer[id]
			var t metrics.Tally
			for _, matchID := range p.matches {
				t = t.Merge(metrics.TallyPlayer(set.Events[matchID], id))
			}
			profiles[i] = comparison.Profile{ID: id, Name: names[id], Minutes: float64(p.minutes), Tally: t}
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
