package memory

import (
	"context"

	"github.com/riskibarqy/match-analytics/internal/domain/match"
)

type MatchRepository struct {
	matches []match.Match
	index   map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	sorted := append([]match.Match(nil), matches...)
	match.SortChronological(sorted)

	index := make(map[string]match.Match, len(sorted))
	for _, m := range sorted {
		index[m.ID] = m
	}

	return &MatchRepository{matches: sorted, index: index}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	m, ok := r.index[matchID]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}

	return out, nil
}
