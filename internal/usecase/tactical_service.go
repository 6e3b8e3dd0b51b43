package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/network"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

type PassNetwork struct {
	Team            team.Team
	Match           opt.Value[match.Match]
	MatchesAnalyzed int
	Network         network.Network
	PlayerNames     map[string]string
}

type DefensiveSummary struct {
	Matches                  int
	GoalsConceded            int
	CleanSheets              int
	XGAgainstPerMatch        float64
	ShotsAgainstPerMatch     float64
	TacklesPerMatch          float64
	InterceptionsPerMatch    float64
	BlocksPerMatch           float64
	ClearancesPerMatch       float64
	PressuresPerMatch        float64
	DefensiveActionsPerMatch float64
	PPDA                     opt.Value[float64]
}

type OffensiveSummary struct {
	Matches                   int
	Goals                     int
	GoalsPerMatch             float64
	XGPerMatch                float64
	ShotsPerMatch             float64
	ShotsOnTargetPerMatch     float64
	ProgressivePassesPerMatch float64
	// ShotAccuracy is shots on target over shots, 0..100.
	ShotAccuracy opt.Value[float64]
	// Conversion is goals over shots, 0..100.
	Conversion   opt.Value[float64]
	PassAccuracy opt.Value[float64]
	Possession   opt.Value[float64]
}

type DefensiveReport struct {
	Team    team.Team
	Summary DefensiveSummary
	Lines   []TeamMatchLine
}

type OffensiveReport struct {
	Team    team.Team
	Summary OffensiveSummary
	Lines   []TeamMatchLine
}

type TacticalService struct {
	registry *Registry
	events   event.Reader
}

func NewTacticalService(registry *Registry, events event.Reader) *TacticalService {
	return &TacticalService{registry: registry, events: events}
}

// PassNetwork builds the team's network for one match, or over every
// finished match in scope when matchID is empty.
func (s *TacticalService) PassNetwork(ctx context.Context, scope analytics.Scope, teamID, matchID string) (PassNetwork, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticalService.PassNetwork")
	defer span.End()

	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return PassNetwork{}, err
	}
	t, err := s.registry.ResolveTeam(ctx, scope, "team_id", teamID)
	if err != nil {
		return PassNetwork{}, err
	}

	out := PassNetwork{Team: t, Network: network.Network{TeamID: t.ID}}
	var ids []string
	if matchID != "" {
		m, err := s.registry.ResolveMatch(ctx, scope, "match_id", matchID)
		if err != nil {
			return PassNetwork{}, err
		}
		if !m.Involves(t.ID) {
			return PassNetwork{}, analytics.InvalidParam("match_id", fmt.Sprintf("team %s does not play in match %s", t.ID, m.ID))
		}
		out.Match = opt.Present(m)
		ids = []string{m.ID}
	} else {
		ids, err = s.registry.MatchIDs(ctx, scope, match.Filter{TeamID: t.ID, FinishedOnly: true})
		if err != nil {
			return PassNetwork{}, err
		}
	}
	out.MatchesAnalyzed = len(ids)
	if len(ids) == 0 {
		return out, analytics.ErrEmptyNetwork
	}

	events, err := event.Load(ctx, s.events, event.Filter{MatchIDs: ids, TeamID: t.ID})
	if err != nil {
		return PassNetwork{}, fmt.Errorf("load team events: %w", err)
	}
	net, err := network.Build(events, t.ID)
	if err != nil {
		return out, err
	}
	ids = make([]string, 0, len(net.Nodes))
	for _, n := range net.Nodes {
		ids = append(ids, n.PlayerID)
	}
	names, err := s.registry.PlayerNames(ctx, ids)
	if err != nil {
		return PassNetwork{}, err
	}
	out.Network = net
	out.PlayerNames = names
	return out, nil
}

func (s *TacticalService) DefensiveMetrics(ctx context.Context, scope analytics.Scope, teamID string) (DefensiveReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticalService.DefensiveMetrics")
	defer span.End()

	t, lines, err := s.lines(ctx, scope, teamID)
	if err != nil {
		return DefensiveReport{}, err
	}

	var (
		sum  DefensiveSummary
		ppda meanOf
	)
	for _, l := range lines {
		sum.GoalsConceded += l.Line.GoalsAgainst
		if l.Line.GoalsAgainst == 0 {
			sum.CleanSheets++
		}
		sum.XGAgainstPerMatch += l.Line.XGAgainst
		sum.ShotsAgainstPerMatch += float64(l.Line.ShotsAgainst)
		sum.TacklesPerMatch += float64(l.Line.Tackles)
		sum.InterceptionsPerMatch += float64(l.Line.Interceptions)
		sum.BlocksPerMatch += float64(l.Line.Blocks)
		sum.ClearancesPerMatch += float64(l.Line.Clearances)
		sum.PressuresPerMatch += float64(l.Line.Pressures)
		sum.DefensiveActionsPerMatch += float64(l.Line.DefensiveActions)
		ppda.add(l.Line.PPDA)
	}
	n := float64(len(lines))
	sum.Matches = len(lines)
	sum.XGAgainstPerMatch /= n
	sum.ShotsAgainstPerMatch /= n
	sum.TacklesPerMatch /= n
	sum.InterceptionsPerMatch /= n
	sum.BlocksPerMatch /= n
	sum.ClearancesPerMatch /= n
	sum.PressuresPerMatch /= n
	sum.DefensiveActionsPerMatch /= n
	sum.PPDA = ppda.mean()

	return DefensiveReport{Team: t, Summary: sum, Lines: lines}, nil
}

func (s *TacticalService) OffensiveMetrics(ctx context.Context, scope analytics.Scope, teamID string) (OffensiveReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticalService.OffensiveMetrics")
	defer span.End()

	t, lines, err := s.lines(ctx, scope, teamID)
	if err != nil {
		return OffensiveReport{}, err
	}

	var (
		sum                      OffensiveSummary
		shots, onTarget          int
		passAccuracy, possession meanOf
	)
	for _, l := range lines {
		sum.Goals += l.Line.GoalsFor
		sum.XGPerMatch += l.Line.XGFor
		shots += l.Line.ShotsFor
		onTarget += l.Line.ShotsOnTargetFor
		sum.ProgressivePassesPerMatch += float64(l.Line.ProgressivePasses)
		passAccuracy.add(l.Line.PassAccuracy)
		possession.add(l.Line.Possession)
	}
	n := float64(len(lines))
	sum.Matches = len(lines)
	sum.GoalsPerMatch = float64(sum.Goals) / n
	sum.XGPerMatch /= n
	sum.ShotsPerMatch = float64(shots) / n
	sum.ShotsOnTargetPerMatch = float64(onTarget) / n
	sum.ProgressivePassesPerMatch /= n
	if shots > 0 {
		sum.ShotAccuracy = opt.Present(float64(onTarget) / float64(shots) * 100)
		sum.Conversion = opt.Present(min(100, float64(sum.Goals)/float64(shots)*100))
	}
	sum.PassAccuracy = passAccuracy.mean()
	sum.Possession = possession.mean()

	return OffensiveReport{Team: t, Summary: sum, Lines: lines}, nil
}

func (s *TacticalService) lines(ctx context.Context, scope analytics.Scope, teamID string) (team.Team, []TeamMatchLine, error) {
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return team.Team{}, nil, err
	}
	t, err := s.registry.ResolveTeam(ctx, scope, "team_id", teamID)
	if err != nil {
		return team.Team{}, nil, err
	}
	lines, err := teamLines(ctx, s.registry, s.events, scope, t.ID, 0)
	if err != nil {
		return team.Team{}, nil, err
	}
	if len(lines) == 0 {
		return team.Team{}, nil, analytics.InsufficientSample("team %s has no finished matches", t.ID)
	}
	return t, lines, nil
}

// meanOf averages the present values only.
type meanOf struct {
	sum float64
	n   int
}

func (m *meanOf) add(v opt.Value[float64]) {
	if x, ok := v.Get(); ok {
		m.sum += x
		m.n++
	}
}

func (m meanOf) mean() opt.Value[float64] {
	if m.n == 0 {
		return opt.Absent[float64]()
	}
	return opt.Present(m.sum / float64(m.n))
}
