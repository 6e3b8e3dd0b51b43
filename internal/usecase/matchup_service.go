package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/prediction"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// TeamParam is a team identifier together with the query parameter it came
// from.
type TeamParam struct {
	Param string
	ID    string
}

type HeadToHeadMatch struct {
	Match      match.Match
	Team1Goals int
	Team2Goals int
	Team1XG    float64
	Team2XG    float64
	// WinnerID is Absent for a draw.
	WinnerID opt.Value[string]
}

type HeadToHeadSummary struct {
	Matches    int
	Team1Wins  int
	Draws      int
	Team2Wins  int
	Team1Goals int
	Team2Goals int
	Team1XG    float64
	Team2XG    float64
}

type HeadToHead struct {
	Team1   team.Team
	Team2   team.Team
	Summary HeadToHeadSummary
	// History is most recent first.
	History []HeadToHeadMatch
}

type TeamStyle struct {
	Team            team.Team
	MatchesAnalyzed int
	Style           opt.Value[metrics.StyleProfile]
}

type MatchupPrediction struct {
	Home       team.Team
	Away       team.Team
	FormWindow int
	Config     prediction.Config
	Result     prediction.Result
}

type MatchupService struct {
	registry *Registry
	events   event.Reader
	cfg      AnalyticsConfig
}

func NewMatchupService(registry *Registry, events event.Reader, cfg AnalyticsConfig) *MatchupService {
	return &MatchupService{registry: registry, events: events, cfg: cfg.normalized()}
}

func (s *MatchupService) HeadToHead(ctx context.Context, scope analytics.Scope, team1, team2 string) (HeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.HeadToHead")
	defer span.End()

	t1, t2, err := s.resolvePair(ctx, scope, team1, team2)
	if err != nil {
		return HeadToHead{}, err
	}

	matches, err := s.registry.Matches(ctx, scope, match.Filter{TeamID: t1.ID, OpponentID: t2.ID, FinishedOnly: true})
	if err != nil {
		return HeadToHead{}, err
	}
	set, err := loadMatchEvents(ctx, s.events, matches)
	if err != nil {
		return HeadToHead{}, err
	}

	out := HeadToHead{Team1: t1, Team2: t2, History: make([]HeadToHeadMatch, 0, len(matches))}
	for _, m := range matches {
		gf, ga, _ := m.Goals(t1.ID)
		xg1, err := metrics.XGTotal(set.Events[m.ID], t1.ID)
		if err != nil {
			return HeadToHead{}, fmt.Errorf("aggregate match %s: %w", m.ID, err)
		}
		xg2, err := metrics.XGTotal(set.Events[m.ID], t2.ID)
		if err != nil {
			return HeadToHead{}, fmt.Errorf("aggregate match %s: %w", m.ID, err)
		}

		row := HeadToHeadMatch{Match: m, Team1Goals: gf, Team2Goals: ga, Team1XG: xg1, Team2XG: xg2}
		switch {
		case gf > ga:
			row.WinnerID = opt.Present(t1.ID)
			out.Summary.Team1Wins++
		case gf < ga:
			row.WinnerID = opt.Present(t2.ID)
			out.Summary.Team2Wins++
		default:
			out.Summary.Draws++
		}
		out.Summary.Matches++
		out.Summary.Team1Goals += gf
		out.Summary.Team2Goals += ga
		out.Summary.Team1XG += xg1
		out.Summary.Team2XG += xg2
		out.History = append(out.History, row)
	}
	slices.Reverse(out.History)
	return out, nil
}

// TeamStyle profiles each team over its finished matches in scope. A team
// without matches is reported with an absent style.
func (s *MatchupService) TeamStyle(ctx context.Context, scope analytics.Scope, teams ...TeamParam) ([]TeamStyle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.TeamStyle")
	defer span.End()

	if len(teams) == 0 {
		return nil, analytics.InvalidParam("team_id", "team_id is required")
	}
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return nil, err
	}

	out := make([]TeamStyle, len(teams))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, ref := range teams {
		p.Go(func(ctx context.Context) error {
			st, err := s.teamStyle(ctx, scope, ref)
			if err != nil {
				return err
			}
			out[i] = st
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MatchupService) teamStyle(ctx context.Context, scope analytics.Scope, ref TeamParam) (TeamStyle, error) {
	t, err := s.registry.ResolveTeam(ctx, scope, ref.Param, ref.ID)
	if err != nil {
		return TeamStyle{}, err
	}
	matches, err := s.registry.Matches(ctx, scope, match.Filter{TeamID: t.ID, FinishedOnly: true})
	if err != nil {
		return TeamStyle{}, err
	}
	set, err := loadMatchEvents(ctx, s.events, matches)
	if err != nil {
		return TeamStyle{}, err
	}

	out := TeamStyle{Team: t}
	samples := make([]metrics.MatchEvents, 0, len(matches))
	for _, m := range matches {
		samples = append(samples, metrics.MatchEvents{MatchID: m.ID, Events: set.Events[m.ID]})
	}
	style, err := metrics.Style(samples, t.ID)
	switch {
	case analytics.IsEmptyResult(err):
		return out, nil
	case err != nil:
		return TeamStyle{}, fmt.Errorf("profile team %s style: %w", t.ID, err)
	}
	out.MatchesAnalyzed = style.MatchesAnalyzed
	out.Style = opt.Present(style)
	return out, nil
}

// Predict treats team1 as the home side.
func (s *MatchupService) Predict(ctx context.Context, scope analytics.Scope, team1, team2 string) (MatchupPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.Predict")
	defer span.End()

	home, away, err := s.resolvePair(ctx, scope, team1, team2)
	if err != nil {
		return MatchupPrediction{}, err
	}

	var forms [2]prediction.Form
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, t := range []team.Team{home, away} {
		p.Go(func(ctx context.Context) error {
			form, err := s.form(ctx, scope, t.ID)
			if err != nil {
				return err
			}
			forms[i] = form
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return MatchupPrediction{}, err
	}

	res, err := prediction.Predict(forms[0], forms[1], s.cfg.Prediction)
	if err != nil {
		return MatchupPrediction{}, err
	}
	return MatchupPrediction{
		Home:       home,
		Away:       away,
		FormWindow: s.cfg.FormWindow,
		Config:     s.cfg.Prediction,
		Result:     res,
	}, nil
}

func (s *MatchupService) form(ctx context.Context, scope analytics.Scope, teamID string) (prediction.Form, error) {
	lines, err := teamLines(ctx, s.registry, s.events, scope, teamID, s.cfg.FormWindow)
	if err != nil {
		return prediction.Form{}, err
	}
	form := prediction.Form{TeamID: teamID, Samples: make([]prediction.Sample, 0, len(lines))}
	for _, l := range lines {
		form.Samples = append(form.Samples, prediction.Sample{
			MatchID:    l.Match.ID,
			Venue:      l.Venue,
			XGFor:      l.Line.XGFor,
			XGAgainst:  l.Line.XGAgainst,
			Shots:      l.Line.ShotsFor,
			Possession: l.Line.Possession,
		})
	}
	return form, nil
}

func (s *MatchupService) resolvePair(ctx context.Context, scope analytics.Scope, team1, team2 string) (team.Team, team.Team, error) {
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return team.Team{}, team.Team{}, err
	}
	t1, err := s.registry.ResolveTeam(ctx, scope, "team1", team1)
	if err != nil {
		return team.Team{}, team.Team{}, err
	}
	t2, err := s.registry.ResolveTeam(ctx, scope, "team2", team2)
	if err != nil {
		return team.Team{}, team.Team{}, err
	}
	if t1.ID == t2.ID {
		return team.Team{}, team.Team{}, analytics.InvalidParam("team2", "team2 must differ from team1")
	}
	return t1, t2, nil
}
