package prediction

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const (
	DriverAttackingThreat   = "attacking_threat"
	DriverDefensiveSolidity = "defensive_solidity"
	DriverHomeAdvantage     = "home_advantage"
)

// Driver is one factor's share of the expected goal differential
// (home rate minus away rate).
type Driver struct {
	Name         string
	Description  string
	Contribution float64
}

type Score struct {
	Home        int
	Away        int
	Probability float64
}

type Distribution struct {
	Mean   float64
	StdDev float64
}

type TeamDistribution struct {
	XG         Distribution
	XGAgainst  Distribution
	Shots      Distribution
	Possession opt.Value[Distribution]
}

type Advantage string

const (
	AdvantageHome Advantage = "home"
	AdvantageAway Advantage = "away"
	AdvantageEven Advantage = "even"
)

// MatchupFactor puts one form metric of both sides next to each other.
type MatchupFactor struct {
	Name       string
	HomeValue  float64
	AwayValue  float64
	Advantage  Advantage
	Importance float64
}

type Result struct {
	HomeWin      float64
	Draw         float64
	AwayWin      float64
	LambdaHome   float64
	LambdaAway   float64
	HomeStrength Strength
	AwayStrength Strength
	KeyDrivers   []Driver
	TopScores    []Score
	HomeForm     TeamDistribution
	AwayForm     TeamDistribution
	Factors      []MatchupFactor
}

// Predict runs an independent Poisson scoreline model for home against away.
func Predict(home, away Form, cfg Config) (Result, error) {
	cfg = cfg.normalized()

	hs, err := strengthAt(home, match.VenueHome, cfg.MinSplitSamples)
	if err != nil {
		return Result{}, err
	}
	as, err := strengthAt(away, match.VenueAway, cfg.MinSplitSamples)
	if err != nil {
		return Result{}, err
	}

	lamH := math.Max(lambdaFloor, (hs.Attack+as.Defense)/2*cfg.HomeAdvantage)
	lamA := math.Max(lambdaFloor, (as.Attack+hs.Defense)/2/cfg.HomeAdvantage)

	grid := scoreGrid(lamH, lamA, cfg.MaxGoals)
	res := Result{
		LambdaHome:   lamH,
		LambdaAway:   lamA,
		HomeStrength: hs,
		AwayStrength: as,
		HomeForm:     distribution(home.Samples),
		AwayForm:     distribution(away.Samples),
		Factors:      factors(home.Samples, away.Samples),
	}
	scores := make([]Score, 0, len(grid)*len(grid))
	for i, row := range grid {
		for j, p := range row {
			switch {
			case i > j:
				res.HomeWin += p
			case i == j:
				res.Draw += p
			default:
				res.AwayWin += p
			}
			scores = append(scores, Score{Home: i, Away: j, Probability: p})
		}
	}

	slices.SortFunc(scores, func(a, b Score) int {
		if c := cmp.Compare(b.Probability, a.Probability); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Home, b.Home); c != 0 {
			return c
		}
		return cmp.Compare(a.Away, b.Away)
	})
	res.TopScores = scores[:min(cfg.TopScores, len(scores))]
	res.KeyDrivers = drivers(hs, as, lamH-lamA)
	return res, nil
}

// scoreGrid enumerates 0..maxGoals for each side and renormalizes so the
// truncated tail does not leak probability.
func scoreGrid(lamH, lamA float64, maxGoals int) [][]float64 {
	ph := make([]float64, maxGoals+1)
	pa := make([]float64, maxGoals+1)
	for k := 0; k <= maxGoals; k++ {
		ph[k] = poissonPMF(k, lamH)
		pa[k] = poissonPMF(k, lamA)
	}

	grid := make([][]float64, maxGoals+1)
	var total float64
	for i := range grid {
		grid[i] = make([]float64, maxGoals+1)
		for j := range grid[i] {
			grid[i][j] = ph[i] * pa[j]
			total += grid[i][j]
		}
	}
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] /= total
		}
	}
	return grid
}

func poissonPMF(k int, lambda float64) float64 {
	lg, _ := math.Lgamma(float64(k + 1))
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lg)
}

// drivers splits diff into the neutral-venue attack and defense terms; home
// advantage takes the remainder.
func drivers(home, away Strength, diff float64) []Driver {
	attack := 0.5 * (home.Attack - away.Attack)
	defense := 0.5 * (away.Defense - home.Defense)
	venue := diff - attack - defense

	out := []Driver{
		{
			Name:         DriverAttackingThreat,
			Description:  describe(attack, "Home attack creates %.2f more xG per match than the away attack", "Away attack creates %.2f more xG per match than the home attack"),
			Contribution: attack,
		},
		{
			Name:         DriverDefensiveSolidity,
			Description:  describe(defense, "Home defense concedes %.2f less xG per match than the away defense", "Away defense concedes %.2f less xG per match than the home defense"),
			Contribution: defense,
		},
		{
			Name:         DriverHomeAdvantage,
			Description:  describe(venue, "Playing at home adds %.2f expected goals to the differential", "Venue adjustment removes %.2f expected goals from the home side"),
			Contribution: venue,
		},
	}
	slices.SortStableFunc(out, func(a, b Driver) int {
		if c := cmp.Compare(math.Abs(b.Contribution), math.Abs(a.Contribution)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func describe(v float64, positive, negative string) string {
	if v >= 0 {
		return fmt.Sprintf(positive, v)
	}
	return fmt.Sprintf(negative, -v)
}

func distribution(samples []Sample) TeamDistribution {
	xg := make([]float64, 0, len(samples))
	xga := make([]float64, 0, len(samples))
	shots := make([]float64, 0, len(samples))
	poss := make([]float64, 0, len(samples))
	for _, s := range samples {
		xg = append(xg, s.XGFor)
		xga = append(xga, s.XGAgainst)
		shots = append(shots, float64(s.Shots))
		if p, ok := s.Possession.Get(); ok {
			poss = append(poss, p)
		}
	}
	td := TeamDistribution{
		XG:        Distribution{Mean: metrics.Mean(xg), StdDev: metrics.StdDev(xg)},
		XGAgainst: Distribution{Mean: metrics.Mean(xga), StdDev: metrics.StdDev(xga)},
		Shots:     Distribution{Mean: metrics.Mean(shots), StdDev: metrics.StdDev(shots)},
	}
	if len(poss) > 0 {
		td.Possession = opt.Present(Distribution{Mean: metrics.Mean(poss), StdDev: metrics.StdDev(poss)})
	}
	return td
}

func factors(home, away []Sample) []MatchupFactor {
	hd, ad := distribution(home), distribution(away)
	out := []MatchupFactor{
		factor("attack_xg", hd.XG.Mean, ad.XG.Mean, true),
		factor("defense_xg_against", hd.XGAgainst.Mean, ad.XGAgainst.Mean, false),
		factor("shot_volume", hd.Shots.Mean, ad.Shots.Mean, true),
	}
	hp, okH := hd.Possession.Get()
	ap, okA := ad.Possession.Get()
	if okH && okA {
		out = append(out, factor("possession", hp.Mean, ap.Mean, true))
	}
	slices.SortStableFunc(out, func(a, b MatchupFactor) int {
		if c := cmp.Compare(b.Importance, a.Importance); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// factor scores the relative gap between the sides in [0,1].
func factor(name string, home, away float64, higherIsBetter bool) MatchupFactor {
	f := MatchupFactor{Name: name, HomeValue: home, AwayValue: away, Advantage: AdvantageEven}
	if sum := math.Abs(home) + math.Abs(away); sum > 0 {
		f.Importance = math.Abs(home-away) / sum
	}
	switch {
	case home == away:
	case (home > away) == higherIsBetter:
		f.Advantage = AdvantageHome
	default:
		f.Advantage = AdvantageAway
	}
	return f
}
