package httpapi

import (
	"context"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const maxIDLength = 128

// scopeQuery is embedded in every analytics request.
type scopeQuery struct {
	CompetitionID string `query:"competition_id" validate:"max=128"`
	SeasonID      string `query:"season_id" validate:"max=128"`
}

func (q scopeQuery) scope() (analytics.Scope, error) {
	return analytics.NewScope(q.CompetitionID, q.SeasonID)
}

type seasonsQuery struct {
	CompetitionID string `query:"competition_id" validate:"required,max=128"`
}

type teamsQuery struct {
	scopeQuery
}

type matchesQuery struct {
	scopeQuery
	TeamID string `query:"team_id" validate:"max=128"`
}

type playersQuery struct {
	scopeQuery
	TeamID string `query:"team_id" validate:"required,max=128"`
}

type matchQuery struct {
	scopeQuery
	MatchID string `query:"match_id" validate:"required,max=128"`
	TeamID  string `query:"team_id" validate:"max=128"`
}

type playerQuery struct {
	scopeQuery
	PlayerID string `query:"player_id" validate:"required,max=128"`
}

type trendQuery struct {
	scopeQuery
	PlayerID string `query:"player_id" validate:"required,max=128"`
	Metric   string `query:"metric" validate:"required,max=64"`
	Window   int    `query:"window" validate:"min=0,max=38"`
}

type eventMapQuery struct {
	scopeQuery
	PlayerID  string `query:"player_id" validate:"required,max=128"`
	MatchID   string `query:"match_id" validate:"max=128"`
	EventType string `query:"event_type" validate:"max=64"`
}

type radarQuery struct {
	scopeQuery
	Player1    string         `query:"player1" validate:"required,max=128"`
	Player2    string         `query:"player2" validate:"required,max=128"`
	Metrics    string         `query:"metrics" validate:"max=1024"`
	Normalized bool           `query:"normalized"`
	Scale      string         `query:"scale" validate:"omitempty,oneof=fixed population"`
	MinMinutes opt.Value[int] `query:"min_minutes"`
}

type barQuery struct {
	scopeQuery
	Player1 string `query:"player1" validate:"required,max=128"`
	Player2 string `query:"player2" validate:"required,max=128"`
	Metric  string `query:"metric" validate:"required,max=64"`
}

type scatterQuery struct {
	scopeQuery
	XMetric    string         `query:"x_metric" validate:"required,max=64"`
	YMetric    string         `query:"y_metric" validate:"required,max=64"`
	Player1    string         `query:"player1" validate:"max=128"`
	Player2    string         `query:"player2" validate:"max=128"`
	MinMinutes opt.Value[int] `query:"min_minutes"`
}

type similarityQuery struct {
	scopeQuery
	PlayerID   string         `query:"player_id" validate:"required,max=128"`
	Limit      int            `query:"limit" validate:"min=0,max=50"`
	MinMinutes opt.Value[int] `query:"min_minutes"`
}

type teamPairQuery struct {
	scopeQuery
	Team1 string `query:"team1" validate:"required,max=128"`
	Team2 string `query:"team2" validate:"required,max=128"`
}

// teamStyleQuery accepts either a team pair or a single team_id.
type teamStyleQuery struct {
	scopeQuery
	Team1  string `query:"team1" validate:"required_without=TeamID,max=128"`
	Team2  string `query:"team2" validate:"max=128"`
	TeamID string `query:"team_id" validate:"max=128"`
}

type teamQuery struct {
	scopeQuery
	TeamID string `query:"team_id" validate:"required,max=128"`
}

type passNetworkQuery struct {
	scopeQuery
	TeamID  string `query:"team_id" validate:"required,max=128"`
	MatchID string `query:"match_id" validate:"max=128"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindQuery fills dst from the URL query using `query` tags, then validates
// it. Failures name the offending parameter.
func (h *Handler) bindQuery(ctx context.Context, values url.Values, dst any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.bindQuery")
	defer span.End()

	if err := decodeQuery(values, reflect.ValueOf(dst).Elem()); err != nil {
		return err
	}
	if err := h.validator.StructCtx(ctx, dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return analytics.InvalidParam(first.Field(), validationReason(first))
		}
		return analytics.InvalidParam("", err.Error())
	}
	return nil
}

func decodeQuery(values url.Values, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if field.Anonymous && fv.Kind() == reflect.Struct {
			if err := decodeQuery(values, fv); err != nil {
				return err
			}
			continue
		}
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		if err := setField(fv, name, raw); err != nil {
			return err
		}
	}
	return nil
}

var optIntType = reflect.TypeOf(opt.Value[int]{})

func setField(fv reflect.Value, name, raw string) error {
	if fv.Type() == optIntType {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return analytics.InvalidParam(name, name+" must be an integer")
		}
		fv.Set(reflect.ValueOf(opt.Present(n)))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		if len(raw) > maxIDLength*8 {
			return analytics.InvalidParam(name, name+" is too long")
		}
		fv.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return analytics.InvalidParam(name, name+" must be an integer")
		}
		fv.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return analytics.InvalidParam(name, name+" must be true or false")
		}
		fv.SetBool(b)
	default:
		return errors.Newf("unsupported query field kind %s", fv.Kind())
	}
	return nil
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_without":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
