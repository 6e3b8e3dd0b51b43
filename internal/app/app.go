package app

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/match-analytics/external/statsfeed"
	"github.com/riskibarqy/match-analytics/internal/config"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-analytics/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/match-analytics/internal/platform/cache"
	"github.com/riskibarqy/match-analytics/internal/platform/logging"
	"github.com/riskibarqy/match-analytics/internal/platform/metrics"
	"github.com/riskibarqy/match-analytics/internal/platform/resilience"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

// App is the assembled HTTP service.
type App struct {
	Server *http.Server
	closer func() error
}

// Close releases the store connection, if any.
func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer()
}

type stores struct {
	competitions competition.Repository
	teams        team.Repository
	players      player.Repository
	matches      match.Repository
	events       event.Reader
	close        func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("http server addr cannot be empty")
	}

	recorder := metrics.NewRecorder(metrics.WithNamespace(cfg.MetricsNamespace), metrics.WithRuntimeCollectors())

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		st = withCache(st, cfg)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String(), "max_entries", cfg.CacheMaxEntries)
	}
	if cfg.StatsFeedEnabled {
		st.events = newStatsFeed(cfg, logger, recorder)
		logger.Info("stats feed enabled", "base_url", cfg.StatsFeedBaseURL)
	}

	registry := usecase.NewRegistry(st.competitions, st.teams, st.players, st.matches, st.events)
	analyticsCfg := analyticsConfig(cfg)

	handler := httpapi.NewHandler(httpapi.Services{
		Selectors:  usecase.NewSelectorService(registry, st.competitions, st.teams, st.players),
		Dashboard:  usecase.NewDashboardService(registry, st.teams, st.events),
		Players:    usecase.NewPlayerAnalysisService(registry, st.teams, st.events),
		Comparison: usecase.NewPlayerComparisonService(registry, st.events, analyticsCfg),
		Matchups:   usecase.NewMatchupService(registry, st.events, analyticsCfg),
		Tactical:   usecase.NewTacticalService(registry, st.events),
	}, logger, recorder)

	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		MetricsEnabled:     cfg.MetricsEnabled,
	})

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		closer: st.close,
	}, nil
}

func analyticsConfig(cfg config.Config) usecase.AnalyticsConfig {
	out := usecase.DefaultAnalyticsConfig()
	out.PopulationWorkers = cfg.AnalyticsPopulationWorkers
	out.MinMinutes = cfg.AnalyticsMinMinutes
	out.FormWindow = cfg.PredictionFormWindow
	out.Prediction.HomeAdvantage = cfg.PredictionHomeAdvantage
	out.Prediction.MaxGoals = cfg.PredictionMaxGoals
	out.Prediction.MinSplitSamples = cfg.PredictionMinSplitMatches
	return out
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return stores{}, err
			}
		}
		logger.Info("store ready", "driver", config.StorePostgres, "db_name", dbNameFromURL(cfg.DBURL))

		return stores{
			competitions: postgres.NewCompetitionRepository(db),
			teams:        postgres.NewTeamRepository(db),
			players:      postgres.NewPlayerRepository(db),
			matches:      postgres.NewMatchRepository(db),
			events:       postgres.NewEventStore(db),
			close:        db.Close,
		}, nil
	default:
		ds := memory.Seed()
		if cfg.DatasetPath != "" {
			loaded, err := dataset.Load(cfg.DatasetPath)
			if err != nil {
				return stores{}, errors.Wrapf(err, "load dataset %s", cfg.DatasetPath)
			}
			ds = loaded
		}
		counts := ds.Counts()
		logger.Info("store ready",
			"driver", config.StoreMemory,
			"dataset", cfg.DatasetPath,
			"matches", counts.Matches,
			"events", counts.Events,
		)

		snap := memory.NewSnapshot(ds)
		return stores{
			competitions: snap.Competitions,
			teams:        snap.Teams,
			players:      snap.Players,
			matches:      snap.Matches,
			events:       snap.Events,
		}, nil
	}
}

func withCache(st stores, cfg config.Config) stores {
	store := basecache.NewStore(cfg.CacheTTL, basecache.WithMaxEntries(cfg.CacheMaxEntries))

	st.competitions = cache.NewCompetitionRepository(st.competitions, store)
	st.teams = cache.NewTeamRepository(st.teams, store)
	st.players = cache.NewPlayerRepository(st.players, store)
	st.matches = cache.NewMatchRepository(st.matches, store)
	return st
}

func newStatsFeed(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) *statsfeed.Client {
	return statsfeed.NewClient(statsfeed.ClientConfig{
		HTTPClient: &fasthttp.Client{
			Name:            "match-analytics-statsfeed",
			MaxConnsPerHost: 64,
			ReadTimeout:     cfg.StatsFeedTimeout,
			WriteTimeout:    cfg.StatsFeedTimeout,
		},
		BaseURL:    cfg.StatsFeedBaseURL,
		Token:      cfg.StatsFeedToken,
		Timeout:    cfg.StatsFeedTimeout,
		MaxRetries: cfg.StatsFeedMaxRetries,
		Logger:     logger.Named("statsfeed"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsFeedCircuitEnabled,
			FailureThreshold: cfg.StatsFeedCircuitFailureCount,
			OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
		},
		Cache:         basecache.NewStore(cfg.StatsFeedCacheTTL, basecache.WithStaleRetention(cfg.StatsFeedStaleRetention)),
		OnFallback:    recorder.FeedFallback,
		OnUnavailable: recorder.FeedUnavailable,
	})
}
