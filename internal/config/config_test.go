package config

import (
	"testing"
	"time"
)

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "match-analytics-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store by default, got %q", cfg.StoreDriver)
	}
	if cfg.AnalyticsMinMinutes != 90 {
		t.Fatalf("expected min minutes 90, got %d", cfg.AnalyticsMinMinutes)
	}
	if cfg.PredictionFormWindow != 10 {
		t.Fatalf("expected form window 10, got %d", cfg.PredictionFormWindow)
	}
	if cfg.PredictionMaxGoals != 10 {
		t.Fatalf("expected max goals 10, got %d", cfg.PredictionMaxGoals)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_StoreDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("postgres accepted", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", " Postgres ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StorePostgres {
			t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORE_DRIVER")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "match-analytics-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "match-analytics-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
	}
}

func TestLoad_PositiveValuesRequired(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "CACHE_TTL", value: "0s"},
		{key: "CACHE_MAX_ENTRIES", value: "0"},
		{key: "PREDICTION_HOME_ADVANTAGE", value: "0"},
		{key: "PREDICTION_MAX_GOALS", value: "-1"},
		{key: "PREDICTION_FORM_WINDOW", value: "0"},
		{key: "ANALYTICS_POPULATION_WORKERS", value: "0"},
		{key: "STATSFEED_TIMEOUT", value: "0s"},
		{key: "STATSFEED_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "ANALYTICS_MIN_MINUTES", value: "-5"},
		{key: "APP_SHUTDOWN_TIMEOUT", value: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_PredictionParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PREDICTION_HOME_ADVANTAGE", "1.25")
	t.Setenv("PREDICTION_MAX_GOALS", "8")
	t.Setenv("PREDICTION_MIN_SPLIT_MATCHES", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PredictionHomeAdvantage != 1.25 {
		t.Fatalf("unexpected home advantage: %v", cfg.PredictionHomeAdvantage)
	}
	if cfg.PredictionMaxGoals != 8 || cfg.PredictionMinSplitMatches != 4 {
		t.Fatalf("unexpected prediction config: %+v", cfg)
	}

	t.Setenv("PREDICTION_HOME_ADVANTAGE", "high")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric PREDICTION_HOME_ADVANTAGE")
	}
}

func TestLoad_StatsFeed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("requires base url", func(t *testing.T) {
		t.Setenv("STATSFEED_ENABLED", "true")
		t.Setenv("STATSFEED_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STATSFEED_ENABLED=true without STATSFEED_BASE_URL")
		}
	})

	t.Run("parses circuit settings", func(t *testing.T) {
		t.Setenv("STATSFEED_ENABLED", "true")
		t.Setenv("STATSFEED_BASE_URL", "https://feed.example.com")
		t.Setenv("STATSFEED_CIRCUIT_OPEN_TIMEOUT", "30s")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StatsFeedCircuitOpenTimeout != 30*time.Second {
			t.Fatalf("unexpected open timeout: %s", cfg.StatsFeedCircuitOpenTimeout)
		}
		if !cfg.StatsFeedCircuitEnabled {
			t.Fatalf("expected circuit breaker enabled by default")
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"WARNING": "warn",
		"error":   "error",
		"":        "info",
		"verbose": "info",
	}
	for in, want := range tests {
		if got := parseLogLevel(in).String(); got != want {
			t.Fatalf("parseLogLevel(%q)=%s, want %s", in, got, want)
		}
	}
}
