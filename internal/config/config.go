package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// CacheConfig configures the tracker/resolver snapshot cache. With an empty
// address the cache falls back to an in-process TTL map.
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr" mapstructure:"redis_addr"`
	TTLSecs   int    `yaml:"ttl_secs" mapstructure:"ttl_secs"`
}

// CatalogConfig points at an optional YAML catalog replacing the built-in
// questions and templates.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ScoringConfig holds the pillar weights and classification thresholds.
// Weights are fractions and must sum to 1.0.
type ScoringConfig struct {
	BudgetingWeight           float64 `yaml:"budgeting_weight" mapstructure:"budgeting_weight"`
	SavingsWeight             float64 `yaml:"savings_weight" mapstructure:"savings_weight"`
	DebtManagementWeight      float64 `yaml:"debt_management_weight" mapstructure:"debt_management_weight"`
	FinancialPlanningWeight   float64 `yaml:"financial_planning_weight" mapstructure:"financial_planning_weight"`
	InvestmentKnowledgeWeight float64 `yaml:"investment_knowledge_weight" mapstructure:"investment_knowledge_weight"`

	// Pillars scoring below this select recommendations.
	RecommendThreshold float64 `yaml:"recommend_threshold" mapstructure:"recommend_threshold"`

	// Risk tolerance cut points over the 0-100 normalized average.
	RiskLowBelow  float64 `yaml:"risk_low_below" mapstructure:"risk_low_below"`
	RiskHighAbove float64 `yaml:"risk_high_above" mapstructure:"risk_high_above"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	SubmitRPS      float64  `yaml:"submit_rps" mapstructure:"submit_rps"`
	SubmitBurst    int      `yaml:"submit_burst" mapstructure:"submit_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FINHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "finhealth.db")
	v.SetDefault("cache.ttl_secs", 3600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.submit_rps", 5.0)
	v.SetDefault("server.submit_burst", 10)
	v.SetDefault("scoring.budgeting_weight", 0.25)
	v.SetDefault("scoring.savings_weight", 0.20)
	v.SetDefault("scoring.debt_management_weight", 0.20)
	v.SetDefault("scoring.financial_planning_weight", 0.20)
	v.SetDefault("scoring.investment_knowledge_weight", 0.15)
	v.SetDefault("scoring.recommend_threshold", 70)
	v.SetDefault("scoring.risk_low_below", 40)
	v.SetDefault("scoring.risk_high_above", 70)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
