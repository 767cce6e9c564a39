package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"NewsGuard/internal/features"
	"NewsGuard/internal/forest"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "NEWSGUARD_CONFIG"
	addrEnv         = "NEWSGUARD_ADDR"
	apiKeyEnv       = "NEWSGUARD_API_KEY"
	modelPathEnv    = "MODEL_PATH"
	fakeCSVEnv      = "FAKE_CSV"
	trueCSVEnv      = "TRUE_CSV"
	historyDBEnv    = "HISTORY_DB"
	logLevelEnv     = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Model     ModelConfig     `yaml:"model"`
	Training  TrainingConfig  `yaml:"training"`
	Detection DetectionConfig `yaml:"detection"`
	History   HistoryConfig   `yaml:"history"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig describes the HTTP listener and its access controls.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	APIKey        string `yaml:"apiKey"`
	RatePerMinute int    `yaml:"ratePerMinute"`
	RateBurst     int    `yaml:"rateBurst"`
}

// ModelConfig wires the artifact location and the training
// hyperparameters.
type ModelConfig struct {
	Path                  string  `yaml:"path"`
	MaxFeatures           int     `yaml:"maxFeatures"`
	NGramMin              int     `yaml:"ngramMin"`
	NGramMax              int     `yaml:"ngramMax"`
	MinDocFreq            int     `yaml:"minDocFreq"`
	MaxDocShare           float64 `yaml:"maxDocShare"`
	Trees                 int     `yaml:"trees"`
	MaxDepth              int     `yaml:"maxDepth"`
	MinSamplesSplit       int     `yaml:"minSamplesSplit"`
	MinSamplesLeaf        int     `yaml:"minSamplesLeaf"`
	Seed                  int64   `yaml:"seed"`
	AppendLexicalFeatures bool    `yaml:"appendLexicalFeatures"`
}

// VectorizerOptions maps the model settings onto the vectorizer.
func (m ModelConfig) VectorizerOptions() features.VectorizerOptions {
	return features.VectorizerOptions{
		MaxFeatures: m.MaxFeatures,
		NGramMin:    m.NGramMin,
		NGramMax:    m.NGramMax,
		MinDocFreq:  m.MinDocFreq,
		MaxDocShare: m.MaxDocShare,
	}
}

// ForestParams maps the model settings onto the classifier.
func (m ModelConfig) ForestParams() forest.Params {
	return forest.Params{
		Trees:           m.Trees,
		MaxDepth:        m.MaxDepth,
		MinSamplesSplit: m.MinSamplesSplit,
		MinSamplesLeaf:  m.MinSamplesLeaf,
		Seed:            m.Seed,
	}
}

// TrainingConfig points at the labeled corpus.
type TrainingConfig struct {
	FakeCSV   string  `yaml:"fakeCsv"`
	TrueCSV   string  `yaml:"trueCsv"`
	EvalRatio float64 `yaml:"evalRatio"`
}

// DetectionConfig bounds accepted input.
type DetectionConfig struct {
	MinTextLength    int  `yaml:"minTextLength"`
	MaxTextLength    int  `yaml:"maxTextLength"`
	RejectNonEnglish bool `yaml:"rejectNonEnglish"`
}

// HistoryConfig enables the verdict history store; empty path disables.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines when retraining runs; empty expression
// disables.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig carries the log level string.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(addrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.Server.APIKey = v
	}
	if v := os.Getenv(modelPathEnv); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv(fakeCSVEnv); v != "" {
		c.Training.FakeCSV = v
	}
	if v := os.Getenv(trueCSVEnv); v != "" {
		c.Training.TrueCSV = v
	}
	if v := os.Getenv(historyDBEnv); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.APIKey != "" {
		base.Server.APIKey = override.Server.APIKey
	}
	if override.Server.RatePerMinute != 0 {
		base.Server.RatePerMinute = override.Server.RatePerMinute
	}
	if override.Server.RateBurst != 0 {
		base.Server.RateBurst = override.Server.RateBurst
	}

	if override.Model.Path != "" {
		base.Model.Path = override.Model.Path
	}
	if override.Model.MaxFeatures != 0 {
		base.Model.MaxFeatures = override.Model.MaxFeatures
	}
	if override.Model.NGramMin != 0 {
		base.Model.NGramMin = override.Model.NGramMin
	}
	if override.Model.NGramMax != 0 {
		base.Model.NGramMax = override.Model.NGramMax
	}
	if override.Model.MinDocFreq != 0 {
		base.Model.MinDocFreq = override.Model.MinDocFreq
	}
	if override.Model.MaxDocShare != 0 {
		base.Model.MaxDocShare = override.Model.MaxDocShare
	}
	if override.Model.Trees != 0 {
		base.Model.Trees = override.Model.Trees
	}
	if override.Model.MaxDepth != 0 {
		base.Model.MaxDepth = override.Model.MaxDepth
	}
	if override.Model.MinSamplesSplit != 0 {
		base.Model.MinSamplesSplit = override.Model.MinSamplesSplit
	}
	if override.Model.MinSamplesLeaf != 0 {
		base.Model.MinSamplesLeaf = override.Model.MinSamplesLeaf
	}
	if override.Model.Seed != 0 {
		base.Model.Seed = override.Model.Seed
	}
	if override.Model.AppendLexicalFeatures {
		base.Model.AppendLexicalFeatures = true
	}

	if override.Training.FakeCSV != "" {
		base.Training.FakeCSV = override.Training.FakeCSV
	}
	if override.Training.TrueCSV != "" {
		base.Training.TrueCSV = override.Training.TrueCSV
	}
	if override.Training.EvalRatio != 0 {
		base.Training.EvalRatio = override.Training.EvalRatio
	}

	if override.Detection.MinTextLength != 0 {
		base.Detection.MinTextLength = override.Detection.MinTextLength
	}
	if override.Detection.MaxTextLength != 0 {
		base.Detection.MaxTextLength = override.Detection.MaxTextLength
	}
	if override.Detection.RejectNonEnglish {
		base.Detection.RejectNonEnglish = true
	}

	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server: ServerConfig{
			Addr:          ":5000",
			APIKey:        "",
			RatePerMinute: 20,
			RateBurst:     5,
		},
		Model: ModelConfig{
			Path:            "models/model.json",
			MaxFeatures:     5000,
			NGramMin:        1,
			NGramMax:        3,
			MinDocFreq:      2,
			MaxDocShare:     0.9,
			Trees:           100,
			MaxDepth:        20,
			MinSamplesSplit: 5,
			MinSamplesLeaf:  2,
			Seed:            42,
		},
		Training: TrainingConfig{
			FakeCSV:   "data/Fake.csv",
			TrueCSV:   "data/True.csv",
			EvalRatio: 0.2,
		},
		Detection: DetectionConfig{
			MinTextLength:    10,
			MaxTextLength:    50000,
			RejectNonEnglish: true,
		},
		History: HistoryConfig{Path: "data/history.db"},
		Scheduler: SchedulerConfig{
			CronExpression: "",
			Timezone:       defaultTimezone,
			location:       tz,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
