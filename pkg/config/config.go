package config

import "time"

// Config is the root application configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Static     StaticConfig     `yaml:"static"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Storage    StorageConfig    `yaml:"storage"`
	Status     StatusConfig     `yaml:"status"`
	Log        LogConfig        `yaml:"log"`
}

// APIConfig holds the remote wordlist service settings. When disabled every
// call uses the static source without probing.
type APIConfig struct {
	Disabled bool          `yaml:"disabled" env:"LEXIQUEST_API_DISABLED"`
	BaseURL  string        `yaml:"base_url" env:"LEXIQUEST_API_BASE_URL" env-default:"http://localhost:28080"`
	Timeout  time.Duration `yaml:"timeout"  env:"LEXIQUEST_API_TIMEOUT"  env-default:"5s"`
}

// DictionaryConfig holds the word lookup service used for enrichment.
// When disabled entries are used as loaded.
type DictionaryConfig struct {
	Disabled bool          `yaml:"disabled" env:"LEXIQUEST_DICTIONARY_DISABLED"`
	BaseURL  string        `yaml:"base_url" env:"LEXIQUEST_DICTIONARY_BASE_URL" env-default:"http://localhost:28080/dictionary"`
	Timeout  time.Duration `yaml:"timeout"  env:"LEXIQUEST_DICTIONARY_TIMEOUT"  env-default:"5s"`
}

// StaticConfig selects where wordlists are read from when the API is not used.
// Base is "bundled", a local directory or an http(s) URL.
type StaticConfig struct {
	Base    string `yaml:"base"    env:"LEXIQUEST_STATIC_BASE"    env-default:"bundled"`
	Catalog string `yaml:"catalog" env:"LEXIQUEST_STATIC_CATALOG"`
}

// QuizConfig holds quiz defaults.
type QuizConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"LEXIQUEST_QUIZ_DEFAULT_LIMIT" env-default:"10"`
}

// StorageConfig holds local persistence settings. An empty ProgressDB keeps
// history in memory only.
type StorageConfig struct {
	ProgressDB string `yaml:"progress_db" env:"LEXIQUEST_STORAGE_PROGRESS_DB" env-default:".lexiquest/progress.db"`
}

// StatusConfig holds settings of the status watch command.
type StatusConfig struct {
	WatchInterval time.Duration `yaml:"watch_interval" env:"LEXIQUEST_STATUS_WATCH_INTERVAL" env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LEXIQUEST_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LEXIQUEST_LOG_FORMAT" env-default:"text"`
}
