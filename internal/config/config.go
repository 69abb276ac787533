// Package config handles the HCL configuration of the apptrial command.
//
// The trial core never reads this file. The CLI loads it, resolves the
// settings directory and default period from it, and injects them into
// the settings store and the trial controller.
//
// A minimal file looks like:
//
//	settings_dir = "${config_dir}/apptrial/settings"
//	trial_days   = 7
//	language     = "en"
//
//	logging {
//	  level = "info"
//	}
//
//	offer {
//	  extend_days    = 7
//	  max_total_days = 21
//	}
//
//	history {
//	  enabled        = true
//	  retention_days = 365
//	}
//
// Every attribute is optional. Missing values fall back to [Default].
package config

import (
	"grimm.is/apptrial/internal/trial"
)

const (
	DefaultLogLevel     = "info"
	DefaultExtendDays   = 7
	DefaultMaxTotalDays = 21
	DefaultOfferMessage = "Share to extend your trial by 7 days"
	DefaultHistoryDays  = 365
	HistoryFileName     = "history.db"
)

// Config is the top-level apptrial configuration.
type Config struct {
	// SettingsDir overrides the directory holding settings.json.
	// Empty means the platform default from the brand package.
	SettingsDir string `hcl:"settings_dir,optional" json:"settings_dir,omitempty"`

	// TrialDays is the period used on first run and on reset.
	TrialDays int `hcl:"trial_days,optional" json:"trial_days,omitempty"`

	// Language selects the phrase catalog. Empty means the system language.
	Language string `hcl:"language,optional" json:"language,omitempty"`

	Logging *LoggingConfig `hcl:"logging,block" json:"logging,omitempty"`
	Offer   *OfferConfig   `hcl:"offer,block" json:"offer,omitempty"`
	History *HistoryConfig `hcl:"history,block" json:"history,omitempty"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level string `hcl:"level,optional" json:"level,omitempty"`
	JSON  bool   `hcl:"json,optional" json:"json,omitempty"`
}

// OfferConfig configures the share-to-extend offer.
type OfferConfig struct {
	ExtendDays   int    `hcl:"extend_days,optional" json:"extend_days,omitempty"`
	MaxTotalDays int    `hcl:"max_total_days,optional" json:"max_total_days,omitempty"`
	Message      string `hcl:"message,optional" json:"message,omitempty"`
}

// HistoryConfig configures the local change history.
type HistoryConfig struct {
	Enabled       *bool  `hcl:"enabled,optional" json:"enabled,omitempty"`
	Path          string `hcl:"path,optional" json:"path,omitempty"` // empty: history.db next to settings.json
	RetentionDays int    `hcl:"retention_days,optional" json:"retention_days,omitempty"`
}

// IsEnabled reports whether history recording is on. It defaults to true.
func (h *HistoryConfig) IsEnabled() bool {
	return h == nil || h.Enabled == nil || *h.Enabled
}

// Eligible reports whether a trial currently totalling totalDays may be
// extended once more without passing the cap.
func (o *OfferConfig) Eligible(totalDays int) bool {
	if o == nil || o.ExtendDays <= 0 {
		return false
	}
	return totalDays+o.ExtendDays <= o.MaxTotalDays
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.TrialDays == 0 {
		c.TrialDays = trial.DefaultTrialPeriodDays
	}
	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Offer == nil {
		c.Offer = &OfferConfig{}
	}
	if c.Offer.ExtendDays == 0 {
		c.Offer.ExtendDays = DefaultExtendDays
	}
	if c.Offer.MaxTotalDays == 0 {
		c.Offer.MaxTotalDays = DefaultMaxTotalDays
	}
	if c.Offer.Message == "" {
		c.Offer.Message = DefaultOfferMessage
	}
	if c.History == nil {
		c.History = &HistoryConfig{}
	}
	if c.History.Enabled == nil {
		enabled := true
		c.History.Enabled = &enabled
	}
	if c.History.RetentionDays == 0 {
		c.History.RetentionDays = DefaultHistoryDays
	}
}
