package config

import (
	"fmt"
	"strings"

	"grimm.is/apptrial/internal/i18n"
	"grimm.is/apptrial/internal/logging"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return "config validation failed: " + strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate validates the configuration. Call ApplyDefaults first.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if c.TrialDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "trial_days",
			Message: fmt.Sprintf("must not be negative, got %d", c.TrialDays),
		})
	}

	if c.Language != "" && !i18n.IsSupported(c.Language) {
		errs = append(errs, ValidationError{
			Field:   "language",
			Message: fmt.Sprintf("unsupported language %q", c.Language),
		})
	}

	if c.Logging != nil {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, ValidationError{Field: "logging.level", Message: err.Error()})
		}
	}

	if o := c.Offer; o != nil {
		if o.ExtendDays < 0 {
			errs = append(errs, ValidationError{
				Field:   "offer.extend_days",
				Message: fmt.Sprintf("must not be negative, got %d", o.ExtendDays),
			})
		}
		if o.MaxTotalDays < 0 {
			errs = append(errs, ValidationError{
				Field:   "offer.max_total_days",
				Message: fmt.Sprintf("must not be negative, got %d", o.MaxTotalDays),
			})
		}
	}

	if h := c.History; h != nil && h.RetentionDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.retention_days",
			Message: fmt.Sprintf("must not be negative, got %d", h.RetentionDays),
		})
	}

	return errs
}
