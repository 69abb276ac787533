package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// ErrConfigExists is returned by WriteFile when the target exists and
// overwrite was not requested.
var ErrConfigExists = errors.New("config file already exists")

// Render serializes cfg to HCL. Empty optional attributes are omitted so the
// output round-trips through Parse.
func Render(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if cfg.SettingsDir != "" {
		body.SetAttributeValue("settings_dir", cty.StringVal(cfg.SettingsDir))
	}
	body.SetAttributeValue("trial_days", cty.NumberIntVal(int64(cfg.TrialDays)))
	if cfg.Language != "" {
		body.SetAttributeValue("language", cty.StringVal(cfg.Language))
	}

	if cfg.Logging != nil {
		body.AppendNewline()
		lb := body.AppendNewBlock("logging", nil).Body()
		lb.SetAttributeValue("level", cty.StringVal(cfg.Logging.Level))
		if cfg.Logging.JSON {
			lb.SetAttributeValue("json", cty.True)
		}
	}

	if cfg.Offer != nil {
		body.AppendNewline()
		ob := body.AppendNewBlock("offer", nil).Body()
		ob.SetAttributeValue("extend_days", cty.NumberIntVal(int64(cfg.Offer.ExtendDays)))
		ob.SetAttributeValue("max_total_days", cty.NumberIntVal(int64(cfg.Offer.MaxTotalDays)))
		if cfg.Offer.Message != "" {
			ob.SetAttributeValue("message", cty.StringVal(cfg.Offer.Message))
		}
	}

	if cfg.History != nil {
		body.AppendNewline()
		hb := body.AppendNewBlock("history", nil).Body()
		hb.SetAttributeValue("enabled", cty.BoolVal(cfg.History.IsEnabled()))
		if cfg.History.Path != "" {
			hb.SetAttributeValue("path", cty.StringVal(cfg.History.Path))
		}
		hb.SetAttributeValue("retention_days", cty.NumberIntVal(int64(cfg.History.RetentionDays)))
	}

	return f.Bytes()
}

// WriteFile renders cfg to path, creating parent directories.
func WriteFile(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, Render(cfg), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// WriteDefault writes the default configuration to path. An existing file
// is left alone.
func WriteDefault(path string) error {
	return WriteFile(path, Default(), false)
}
