package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// LoadFile loads a config file (HCL or JSON syntax). A missing file yields
// [Default] with no error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes config bytes. The filename selects the syntax: ".json"
// is parsed as HCL's JSON variant, anything else as native HCL.
func Parse(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(data, filename)
	} else {
		file, diags = parser.ParseHCL(data, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, EvalContext(), &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	cfg.ApplyDefaults()
	if errs := cfg.Validate(); errs.HasErrors() {
		return nil, errs
	}
	return &cfg, nil
}

// EvalContext exposes the variables available to expressions in the
// config file: home and config_dir.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":       cty.StringVal(homeDir()),
			"config_dir": cty.StringVal(configDir()),
		},
	}
}

var (
	userHomeDir   = os.UserHomeDir
	userConfigDir = os.UserConfigDir
)

func homeDir() string {
	if dir, err := userHomeDir(); err == nil {
		return dir
	}
	return "."
}

func configDir() string {
	if dir, err := userConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(homeDir(), ".config")
}
