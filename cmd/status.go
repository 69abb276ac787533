package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v2"

	"grimm.is/apptrial/internal/brand"
	"grimm.is/apptrial/internal/i18n"
	"grimm.is/apptrial/internal/tui"
)

// StatusReport is the machine readable form of `apptrial status`.
type StatusReport struct {
	DateInstalled     string `json:"dateInstalled" yaml:"dateInstalled"`
	DateExpired       string `json:"dateExpired" yaml:"dateExpired"`
	TrialPeriodInDays int    `json:"trialPeriodInDays" yaml:"trialPeriodInDays"`
	RemainingSeconds  int64  `json:"remainingSeconds" yaml:"remainingSeconds"`
	Remaining         string `json:"remaining" yaml:"remaining"`
	Expired           bool   `json:"expired" yaml:"expired"`
	SettingsPath      string `json:"settingsPath" yaml:"settingsPath"`
}

// Report snapshots the current trial.
func (e *Env) Report() StatusReport {
	return StatusReport{
		DateInstalled:     e.Trial.DateInstalled().Format(time.RFC3339),
		DateExpired:       e.Trial.DateExpired().Format(time.RFC3339),
		TrialPeriodInDays: e.Trial.TotalDays(),
		RemainingSeconds:  int64(e.Trial.Remaining() / time.Second),
		Remaining:         e.Trial.DaysRemainingText(),
		Expired:           e.Trial.IsExpired(),
		SettingsPath:      e.Store.Path(),
	}
}

// Status snapshots the current trial for the terminal views.
func (e *Env) Status() tui.Status {
	return tui.Status{
		Installed: e.Trial.DateInstalled(),
		Expires:   e.Trial.DateExpired(),
		TotalDays: e.Trial.TotalDays(),
		Left:      e.Trial.Remaining(),
		Remaining: e.Trial.DaysRemainingText(),
		Expired:   e.Trial.IsExpired(),
		Path:      e.Store.Path(),
	}
}

// Summary is the one-line localized state, e.g. "about 6 days left".
func (e *Env) Summary() string {
	p := e.printer()
	if e.Trial.IsExpired() {
		return p.Sprintf(i18n.MsgExpired)
	}
	return p.Sprintf(i18n.MsgLeft, e.Trial.DaysRemainingText())
}

// RunStatus prints the trial state as text, json or yaml.
func RunStatus(env *Env, format string) error {
	w := env.out()

	switch format {
	case "", "text":
		Printer.Fprintln(w, tui.RenderStatus(brand.Name, env.Status()))
		Printer.Fprintln(w, env.Summary())
		return nil

	case "json":
		data, err := json.MarshalIndent(env.Report(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		data, err := yaml.Marshal(env.Report())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}
