package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"grimm.is/apptrial/internal/audit"
)

// ErrHistoryDisabled is returned by RunHistory when no history is kept.
var ErrHistoryDisabled = errors.New("history is disabled")

// RunHistory prints the most recent trial changes, newest first.
func RunHistory(env *Env, limit int, format string) error {
	if env.History == nil {
		return ErrHistoryDisabled
	}
	env.FlushHistory()

	records, err := env.History.Query(limit)
	if err != nil {
		return err
	}

	w := env.out()
	switch format {
	case "", "text":
		if len(records) == 0 {
			Printer.Fprintln(w, "No trial changes recorded.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tACTION\tDAYS\tDELTA\tEXPIRES\tDETAIL")
		for _, r := range records {
			expires := ""
			if !r.ExpirationDate.IsZero() {
				expires = r.ExpirationDate.Format(time.RFC3339)
			}
			delta := ""
			if r.Delta != 0 {
				delta = fmt.Sprintf("%+d", r.Delta)
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
				r.Timestamp.Local().Format(time.RFC3339), r.Action, r.TrialPeriodDays, delta, expires, r.Detail)
		}
		return tw.Flush()

	case "json":
		if records == nil {
			records = []audit.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	return fmt.Errorf("unknown output format %q (want text or json)", format)
}
