package cmd

import (
	"fmt"
	"strconv"
)

// RunExtend adds days to the trial. Negative values shorten it.
func RunExtend(env *Env, arg string) error {
	days, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid number of days %q", arg)
	}

	if err := env.Trial.ExtendTrial(days); err != nil {
		return fmt.Errorf("trial extended in memory but not saved: %w", err)
	}
	Printer.Fprintf(env.out(), "Trial period is now %d days. %s\n", env.Trial.TotalDays(), env.Summary())
	return nil
}

// RunReset starts a fresh default trial at the current time.
func RunReset(env *Env) error {
	if err := env.Trial.ResetTrialPeriod(); err != nil {
		return fmt.Errorf("trial reset in memory but not saved: %w", err)
	}
	Printer.Fprintf(env.out(), "Trial reset to %d days. %s\n", env.Trial.TotalDays(), env.Summary())
	return nil
}

// RunExpire ends the trial immediately.
func RunExpire(env *Env) error {
	if err := env.Trial.ExpireTrial(); err != nil {
		return fmt.Errorf("trial expired in memory but not saved: %w", err)
	}
	Printer.Fprintln(env.out(), env.Summary())
	return nil
}
