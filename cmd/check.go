package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/apptrial/internal/settings"
)

// ErrSettingsDiffer is returned by RunCheck when the file on disk is not in
// normal form.
var ErrSettingsDiffer = errors.New("settings file differs from normalized state")

// RunCheck compares the settings file with what the store would write for
// the same state. Hand edits that leave dateExpired inconsistent with
// dateInstalled + trialPeriodInDays show up as a diff. store must not have
// been handed to a trial.Controller, which rewrites the file on startup.
func RunCheck(store *settings.Store, w io.Writer) error {
	path := store.Path()

	raw, err := store.ReadRaw()
	if err != nil {
		return err
	}
	state, err := store.Read()
	if err != nil {
		return err
	}
	normalized, err := store.Encode(state)
	if err != nil {
		return err
	}

	onDisk := string(raw)
	expected := string(normalized)
	if onDisk == expected {
		Printer.Fprintf(w, "%s: OK\n", path)
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(onDisk),
		B:        difflib.SplitLines(expected),
		FromFile: path,
		ToFile:   "normalized",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	fmt.Fprint(w, text)

	return ErrSettingsDiffer
}
