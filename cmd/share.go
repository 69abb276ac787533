package cmd

import (
	"errors"
	"fmt"

	"grimm.is/apptrial/internal/tui"
)

// ErrOfferUnavailable is returned when another extension would push the
// trial past the configured cap.
var ErrOfferUnavailable = errors.New("share offer not available")

// Confirmer asks the user whether to accept the offer.
type Confirmer func(title, description string) (bool, error)

// TerminalConfirm prompts on the terminal.
func TerminalConfirm(title, description string) (bool, error) {
	return tui.Confirm(title, description, "Share", "Not now")
}

// RunShare applies the share-to-extend offer: if one more extension fits
// under max_total_days, ask (unless assumeYes) and extend by extend_days.
func RunShare(env *Env, assumeYes bool, confirm Confirmer) error {
	offer := env.Config.Offer
	total := env.Trial.TotalDays()

	if !offer.Eligible(total) {
		return fmt.Errorf("%w: trial is %d days, limit is %d", ErrOfferUnavailable, total, offer.MaxTotalDays)
	}

	if !assumeYes {
		if confirm == nil {
			confirm = TerminalConfirm
		}
		desc := fmt.Sprintf("Currently %s. Sharing adds %d days.", env.Summary(), offer.ExtendDays)
		ok, err := confirm(offer.Message, desc)
		if err != nil {
			return err
		}
		if !ok {
			Printer.Fprintln(env.out(), "Maybe later.")
			return nil
		}
	}

	if err := env.Trial.ExtendTrial(offer.ExtendDays); err != nil {
		return fmt.Errorf("trial extended in memory but not saved: %w", err)
	}
	env.Logger.Info("share offer accepted", "extend_days", offer.ExtendDays, "total", env.Trial.TotalDays())
	Printer.Fprintf(env.out(), "Thanks for sharing! %s\n", env.Summary())
	return nil
}
