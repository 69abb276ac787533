package trial

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grimm.is/apptrial/internal/clock"
	"grimm.is/apptrial/internal/i18n"
)

// Formatter renders remaining trial time as an approximate phrase such as
// "about 6 days, 12 hours", or "0 days" once the trial is over.
//
// Remaining time is truncated to whole hours before it is split into days and
// hours. One second past a day boundary therefore reads as "4 days, 23 hours"
// rather than "5 days".
type Formatter struct {
	lang language.Tag
}

// NewFormatter returns a Formatter for lang. Unsupported languages fall back
// to English.
func NewFormatter(lang language.Tag) *Formatter {
	return &Formatter{lang: i18n.Match(lang)}
}

// DefaultFormatter renders English phrases.
func DefaultFormatter() *Formatter {
	return NewFormatter(i18n.DefaultLang)
}

// Language returns the language phrases are rendered in.
func (f *Formatter) Language() language.Tag { return f.lang }

// Format describes the time between now and expiration.
func (f *Formatter) Format(now, expiration time.Time) string {
	// Printers and casers keep internal buffers; build them per call.
	p := i18n.NewPrinter(f.lang)
	lower := cases.Lower(f.lang)

	if now.After(expiration) {
		return lower.String(p.Sprintf(i18n.MsgDays, 0))
	}

	days, hours := split(expiration.Sub(now))

	var phrase string
	switch {
	case days > 0 && hours > 0:
		phrase = p.Sprintf(i18n.MsgJoin, p.Sprintf(i18n.MsgDays, days), p.Sprintf(i18n.MsgHours, hours))
	case days > 0:
		phrase = p.Sprintf(i18n.MsgDays, days)
	default:
		phrase = p.Sprintf(i18n.MsgHours, hours)
	}

	return lower.String(p.Sprintf(i18n.MsgAbout, phrase))
}

// split breaks a non-negative interval into whole days and the whole hours
// left over. Minutes and seconds are dropped.
func split(remaining time.Duration) (days, hours int) {
	remaining = remaining.Truncate(time.Hour)
	days = int(remaining / clock.Day)
	hours = int((remaining % clock.Day) / time.Hour)
	return days, hours
}
