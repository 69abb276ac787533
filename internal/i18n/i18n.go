// Package i18n holds the message catalog used for user-facing trial phrases.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLang is the fallback language
var DefaultLang = language.English

// SupportedLangs are the languages we ship phrases for
var SupportedLangs = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(SupportedLangs)

// Message keys. The English catalog entry for each key is also its format
// string, so a missing translation still renders sensibly.
const (
	MsgDays    = "%d days"
	MsgHours   = "%d hours"
	MsgAbout   = "about %s"
	MsgJoin    = "%s, %s"
	MsgLeft    = "%s left"
	MsgExpired = "trial expired"
)

// Catalog contains every phrase for every supported language.
var Catalog = mustCatalog()

func mustCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLang))

	set := func(tag language.Tag, key string, msg catalog.Message) {
		if err := b.Set(tag, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: %s %q: %v", tag, key, err))
		}
	}

	set(language.English, MsgDays, plural.Selectf(1, "%d", "=1", "%d day", "other", "%d days"))
	set(language.English, MsgHours, plural.Selectf(1, "%d", "=1", "%d hour", "other", "%d hours"))
	set(language.English, MsgAbout, catalog.String("about %s"))
	set(language.English, MsgJoin, catalog.String("%s, %s"))
	set(language.English, MsgLeft, catalog.String("%s left"))
	set(language.English, MsgExpired, catalog.String("trial expired"))

	set(language.German, MsgDays, plural.Selectf(1, "%d", "=1", "%d Tag", "other", "%d Tage"))
	set(language.German, MsgHours, plural.Selectf(1, "%d", "=1", "%d Stunde", "other", "%d Stunden"))
	set(language.German, MsgAbout, catalog.String("etwa %s"))
	set(language.German, MsgJoin, catalog.String("%s, %s"))
	set(language.German, MsgLeft, catalog.String("noch %s"))
	set(language.German, MsgExpired, catalog.String("Testzeitraum abgelaufen"))

	return b
}

// Match returns the supported base language closest to tag.
func Match(tag language.Tag) language.Tag {
	matched, _, _ := matcher.Match(tag)
	base, _ := matched.Base()
	return language.Make(base.String())
}

// Parse resolves a language name ("de", "en_US.UTF-8", "de-AT") to a
// supported tag. Unknown or empty input yields DefaultLang.
func Parse(lang string) language.Tag {
	// Strip encoding (e.g. .UTF-8) if present
	if i := strings.Index(lang, "."); i != -1 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")
	if lang == "" {
		return DefaultLang
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLang
	}
	return Match(tag)
}

// IsSupported reports whether lang resolves to a language we have phrases for
// without falling back.
func IsSupported(lang string) bool {
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return false
	}
	_, _, confidence := matcher.Match(tag)
	return confidence >= language.High
}

// NewPrinter returns a message printer bound to the trial catalog.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag), message.Catalog(Catalog))
}

// SystemLanguage returns the language of the user's locale (from env vars).
func SystemLanguage() language.Tag {
	lang := os.Getenv("LC_ALL")
	if lang == "" {
		lang = os.Getenv("LANG")
	}
	return Parse(lang)
}
