package i18n

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a translation, English first.
var Supported = []language.Tag{language.English, language.German}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(Supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range german {
		if err := b.SetString(language.German, e.key, e.de); err != nil {
			panic(fmt.Sprintf("i18n: %q: %v", e.key, err))
		}
	}
	return b
}

// Printer formats user-visible strings for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for lang, a BCP 47 tag such as "de" or "de-AT".
// Unknown or empty tags fall back to English.
func New(lang string) *Printer {
	tag := language.English
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = Supported[idx]
			}
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Language returns the resolved language.
func (p *Printer) Language() language.Tag {
	return p.tag
}

func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// T translates a key without arguments.
func (p *Printer) T(key string) string {
	return p.p.Sprintf(key)
}

// FormatDate renders t as a long date with weekday, hour and minute.
func (p *Printer) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if p.tag == language.German {
		return monday.Format(t, "Monday, 2. January 2006 um 15:04", monday.LocaleDeDE)
	}
	return monday.Format(t, "Monday, January 2, 2006, 15:04", monday.LocaleEnUS)
}
