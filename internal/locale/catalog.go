package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/et"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/zh"
	"golang.org/x/text/language"

	ut "github.com/go-playground/universal-translator"
)

const (
	// longFormLayout mirrors the usual English date string, the zone name is appended in parentheses.
	longFormLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"
	// probeZone is an abbreviation no locale knows, so translators print it verbatim.
	probeZone = "\x00"
)

// Catalog looks up CLDR zone names for locales.
// It is read only after construction and safe for concurrent use.
type Catalog struct {
	uni     *ut.UniversalTranslator
	english locales.Translator
}

// NewCatalog creates a Catalog serving the supported translators.
// Lookups for unknown locales use the fallback translator.
func NewCatalog(fallback locales.Translator, supported ...locales.Translator) *Catalog {
	return &Catalog{
		uni:     ut.New(fallback, supported...),
		english: en.New(),
	}
}

// DefaultCatalog creates a Catalog with the bundled locales and English as fallback.
func DefaultCatalog() *Catalog {
	fallback := en.New()

	return NewCatalog(fallback,
		fallback,
		en_US.New(),
		en_GB.New(),
		de.New(),
		es.New(),
		et.New(),
		fr.New(),
		it.New(),
		ja.New(),
		ko.New(),
		zh.New(),
	)
}

// Normalize converts a BCP-47 tag into the translator key format, "en-US" becomes "en_US".
// The region is kept only when the tag names it. Malformed tags yield "".
func Normalize(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return ""
	}

	base, _ := parsed.Base()
	key := base.String()

	if region, confidence := parsed.Region(); confidence == language.Exact {
		key += "_" + region.String()
	}

	return key
}

// Translator returns the translator for the tag, trying the full tag first
// and then its base language before falling back.
func (c *Catalog) Translator(tag string) locales.Translator {
	key := Normalize(tag)

	candidates := []string{key}
	if base, _, ok := strings.Cut(key, "_"); ok {
		candidates = append(candidates, base)
	}

	trans, _ := c.uni.FindTranslator(candidates...)

	return trans
}

// ShortName returns the zone abbreviation of t when it is made of letters, e.g. "CET"
// or "PDT", otherwise the GMT offset form. Numeric abbreviations such as "+04" are kept
// only when the locale's translator has a distinct name for them.
// The locale never changes the abbreviation itself: every bundled translator prints
// the English tzdata abbreviation, so "ja" and "de" yield the same result as "en-US".
func (c *Catalog) ShortName(t time.Time, tag string) string {
	abbr, _ := t.Zone()
	if alphabetic(abbr) {
		return abbr
	}

	name := zoneName(c.Translator(tag), t)
	if abbr != "" && name != "" && name != abbr {
		return abbr
	}

	return GMTOffset(t)
}

func alphabetic(abbr string) bool {
	if abbr == "" {
		return false
	}

	for _, r := range abbr {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}

	return true
}

// LongForm renders t in English with the long zone name in parentheses,
// e.g. "Fri Dec 19 2025 23:00:00 GMT+0900 (Japan Standard Time)".
// The parentheses are left out when the zone has no name at all.
func (c *Catalog) LongForm(t time.Time) string {
	s := t.Format(longFormLayout)

	name := zoneName(c.english, t)
	if name == "" {
		return s
	}

	return s + " (" + name + ")"
}

// GMTOffset formats the offset of t the way CLDR does for zones without a name:
// "GMT" for zero, "GMT+9", "GMT-3:30".
func GMTOffset(t time.Time) string {
	_, offset := t.Zone()
	if offset == 0 {
		return "GMT"
	}

	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	hours := offset / 3600
	minutes := offset % 3600 / 60

	if minutes == 0 {
		return fmt.Sprintf("GMT%c%d", sign, hours)
	}

	return fmt.Sprintf("GMT%c%d:%02d", sign, hours, minutes)
}

// zoneName returns the long zone name the translator prints for t. Translators
// print the abbreviation itself when they have no name for it.
func zoneName(tr locales.Translator, t time.Time) string {
	_, offset := t.Zone()

	probe := tr.FmtTimeFull(t.In(time.FixedZone(probeZone, offset)))

	before, after, ok := strings.Cut(probe, probeZone)
	if !ok {
		return ""
	}

	full := tr.FmtTimeFull(t)
	if len(full) < len(before)+len(after) || !strings.HasPrefix(full, before) || !strings.HasSuffix(full, after) {
		return ""
	}

	return strings.TrimSpace(full[len(before) : len(full)-len(after)])
}
