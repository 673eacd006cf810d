package zonename

import (
	"strings"
	"time"

	"github.com/grafana/regexp"
)

// DefaultLocale is used when the caller passes an empty locale.
const DefaultLocale = "en-US"

// minAcronymLen is the shortest derived acronym accepted over the short name.
const minAcronymLen = 2

var (
	offsetStylePattern = regexp.MustCompile(`GMT|UTC|[+-]\d`)
	longNamePattern    = regexp.MustCompile(`\(([^)]+)\)`)
	wordInitialPattern = regexp.MustCompile(`\b[A-Z]`)
)

// Source provides the locale data the resolver works from.
type Source interface {
	// ShortName returns the short zone name of t for the locale, e.g. "JST" or "GMT+9".
	ShortName(t time.Time, locale string) string
	// LongForm returns an English rendering of t which embeds the long zone
	// name in parentheses, e.g. "... GMT+0900 (Japan Standard Time)".
	LongForm(t time.Time) string
}

// Tier tells which step of the resolution produced a label.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierAcronym  Tier = "acronym"
	TierFallback Tier = "fallback"
)

func (t Tier) String() string {
	return string(t)
}

// Label is a resolved timezone label.
type Label struct {
	Text string
	Tier Tier
}

func (l Label) String() string {
	return l.Text
}

// Resolver derives short timezone labels from a Source.
type Resolver struct {
	source Source
}

// NewResolver creates a Resolver backed by the given source.
func NewResolver(source Source) *Resolver {
	return &Resolver{
		source: source,
	}
}

// Name returns the timezone label of t for the locale.
func (r *Resolver) Name(t time.Time, locale string) string {
	return r.Resolve(t, locale).Text
}

// Resolve returns the short zone name of t unless it is offset-style.
// An offset-style name is replaced by the acronym of the long zone name
// when one of at least two letters can be derived, otherwise it is kept.
func (r *Resolver) Resolve(t time.Time, locale string) Label {
	if locale == "" {
		locale = DefaultLocale
	}

	short := r.source.ShortName(t, locale)
	if !IsOffsetStyle(short) {
		return Label{Text: short, Tier: TierPrimary}
	}

	if longName, ok := LongName(r.source.LongForm(t)); ok {
		acronym := Acronym(longName)
		if len(acronym) >= minAcronymLen {
			return Label{Text: acronym, Tier: TierAcronym}
		}
	}

	return Label{Text: short, Tier: TierFallback}
}

// IsOffsetStyle reports whether the label names an offset rather than a zone,
// i.e. it contains "GMT" or "UTC", or a sign directly followed by a digit.
func IsOffsetStyle(label string) bool {
	return offsetStylePattern.MatchString(label)
}

// LongName returns the text inside the first parenthesised group of s.
func LongName(s string) (string, bool) {
	m := longNamePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// Acronym joins the uppercase letters that start a word in name,
// "Japan Standard Time" becomes "JST".
func Acronym(name string) string {
	return strings.Join(wordInitialPattern.FindAllString(name, -1), "")
}
