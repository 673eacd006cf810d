package datefmt

import (
	"context"
	"errors"
	"time"

	"github.com/grafana/regexp"
	"github.com/relvacode/iso8601"
	"github.com/samber/oops"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/tzlabel/internal/zonename"
)

const (
	ErrDomain = "datefmt"

	// dateTimeLayout renders fixed width calendar fields, the zone label is appended after a space.
	dateTimeLayout = "2006-01-02 15:04:05"
)

var ErrEmptyTimestamp = errors.New("timestamp is empty")

// dateOnly matches calendar dates without a time part, which are read as UTC.
var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Resolver resolves the timezone label of an instant.
type Resolver interface {
	Resolve(t time.Time, locale string) zonename.Label
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLocation sets the location calendar fields are rendered in.
// A nil location keeps the process timezone.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithMeters enables metrics for the formatter.
func WithMeters(m *Meters) Option {
	return func(f *Formatter) {
		f.meters = m
	}
}

// Formatter renders timestamps as "YYYY-MM-DD HH:MM:SS ACRO".
type Formatter struct {
	resolver Resolver
	loc      *time.Location
	meters   *Meters
}

// New creates a Formatter. Without WithLocation it renders in the process timezone.
func New(resolver Resolver, opts ...Option) *Formatter {
	f := &Formatter{
		resolver: resolver,
		loc:      time.Local,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Location returns the location calendar fields are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Format parses the ISO-8601 timestamp and renders it with its timezone label.
// It returns false for an empty or unparsable timestamp.
func (f *Formatter) Format(ctx context.Context, isoTimestamp, locale string) (string, bool) {
	start := time.Now()

	t, err := f.Parse(isoTimestamp)
	if err != nil {
		outcome := OutcomeInvalid
		if errors.Is(err, ErrEmptyTimestamp) {
			outcome = OutcomeEmpty
		}

		slogctx.Debug(ctx, "rejecting timestamp", "timestamp", isoTimestamp, "error", err)
		f.meters.handleFormat(ctx, outcome, start)

		return "", false
	}

	s := f.FormatTime(ctx, t, locale)
	f.meters.handleFormat(ctx, OutcomeFormatted, start)

	return s, true
}

// FormatTime renders an already parsed instant.
func (f *Formatter) FormatTime(ctx context.Context, t time.Time, locale string) string {
	local := t.In(f.loc)

	return local.Format(dateTimeLayout) + " " + f.Label(ctx, local, locale).Text
}

// Label resolves the timezone label of t in the formatter's location.
func (f *Formatter) Label(ctx context.Context, t time.Time, locale string) zonename.Label {
	label := f.resolver.Resolve(t.In(f.loc), locale)
	slogctx.Debug(ctx, "resolved timezone label", "label", label.Text, "tier", label.Tier)
	f.meters.handleResolve(ctx, label.Tier)

	return label
}

// Parse parses an ISO-8601 timestamp. Date-only timestamps are read as UTC midnight,
// other timestamps without a zone designator are read in the formatter's location.
func (f *Formatter) Parse(isoTimestamp string) (time.Time, error) {
	if isoTimestamp == "" {
		return time.Time{}, ErrEmptyTimestamp
	}

	loc := f.loc
	if dateOnly.MatchString(isoTimestamp) {
		loc = time.UTC
	}

	t, err := iso8601.ParseStringInLocation(isoTimestamp, loc)
	if err != nil {
		return time.Time{}, oops.In(ErrDomain).
			With("timestamp", isoTimestamp).
			Wrapf(err, "parsing timestamp")
	}

	return t, nil
}

// ISO renders t as RFC 3339 in the formatter's location.
func (f *Formatter) ISO(t time.Time) string {
	return t.In(f.loc).Format(time.RFC3339)
}
