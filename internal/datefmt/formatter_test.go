package datefmt_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/grafana/regexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/tzlabel/internal/datefmt"
	"github.com/openkcm/tzlabel/internal/locale"
	"github.com/openkcm/tzlabel/internal/zonename"
)

var formattedShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \S+$`)

type stubResolver struct {
	label   zonename.Label
	locales []string
}

func (s *stubResolver) Resolve(_ time.Time, locale string) zonename.Label {
	s.locales = append(s.locales, locale)
	return s.label
}

func newStubResolver(text string) *stubResolver {
	return &stubResolver{label: zonename.Label{Text: text, Tier: zonename.TierPrimary}}
}

func TestFormatRejectsInvalidTimestamps(t *testing.T) {
	tests := map[string]struct {
		timestamp string
	}{
		"empty":           {timestamp: ""},
		"not a date":      {timestamp: "not-a-date"},
		"words":           {timestamp: "yesterday at noon"},
		"only separators": {timestamp: "--T::"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// given
			resolver := newStubResolver("UTC")
			formatter := datefmt.New(resolver, datefmt.WithLocation(time.UTC))

			// when
			got, ok := formatter.Format(t.Context(), test.timestamp, "en-US")

			// then
			assert.False(t, ok)
			assert.Empty(t, got)
			assert.Empty(t, resolver.locales, "resolver must not be called for rejected input")
		})
	}
}

func TestFormat(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)

	tests := []struct {
		name      string
		timestamp string
		loc       *time.Location
		label     string
		expected  string
	}{
		{
			name:      "should render a UTC instant",
			timestamp: "2025-12-19T14:00:00Z",
			loc:       time.UTC,
			label:     "UTC",
			expected:  "2025-12-19 14:00:00 UTC",
		},
		{
			name:      "should zero pad single digit fields",
			timestamp: "2025-01-02T03:04:05Z",
			loc:       time.UTC,
			label:     "UTC",
			expected:  "2025-01-02 03:04:05 UTC",
		},
		{
			name:      "should render in the configured location",
			timestamp: "2025-12-19T14:00:00Z",
			loc:       jst,
			label:     "JST",
			expected:  "2025-12-19 23:00:00 JST",
		},
		{
			name:      "should roll over the date in the configured location",
			timestamp: "2025-12-19T20:30:00Z",
			loc:       jst,
			label:     "JST",
			expected:  "2025-12-20 05:30:00 JST",
		},
		{
			name:      "should honour the offset of the timestamp",
			timestamp: "2025-12-19T14:00:00+09:00",
			loc:       time.UTC,
			label:     "UTC",
			expected:  "2025-12-19 05:00:00 UTC",
		},
		{
			name:      "should read a timestamp without zone in the configured location",
			timestamp: "2025-12-19T14:00:00",
			loc:       jst,
			label:     "JST",
			expected:  "2025-12-19 14:00:00 JST",
		},
		{
			name:      "should drop fractional seconds",
			timestamp: "2025-12-19T14:00:09.999Z",
			loc:       time.UTC,
			label:     "UTC",
			expected:  "2025-12-19 14:00:09 UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			formatter := datefmt.New(newStubResolver(tt.label), datefmt.WithLocation(tt.loc))

			// when
			got, ok := formatter.Format(t.Context(), tt.timestamp, "en-US")

			// then
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
			assert.Regexp(t, formattedShape, got)
		})
	}
}

func TestFormatPassesLocale(t *testing.T) {
	resolver := newStubResolver("JST")
	formatter := datefmt.New(resolver, datefmt.WithLocation(time.UTC))

	_, ok := formatter.Format(t.Context(), "2025-12-19T14:00:00Z", "ja-JP")
	require.True(t, ok)

	assert.Equal(t, []string{"ja-JP"}, resolver.locales)
}

func TestFormatWithCatalog(t *testing.T) {
	resolver := zonename.NewResolver(locale.DefaultCatalog())

	t.Run("should label UTC", func(t *testing.T) {
		formatter := datefmt.New(resolver, datefmt.WithLocation(time.UTC))

		got, ok := formatter.Format(t.Context(), "2025-12-19T14:00:00Z", "en-US")

		require.True(t, ok)
		assert.Equal(t, "2025-12-19 14:00:00 UTC", got)
	})

	t.Run("should label a named zone", func(t *testing.T) {
		formatter := datefmt.New(resolver, datefmt.WithLocation(time.FixedZone("JST", 9*3600)))

		got, ok := formatter.Format(t.Context(), "2025-12-19T14:00:00Z", "en-US")

		require.True(t, ok)
		assert.Equal(t, "2025-12-19 23:00:00 JST", got)
	})

	t.Run("should fall back to the offset of an unnamed zone", func(t *testing.T) {
		formatter := datefmt.New(resolver, datefmt.WithLocation(time.FixedZone("+04", 4*3600)))

		got, ok := formatter.Format(t.Context(), "2025-12-19T14:00:00Z", "")

		require.True(t, ok)
		assert.Equal(t, "2025-12-19 18:00:00 GMT+4", got)
	})

	t.Run("should label zones from the timezone database", func(t *testing.T) {
		tests := []struct {
			zone      string
			timestamp string
			expected  string
		}{
			{zone: "Europe/Berlin", timestamp: "2025-12-19T14:00:00Z", expected: "2025-12-19 15:00:00 CET"},
			{zone: "Europe/Berlin", timestamp: "2025-07-01T12:00:00Z", expected: "2025-07-01 14:00:00 CEST"},
			{zone: "Europe/London", timestamp: "2025-07-01T12:00:00Z", expected: "2025-07-01 13:00:00 BST"},
			{zone: "America/Los_Angeles", timestamp: "2025-07-01T12:00:00Z", expected: "2025-07-01 05:00:00 PDT"},
		}

		for _, tt := range tests {
			loc, err := time.LoadLocation(tt.zone)
			require.NoError(t, err)

			formatter := datefmt.New(resolver, datefmt.WithLocation(loc))

			got, ok := formatter.Format(t.Context(), tt.timestamp, "en-US")

			require.True(t, ok, tt.zone)
			assert.Equal(t, tt.expected, got, tt.zone)
		}
	})

	t.Run("should be idempotent", func(t *testing.T) {
		formatter := datefmt.New(resolver, datefmt.WithLocation(time.UTC))

		first, _ := formatter.Format(t.Context(), "2025-06-01T08:09:10Z", "en-US")
		second, _ := formatter.Format(t.Context(), "2025-06-01T08:09:10Z", "en-US")

		assert.Equal(t, first, second)
	})
}

func TestParse(t *testing.T) {
	formatter := datefmt.New(newStubResolver("UTC"), datefmt.WithLocation(time.UTC))

	t.Run("should reject an empty timestamp", func(t *testing.T) {
		_, err := formatter.Parse("")
		assert.ErrorIs(t, err, datefmt.ErrEmptyTimestamp)
	})

	t.Run("should reject a malformed timestamp", func(t *testing.T) {
		_, err := formatter.Parse("not-a-date")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, datefmt.ErrEmptyTimestamp)
	})

	t.Run("should read a date-only timestamp as UTC", func(t *testing.T) {
		jst := datefmt.New(newStubResolver("JST"), datefmt.WithLocation(time.FixedZone("JST", 9*3600)))

		got, err := jst.Parse("2025-12-19")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)))

		formatted, ok := jst.Format(t.Context(), "2025-12-19", "en-US")
		require.True(t, ok)
		assert.Equal(t, "2025-12-19 09:00:00 JST", formatted)
	})

	t.Run("should parse a valid timestamp", func(t *testing.T) {
		got, err := formatter.Parse("2025-12-19T14:00:00Z")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 12, 19, 14, 0, 0, 0, time.UTC)))
	})
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, datefmt.New(newStubResolver("")).Location())
	assert.Equal(t, time.Local, datefmt.New(newStubResolver(""), datefmt.WithLocation(nil)).Location())
	assert.Equal(t, time.UTC, datefmt.New(newStubResolver(""), datefmt.WithLocation(time.UTC)).Location())
}

func TestISO(t *testing.T) {
	formatter := datefmt.New(newStubResolver(""), datefmt.WithLocation(time.FixedZone("JST", 9*3600)))

	got := formatter.ISO(time.Date(2025, 12, 19, 14, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025-12-19T23:00:00+09:00", got)
}
