package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"golang.org/x/text/language"

	slogctx "github.com/veqryn/slog-context"
)

const (
	// LocalTimezone selects the timezone of the running process.
	LocalTimezone = "Local"
	DefaultLocale = "en-US"
)

var (
	ErrInvalidTimezone = errors.New("timezone is not a known IANA location")
	ErrInvalidLocale   = errors.New("locale is not a valid BCP-47 tag")
)

// Config holds all application configuration parameters.
type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash"`

	// Formatter configuration
	Formatter Formatter `yaml:"formatter" json:"formatter"`
}

// Formatter holds the defaults used when rendering timestamps.
type Formatter struct {
	// Timezone is an IANA location name. Empty or "Local" selects the process timezone.
	Timezone string `yaml:"timezone" json:"timezone"`
	// Locale is the BCP-47 tag used when a request names none.
	Locale string `yaml:"locale" json:"locale"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Formatter.validate(); err != nil {
		return fmt.Errorf("formatter config error: %w", err)
	}

	return nil
}

func (f *Formatter) validate() error {
	if _, err := f.Location(); err != nil {
		return err
	}

	if f.Locale == "" {
		return nil
	}

	if _, err := language.Parse(f.Locale); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLocale, f.Locale)
	}

	return nil
}

// Location loads the configured timezone.
func (f *Formatter) Location() (*time.Location, error) {
	if f.Timezone == "" || f.Timezone == LocalTimezone {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, f.Timezone)
	}

	return loc, nil
}

// LocationOrUTC loads the configured timezone and falls back to UTC when it cannot be loaded.
func (f *Formatter) LocationOrUTC(ctx context.Context) *time.Location {
	loc, err := f.Location()
	if err != nil {
		slogctx.Warn(ctx, "invalid timezone, falling back to UTC", "timezone", f.Timezone, "error", err)
		return time.UTC
	}

	return loc
}

// LocaleOrDefault returns the configured locale or "en-US" when none is set.
func (f *Formatter) LocaleOrDefault() string {
	if f.Locale == "" {
		return DefaultLocale
	}

	return f.Locale
}
