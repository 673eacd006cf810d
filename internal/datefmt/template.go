package datefmt

import (
	"context"
	"database/sql"
	"html/template"
)

// NeverText is rendered for timestamps that are not set.
const NeverText = "Never"

// TemplateFuncs returns template helpers rendering nullable timestamps:
// formatDate gives the labelled local time or "Never", isoDate gives RFC 3339 or "".
func TemplateFuncs(f *Formatter, locale string) template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t sql.NullTime) string {
			if !t.Valid {
				return NeverText
			}

			return f.FormatTime(context.Background(), t.Time, locale)
		},
		"isoDate": func(t sql.NullTime) string {
			if !t.Valid {
				return ""
			}

			return f.ISO(t.Time)
		},
	}
}
