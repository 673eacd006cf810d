package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/openkcm/tzlabel/internal/datefmt"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

func newFormatCmd(a *app) *cobra.Command {
	var (
		strict bool
		layout string
	)

	cmd := &cobra.Command{
		Use:   "format [timestamp...]",
		Short: "Format ISO-8601 timestamps",
		Long: `Format ISO-8601 timestamps as "YYYY-MM-DD HH:MM:SS ZONE".

Timestamps are taken from the arguments, or one per line from stdin when
no argument is given. Invalid timestamps are printed as "Never" unless
--strict is set.

With --template each timestamp is rendered through a Go template. The
template sees .Input and .Time and can call formatDate and isoDate.

Example:

  tzlabel format 2025-12-19T14:00:00Z --timezone Asia/Tokyo
  2025-12-19 23:00:00 JST

  tzlabel format 2025-12-19T14:00:00Z --template '{{isoDate .Time}} {{formatDate .Time}}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}

			w := &timestampWriter{
				formatter: f,
				locale:    a.locale,
				strict:    strict,
				out:       cmd.OutOrStdout(),
			}

			if layout != "" {
				w.tmpl, err = template.New("format").
					Funcs(template.FuncMap(datefmt.TemplateFuncs(f, a.locale))).
					Parse(layout)
				if err != nil {
					return fmt.Errorf("parsing template: %w", err)
				}
			}

			if len(args) > 0 {
				for _, arg := range args {
					if err := w.write(cmd.Context(), arg); err != nil {
						return err
					}
				}

				return nil
			}

			return w.writeLines(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first invalid timestamp")
	cmd.Flags().StringVar(&layout, "template", "", "Go template rendered for each timestamp")

	return cmd
}

// timestampRow is the data a --template is executed with.
type timestampRow struct {
	Input string
	Time  sql.NullTime
}

type timestampWriter struct {
	formatter *datefmt.Formatter
	locale    string
	strict    bool
	tmpl      *template.Template
	out       io.Writer
}

func (w *timestampWriter) write(ctx context.Context, timestamp string) error {
	timestamp = strings.TrimSpace(timestamp)

	if w.tmpl != nil {
		return w.writeTemplate(timestamp)
	}

	formatted, ok := w.formatter.Format(ctx, timestamp, w.locale)
	if !ok {
		if w.strict {
			return fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
		}

		formatted = datefmt.NeverText
	}

	_, err := fmt.Fprintln(w.out, formatted)

	return err
}

func (w *timestampWriter) writeTemplate(timestamp string) error {
	t, err := w.formatter.Parse(timestamp)
	if err != nil && w.strict {
		return fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
	}

	row := timestampRow{
		Input: timestamp,
		Time:  sql.NullTime{Time: t, Valid: err == nil},
	}

	if err := w.tmpl.Execute(w.out, row); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w.out)

	return err
}

func (w *timestampWriter) writeLines(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := w.write(ctx, scanner.Text()); err != nil {
			return err
		}
	}

	return scanner.Err()
}
