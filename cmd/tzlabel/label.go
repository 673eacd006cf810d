package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newLabelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "label [timestamp]",
		Short: "Show the timezone label for a timestamp, or for now",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}

			t := time.Now()
			if len(args) == 1 {
				t, err = f.Parse(args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", ErrInvalidTimestamp, args[0])
				}
			}

			label := f.Label(cmd.Context(), t, a.locale)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", label.Text, label.Tier)

			return err
		},
	}
}
