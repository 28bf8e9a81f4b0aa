package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toad-frogski/visits/internal/cli/formatter"
	"github.com/toad-frogski/visits/internal/domain"
	"github.com/toad-frogski/visits/internal/service"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Backfill and repair session entries",
	}

	cmd.AddCommand(
		newEntryInsertCmd(app),
		newEntryRepairCmd(app),
	)

	return cmd
}

func newEntryInsertCmd(app *App) *cobra.Command {
	var userFlag, startFlag, endFlag, typeFlag, comment string

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Backfill a historical interval into the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}

			view, err := app.Sessions.CurrentSession(ctx, userID)
			if err != nil {
				return err
			}
			if view == nil {
				return service.ErrNoSession
			}

			if startFlag == "" && app.interactive() {
				typeFlag = string(domain.EntryWork)
				if err := insertEntryForm(&startFlag, &endFlag, &typeFlag, &comment).Run(); err != nil {
					return err
				}
			}
			if startFlag == "" {
				return fmt.Errorf("--start is required")
			}

			day := view.Session.Date
			start, err := clockOn(day, startFlag)
			if err != nil {
				return err
			}
			var end *time.Time
			if endFlag != "" {
				e, err := clockOn(day, endFlag)
				if err != nil {
					return err
				}
				end = &e
			}
			typ, err := resolveEntryType(typeFlag)
			if err != nil {
				return err
			}

			entry, err := app.Sessions.InsertEntry(ctx, view.Session.ID, start, end, typ, comment)
			if err != nil {
				return err
			}

			fmt.Printf("Inserted %s %s–%s (%s)\n",
				formatter.EntryTypeBadge(typ), formatter.Clock(start),
				formatter.ClockPtr(end), formatter.TruncID(entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Interval start (HH:MM on the session's date)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Interval end (HH:MM, blank to leave open)")
	cmd.Flags().StringVar(&typeFlag, "type", "WORK", "Entry type")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment")

	return cmd
}

func newEntryRepairCmd(app *App) *cobra.Command {
	var userFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Close a forgotten open interval at its real end time",
		Long: `Find the open interval of the current session (including one left
open on a previous day) and close it at the time it actually ended,
filling any gap up to later activity with a break.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}

			view, err := app.Sessions.CurrentSession(ctx, userID)
			if err != nil {
				return err
			}
			if view == nil {
				return service.ErrNoSession
			}
			open := domain.OpenEntry(view.Entries)
			if open == nil {
				return service.ErrNoOpenEntry
			}

			if endFlag == "" && app.interactive() {
				fmt.Printf("Open since %s on %s (%s)\n",
					formatter.Clock(open.Start),
					formatter.HumanDate(view.Session.Date),
					formatter.EntryTypeBadge(open.Type))
				if err := repairEndForm(&endFlag).Run(); err != nil {
					return err
				}
			}
			if endFlag == "" {
				return fmt.Errorf("--end is required")
			}

			// Anchor the clock time on the day the entry was opened, not
			// today: the whole point is closing yesterday's leftover.
			newEnd, err := clockOn(domain.DateOf(open.Start), endFlag)
			if err != nil {
				return err
			}

			if err := app.Sessions.RepairEntry(ctx, open.ID, newEnd); err != nil {
				return err
			}

			fmt.Printf("Closed entry %s at %s\n", formatter.TruncID(open.ID), formatter.Clock(newEnd))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Actual end time (HH:MM on the entry's date)")

	return cmd
}

// clockOn parses an HH:MM string onto the given calendar day.
func clockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q (want HH:MM)", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
