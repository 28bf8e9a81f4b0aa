package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toad-frogski/visits/internal/cli/formatter"
	"github.com/toad-frogski/visits/internal/domain"
)

func newEnterCmd(app *App) *cobra.Command {
	var userFlag, timeFlag string
	typeFlag := newEntryTypeValue(domain.EntryWork)

	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Start the work day or come back after a gap",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}
			at, err := resolveTime(timeFlag)
			if err != nil {
				return err
			}

			session, err := app.Sessions.Enter(context.Background(), userID, typeFlag.typ, at)
			if err != nil {
				return err
			}

			fmt.Printf("Entered as %s at %s (session %s)\n",
				formatter.EntryTypeBadge(typeFlag.typ), formatter.Clock(at), formatter.TruncID(session.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")
	cmd.Flags().Var(typeFlag, "type", "Entry type to open (default WORK)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "Start time (HH:MM, default now)")

	return cmd
}

func newExitCmd(app *App) *cobra.Command {
	var userFlag, timeFlag, comment string

	cmd := &cobra.Command{
		Use:   "exit",
		Short: "Close the open interval and end the day",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}
			at, err := resolveTime(timeFlag)
			if err != nil {
				return err
			}

			if err := app.Sessions.Exit(context.Background(), userID, at, comment); err != nil {
				return err
			}

			fmt.Printf("Exited at %s\n", formatter.Clock(at))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "End time (HH:MM, default now)")
	cmd.Flags().StringVar(&comment, "comment", "", "Closing comment")

	return cmd
}

func newLeaveCmd(app *App) *cobra.Command {
	var userFlag, timeFlag, comment string
	typeFlag := newEntryTypeValue(domain.EntryBreak)

	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Switch the open interval to another type",
		Long: `Close the currently open interval and immediately open a new one of
the given type at the same instant. "visits leave --type LUNCH" steps
out for lunch; "visits leave --type WORK" comes back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}
			at, err := resolveTime(timeFlag)
			if err != nil {
				return err
			}

			if err := app.Sessions.Leave(context.Background(), userID, typeFlag.typ, at, comment); err != nil {
				return err
			}

			fmt.Printf("Switched to %s at %s\n", formatter.EntryTypeBadge(typeFlag.typ), formatter.Clock(at))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")
	cmd.Flags().Var(typeFlag, "type", "Entry type to switch to (default BREAK)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "Switch time (HH:MM, default now)")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment for the closed interval")

	return cmd
}
