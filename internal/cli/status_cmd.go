package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toad-frogski/visits/internal/cli/formatter"
	"github.com/toad-frogski/visits/internal/timeline"
)

func newStatusCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session and its entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}

			view, err := app.Sessions.CurrentSession(context.Background(), userID)
			if err != nil {
				return err
			}
			if view == nil {
				fmt.Println("No current session.")
				return nil
			}

			status := app.Sessions.StatusOf(view, time.Now())

			header := fmt.Sprintf("%s  %s  %s",
				formatter.Bold(userID),
				formatter.Dim(formatter.HumanDate(view.Session.Date)),
				formatter.StatusPill(status))

			headers := []string{"START", "END", "TYPE", "COMMENT"}
			rows := make([][]string, 0, len(view.Entries))
			for _, e := range view.Entries {
				rows = append(rows, []string{
					formatter.Clock(e.Start),
					formatter.ClockPtr(e.End),
					formatter.EntryTypeBadge(e.Type),
					formatter.Dim(e.Comment),
				})
			}

			stats := timeline.Aggregate(view.Entries)
			footer := fmt.Sprintf("Work %s   Break %s   Lunch %s",
				formatter.FormatSeconds(float64(stats.Work)),
				formatter.FormatSeconds(float64(stats.Break)),
				formatter.FormatSeconds(float64(stats.Lunch)))

			content := header + "\n\n" + formatter.RenderTable(headers, rows) + "\n" + formatter.Dim(footer)
			fmt.Print(formatter.RenderBox("Session", content))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")

	return cmd
}

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show every user's status for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Sessions.UsersToday(context.Background(), time.Now())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No sessions recorded yet.")
				return nil
			}

			headers := []string{"USER", "STATUS", "COMMENT"}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{
					row.UserID,
					formatter.StatusPill(row.Status),
					formatter.Dim(row.Comment),
				})
			}

			fmt.Print(formatter.RenderBox("Today", formatter.RenderTable(headers, table)))
			return nil
		},
	}
}
