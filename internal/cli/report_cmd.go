package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toad-frogski/visits/internal/cli/formatter"
	"github.com/toad-frogski/visits/internal/plugin"
	"github.com/toad-frogski/visits/internal/plugin/holidays"
)

func newReportCmd(app *App) *cobra.Command {
	var userFlag, startFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-day statistics over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(userFlag)
			if err != nil {
				return err
			}

			end, err := resolveDate(endFlag)
			if err != nil {
				return err
			}
			var start time.Time
			if startFlag == "" {
				// Default to the current week, Monday through today.
				offset := (int(end.Weekday()) + 6) % 7
				start = end.AddDate(0, 0, -offset)
			} else {
				start, err = resolveDate(startFlag)
				if err != nil {
					return err
				}
			}

			reports, err := app.Statistics.RangeStatistics(context.Background(), userID, start, end)
			if err != nil {
				return err
			}

			headers := []string{"DATE", "WORK", "BREAK", "LUNCH", "NOTE"}
			rows := make([][]string, 0, len(reports))
			var totalWork float64
			for _, report := range reports {
				date := report.Date.Format("Mon Jan 2")
				if report.Statistics == nil {
					rows = append(rows, []string{
						formatter.Dim(date), formatter.Dim("—"), formatter.Dim("—"),
						formatter.Dim("—"), formatter.Dim(dayNote(report.Extras)),
					})
					continue
				}
				totalWork += float64(report.Statistics.Work)
				rows = append(rows, []string{
					date,
					formatter.FormatSeconds(float64(report.Statistics.Work)),
					formatter.FormatSeconds(float64(report.Statistics.Break)),
					formatter.FormatSeconds(float64(report.Statistics.Lunch)),
					formatter.Dim(dayNote(report.Extras)),
				})
			}

			title := fmt.Sprintf("%s — %s", start.Format("Jan 2"), end.Format("Jan 2"))
			content := formatter.RenderTable(headers, rows) +
				"\n" + formatter.Dim(fmt.Sprintf("Total work: %s", formatter.FormatSeconds(totalWork)))
			fmt.Print(formatter.RenderBox(title, content))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Acting user (default: $VISITS_USER or OS account)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Range start (YYYY-MM-DD, default Monday of this week)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Range end (YYYY-MM-DD, default today)")

	return cmd
}

// dayNote summarizes plugin extras for a single report row.
func dayNote(extras []plugin.Extra) string {
	for _, extra := range extras {
		if extra.Type != holidays.ExtraType {
			continue
		}
		if payload, ok := extra.Payload.(holidays.Payload); ok {
			if payload.Name != "" {
				return payload.Name
			}
			if payload.Weekend {
				return "weekend"
			}
		}
	}
	return ""
}
