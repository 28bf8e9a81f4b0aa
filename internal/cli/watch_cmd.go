package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/toad-frogski/visits/internal/cli/formatter"
	"github.com/toad-frogski/visits/internal/service"
)

const watchRefreshInterval = 5 * time.Second

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard of everyone's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal")
			}

			model := newWatchModel(app)
			program := tea.NewProgram(model, tea.WithAltScreen())

			// Push broker events into the program so in-process mutations
			// show up without waiting for the next poll.
			if app.Events != nil {
				events, cancel := app.Events.Subscribe()
				defer cancel()
				go func() {
					for ev := range events {
						program.Send(watchEventMsg{event: ev})
					}
				}()
			}

			_, err := program.Run()
			return err
		},
	}
}

type watchKeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

var watchKeys = watchKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
}

type watchTickMsg time.Time

type watchEventMsg struct {
	event service.StatusEvent
}

type watchRowsMsg struct {
	rows []service.UserToday
	err  error
}

type watchModel struct {
	app       *App
	rows      []service.UserToday
	lastEvent string
	err       error
	width     int
}

func newWatchModel(app *App) watchModel {
	return watchModel{app: app}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetchRows, watchTick())
}

func watchTick() tea.Cmd {
	return tea.Tick(watchRefreshInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) fetchRows() tea.Msg {
	rows, err := m.app.Sessions.UsersToday(context.Background(), time.Now())
	return watchRowsMsg{rows: rows, err: err}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, watchKeys.Refresh):
			return m, m.fetchRows
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case watchTickMsg:
		return m, tea.Batch(m.fetchRows, watchTick())

	case watchEventMsg:
		m.lastEvent = fmt.Sprintf("%s → %s", msg.event.UserID, msg.event.Status)
		return m, m.fetchRows

	case watchRowsMsg:
		m.rows = msg.rows
		m.err = msg.err
	}

	return m, nil
}

func (m watchModel) View() string {
	var body string
	switch {
	case m.err != nil:
		body = formatter.StyleRed.Render(m.err.Error())
	case len(m.rows) == 0:
		body = formatter.Dim("No sessions recorded yet.")
	default:
		headers := []string{"USER", "STATUS", "COMMENT"}
		rows := make([][]string, 0, len(m.rows))
		for _, row := range m.rows {
			rows = append(rows, []string{
				row.UserID,
				formatter.StatusPill(row.Status),
				formatter.Dim(row.Comment),
			})
		}
		body = formatter.RenderTable(headers, rows)
	}

	footer := formatter.Dim(fmt.Sprintf("refreshed every %s · r refresh · q quit", watchRefreshInterval))
	if m.lastEvent != "" {
		footer = formatter.Dim("last event: ") + formatter.StyleBlue.Render(m.lastEvent) + "\n" + footer
	}

	return formatter.Header("Who is in") + "\n\n" + body + "\n" + footer + "\n"
}
