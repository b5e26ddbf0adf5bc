package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kbukum/babelink/component"
)

// Summary renders the startup report: infrastructure described by the
// components, registered routes, tracked commands and live health.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	commands        []CommandInfo
}

// CommandInfo describes one invocable command for the summary.
type CommandInfo struct {
	Name    string
	Backend string
}

// NewSummary creates a new startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackCommand records a command and the backend that serves it on this
// platform (e.g. "capture_screen" -> "gnome-screenshot").
func (s *Summary) TrackCommand(name, backend string) {
	s.commands = append(s.commands, CommandInfo{Name: name, Backend: backend})
}

// Commands returns the tracked commands.
func (s *Summary) Commands() []CommandInfo {
	return s.commands
}

// Render writes the summary to w. Infrastructure, routes and health are
// collected from registry, which may be nil.
func (s *Summary) Render(ctx context.Context, w io.Writer, registry *component.Registry) error {
	if _, err := fmt.Fprintf(w, "\n%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds()); err != nil {
		return err
	}

	if registry != nil {
		if descs := registry.Descriptions(); len(descs) > 0 {
			rows := make([][]string, 0, len(descs))
			for _, d := range descs {
				port := ""
				if d.Port > 0 {
					port = strconv.Itoa(d.Port)
				}
				rows = append(rows, []string{d.Name, d.Type, d.Details, port})
			}
			if err := renderTable(w, "Infrastructure", []string{"Name", "Type", "Details", "Port"}, rows); err != nil {
				return err
			}
		}
	}

	if len(s.commands) > 0 {
		rows := make([][]string, 0, len(s.commands))
		for _, c := range s.commands {
			rows = append(rows, []string{c.Name, c.Backend})
		}
		if err := renderTable(w, "Commands", []string{"Command", "Backend"}, rows); err != nil {
			return err
		}
	}

	if registry == nil {
		return nil
	}

	if routes := registry.Routes(); len(routes) > 0 {
		rows := make([][]string, 0, len(routes))
		for _, r := range routes {
			rows = append(rows, []string{r.Method, r.Path, r.Handler})
		}
		if err := renderTable(w, "Routes", []string{"Method", "Path", "Handler"}, rows); err != nil {
			return err
		}
	}

	if health := registry.HealthAll(ctx); len(health) > 0 {
		rows := make([][]string, 0, len(health))
		for _, h := range health {
			rows = append(rows, []string{h.Name, string(h.Status), h.Message})
		}
		if err := renderTable(w, "Health", []string{"Component", "Status", "Message"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, title string, header []string, rows [][]string) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}
	table := tablewriter.NewWriter(w)
	table.Header(cols...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
