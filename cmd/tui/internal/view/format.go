package view

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmiguelc/transita/internal/transfer"
)

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTimestamp formats a time.Time into YYYY-MM-DD HH:MM.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

var statusColors = map[transfer.Status]lipgloss.Color{
	transfer.StatusPending:   lipgloss.Color("220"),
	transfer.StatusApproved:  lipgloss.Color("39"),
	transfer.StatusInTransit: lipgloss.Color("208"),
	transfer.StatusReceived:  lipgloss.Color("46"),
	transfer.StatusRejected:  lipgloss.Color("196"),
	transfer.StatusCancelled: lipgloss.Color("240"),
}

// StatusBadge renders a status in its lifecycle color.
func StatusBadge(s transfer.Status) string {
	color, ok := statusColors[s]
	if !ok {
		return string(s)
	}

	return lipgloss.NewStyle().Foreground(color).Render(string(s))
}
