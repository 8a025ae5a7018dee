package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmiguelc/transita/internal/transfer"
)

type transfersState int

const (
	transfersStateBrowse transfersState = iota
	transfersStateRemarks
	transfersStateLogs
)

// action pairs a lifecycle verb with the service call that performs it.
type action struct {
	label string
	run   func(m TransfersModel, id int64, remarks string) error
}

var actions = map[string]action{
	"a": {"approve", func(m TransfersModel, id int64, remarks string) error {
		ctx, cancel := DbCtx()
		defer cancel()
		return m.svc.Approve(ctx, id, m.actorID, remarks)
	}},
	"d": {"dispatch", func(m TransfersModel, id int64, remarks string) error {
		ctx, cancel := DbCtx()
		defer cancel()
		return m.svc.Dispatch(ctx, id, m.actorID, remarks)
	}},
	"v": {"receive", func(m TransfersModel, id int64, remarks string) error {
		ctx, cancel := DbCtx()
		defer cancel()
		return m.svc.Receive(ctx, id, m.actorID, remarks)
	}},
	"x": {"reject", func(m TransfersModel, id int64, remarks string) error {
		ctx, cancel := DbCtx()
		defer cancel()
		return m.svc.Reject(ctx, id, m.actorID, remarks)
	}},
	"c": {"cancel", func(m TransfersModel, id int64, remarks string) error {
		ctx, cancel := DbCtx()
		defer cancel()
		return m.svc.Cancel(ctx, id, m.actorID, remarks)
	}},
}

type TransfersModel struct {
	CommonModel
	svc     *transfer.Service
	actorID int64

	state     transfersState
	table     table.Model
	transfers []*transfer.Transfer
	logs      []*transfer.LogEntry

	statusFilterIdx int

	pending action
	form    *huh.Form

	loading bool
	err     error
	status  string

	formRemarks string
}

func NewTransfersModel(svc *transfer.Service, actorID int64) TransfersModel {
	columns := []table.Column{
		{Title: "Code", Width: 16},
		{Title: "Type", Width: 10},
		{Title: "Status", Width: 11},
		{Title: "From", Width: 6},
		{Title: "To", Width: 6},
		{Title: "Requested", Width: 12},
		{Title: "Reason", Width: 34},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransfersModel{
		svc:     svc,
		actorID: actorID,
		table:   t,
	}
}

func (m TransfersModel) Title() string { return "Transfers" }

func (m TransfersModel) ShortHelp() string {
	switch m.state {
	case transfersStateRemarks:
		return "Enter: confirm | Esc: cancel"
	case transfersStateLogs:
		return "Esc: close"
	}

	return "Esc: back | a/d/v/x/c: approve/dispatch/receive/reject/cancel | l: logs | s: status filter | f: refresh"
}

func (m TransfersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransfersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTransfersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.transfers = msg.transfers
		m.refreshTable()

		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.label, msg.err)
		} else {
			m.status = fmt.Sprintf("%s recorded", msg.label)
		}

		m.state = transfersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case loadLogsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("logs failed: %v", msg.err)
			m.state = transfersStateBrowse
			return m, nil
		}

		m.logs = msg.logs
		m.state = transfersStateLogs

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case transfersStateBrowse:
		return m.updateBrowse(msg)
	case transfersStateRemarks:
		return m.updateRemarks(msg)
	case transfersStateLogs:
		return m.updateLogs(msg)
	}

	return m, nil
}

func (m TransfersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		key := keyMsg.String()

		if act, ok := actions[key]; ok {
			return m.enterRemarks(act)
		}

		switch key {
		case "esc":
			return m, Back
		case "f":
			m.loading = true
			return m, m.loadCmd()
		case "l":
			if t := m.selected(); t != nil {
				return m, m.loadLogsCmd(t.ID)
			}

			return m, nil
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 7
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransfersModel) enterRemarks(act action) (tea.Model, tea.Cmd) {
	t := m.selected()
	if t == nil {
		return m, nil
	}

	m.pending = act
	m.formRemarks = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("remarks").
				Title(fmt.Sprintf("Remarks for %s of %s", act.label, t.TransferCode)).
				Placeholder("optional").
				Value(&m.formRemarks),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = transfersStateRemarks
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransfersModel) updateRemarks(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = transfersStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.runActionCmd()
}

func (m TransfersModel) updateLogs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = transfersStateBrowse
			m.logs = nil

			return m, nil
		}
	}

	return m, nil
}

func (m TransfersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transfers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == transfersStateLogs {
		return m.viewLogs()
	}

	header := fmt.Sprintf("Filter: [s] Status: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(statusFilterLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == transfersStateRemarks && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(64).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m TransfersModel) viewLogs() string {
	t := m.selected()
	if t == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Audit trail for %s\n\n", t.TransferCode)

	for _, e := range m.logs {
		from := "-"
		if e.FromStatus != nil {
			from = string(*e.FromStatus)
		}

		to := "-"
		if e.ToStatus != nil {
			to = string(*e.ToStatus)
		}

		fmt.Fprintf(&b, "%s  %-10s -> %-10s  by #%d", FormatTimestamp(e.ActionAt), from, to, e.ActionBy)

		if e.Remarks != "" {
			fmt.Fprintf(&b, "  %q", e.Remarks)
		}

		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

var statusFilterLabels = []string{
	"All", "Pending", "Approved", "In Transit", "Received", "Rejected", "Cancelled",
}

func (m TransfersModel) currentFilter() transfer.ListFilter {
	filter := transfer.ListFilter{}

	switch m.statusFilterIdx {
	case 1:
		filter.Status = new(transfer.StatusPending)
	case 2:
		filter.Status = new(transfer.StatusApproved)
	case 3:
		filter.Status = new(transfer.StatusInTransit)
	case 4:
		filter.Status = new(transfer.StatusReceived)
	case 5:
		filter.Status = new(transfer.StatusRejected)
	case 6:
		filter.Status = new(transfer.StatusCancelled)
	}

	return filter
}

func (m TransfersModel) selected() *transfer.Transfer {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.transfers) {
		return nil
	}

	return m.transfers[idx]
}

func (m *TransfersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.transfers))
	for _, t := range m.transfers {
		rows = append(rows, table.Row{
			t.TransferCode,
			t.TransferType,
			string(t.Status),
			fmt.Sprintf("#%d", t.FromBranchID),
			fmt.Sprintf("#%d", t.ToBranchID),
			FormatDate(t.RequestedAt),
			t.Reason,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadTransfersMsg struct {
	transfers []*transfer.Transfer
	err       error
}

func (m TransfersModel) loadCmd() tea.Cmd {
	filter := m.currentFilter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		transfers, err := m.svc.List(ctx, filter)

		return loadTransfersMsg{transfers: transfers, err: err}
	}
}

type actionDoneMsg struct {
	label string
	err   error
}

func (m TransfersModel) runActionCmd() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}

	act := m.pending
	remarks := m.formRemarks

	return func() tea.Msg {
		return actionDoneMsg{label: act.label, err: act.run(m, t.ID, remarks)}
	}
}

type loadLogsMsg struct {
	logs []*transfer.LogEntry
	err  error
}

func (m TransfersModel) loadLogsCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		logs, err := m.svc.Logs(ctx, id)

		return loadLogsMsg{logs: logs, err: err}
	}
}
