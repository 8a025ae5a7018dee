package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmiguelc/transita/internal/transfer"
)

type createState int

const (
	createStateForm createState = iota
	createStateSaving
	createStateResult
)

type CreateModel struct {
	CommonModel
	svc     *transfer.Service
	actorID int64

	state createState
	form  *huh.Form
	err   error
	code  string

	formType   string
	formFrom   string
	formTo     string
	formReason string
}

func NewCreateModel(svc *transfer.Service, actorID int64) CreateModel {
	m := CreateModel{
		svc:      svc,
		actorID:  actorID,
		formType: "inventory",
	}
	m.form = m.buildForm()

	return m
}

func (m CreateModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Transfer Type").
				Options(
					huh.NewOption("Inventory", "inventory"),
					huh.NewOption("Assets", "assets"),
					huh.NewOption("Staff", "staff"),
					huh.NewOption("Jobs", "jobs"),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("from").
				Title("From Branch ID").
				Validate(validateBranchID).
				Value(&m.formFrom),

			huh.NewInput().
				Key("to").
				Title("To Branch ID").
				Validate(validateBranchID).
				Value(&m.formTo),

			huh.NewText().
				Key("reason").
				Title("Reason").
				CharLimit(500).
				Value(&m.formReason),
		),
	).WithWidth(60).WithShowHelp(false)
}

func validateBranchID(s string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("must be a positive branch id")
	}

	return nil
}

func (m CreateModel) Title() string { return "New Transfer" }

func (m CreateModel) ShortHelp() string {
	if m.state == createStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter/Tab: navigate form"
}

func (m CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(createDoneMsg); ok {
		m.state = createStateResult
		m.err = msg.err
		m.code = msg.code

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != createStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = createStateSaving

	return m, m.saveCmd()
}

func (m CreateModel) View() string {
	switch m.state {
	case createStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Saving transfer...")

	case createStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Transfer created")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", fmt.Sprintf("Code: %s", m.code)),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type createDoneMsg struct {
	code string
	err  error
}

func (m CreateModel) saveCmd() tea.Cmd {
	from, _ := strconv.ParseInt(strings.TrimSpace(m.formFrom), 10, 64)
	to, _ := strconv.ParseInt(strings.TrimSpace(m.formTo), 10, 64)

	params := transfer.CreateParams{
		TransferType: m.formType,
		FromBranchID: from,
		ToBranchID:   to,
		Reason:       strings.TrimSpace(m.formReason),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.svc.Create(ctx, params, m.actorID)
		if err != nil {
			return createDoneMsg{err: err}
		}

		return createDoneMsg{code: t.TransferCode}
	}
}
