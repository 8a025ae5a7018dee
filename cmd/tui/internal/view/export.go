package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmiguelc/transita/internal/export"
	"github.com/pmiguelc/transita/internal/transfer"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	err     error
	form    *huh.Form
	spinner spinner.Model
	outPath string

	formStatus string
	formDir    string
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		exportService: svc,
		spinner:       s,
		formDir:       "./exports",
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("All", ""),
					huh.NewOption("Pending", string(transfer.StatusPending)),
					huh.NewOption("Approved", string(transfer.StatusApproved)),
					huh.NewOption("In Transit", string(transfer.StatusInTransit)),
					huh.NewOption("Received", string(transfer.StatusReceived)),
					huh.NewOption("Rejected", string(transfer.StatusRejected)),
					huh.NewOption("Cancelled", string(transfer.StatusCancelled)),
				).
				Value(&m.formStatus),

			huh.NewInput().
				Key("dir").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.formDir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export Transfers" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.outPath = result.path

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing transfers report...", m.spinner.View()),
		)

	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Export Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", fmt.Sprintf("Written to %s", m.outPath)),
		)
	}

	return ""
}

type exportResultMsg struct {
	path string
	err  error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	filter := transfer.ListFilter{}
	if m.formStatus != "" {
		status := transfer.Status(m.formStatus)
		filter.Status = &status
	}

	dir := m.formDir

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: err}
		}

		path := filepath.Join(dir, fmt.Sprintf("transfers_%s.csv", time.Now().Format("20060102")))

		f, err := os.Create(path)
		if err != nil {
			return exportResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.exportService.WriteTransfers(ctx, filter, f); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path}
	}
}
