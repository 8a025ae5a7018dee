package view

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pmiguelc/transita/internal/importer"
	"github.com/pmiguelc/transita/internal/transfer"
)

type importState int

const (
	importStateForm importState = iota
	importStateImporting
	importStateResult
)

// ImportModel loads a CSV manifest from disk and attaches its items to a
// transfer's inventory.
type ImportModel struct {
	CommonModel
	importService *importer.Service
	transferSvc   *transfer.Service

	state    importState
	form     *huh.Form
	err      error
	imported int

	formTransferID string
	formPath       string
	formNotes      string
}

func NewImportModel(importSvc *importer.Service, transferSvc *transfer.Service) ImportModel {
	m := ImportModel{
		importService: importSvc,
		transferSvc:   transferSvc,
	}
	m.form = m.buildForm()

	return m
}

func (m ImportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("transfer_id").
				Title("Transfer ID").
				Validate(func(s string) error {
					id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || id <= 0 {
						return fmt.Errorf("must be a positive transfer id")
					}

					return nil
				}).
				Value(&m.formTransferID),

			huh.NewInput().
				Key("path").
				Title("Manifest CSV Path").
				Placeholder("./manifest.csv").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}

					return nil
				}).
				Value(&m.formPath),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Placeholder("optional").
				Value(&m.formNotes),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) Title() string { return "Import Manifest" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter/Tab: navigate form"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(importDoneMsg); ok {
		m.state = importStateResult
		m.err = msg.err
		m.imported = msg.imported

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != importStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting

	return m, m.runImportCmd()
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render("Importing manifest...")

	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Import Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", fmt.Sprintf("%d items attached", m.imported)),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type importDoneMsg struct {
	imported int
	err      error
}

func (m ImportModel) runImportCmd() tea.Cmd {
	transferID, _ := strconv.ParseInt(strings.TrimSpace(m.formTransferID), 10, 64)
	path := strings.TrimSpace(m.formPath)
	notes := m.formNotes

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		items, err := m.importService.Import(importer.SourceManifest, f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		if len(items) == 0 {
			return importDoneMsg{err: fmt.Errorf("manifest contains no items")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.transferSvc.AddInventory(ctx, transferID, notes, items); err != nil {
			return importDoneMsg{err: err}
		}

		return importDoneMsg{imported: len(items)}
	}
}
