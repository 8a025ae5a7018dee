package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/pmiguelc/transita/cmd/tui/internal/view"
	"github.com/pmiguelc/transita/internal/config"
	"github.com/pmiguelc/transita/internal/database"
	"github.com/pmiguelc/transita/internal/export"
	"github.com/pmiguelc/transita/internal/importer"
	"github.com/pmiguelc/transita/internal/transfer"
	transferStore "github.com/pmiguelc/transita/internal/transfer/store"
)

type model struct {
	transferService *transfer.Service
	importService   *importer.Service
	exportService   *export.Service

	operatorID int64

	currentView View

	transfersView view.TransfersModel
	createView    view.CreateModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewTransfers View = 1
	ViewCreate    View = 2
	ViewImport    View = 3
	ViewExport    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	transferSvc := transfer.NewService(transferStore.New(db))
	importSvc := importer.NewService()
	exportSvc := export.NewService(transferSvc)

	operatorID := cfg.TUI.OperatorID

	return model{
		transferService: transferSvc,
		importService:   importSvc,
		exportService:   exportSvc,
		operatorID:      operatorID,
		currentView:     ViewMenu,
		transfersView:   view.NewTransfersModel(transferSvc, operatorID),
		createView:      view.NewCreateModel(transferSvc, operatorID),
		importView:      view.NewImportModel(importSvc, transferSvc),
		exportView:      view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransfers
				m.transfersView = view.NewTransfersModel(m.transferService, m.operatorID)

				return m, m.transfersView.Init()
			case "2":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(m.transferService, m.operatorID)

				return m, m.createView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.transferService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransfers:
		var newModel tea.Model
		newModel, cmd = m.transfersView.Update(msg)
		m.transfersView = newModel.(view.TransfersModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Transita TUI\n\n" +
				"1. Browse Transfers\n" +
				"2. New Transfer\n" +
				"3. Import Manifest\n" +
				"4. Export Transfers\n\n" +
				"q. Quit",
		)
	case ViewTransfers:
		return m.transfersView.View()
	case ViewCreate:
		return m.createView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
