package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"coldcall/cmd/coldcall/internal/view"
	"coldcall/internal/config"
	"coldcall/internal/crm"
	"coldcall/internal/export"
	"coldcall/internal/importer"
	"coldcall/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		slog.Error("failed to resolve data path", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(path)
	if err != nil {
		slog.Error("failed to open database", "error", err, "path", path)
		os.Exit(1)
	}
	defer st.Close()

	svc := crm.NewService(st)
	app := view.New(svc, importer.New(), export.NewService(svc), cfg.ExportDir())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
