package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fretlog/fretlog/internal/shared"
	"github.com/fretlog/fretlog/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive catalog browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	dataDir, err := shared.DataDir()
	if err != nil {
		return err
	}
	fileLogger, err := shared.NewFileLogger(filepath.Join(dataDir, "fretlog-tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, svc)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
