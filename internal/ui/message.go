package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fretlog/fretlog/internal/models"
)

// songsLoadedMsg carries the catalog contents fetched on startup.
type songsLoadedMsg struct {
	songs []*models.Song
	err   error
}

var _ tea.Msg = songsLoadedMsg{}
