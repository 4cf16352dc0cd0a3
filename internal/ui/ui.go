package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
)

// Catalog is the slice of the catalog service the TUI needs.
type Catalog interface {
	List() ([]*models.Song, error)
	ArtPath(album string) (string, bool)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	catalog  Catalog
	width    int
	height   int
	songList list.Model
	songs    []*models.Song
	selected *models.Song
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, catalog Catalog) *Model {
	return &Model{
		ctx:     ctx,
		view:    SongListView,
		catalog: catalog,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleSongListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case songsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.songs = msg.songs
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = "Songs"
		m.songList.SetSize(m.width-4, m.height-8)
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongListView:
		return m.renderSongList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.songList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(songItem); ok {
				m.selected = item.song
				m.view = DetailView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SongListView
		m.selected = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == SongListView {
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.catalog.List()
		if err == nil {
			sort.Slice(songs, func(i, j int) bool {
				if songs[i].Artist != songs[j].Artist {
					return songs[i].Artist < songs[j].Artist
				}
				return songs[i].Title < songs[j].Title
			})
		}
		return songsLoadedMsg{songs: songs, err: err}
	}
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderDetail() string {
	song := m.selected
	if song == nil {
		return styles.err.Render("No song selected\n\nPress esc to go back")
	}

	title := styles.title.Render(fmt.Sprintf("%s — %s", song.DisplayArtist(), song.DisplayTitle()))

	var b strings.Builder
	fmt.Fprintf(&b, "Album:    %s\n", song.Album)
	fmt.Fprintf(&b, "Length:   %s\n", shared.FormatDuration(song.DurationMS))
	fmt.Fprintf(&b, "Tuning:   %s\n", models.FormatTuning(song.Tuning))
	fmt.Fprintf(&b, "Genres:   %s\n", models.JoinGenres(song.Genres))

	progress := string(song.Progress)
	switch song.Progress {
	case models.ProgressMastered:
		progress = styles.ok.Render(progress)
	case models.ProgressLearning:
		progress = styles.warn.Render(progress)
	}
	fmt.Fprintf(&b, "Progress: %s\n", progress)

	if song.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", song.Notes)
	}
	if path, ok := m.catalog.ArtPath(song.Album); ok {
		fmt.Fprintf(&b, "\nArt: %s\n", path)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}
