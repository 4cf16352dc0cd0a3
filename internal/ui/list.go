package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/fretlog/fretlog/internal/models"
	"github.com/fretlog/fretlog/internal/shared"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song *models.Song
}

func (i songItem) FilterValue() string {
	return shared.NormalizeSongKey(i.song.Title, i.song.Artist)
}

func (i songItem) Title() string {
	return fmt.Sprintf("%s — %s", i.song.DisplayArtist(), i.song.DisplayTitle())
}

func (i songItem) Description() string {
	desc := string(i.song.Progress)
	if tuning := models.FormatTuning(i.song.Tuning); tuning != "" {
		desc = fmt.Sprintf("%s • %s", desc, tuning)
	}
	if i.song.Album != "" && i.song.Album != "N/A" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	return desc
}
