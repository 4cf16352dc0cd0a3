// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing the catalog:
//  1. [SongListView] : Scroll and filter the saved songs
//  2. [DetailView] : Inspect a single song's tuning, genres, and notes
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Songs load asynchronously on startup via a [songsLoadedMsg] so the first
// frame renders before the database round trip completes.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
