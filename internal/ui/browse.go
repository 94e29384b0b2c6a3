package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/latke/internal/models"
)

// LibraryCache is the read side of the local cache consumed by the browser.
type LibraryCache interface {
	ListTracks() ([]*models.CachedTrack, error)
	ListPlaylists() ([]*models.CachedPlaylist, error)
}

// BrowseView represents the current list in the browser.
type BrowseView int

const (
	PlaylistView BrowseView = iota
	TrackView
)

type libraryLoadedMsg struct {
	tracks    []*models.CachedTrack
	playlists []*models.CachedPlaylist
	err       error
}

// BrowseModel is a two-list browser over the cached library.
type BrowseModel struct {
	cache        LibraryCache
	view         BrowseView
	width        int
	height       int
	playlistList list.Model
	trackList    list.Model
	loaded       bool
	err          error
	help         help.Model
	keys         keyMap
}

// NewBrowseModel creates a new library browser backed by the given cache.
func NewBrowseModel(cache LibraryCache) *BrowseModel {
	return &BrowseModel{
		cache: cache,
		view:  PlaylistView,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Err returns the error that ended the browser, if any.
func (m *BrowseModel) Err() error {
	return m.err
}

// Init loads the cached library.
func (m *BrowseModel) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.view == PlaylistView {
				m.view = TrackView
			} else {
				m.view = PlaylistView
			}
			return m, nil
		}

	case libraryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}

		playlistItems := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			playlistItems[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(playlistItems, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Playlists"

		trackItems := make([]list.Item, len(msg.tracks))
		for i, tr := range msg.tracks {
			trackItems[i] = trackItem{track: tr}
		}
		m.trackList = list.New(trackItems, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = "Tracks"

		m.playlistList.SetSize(m.width-4, m.height-8)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.loaded = true
		return m, nil
	}

	if !m.loaded {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case PlaylistView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

// View renders the active list.
func (m *BrowseModel) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	if !m.loaded {
		return "Loading library...\n"
	}

	helpKeys := []key.Binding{m.keys.toggle, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	switch m.view {
	case TrackView:
		return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
	default:
		return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
	}
}

func (m *BrowseModel) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.cache.ListTracks()
		if err != nil {
			return libraryLoadedMsg{err: err}
		}
		playlists, err := m.cache.ListPlaylists()
		if err != nil {
			return libraryLoadedMsg{err: err}
		}
		return libraryLoadedMsg{tracks: tracks, playlists: playlists}
	}
}
