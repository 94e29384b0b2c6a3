package formatter

import (
	"strings"
	"testing"

	"github.com/desertthunder/latke/internal/models"
)

func sampleLibrary() ([]*models.CachedTrack, []*models.CachedPlaylist) {
	tracks := []*models.CachedTrack{
		models.NewCachedTrack(1, "t1", "First", "Band", "LP", 200),
		models.NewCachedTrack(2, "t2", "Second", "Band", "", 65),
	}
	playlists := []*models.CachedPlaylist{
		models.NewCachedPlaylist(1, "p1", "Favorites", "the good ones", 2),
	}
	return tracks, playlists
}

func TestExportToCSV(t *testing.T) {
	tracks, _ := sampleLibrary()

	data, err := ExportToCSV(tracks)
	if err != nil {
		t.Fatalf("failed to export CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "ID,Title,Artist,Album,Length" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "t1,First,Band,LP,200" {
		t.Errorf("unexpected first record: %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	tracks, playlists := sampleLibrary()

	data, err := ExportToMarkdown(tracks, playlists)
	if err != nil {
		t.Fatalf("failed to export Markdown: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"# Library",
		"**Tracks**: 2",
		"1. Favorites (2 tracks) — the good ones",
		"1. Band - First (LP) [3:20]",
		"2. Band - Second [1:05]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in markdown output:\n%s", want, out)
		}
	}
}

func TestExportToText(t *testing.T) {
	tracks, playlists := sampleLibrary()

	data, err := ExportToText(tracks, playlists)
	if err != nil {
		t.Fatalf("failed to export text: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "Tracks: 2") || !strings.Contains(out, "2. Band - Second") {
		t.Errorf("unexpected text output:\n%s", out)
	}
}
