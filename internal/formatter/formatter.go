// package formatter provides functions to export the cached library to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/latke/internal/models"
	"github.com/desertthunder/latke/internal/shared"
)

// ExportToCSV converts cached tracks to CSV format with columns: ID, Title, Artist, Album, Length
func ExportToCSV(tracks []*models.CachedTrack) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Length"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.RemoteID(),
			track.Title(),
			track.Artist(),
			track.Album(),
			strconv.Itoa(track.Length()),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the cached library to Markdown format
func ExportToMarkdown(tracks []*models.CachedTrack, playlists []*models.CachedPlaylist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Library\n\n")
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(tracks)))
	buf.WriteString(fmt.Sprintf("**Playlists**: %d\n\n", len(playlists)))

	if len(playlists) > 0 {
		buf.WriteString("## Playlists\n\n")
		for i, playlist := range playlists {
			descPart := ""
			if playlist.Description() != "" {
				descPart = fmt.Sprintf(" — %s", playlist.Description())
			}
			buf.WriteString(fmt.Sprintf("%d. %s (%d tracks)%s\n", i+1, playlist.Name(), playlist.TrackCount(), descPart))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		length := shared.FormatDuration(track.Length())
		albumPart := ""
		if track.Album() != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album())
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist(), track.Title(), albumPart, length))
	}

	return buf.Bytes(), nil
}

// ExportToText converts the cached library to plain text format
func ExportToText(tracks []*models.CachedTrack, playlists []*models.CachedPlaylist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Tracks: %d\n", len(tracks)))
	buf.WriteString(fmt.Sprintf("Playlists: %d\n\n", len(playlists)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist(), track.Title()))
	}

	return buf.Bytes(), nil
}
