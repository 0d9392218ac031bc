// package formatter provides functions to export a generated soundtrack to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"booktrack/internal/shared"
	"booktrack/internal/tasks"
)

// ExportToCSV converts a soundtrack to CSV format with columns: ID, Title, Artist, Album, Popularity, URI
func ExportToCSV(result *tasks.SoundtrackResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Popularity", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range result.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Popularity),
			track.URI,
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

// ExportToMarkdown converts a soundtrack to Markdown format with optional cover image
func ExportToMarkdown(result *tasks.SoundtrackResult, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", tasks.PlaylistName(result.Book)))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Book**: %s by %s\n\n", result.Book.Title, strings.Join(result.Book.Authors, ", ")))

	if len(result.Profile) > 0 {
		buf.WriteString("## Profile\n\n")
		buf.WriteString("```\n")
		buf.WriteString(result.Profile.Format())
		buf.WriteString("\n```\n\n")
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(result.Tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range result.Tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [popularity %d]\n", i+1, track.Artist, track.Name, albumPart, track.Popularity))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a soundtrack to plain text format
func ExportToText(result *tasks.SoundtrackResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Soundtrack: %s\n", tasks.PlaylistName(result.Book)))
	buf.WriteString(fmt.Sprintf("Book: %s by %s\n", result.Book.Title, strings.Join(result.Book.Authors, ", ")))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(result.Tracks)))

	for i, track := range result.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Name))
	}

	return buf.Bytes(), nil
}

// ExportToJSON generates a pretty-printed JSON representation of the full result
func ExportToJSON(result *tasks.SoundtrackResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteCSVExport exports a soundtrack to CSV with an accompanying profile JSON file.
//
// Defaults to the book title as the base filename & creates {base}_tracks.csv and {base}_profile.json
func WriteCSVExport(result *tasks.SoundtrackResult, baseFilepath string) ([]string, error) {
	if baseFilepath == "" {
		baseFilepath = exportBaseName(result)
	}

	csvData, err := ExportToCSV(result)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	profileJSON, err := shared.MarshalJSON(result.Profile, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile JSON: %w", err)
	}

	profileFile := baseFilepath + "_profile.json"
	if err := os.WriteFile(profileFile, profileJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write profile file: %w", err)
	}

	return []string{tracksFile, profileFile}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a soundtrack to Markdown format in a dedicated directory.
//
// Directory name defaults to the book title.
// If the book record carries a cover image URL, attempts to download it.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(result *tasks.SoundtrackResult, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = exportBaseName(result)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	export := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if result.Book.CoverImageURL != "" {
		imageData, err := DownloadImage(result.Book.CoverImageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				export.CoverImage = coverImagePath
				export.Files = append(export.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(result, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	export.Files = append(export.Files, mdFile)

	return export, nil
}

// WriteTextExport exports a soundtrack to plain text format.
//
// Defaults to {book title}_tracks.txt as the filename.
func WriteTextExport(result *tasks.SoundtrackResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = exportBaseName(result) + "_tracks.txt"
	}

	textData, err := ExportToText(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// exportBaseName derives a filesystem-friendly base name from the book title.
func exportBaseName(result *tasks.SoundtrackResult) string {
	name := strings.ToLower(result.Book.Title)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.Trim(name, "_")
	if name == "" {
		name = "soundtrack"
	}
	return name
}
