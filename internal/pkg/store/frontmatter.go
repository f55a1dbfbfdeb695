package store

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"newsletter/internal/pkg/models"
)

// A record file is a YAML front matter block between two lines of "---",
// a blank line, then the body verbatim. The file always ends with a single
// newline so a crash-interrupted write is distinguishable from a short one.
const headerOpen = "---\n"
const headerClose = "\n---\n"

// Serializes metadata and body into the on-disk record format.
func encodeRecord(meta models.Metadata, body string) ([]byte, error) {
	header, err := yaml.Marshal(map[string]any(meta))
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(headerOpen)
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Splits a record file into metadata and body. A file without a recognizable
// front matter block is treated as bodyless metadata with the whole file as
// body, so one malformed record never aborts a bulk scan.
func decodeRecord(raw []byte) (models.Metadata, string) {
	text := string(raw)
	if strings.HasPrefix(text, headerOpen) {
		rest := text[len(headerOpen):]
		if i := strings.Index(rest, headerClose); i != -1 {
			meta := models.Metadata{}
			if err := yaml.Unmarshal([]byte(rest[:i+1]), &meta); err == nil {
				body := rest[i+len(headerClose):]
				body = strings.TrimPrefix(body, "\n") // blank line after the header
				body = strings.TrimSuffix(body, "\n") // guaranteed trailing newline
				return meta, body
			}
		}
	}
	return models.Metadata{}, text
}
