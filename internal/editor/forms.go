package editor

import (
	"encoding/json"
	"strings"

	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/model"
)

// ParseLegalityNotes parses the item form's legality-notes field, a
// JSON object mapping region to note text. An empty field is an empty
// map; anything unparsable is a validation error and the submit is
// aborted without touching the session.
func ParseLegalityNotes(text string) (map[string]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return map[string]string{}, nil
	}

	notes := make(map[string]string)
	if err := json.Unmarshal([]byte(text), &notes); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation,
			"legality notes must be a JSON object of region to note", err)
	}
	return notes, nil
}

// ParseSources parses the item form's sources field: one source per
// line, "Title http://..." with the URL optional anywhere on the line.
func ParseSources(text string) []model.Source {
	var sources []model.Source
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		url := ""
		for _, p := range parts {
			if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
				url = p
				break
			}
		}

		if url == "" {
			sources = append(sources, model.Source{Title: line})
			continue
		}

		title := make([]string, 0, len(parts)-1)
		for _, p := range parts {
			if p != url {
				title = append(title, p)
			}
		}
		src := model.Source{Title: strings.Join(title, " "), URL: url}
		if src.Title == "" {
			src.Title = url
		}
		sources = append(sources, src)
	}
	return sources
}
