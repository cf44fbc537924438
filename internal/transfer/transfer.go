// Package transfer moves a buddy list in and out of the store as YAML or
// JSON documents.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/timezone-buddy/internal/buddies"
	"github.com/aanand-mishra/timezone-buddy/internal/types"
)

// Format is a document encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want yaml or json)", s)
	}
}

// FormatForPath picks a format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// document is the exported shape. The wrapper leaves room for metadata
// without breaking older files.
type document struct {
	Buddies []types.Buddy `json:"buddies" yaml:"buddies"`
}

// Export writes list to w.
func Export(w io.Writer, list []types.Buddy, f Format) error {
	if list == nil {
		list = []types.Buddy{}
	}
	doc := document{Buddies: list}

	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("Export: encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("Export: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("Export: flush yaml: %w", err)
		}
	}
	return nil
}

// Import reads a document from r and returns the records as form
// inputs, so they go through the same validation as a new buddy.
// Stored avatars are ignored and derived again.
func Import(r io.Reader, f Format) ([]buddies.Input, error) {
	var doc document

	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("Import: decode json: %w", err)
		}
	default:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("Import: decode yaml: %w", err)
		}
	}

	inputs := make([]buddies.Input, 0, len(doc.Buddies))
	for _, b := range doc.Buddies {
		inputs = append(inputs, buddies.Input{
			Name:          b.Name,
			TwitterHandle: b.TwitterHandle,
			TZ:            b.TZ,
		})
	}
	return inputs, nil
}
