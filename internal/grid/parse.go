package grid

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"solarbom/internal/errors"
)

// Format identifies a layout file encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the layout format from a file extension.
// Unknown extensions are read as text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// ParseFile reads and parses a layout file.
func ParseFile(path string) (Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidLayout, err, "failed to read layout %s", path)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a layout in the given format and validates the result.
func Parse(data []byte, format Format) (Grid, error) {
	var (
		g   Grid
		err error
	)
	switch format {
	case FormatText:
		g, err = parseText(data)
	case FormatJSON:
		g, err = parseJSON(data)
	case FormatYAML:
		g, err = parseYAML(data)
	case FormatTOML:
		g, err = parseTOML(data)
	default:
		return nil, errors.New(errors.InvalidLayout, "unsupported layout format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// layoutDoc is the document shape shared by the structured formats.
type layoutDoc struct {
	Rows []interface{} `json:"rows" yaml:"rows" toml:"rows"`
}

func parseText(data []byte) (Grid, error) {
	var g Grid
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, ";") || strings.HasPrefix(text, "//") {
			continue
		}
		row, err := parseTextRow(text)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidLayout, err, "line %d", line)
		}
		g = append(g, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.InvalidLayout, err, "failed to scan layout")
	}
	return g, nil
}

// parseTextRow reads one row such as "0110", "#..#" or "1 0 1".
func parseTextRow(text string) ([]int, error) {
	row := make([]int, 0, len(text))
	for _, ch := range text {
		switch ch {
		case '1', '#', 'x', 'X':
			row = append(row, Panel)
		case '0', '.', '-':
			row = append(row, Empty)
		case ' ', '\t', ',':
		default:
			return nil, fmt.Errorf("unexpected character %q", ch)
		}
	}
	return row, nil
}

func parseJSON(data []byte) (Grid, error) {
	trimmed := bytes.TrimSpace(data)
	var doc layoutDoc
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Rows); err != nil {
			return nil, errors.Wrap(errors.InvalidLayout, err, "failed to parse JSON layout")
		}
	} else if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Wrap(errors.InvalidLayout, err, "failed to parse JSON layout")
	}
	return fromValues(doc.Rows)
}

func parseYAML(data []byte) (Grid, error) {
	var doc layoutDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.InvalidLayout, err, "failed to parse YAML layout")
	}
	return fromValues(doc.Rows)
}

func parseTOML(data []byte) (Grid, error) {
	var doc layoutDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.InvalidLayout, err, "failed to parse TOML layout")
	}
	return fromValues(doc.Rows)
}

// fromValues converts decoded rows, each either a text row or a list of numbers.
func fromValues(rows []interface{}) (Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.InvalidLayout, "layout has no rows")
	}
	g := make(Grid, 0, len(rows))
	for i, raw := range rows {
		switch v := raw.(type) {
		case string:
			row, err := parseTextRow(v)
			if err != nil {
				return nil, errors.Wrap(errors.InvalidLayout, err, "row %d", i)
			}
			g = append(g, row)
		case []interface{}:
			row := make([]int, len(v))
			for c, cell := range v {
				n, ok := toInt(cell)
				if !ok {
					return nil, errors.New(errors.InvalidLayout, "row %d column %d is not a number: %v", i, c, cell)
				}
				row[c] = n
			}
			g = append(g, row)
		default:
			return nil, errors.New(errors.InvalidLayout, "row %d must be a string or a list, got %T", i, raw)
		}
	}
	return g, nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
