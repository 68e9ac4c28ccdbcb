package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

var frontmatterDelim = []byte("---")

// ErrNoFrontmatter is returned when a skill file does not open with a YAML block.
var ErrNoFrontmatter = errors.New("missing YAML frontmatter")

// SyntaxError reports a JSON syntax error with a 1-based line and column.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v (line %d, column %d)", e.Err, e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// CheckJSON reports whether data is a well-formed JSON document. Syntax
// errors are returned as *SyntaxError.
func CheckJSON(data []byte) error {
	var v interface{}
	err := json.Unmarshal(data, &v)
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		offset := se.Offset
		if offset > 0 {
			offset--
		}
		line, col := position(data, offset)
		return &SyntaxError{Line: line, Column: col, Err: err}
	}
	return err
}

// ParseSettings reads and decodes a settings file.
func ParseSettings(path string) (*Settings, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return &s, nil
}

// ParseMCP reads and decodes an MCP manifest.
func ParseMCP(path string) (*MCPConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var m MCPConfig
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing MCP manifest %s: %w", path, err)
	}
	return &m, nil
}

// ParseFrontmatter extracts and decodes the YAML frontmatter of a skill file
// and returns it together with the Markdown body that follows.
func ParseFrontmatter(data []byte) (*SkillFrontmatter, []byte, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(data, frontmatterDelim) {
		return nil, nil, ErrNoFrontmatter
	}

	rest := data[len(frontmatterDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil, nil, ErrNoFrontmatter
	}
	rest = rest[nl+1:]

	end := bytes.Index(rest, append([]byte("\n"), frontmatterDelim...))
	var block, body []byte
	switch {
	case bytes.HasPrefix(rest, frontmatterDelim):
		block, body = nil, rest[len(frontmatterDelim):]
	case end >= 0:
		block, body = rest[:end+1], rest[end+1+len(frontmatterDelim):]
	default:
		return nil, nil, fmt.Errorf("unterminated frontmatter: %w", ErrNoFrontmatter)
	}

	var fm SkillFrontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return &fm, bytes.TrimLeft(body, "\r\n"), nil
}

// ParseSkill reads a SKILL.md file and decodes its frontmatter.
func ParseSkill(path string) (*SkillFrontmatter, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	fm, _, err := ParseFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("skill %s: %w", path, err)
	}
	return fm, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
