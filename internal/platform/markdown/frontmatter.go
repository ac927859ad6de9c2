package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator      = "---\n"
	closeSeparator = "\n---\n"
)

// DecodeFrontmatter unmarshals a leading YAML block into out, which may be a
// map or a yaml-tagged struct, and returns the body after it. found is false
// when the content has no frontmatter; out is then left untouched.
func DecodeFrontmatter(content string, out any) (body string, found bool, err error) {
	if !strings.HasPrefix(content, separator) {
		return content, false, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, closeSeparator)
	if idx < 0 {
		return "", false, fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), out); err != nil {
		return "", false, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return rest[idx+len(closeSeparator):], true, nil
}

// RenderFrontmatter accepts a map or a yaml-tagged struct; structs keep their
// field order in the output. The body always starts on its own line after
// the closing separator.
func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(separator)*2 + len(raw) + len(body) + 1)
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}
