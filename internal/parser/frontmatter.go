package parser

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the content opened a YAML front
// matter block but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// splitFrontMatter separates a leading `---` delimited YAML block from the
// body. Content without front matter comes back unchanged with a nil map.
func splitFrontMatter(content []byte) (map[string]any, []byte, error) {
	nl := "\n"
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = "\r\n"
	}
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	rest := content[len(open):]
	var raw, body []byte
	if bytes.HasPrefix(rest, open) {
		body = rest[len(open):]
	} else {
		closeSeq := []byte(nl + "---" + nl)
		idx := bytes.Index(rest, closeSeq)
		if idx < 0 {
			// Closing delimiter at end of file without trailing newline.
			if bytes.HasSuffix(rest, []byte(nl+"---")) {
				idx = len(rest) - len(nl+"---")
				raw, body = rest[:idx], nil
			} else {
				return nil, nil, ErrMissingClosingDelimiter
			}
		} else {
			raw, body = rest[:idx], rest[idx+len(closeSeq):]
		}
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := yaml.Unmarshal(raw, &meta); err != nil {
			return nil, nil, fmt.Errorf("parse front matter: %w", err)
		}
		if meta == nil {
			meta = map[string]any{}
		}
	}
	return meta, body, nil
}
