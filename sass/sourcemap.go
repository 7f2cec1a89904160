package sass

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

// mapCommentPrefix introduces the source map dart-sass embeds when run with
// --embed-source-map.
const mapCommentPrefix = "/*# sourceMappingURL=data:application/json;base64,"

// embeddedMap is a source map recovered from compiler output.
type embeddedMap struct {
	raw     []byte
	sources []string
}

// splitEmbeddedMap separates compiled CSS from the source map comment the CLI
// appended to it. The returned CSS no longer carries the comment.
func splitEmbeddedMap(output []byte) ([]byte, *embeddedMap, error) {
	idx := bytes.LastIndex(output, []byte(mapCommentPrefix))
	if idx < 0 {
		return nil, nil, zerr.New("compiler output carries no embedded source map")
	}

	payload := output[idx+len(mapCommentPrefix):]
	end := bytes.Index(payload, []byte("*/"))
	if end < 0 {
		return nil, nil, zerr.New("unterminated source map comment in compiler output")
	}

	raw, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(payload[:end])))
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to decode source map payload")
	}

	var decoded struct {
		Sources []string `json:"sources"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, nil, zerr.Wrap(err, "failed to parse source map payload")
	}

	css := bytes.TrimRight(output[:idx], "\n")
	css = append(css, '\n')

	return css, &embeddedMap{raw: raw, sources: decoded.Sources}, nil
}

// includedFiles converts the map's source references into filesystem paths.
// With --source-map-urls=absolute the sources are file:// URLs; anything else
// (data: URIs for inline content) is skipped.
func (m *embeddedMap) includedFiles() []string {
	if m == nil {
		return nil
	}

	files := make([]string, 0, len(m.sources))
	for _, src := range m.sources {
		if !strings.HasPrefix(src, "file://") {
			continue
		}
		u, err := url.Parse(src)
		if err != nil {
			continue
		}
		files = append(files, u.Path)
	}
	return files
}
