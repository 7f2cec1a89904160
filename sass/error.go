package sass

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/cask/compiler"
)

// locationRE matches the stack-trace line dart-sass prints under an error,
// e.g. "  styles/index.scss 3:9  root stylesheet".
var locationRE = regexp.MustCompile(`(?m)^\s*(\S.*?) (\d+):(\d+)\s+root stylesheet\s*$`)

// parseError turns dart-sass stderr into a compiler.Error. Output it cannot
// attribute to a location degrades to a message-only error.
func parseError(stderr string) *compiler.Error {
	cerr := &compiler.Error{
		Message: strings.TrimSpace(stderr),
	}

	for line := range strings.Lines(stderr) {
		if msg, ok := strings.CutPrefix(strings.TrimSpace(line), "Error: "); ok {
			cerr.Message = strings.TrimSpace(msg)
			break
		}
	}

	if m := locationRE.FindStringSubmatch(stderr); m != nil {
		cerr.File = m[1]
		cerr.Line, _ = strconv.Atoi(m[2])
		cerr.Column, _ = strconv.Atoi(m[3])
	}

	return cerr
}
