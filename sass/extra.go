package sass

import (
	"fmt"
	"slices"
)

// extraArgs renders pass-through options as CLI flags. Keys are emitted in
// sorted order so argv is deterministic. A true bool becomes a bare flag, a
// false bool its --no- negation, anything else --key=value.
func extraArgs(extra map[string]any) []string {
	if len(extra) == 0 {
		return nil
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := extra[k].(type) {
		case bool:
			if v {
				args = append(args, "--"+k)
			} else {
				args = append(args, "--no-"+k)
			}
		default:
			args = append(args, fmt.Sprintf("--%s=%v", k, v))
		}
	}
	return args
}
