package scanner

import (
	"fmt"

	"github.com/buemura/reconbox/pkg/types"
)

// Render binds target to the spec's argument template, preserving order.
// Literals pass through untouched; nothing is quoted because the result is
// an argument vector, never a shell string.
func Render(spec Spec, target types.Target) ([]string, error) {
	args := make([]string, 0, len(spec.Args))
	for i, tok := range spec.Args {
		switch tok.kind {
		case kindURL:
			args = append(args, target.URL)
		case kindHost:
			host, ok := target.Hostname()
			if !ok {
				return nil, &HostResolutionError{Scanner: spec.ID, Target: target.URL}
			}
			args = append(args, host)
		case kindLiteral:
			args = append(args, tok.value)
		default:
			return nil, fmt.Errorf("%s: argument %d is not a valid token", spec.ID, i)
		}
	}
	return args, nil
}
