package output

import (
	"encoding/json"
	"io"

	"github.com/buemura/reconbox/pkg/types"
)

// JSONFormatter renders invocations as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, invocations []types.Invocation) error {
	if invocations == nil {
		invocations = []types.Invocation{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(invocations)
}
