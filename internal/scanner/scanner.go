// Package scanner maps scanner identifiers to external tool invocations and
// launches them against a target.
//
// A Registry resolves an ID to an immutable Spec (executable + argument
// template). Render binds a Target to the template and an Invoker spawns the
// executable without a shell. ToolBox is the convenience facade that composes
// the two for a fixed target; Runner layers caller policy (timeouts, output
// capture, batching) on top.
package scanner

import (
	"fmt"
	"strings"
	"time"

	"github.com/buemura/reconbox/pkg/types"
)

// ID identifies one of the supported external tools.
type ID int

const (
	Dirsearch ID = iota + 1
	Httpx
	Katana
	Nuclei
	Waybackurls
	Subfinder
	Naabu
)

var idNames = map[ID]string{
	Dirsearch:   "dirsearch",
	Httpx:       "httpx",
	Katana:      "katana",
	Nuclei:      "nuclei",
	Waybackurls: "waybackurls",
	Subfinder:   "subfinder",
	Naabu:       "naabu",
}

// IDs returns every known identifier in catalog order.
func IDs() []ID {
	return []ID{Dirsearch, Httpx, Katana, Nuclei, Waybackurls, Subfinder, Naabu}
}

// Names returns the names of every known identifier in catalog order.
func Names() []string {
	ids := IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}

func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return fmt.Sprintf("scanner(%d)", int(id))
}

// Valid reports whether id belongs to the known set.
func (id ID) Valid() bool {
	_, ok := idNames[id]
	return ok
}

// ParseID returns the identifier with the given name (case-insensitive).
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range idNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("scanner %q not found", name)
}

// ParseIDs parses a list of scanner names, rejecting unknown ones.
func ParseIDs(names []string) ([]ID, error) {
	ids := make([]ID, 0, len(names))
	for _, name := range names {
		id, err := ParseID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Options holds caller-side execution policy for a Runner.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	Capture     bool
	FailFast    bool
	Verbose     bool

	// OnFinish, if set, is called by RunAll as each scanner finishes, with
	// the scanner's position in the batch. It may be called concurrently.
	OnFinish func(index int, inv types.Invocation)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Concurrency: 4,
		Timeout:     30 * time.Minute,
		Capture:     true,
	}
}
