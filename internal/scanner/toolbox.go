package scanner

import "github.com/buemura/reconbox/pkg/types"

// ToolBox binds a target to the registry and invoker, exposing one
// operation per scanner.
type ToolBox struct {
	target   types.Target
	registry *Registry
	invoker  *Invoker
}

// NewToolBox creates a ToolBox for target. Nil registry or invoker fall back
// to DefaultRegistry and an invoker that inherits the parent's streams.
func NewToolBox(target types.Target, registry *Registry, invoker *Invoker) *ToolBox {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if invoker == nil {
		invoker = NewInvoker()
	}
	return &ToolBox{target: target, registry: registry, invoker: invoker}
}

// Target returns the bound target.
func (b *ToolBox) Target() types.Target {
	return b.target
}

// Spawn launches the scanner identified by id against the bound target.
func (b *ToolBox) Spawn(id ID) (*Process, error) {
	return b.invoker.Spawn(b.registry.Resolve(id), b.target)
}

func (b *ToolBox) Dirsearch() (*Process, error)   { return b.Spawn(Dirsearch) }
func (b *ToolBox) Httpx() (*Process, error)       { return b.Spawn(Httpx) }
func (b *ToolBox) Katana() (*Process, error)      { return b.Spawn(Katana) }
func (b *ToolBox) Nuclei() (*Process, error)      { return b.Spawn(Nuclei) }
func (b *ToolBox) Waybackurls() (*Process, error) { return b.Spawn(Waybackurls) }
func (b *ToolBox) Subfinder() (*Process, error)   { return b.Spawn(Subfinder) }
func (b *ToolBox) Naabu() (*Process, error)       { return b.Spawn(Naabu) }
