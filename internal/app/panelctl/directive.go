// internal/app/panelctl/directive.go
package panelctl

import (
	"time"

	"github.com/llehouerou/dctransit/internal/ui/layout"
)

// SettleDelay is how long a shown or hidden panel animates before the
// renderer finalises its visibility.
const SettleDelay = time.Second

// ElevatedZ is the stacking value used while a panel is brought forward.
const ElevatedZ = 50

// Kind identifies a render directive.
type Kind int

const (
	Show Kind = iota
	Hide
	AddOpenClass
	RemoveOpenClass
	ApplyStyle
	SetStacking
)

func (k Kind) String() string {
	switch k {
	case Show:
		return "show"
	case Hide:
		return "hide"
	case AddOpenClass:
		return "add-open"
	case RemoveOpenClass:
		return "remove-open"
	case ApplyStyle:
		return "apply-style"
	case SetStacking:
		return "set-stacking"
	default:
		return "unknown"
	}
}

// Directive tells the renderer how a panel's presentation changes.
type Directive struct {
	Kind   Kind
	ID     string
	Settle time.Duration     // Show, Hide
	Style  layout.Stylesheet // ApplyStyle
	Value  int               // SetStacking
}

// Renderer applies directives. Apply must not call back into the Manager.
type Renderer interface {
	Apply(d Directive)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(d Directive)

func (f RendererFunc) Apply(d Directive) { f(d) }

// Recorder is a Renderer that keeps every directive it receives.
type Recorder struct {
	Directives []Directive
}

func (r *Recorder) Apply(d Directive) {
	r.Directives = append(r.Directives, d)
}

// Reset forgets recorded directives.
func (r *Recorder) Reset() {
	r.Directives = nil
}

// Kinds returns the recorded directive kinds in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Directives))
	for i, d := range r.Directives {
		out[i] = d.Kind
	}
	return out
}
