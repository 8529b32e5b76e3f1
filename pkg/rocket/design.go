package rocket

import (
	"fmt"
	"strings"
)

// Design is the top-level rocket assembly: a flat arena of components with
// parent-index back-references. The arena keeps ownership acyclic by
// construction (a child can only be added under an existing parent) and
// makes mass aggregation a flat iteration. A design is built once at
// setup time and treated as immutable by the resolvers.
type Design struct {
	Name           string                `json:"name"`
	Components     []*Component          `json:"components"`
	Configurations []*MotorConfiguration `json:"configurations,omitempty"`
	Sensors        []SensorMount         `json:"sensors,omitempty"`

	nameIndex map[string]int
}

// NewDesign creates an empty design.
func NewDesign(name string) *Design {
	return &Design{
		Name:      name,
		nameIndex: make(map[string]int),
	}
}

// AddComponent appends a component under the given parent index and returns
// its arena index. The first component must use NoParent and becomes the
// root; every other component must name an existing parent. The component's
// ID is derived from its path if unset.
func (d *Design) AddComponent(parent int, c *Component) (int, error) {
	if parent == NoParent {
		if len(d.Components) != 0 {
			return 0, fmt.Errorf("design %q already has a root component", d.Name)
		}
	} else if parent < 0 || parent >= len(d.Components) {
		return 0, fmt.Errorf("parent index %d out of range (%d components)", parent, len(d.Components))
	}

	c.Parent = parent
	idx := len(d.Components)
	d.Components = append(d.Components, c)
	if c.ID.IsZero() {
		c.ID = NewComponentID(d.Path(idx))
	}
	if c.Name != "" {
		if d.nameIndex == nil {
			d.nameIndex = make(map[string]int)
		}
		d.nameIndex[c.Name] = idx
	}
	return idx, nil
}

// Get returns the component at the given arena index, or nil.
func (d *Design) Get(i int) *Component {
	if i < 0 || i >= len(d.Components) {
		return nil
	}
	return d.Components[i]
}

// Root returns the root component, or nil for an empty design.
func (d *Design) Root() *Component {
	if len(d.Components) == 0 {
		return nil
	}
	return d.Components[0]
}

// Lookup returns the arena index of the component with the given name.
func (d *Design) Lookup(name string) (int, bool) {
	i, ok := d.nameIndex[name]
	return i, ok
}

// Children returns the arena indices of the direct children of component i,
// in insertion order.
func (d *Design) Children(i int) []int {
	var out []int
	for j, c := range d.Components {
		if c.Parent == i {
			out = append(out, j)
		}
	}
	return out
}

// Path returns the slash-joined name path from the root to component i,
// used to identify offending components in errors. Unnamed components
// contribute their kind. Components whose parent chain is cyclic or points
// out of range are identified by index and kind instead, so validation can
// report a malformed arena rather than follow the broken chain.
func (d *Design) Path(i int) string {
	c := d.Get(i)
	if c == nil {
		return ""
	}
	var segs []string
	for {
		if len(segs) >= len(d.Components) {
			return fmt.Sprintf("#%d(%s)", i, d.Components[i].Kind)
		}
		seg := c.Name
		if seg == "" {
			seg = c.Kind.String()
		}
		segs = append(segs, seg)
		if c.Parent == NoParent {
			break
		}
		c = d.Get(c.Parent)
		if c == nil {
			return fmt.Sprintf("#%d(%s)", i, d.Components[i].Kind)
		}
	}
	for l, r := 0, len(segs)-1; l < r; l, r = l+1, r-1 {
		segs[l], segs[r] = segs[r], segs[l]
	}
	return strings.Join(segs, "/")
}

// Walk visits every component depth-first from the root, children in
// insertion order. It does nothing on an empty design.
func (d *Design) Walk(fn func(i int, c *Component)) {
	if len(d.Components) == 0 {
		return
	}
	var visit func(i int)
	visit = func(i int) {
		fn(i, d.Components[i])
		for _, child := range d.Children(i) {
			visit(child)
		}
	}
	visit(0)
}

// ComponentCount returns the number of components in the arena.
func (d *Design) ComponentCount() int {
	return len(d.Components)
}

// MotorMounts returns the arena indices of inner tubes flagged as motor
// mounts, in insertion order.
func (d *Design) MotorMounts() []int {
	var out []int
	for i, c := range d.Components {
		if it, ok := c.Data.(InnerTubeData); ok && it.MotorMount {
			out = append(out, i)
		}
	}
	return out
}
