package rocket

// Component is one physical part of the rocket assembly.
type Component struct {
	ID        ComponentID   `json:"id"`
	Kind      ComponentKind `json:"kind"`
	Name      string        `json:"name,omitempty"`
	Parent    int           `json:"parent"` // arena index, NoParent for the root
	Placement Placement     `json:"placement"`
	Material  MaterialSpec  `json:"material"`
	Mass      MassSpec      `json:"mass"`
	Data      ComponentData `json:"data"`
}

// ComponentData is the interface for kind-specific component payloads.
type ComponentData interface {
	componentData() // marker method restricting implementations to this package

	// AxialLength is the component's extent along the longitudinal axis,
	// used to translate child anchors into absolute positions.
	AxialLength() float64
}
