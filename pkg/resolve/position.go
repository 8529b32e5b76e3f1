package resolve

import (
	"fmt"

	"github.com/jmalven/phenolic/pkg/rocket"
)

// resolvePositions assigns every component an absolute axial span. The
// global origin is the top of the root component; the axis points toward
// the tail. Each component's top edge sits at the parent's anchor point
// plus the local offset.
//
// The pass runs in arena index order with one addition and at most one
// multiply-add per component, so identical designs always produce
// bit-identical positions. The parent-precedes-child ordering makes the
// unresolved-parent branch a structural-integrity check rather than
// something a well-formed tree can hit.
func resolvePositions(d *rocket.Design) ([]Span, error) {
	spans := make([]Span, d.ComponentCount())
	placed := make([]bool, d.ComponentCount())

	for i, c := range d.Components {
		length := c.Data.AxialLength()

		if c.Parent == rocket.NoParent {
			spans[i] = Span{Top: 0, Bottom: length}
			placed[i] = true
			continue
		}
		if c.Parent >= i || !placed[c.Parent] {
			return nil, &rocket.UnresolvedReferenceError{
				Path:   d.Path(i),
				Reason: fmt.Sprintf("parent %q has no resolved position", d.Path(c.Parent)),
			}
		}

		parent := spans[c.Parent]
		var anchor float64
		switch c.Placement.Anchor {
		case rocket.AnchorTop:
			anchor = parent.Top
		case rocket.AnchorMiddle:
			anchor = parent.Top + (parent.Bottom-parent.Top)/2
		case rocket.AnchorBottom:
			anchor = parent.Bottom
		default:
			return nil, &rocket.UnresolvedReferenceError{
				Path:   d.Path(i),
				Reason: fmt.Sprintf("unknown anchor %v", c.Placement.Anchor),
			}
		}

		top := anchor + c.Placement.Offset
		spans[i] = Span{Top: top, Bottom: top + length}
		placed[i] = true
	}
	return spans, nil
}
