// Package rocket defines the component-tree model for Phenolic.
// A rocket is an arena of components with parent-index back-references:
// nose cone, body tubes, transitions, inner tubes, fin sets, bulkheads,
// couplers, launch lugs, and discrete masses, each carrying placement,
// material, and optional mass-override data.
package rocket
