package main

import (
	"context"
	"log"

	"github.com/jmalven/phenolic/pkg/engine"
	"github.com/jmalven/phenolic/pkg/kernel"
	"github.com/jmalven/phenolic/pkg/kernel/sdfx"
	"github.com/jmalven/phenolic/pkg/resolve"
	"github.com/jmalven/phenolic/pkg/rocket"
	"github.com/jmalven/phenolic/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// MassSummary is the resolved mass-property readout shown alongside the
// 3D view.
type MassSummary struct {
	Mass    float64    `json:"mass"`    // kg
	CG      float64    `json:"cg"`      // m from the nose tip
	Inertia [3]float64 `json:"inertia"` // Ixx, Iyy, Izz about the CG
	Length  float64    `json:"length"`  // m overall
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
	Mass     *MassSummary    `json:"mass,omitempty"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes rocket DSL source and returns mesh data, mass properties,
// and errors. This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a design tree.
	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: err.Error(),
		})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Source that never builds a rocket renders an empty scene.
	if d == nil || d.ComponentCount() == 0 {
		return result
	}

	// Advisory findings never block rendering but are worth surfacing.
	for _, w := range rocket.ValidateAll(d).Warnings {
		msg := w.Message
		if w.Path != "" {
			msg = w.Path + ": " + msg
		}
		result.Warnings = append(result.Warnings, EvalErrorData{Message: msg})
	}

	// Step 3: Resolve automatic radii, positions, and mass properties.
	// Resolution runs full validation; a failure here carries the offending
	// component's path in its message.
	snap, err := resolve.Resolve(d)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: err.Error(),
		})
		return result
	}

	result.Mass = &MassSummary{
		Mass:    snap.Mass.Mass,
		CG:      snap.Mass.CG,
		Inertia: [3]float64{snap.Mass.Inertia.X(), snap.Mass.Inertia.Y(), snap.Mass.Inertia.Z()},
		Length:  snap.OverallLength(),
	}

	// Step 4: Tessellate the resolved snapshot into triangle meshes.
	meshes, err := tessellate.Tessellate(snap, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 5: Convert kernel meshes to the frontend MeshData format.
	for i, m := range meshes {
		color := colorPalette[i%len(colorPalette)]
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    color,
		})
	}

	return result
}
