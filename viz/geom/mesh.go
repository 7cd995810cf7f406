package geom

// Vertex is a coloured world-space point.
type Vertex struct {
	Pos   Vec2
	Color Color
}

// Primitive selects how a vertex list is assembled.
type Primitive uint8

const (
	// Lines consumes vertices in pairs, one hairline per pair.
	Lines Primitive = iota + 1
	// Triangles consumes vertices in triples.
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	}
	return "unknown"
}

// Layer names a draw slot. Layers are drawn in ascending order.
type Layer uint8

const (
	LayerSecondaryGrid Layer = iota
	LayerPrimaryGrid
	LayerAxes
	LayerTrace
	LayerMarker
)

func (l Layer) String() string {
	switch l {
	case LayerSecondaryGrid:
		return "grid-secondary"
	case LayerPrimaryGrid:
		return "grid-primary"
	case LayerAxes:
		return "axes"
	case LayerTrace:
		return "trace"
	case LayerMarker:
		return "marker"
	}
	return "unknown"
}

// Mesh is one draw call: a vertex list, how to assemble it and where it goes.
//
// Vertices is borrowed from the builder and stays valid until the next frame
// step; backends may hold it until then but must not modify it.
type Mesh struct {
	Layer     Layer
	Primitive Primitive
	Vertices  []Vertex
}
