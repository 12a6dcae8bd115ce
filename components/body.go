package components

// Body holds presentation properties of an orb. The core never reads them.
type Body struct {
	Size  float32
	Color [3]float32 // last trail position, used as an RGB seed by renderers
}
