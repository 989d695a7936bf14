package voxel

import "fmt"

// Session owns the model data of one visualization. It caches the vertex list
// and bounds of the loaded mesh so a resolution change re-voxelizes without
// touching the mesh source again.
//
// A Session is not safe for concurrent use.
type Session struct {
	key      SessionKey
	model    ModelData
	loaded   bool
	lastGrid *OccupancyGrid
	lastSize int
}

// NewSession returns an empty session.
func NewSession(key SessionKey) *Session {
	return &Session{key: key}
}

// Key returns the key the session was created with.
func (s *Session) Key() SessionKey {
	return s.key
}

// Load computes bounds for vertices and caches the result, replacing any
// previously loaded model. The vertex slice is copied.
func (s *Session) Load(vertices []Vertex) (ModelData, error) {
	bounds, err := ComputeBounds(vertices)
	if err != nil {
		return ModelData{}, fmt.Errorf("loading model: %w", err)
	}
	s.SetModel(ModelData{
		Vertices: append([]Vertex(nil), vertices...),
		Bounds:   bounds,
	})
	return s.model, nil
}

// SetModel installs an already computed snapshot.
func (s *Session) SetModel(m ModelData) {
	s.model = m
	s.loaded = true
	s.lastGrid = nil
	s.lastSize = 0
}

// Model returns the cached snapshot and whether one is loaded.
func (s *Session) Model() (ModelData, bool) {
	return s.model, s.loaded
}

// Voxelize rebuilds the occupancy grid for scale from the cached model.
// On success the grid is kept as the session's last good grid; on failure the
// previous grid stays available through LastGrid.
func (s *Session) Voxelize(scale float64, lattice Lattice) (*OccupancyGrid, int, error) {
	if !s.loaded {
		return nil, 0, ErrNoModel
	}
	size, err := lattice.EffectiveGridSize(scale)
	if err != nil {
		return nil, 0, err
	}
	grid, err := Voxelize(s.model.Vertices, s.model.Bounds, size)
	if err != nil {
		return nil, size, err
	}
	s.lastGrid = grid
	s.lastSize = size
	return grid, size, nil
}

// LastGrid returns the most recent successfully built grid, or nil.
func (s *Session) LastGrid() (*OccupancyGrid, int) {
	return s.lastGrid, s.lastSize
}
