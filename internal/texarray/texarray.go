// Package texarray manages the shared 2D texture array that every draw call
// samples from by integer layer index.
package texarray

import (
	"errors"
	"fmt"
	"math/bits"
	"os"

	"go.uber.org/zap"
)

var (
	ErrNotConfigured     = errors.New("texarray: not configured")
	ErrAlreadyConfigured = errors.New("texarray: already configured")
	ErrCapacityExceeded  = errors.New("texarray: capacity exceeded")
	ErrDimensionExceeded = errors.New("texarray: image larger than array slot")
	ErrDecode            = errors.New("texarray: decode failed")
	ErrSealed            = errors.New("texarray: sealed after mipmap generation")
)

// Backend owns the GPU-side storage of the array
type Backend interface {
	// Allocate reserves storage for layers slots of width x height with levels mip levels
	Allocate(width, height, layers, levels int) error
	// Upload copies RGBA8 pixels into layer at mip level 0, origin (0, 0)
	Upload(layer, width, height int, pix []byte)
	GenerateMipmaps()
	Handle() uint32
	Delete()
}

// UniformSetter is the part of a shader the manager writes slot resolutions to
type UniformSetter interface {
	SetIVec2(name string, x, y int32)
}

// Slot is one allocated layer of the array
type Slot struct {
	Index  int
	Width  int
	Height int
}

type state int

const (
	stateUnconfigured state = iota
	stateLoading
	stateSealed
)

// Manager allocates slots in the texture array.
// Slots are handed out monotonically and never freed.
type Manager struct {
	backend Backend
	log     *zap.Logger

	state    state
	width    int
	height   int
	capacity int
	levels   int
	slots    []Slot
}

// NewManager creates an unconfigured manager over backend
func NewManager(backend Backend, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		backend: backend,
		log:     log.Named("texarray"),
	}
}

// MipLevels returns the full mip chain length for a base size
func MipLevels(width, height int) int {
	return bits.Len(uint(max(width, height)))
}

// Configure allocates storage for capacity slots of width x height.
// It may be called only once.
func (m *Manager) Configure(width, height, capacity int) error {
	if m.state != stateUnconfigured {
		return ErrAlreadyConfigured
	}
	if width <= 0 || height <= 0 || capacity <= 0 {
		return fmt.Errorf("texarray: invalid configuration %dx%dx%d", width, height, capacity)
	}

	levels := MipLevels(width, height)
	if err := m.backend.Allocate(width, height, capacity, levels); err != nil {
		return fmt.Errorf("texarray: allocate storage: %w", err)
	}

	m.width = width
	m.height = height
	m.capacity = capacity
	m.levels = levels
	m.slots = make([]Slot, 0, capacity)
	m.state = stateLoading

	m.log.Info("texture array allocated",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("capacity", capacity),
		zap.Int("mip_levels", levels))
	return nil
}

// LoadTexture decodes the image at path into the next free slot and returns its index.
// On failure it returns -1 and the reason; the manager state is unchanged.
func (m *Manager) LoadTexture(path string) (int, error) {
	switch m.state {
	case stateUnconfigured:
		return -1, ErrNotConfigured
	case stateSealed:
		m.log.Error("texture load after mipmaps were generated", zap.String("path", path))
		return -1, ErrSealed
	}

	if len(m.slots) >= m.capacity {
		m.log.Error("cannot hold more textures than the array capacity",
			zap.String("path", path),
			zap.Int("capacity", m.capacity))
		return -1, ErrCapacityExceeded
	}

	f, err := os.Open(path)
	if err != nil {
		m.log.Error("failed to load texture", zap.String("path", path), zap.Error(err))
		return -1, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		m.log.Error("failed to load texture", zap.String("path", path), zap.Error(err))
		return -1, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w > m.width || h > m.height {
		m.log.Error("texture is larger than the array slot",
			zap.String("path", path),
			zap.Int("width", w),
			zap.Int("height", h))
		return -1, fmt.Errorf("%w: %s is %dx%d, slot is %dx%d", ErrDimensionExceeded, path, w, h, m.width, m.height)
	}
	if w != m.width || h != m.height {
		m.log.Warn("texture smaller than array slot, it will not use the full resolution",
			zap.String("path", path),
			zap.Int("width", w),
			zap.Int("height", h))
	}

	layer := len(m.slots)
	m.backend.Upload(layer, w, h, img.Pix)
	m.slots = append(m.slots, Slot{Index: layer, Width: w, Height: h})

	m.log.Debug("texture loaded", zap.String("path", path), zap.Int("layer", layer))
	return layer, nil
}

// GenerateMipmaps builds the mip chain for every loaded slot and seals the array.
// No further textures can be loaded afterwards.
func (m *Manager) GenerateMipmaps() error {
	switch m.state {
	case stateUnconfigured:
		return ErrNotConfigured
	case stateSealed:
		return ErrSealed
	}
	m.backend.GenerateMipmaps()
	m.state = stateSealed
	m.log.Info("mipmaps generated", zap.Int("slots", len(m.slots)))
	return nil
}

// SendSlotResolutions writes subTexRes[i] for every loaded slot so shaders can
// remap texture coordinates of undersized images.
func (m *Manager) SendSlotResolutions(u UniformSetter) {
	for i, s := range m.slots {
		u.SetIVec2(fmt.Sprintf("subTexRes[%d]", i), int32(s.Width), int32(s.Height))
	}
}

// Handle returns the backend texture handle
func (m *Manager) Handle() uint32 {
	return m.backend.Handle()
}

// Len returns the number of loaded slots, which is also the next free index
func (m *Manager) Len() int {
	return len(m.slots)
}

// Capacity returns the configured number of slots
func (m *Manager) Capacity() int {
	return m.capacity
}

// Size returns the nominal slot size
func (m *Manager) Size() (width, height int) {
	return m.width, m.height
}

// Levels returns the allocated mip level count
func (m *Manager) Levels() int {
	return m.levels
}

// Sealed reports whether mipmaps have been generated
func (m *Manager) Sealed() bool {
	return m.state == stateSealed
}

// Slots returns a copy of the per-slot resolutions
func (m *Manager) Slots() []Slot {
	return append([]Slot(nil), m.slots...)
}

// Delete releases the backend storage
func (m *Manager) Delete() {
	m.backend.Delete()
}
