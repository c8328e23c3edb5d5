package state

import (
	"strconv"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ZoomKey is the preference slot holding the display scale
const ZoomKey = "oci-desktop-zoom"

// ZoomLevels are the selectable display scales, smallest first
var ZoomLevels = []float64{0.5, 0.75, 0.9, 1.0, 1.1, 1.25, 1.5, 1.75, 2.0}

// DefaultZoomIndex selects 1.0
const DefaultZoomIndex = 3

// Persister stores preference values. prefs.Store satisfies it.
type Persister interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Surface is whatever renders at the chosen scale
type Surface interface {
	ApplyZoom(level float64) error
}

// ZoomStore holds the display scale index. Every change is persisted and
// applied to the surface; failures of either are logged and otherwise ignored.
type ZoomStore struct {
	persist Persister
	log     *zap.Logger

	mu      sync.Mutex
	index   int
	surface Surface
}

// NewZoomStore restores the stored scale. A missing or unknown stored value
// yields DefaultZoomIndex.
func NewZoomStore(p Persister, log *zap.Logger) *ZoomStore {
	if log == nil {
		log = zap.NewNop()
	}
	z := &ZoomStore{persist: p, log: log, index: DefaultZoomIndex}
	if p == nil {
		return z
	}
	if raw, ok := p.Get(ZoomKey); ok {
		z.index = indexOf(raw)
	}
	return z
}

func indexOf(raw string) int {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultZoomIndex
	}
	_, idx, ok := lo.FindIndexOf(ZoomLevels, func(l float64) bool { return l == v })
	if !ok {
		return DefaultZoomIndex
	}
	return idx
}

// Attach sets the rendering surface and applies the current scale to it
func (z *ZoomStore) Attach(s Surface) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.surface = s
	z.apply()
}

// Index returns the current level index
func (z *ZoomStore) Index() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.index
}

// Level returns the current scale factor
func (z *ZoomStore) Level() float64 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return ZoomLevels[z.index]
}

// ZoomIn moves one level up, stopping at the largest
func (z *ZoomStore) ZoomIn() { z.set(func(i int) int { return i + 1 }) }

// ZoomOut moves one level down, stopping at the smallest
func (z *ZoomStore) ZoomOut() { z.set(func(i int) int { return i - 1 }) }

// Reset returns to DefaultZoomIndex
func (z *ZoomStore) Reset() { z.set(func(int) int { return DefaultZoomIndex }) }

func (z *ZoomStore) set(next func(int) int) {
	z.mu.Lock()
	defer z.mu.Unlock()

	z.index = lo.Clamp(next(z.index), 0, len(ZoomLevels)-1)
	level := ZoomLevels[z.index]
	if z.persist != nil {
		if err := z.persist.Set(ZoomKey, strconv.FormatFloat(level, 'f', -1, 64)); err != nil {
			z.log.Warn("failed to persist zoom level", zap.Float64("level", level), zap.Error(err))
		}
	}
	z.apply()
}

func (z *ZoomStore) apply() {
	if z.surface == nil {
		return
	}
	level := ZoomLevels[z.index]
	if err := z.surface.ApplyZoom(level); err != nil {
		z.log.Warn("failed to apply zoom level", zap.Float64("level", level), zap.Error(err))
	}
}
