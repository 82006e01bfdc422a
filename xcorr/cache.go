package xcorr

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dikadissss/scrtdd/catalog"
)

// Result is one accepted cross-correlation measurement.
type Result struct {
	CC        float64
	LagSec    float64
	Component string
}

type resultKey struct {
	evID1 string
	phase catalog.PhaseType
}

type peerKey struct {
	evID2     string
	stationID string
}

// resultCache is the first cache level: keyed by (evId1, phaseType) ->
// (evId2, stationId) -> Result.
type resultCache struct {
	mu    sync.RWMutex
	outer map[resultKey]map[peerKey]Result
}

func newResultCache() *resultCache {
	return &resultCache{outer: make(map[resultKey]map[peerKey]Result)}
}

func (c *resultCache) get(evID1 string, phase catalog.PhaseType, evID2, stationID string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inner, ok := c.outer[resultKey{evID1, phase}]
	if !ok {
		return Result{}, false
	}
	r, ok := inner[peerKey{evID2, stationID}]
	return r, ok
}

func (c *resultCache) put(evID1 string, phase catalog.PhaseType, evID2, stationID string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := resultKey{evID1, phase}
	if c.outer[key] == nil {
		c.outer[key] = make(map[peerKey]Result)
	}
	c.outer[key][peerKey{evID2, stationID}] = r
}

// waveKey identifies one memory-cached waveform slice.
type waveKey struct {
	streamID string
	window   Window
}

// MemCache is the waveform memory cache: an LRU
// (hashicorp/golang-lru/v2) keyed by (streamId, window) with a soft byte
// budget enforced alongside the LRU's own entry-count cap. Eviction
// beyond the byte budget walks the LRU oldest-first via the cache's own
// eviction callback, which keeps usedBytes exact without duplicating the
// LRU's ordering.
type MemCache struct {
	lru        *lru.Cache[waveKey, Waveform]
	byteBudget int64

	mu        sync.Mutex
	usedBytes int64
}

// NewMemCache builds a MemCache holding at most size entries and
// byteBudget bytes.
func NewMemCache(size int, byteBudget int64) (*MemCache, error) {
	m := &MemCache{byteBudget: byteBudget}
	c, err := lru.NewWithEvict[waveKey, Waveform](size, func(_ waveKey, w Waveform) {
		m.mu.Lock()
		m.usedBytes -= int64(len(w.Samples)) * 8
		m.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}
	m.lru = c
	return m, nil
}

// Get returns the cached waveform for (streamID, window), if present.
func (m *MemCache) Get(streamID string, window Window) (Waveform, bool) {
	return m.lru.Get(waveKey{streamID, window})
}

// Put inserts w, then evicts oldest entries while the byte budget is
// exceeded.
func (m *MemCache) Put(streamID string, window Window, w Waveform) {
	m.mu.Lock()
	m.usedBytes += int64(len(w.Samples)) * 8
	m.mu.Unlock()
	m.lru.Add(waveKey{streamID, window}, w)

	for {
		m.mu.Lock()
		over := m.usedBytes > m.byteBudget && m.lru.Len() > 1
		m.mu.Unlock()
		if !over {
			break
		}
		m.lru.RemoveOldest()
	}
}

// Len reports the current entry count.
func (m *MemCache) Len() int { return m.lru.Len() }
