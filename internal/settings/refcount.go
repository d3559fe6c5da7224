package settings

import (
	"errors"
	"fmt"
	"sync"
)

var errNilRecord = errors.New("allocator returned nil record")

// ConstructionError reports that a record could not be allocated. It is fatal
// to the import session that asked for it.
type ConstructionError struct {
	Err error
}

func (e *ConstructionError) Error() string {
	if e == nil || e.Err == nil {
		return "settings: construction failed"
	}
	return fmt.Sprintf("settings: construction failed: %v", e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Allocator hands out record storage and is told, exactly once, when the
// last holder lets go.
type Allocator interface {
	Alloc() (*GlobalSettings, error)
	Free(*GlobalSettings)
}

// HeapAllocator allocates with new and leaves reclamation to the runtime.
type HeapAllocator struct{}

func (HeapAllocator) Alloc() (*GlobalSettings, error) { return new(GlobalSettings), nil }
func (HeapAllocator) Free(*GlobalSettings)            {}

// Retain registers another holder and returns g for chaining.
// Retaining a freed record panics.
func (g *GlobalSettings) Retain() *GlobalSettings {
	for {
		n := g.refs.Load()
		if n <= 0 {
			panic("settings: retain after release")
		}
		if g.refs.CompareAndSwap(n, n+1) {
			return g
		}
	}
}

// Release drops one holder. The last release hands the record back to its
// allocator; releasing past zero panics.
func (g *GlobalSettings) Release() {
	for {
		n := g.refs.Load()
		if n <= 0 {
			panic("settings: release after free")
		}
		if !g.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			alloc := g.alloc
			g.alloc = nil
			alloc.Free(g)
		}
		return
	}
}

// Refs reports the current holder count.
func (g *GlobalSettings) Refs() int32 { return g.refs.Load() }

// TrackingAllocator is a debug allocator that counts allocations and frees
// per record. Safe for concurrent use.
type TrackingAllocator struct {
	// Fail, when set, is returned by the next Alloc instead of a record.
	Fail error

	mu     sync.Mutex
	allocs int
	frees  map[*GlobalSettings]int
}

func (a *TrackingAllocator) Alloc() (*GlobalSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Fail != nil {
		err := a.Fail
		a.Fail = nil
		return nil, err
	}
	a.allocs++
	return new(GlobalSettings), nil
}

func (a *TrackingAllocator) Free(g *GlobalSettings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frees == nil {
		a.frees = make(map[*GlobalSettings]int)
	}
	a.frees[g]++
}

// Allocs returns the number of successful allocations.
func (a *TrackingAllocator) Allocs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Frees returns how many times g was handed back.
func (a *TrackingAllocator) Frees(g *GlobalSettings) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frees[g]
}

// Live returns allocations not yet freed.
func (a *TrackingAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs - len(a.frees)
}
