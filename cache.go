//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"sync"
)

// CachedPrintable keeps up to cacheDepth recently used layers
type CachedPrintable struct {
	Printable

	mutex      sync.Mutex
	cacheDepth int
	layerCache map[int]Layer
	order      []int
}

func NewCachedPrintable(printable Printable, cacheDepth int) (cp *CachedPrintable) {
	if cacheDepth < 1 {
		cacheDepth = 1
	}

	cp = &CachedPrintable{
		Printable:  printable,
		layerCache: make(map[int]Layer, cacheDepth),
		cacheDepth: cacheDepth,
	}
	return
}

func (cp *CachedPrintable) Layer(index int) (layer Layer) {
	cp.mutex.Lock()
	layer, found := cp.layerCache[index]
	cp.mutex.Unlock()

	if found {
		return
	}

	layer = cp.Printable.Layer(index)

	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	if _, found = cp.layerCache[index]; found {
		return
	}

	// Evict the oldest layer
	if len(cp.layerCache) >= cp.cacheDepth {
		delete(cp.layerCache, cp.order[0])
		cp.order = cp.order[1:]
	}

	cp.layerCache[index] = layer
	cp.order = append(cp.order, index)

	return
}
