//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"runtime"
	"sync"
)

// WithEachLayer calls fn for every layer index of p, from a pool of
// goroutines. fn must be safe to call concurrently for different indices.
func WithEachLayer(p Printable, fn func(p Printable, index int)) {
	layers := p.Properties().Size.Layers

	prog := NewProgress(layers)
	defer prog.Close()

	indices := make(chan int)

	var wg sync.WaitGroup
	for n := 0; n < runtime.GOMAXPROCS(0); n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indices {
				fn(p, index)
				prog.Indicate()
			}
		}()
	}

	for index := 0; index < layers; index++ {
		indices <- index
	}
	close(indices)

	wg.Wait()
}
