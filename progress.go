//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"sync"
)

type Progressor interface {
	Show(percent float32)
	Stop()
}

type nilProgress struct{}

func (np *nilProgress) Show(float32) {}
func (np *nilProgress) Stop()        {}

var (
	progressMutex   sync.Mutex
	defaultProgress = Progressor(&nilProgress{})
)

// SetProgress sets the Progressor used by new Progress indicators
func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}

	progressMutex.Lock()
	defaultProgress = prog
	progressMutex.Unlock()
}

type Progress struct {
	Progressor
	Completed chan struct{}
	Done      chan struct{}
}

func NewProgress(total int) (prog *Progress) {
	progressMutex.Lock()
	progressor := defaultProgress
	progressMutex.Unlock()

	prog = &Progress{
		Progressor: progressor,
		Completed:  make(chan struct{}, total),
		Done:       make(chan struct{}),
	}

	go func(prog *Progress) {
		for completion := 0; completion < total; completion++ {
			prog.Show(float32(completion) * 100.0 / float32(total))
			_, ok := <-prog.Completed
			if !ok {
				// Closed early
				break
			}
		}
		prog.Show(100.0)
		prog.Stop()
		close(prog.Done)
	}(prog)

	return
}

func (prog *Progress) Indicate() {
	prog.Completed <- struct{}{}
}

// Close waits for the indicator to finish. No Indicate() calls may be
// made after Close().
func (prog *Progress) Close() {
	close(prog.Completed)
	<-prog.Done
}
