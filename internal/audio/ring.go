package audio

import (
	"sync"
	"sync/atomic"
)

// Ring is a bounded stereo sample buffer shared between the frame loop
// (the only writer) and the output sink (the only reader). It implements
// beep.Streamer so the sink can pull from it like any other stream.
type Ring struct {
	mu   sync.Mutex
	buf  [][2]float64
	head int // next read
	size int

	underruns atomic.Uint64
	overruns  atomic.Uint64
}

// NewRing creates a ring holding capacity frames of stereo samples.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([][2]float64, capacity)}
}

// Write appends samples and returns how many fit. Samples that do not fit
// are dropped and counted as an overrun.
func (r *Ring) Write(samples [][2]float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(samples)
	if free := len(r.buf) - r.size; n > free {
		n = free
		r.overruns.Add(1)
	}
	for i := 0; i < n; i++ {
		r.buf[(r.head+r.size+i)%len(r.buf)] = samples[i]
	}
	r.size += n
	return n
}

// Stream fills samples from the ring. On underrun the remainder is silence,
// so the output never stalls.
func (r *Ring) Stream(samples [][2]float64) (n int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	avail := r.size
	if avail > len(samples) {
		avail = len(samples)
	}
	for i := 0; i < avail; i++ {
		samples[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.head = (r.head + avail) % len(r.buf)
	r.size -= avail

	if avail < len(samples) {
		r.underruns.Add(1)
		for i := avail; i < len(samples); i++ {
			samples[i] = [2]float64{}
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (r *Ring) Err() error { return nil }

// Len returns the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Underruns returns how many reads found too few samples.
func (r *Ring) Underruns() uint64 { return r.underruns.Load() }

// Overruns returns how many writes were truncated.
func (r *Ring) Overruns() uint64 { return r.overruns.Load() }
