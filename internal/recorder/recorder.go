package recorder

import "sync"

// Sample is a single processed measurement of a run
type Sample struct {
	ElapsedSeconds float64 `json:"elapsedSeconds" yaml:"elapsedSeconds"`
	SquaredError   float64 `json:"squaredError" yaml:"squaredError"`
	HeadingCommand float64 `json:"headingCommand" yaml:"headingCommand"`
}

// Recorder is an append-only sequence of samples.
// It is meant to be written by a single controller, reads are safe from any goroutine.
type Recorder struct {
	mu      sync.RWMutex
	samples []Sample
}

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Append(sample Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, sample)
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.samples)
}

// Samples returns a copy of all recorded samples in order
func (r *Recorder) Samples() []Sample {
	return r.Since(0)
}

// Since returns a copy of all samples starting at the given index
func (r *Recorder) Since(index int) []Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 {
		index = 0
	}
	if index >= len(r.samples) {
		return []Sample{}
	}
	result := make([]Sample, len(r.samples)-index)
	copy(result, r.samples[index:])
	return result
}
