package telemetry

import "github.com/metorial/homewatch/internal/models"

const (
	// MaxHistorySize caps every history buffer; larger capacities are cut to it.
	MaxHistorySize     = 20
	DefaultHistorySize = MaxHistorySize
)

// History is a bounded FIFO of samples, oldest first. Push never modifies a
// slice handed out by Samples, so snapshots can keep them.
type History struct {
	capacity int
	samples  []models.MetricSample
}

func NewHistory(capacity int, initial []models.MetricSample) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	if capacity > MaxHistorySize {
		capacity = MaxHistorySize
	}
	h := &History{capacity: capacity}
	if len(initial) > capacity {
		initial = initial[len(initial)-capacity:]
	}
	h.samples = append(make([]models.MetricSample, 0, capacity), initial...)
	return h
}

func (h *History) Push(s models.MetricSample) {
	next := make([]models.MetricSample, 0, h.capacity)
	if len(h.samples) >= h.capacity {
		next = append(next, h.samples[len(h.samples)-h.capacity+1:]...)
	} else {
		next = append(next, h.samples...)
	}
	h.samples = append(next, s)
}

func (h *History) Samples() []models.MetricSample {
	return h.samples
}

func (h *History) Len() int {
	return len(h.samples)
}

func (h *History) Capacity() int {
	return h.capacity
}
