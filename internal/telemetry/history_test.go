package telemetry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metorial/homewatch/internal/models"
)

func sample(i int) models.MetricSample {
	return models.MetricSample{Timestamp: fmt.Sprintf("t%d", i), Value: float64(i)}
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(DefaultHistorySize, nil)
	for i := 0; i < 55; i++ {
		h.Push(sample(i))
		require.LessOrEqual(t, h.Len(), DefaultHistorySize)
	}

	samples := h.Samples()
	require.Len(t, samples, 20)
	assert.Equal(t, 35.0, samples[0].Value)
	assert.Equal(t, 54.0, samples[19].Value)
}

func TestHistoryKeepsOrder(t *testing.T) {
	h := NewHistory(3, nil)
	h.Push(sample(1))
	h.Push(sample(2))

	assert.Equal(t, []models.MetricSample{sample(1), sample(2)}, h.Samples())
}

func TestHistoryDoesNotMutateHandedOutSlices(t *testing.T) {
	h := NewHistory(2, nil)
	h.Push(sample(1))
	h.Push(sample(2))
	kept := h.Samples()

	h.Push(sample(3))

	assert.Equal(t, []models.MetricSample{sample(1), sample(2)}, kept)
	assert.Equal(t, []models.MetricSample{sample(2), sample(3)}, h.Samples())
}

func TestHistoryTrimsOversizedInitial(t *testing.T) {
	initial := []models.MetricSample{sample(1), sample(2), sample(3), sample(4)}
	h := NewHistory(2, initial)

	assert.Equal(t, []models.MetricSample{sample(3), sample(4)}, h.Samples())
	assert.Len(t, initial, 4)
}

func TestHistoryDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultHistorySize, NewHistory(0, nil).Capacity())
}

func TestHistoryCapacityIsCapped(t *testing.T) {
	h := NewHistory(500, nil)
	if h.Capacity() != MaxHistorySize {
		t.Errorf("Expected capacity %d, got %d", MaxHistorySize, h.Capacity())
	}
	for i := 0; i < 30; i++ {
		h.Push(models.MetricSample{Value: float64(i)})
	}
	require.Len(t, h.Samples(), MaxHistorySize)
	assert.Equal(t, 10.0, h.Samples()[0].Value)
}
