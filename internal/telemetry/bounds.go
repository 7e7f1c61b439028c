package telemetry

import "math"

type Field uint8

const (
	FieldOnlineDevices Field = iota
	FieldSystemLoad
	FieldMemoryUsage
	FieldInbound
	FieldOutbound
	FieldLatency
	FieldConnections
	numFields
)

type stepKind uint8

const (
	// stepCoin moves by exactly Spread up when r > 0.5, down otherwise.
	stepCoin stepKind = iota
	// stepUniform moves by (r-0.5)*Spread.
	stepUniform
	// stepFloor moves by floor((r-0.5)*Spread), keeping integers integral.
	stepFloor
)

type Bound struct {
	Name   string
	Min    float64
	Max    float64
	Spread float64
	step   stepKind
}

var bounds = [...]Bound{
	FieldOnlineDevices: {Name: "online_devices", Min: 20, Max: 24, Spread: 1, step: stepCoin},
	FieldSystemLoad:    {Name: "system_load", Min: 20, Max: 80, Spread: 10, step: stepUniform},
	FieldMemoryUsage:   {Name: "memory_usage", Min: 40, Max: 90, Spread: 5, step: stepUniform},
	FieldInbound:       {Name: "network_inbound", Min: 0.5, Max: 5, Spread: 0.5, step: stepUniform},
	FieldOutbound:      {Name: "network_outbound", Min: 0.3, Max: 3, Spread: 0.3, step: stepUniform},
	FieldLatency:       {Name: "network_latency", Min: 5, Max: 50, Spread: 5, step: stepUniform},
	FieldConnections:   {Name: "connections", Min: 50, Max: 200, Spread: 10, step: stepFloor},
}

var _ = [1]struct{}{}[len(bounds)-int(numFields)]

func BoundOf(f Field) Bound {
	return bounds[f]
}

func (f Field) String() string {
	if f >= numFields {
		return "unknown"
	}
	return bounds[f].Name
}

func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func clampTo(f Field, v float64) float64 {
	b := bounds[f]
	return Clamp(v, b.Min, b.Max)
}

// Step advances prev by one random draw r and clamps the result to the
// field's bounds.
func Step(f Field, prev, r float64) float64 {
	b := bounds[f]
	var delta float64
	switch b.step {
	case stepCoin:
		delta = -b.Spread
		if r > 0.5 {
			delta = b.Spread
		}
	case stepFloor:
		delta = math.Floor((r - 0.5) * b.Spread)
	default:
		delta = (r - 0.5) * b.Spread
	}
	return Clamp(prev+delta, b.Min, b.Max)
}
