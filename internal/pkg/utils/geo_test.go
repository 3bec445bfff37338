package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceMeters(t *testing.T) {
	// Same point.
	assert.Equal(t, 0.0, HaversineDistanceMeters(12.9716, 77.5946, 12.9716, 77.5946))

	// Bengaluru to Chennai is roughly 290 km.
	d := HaversineDistanceMeters(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290000, d, 10000)

	// Two points ~111 m apart (0.001 degrees of latitude).
	d = HaversineDistanceMeters(12.9716, 77.5946, 12.9726, 77.5946)
	assert.InDelta(t, 111, d, 2)
}
