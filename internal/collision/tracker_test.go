package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackFirstSeenIsNotCollision(t *testing.T) {
	tracker := NewTracker()

	assert.False(t, tracker.Track("value1", 0x1234))
	assert.False(t, tracker.HasCollision())
}

func TestTrackSameNameSameHashIsNotCollision(t *testing.T) {
	tracker := NewTracker()

	tracker.Track("value1", 0x1234)
	assert.False(t, tracker.Track("value1", 0x1234))
	assert.False(t, tracker.HasCollision())
}

func TestTrackDifferentNameSameHashIsCollision(t *testing.T) {
	tracker := NewTracker()

	tracker.Track("value1", 0x1234)
	assert.True(t, tracker.Track("value2", 0x1234))
	assert.True(t, tracker.HasCollision())
}

func TestHasCollisionPersistsAcrossLaterTracks(t *testing.T) {
	tracker := NewTracker()

	tracker.Track("value1", 0x1234)
	tracker.Track("value2", 0x1234)
	tracker.Track("value3", 0x5678)

	assert.True(t, tracker.HasCollision())
}
