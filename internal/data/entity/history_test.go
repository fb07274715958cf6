package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionHistorySeedsFirstSlot(t *testing.T) {
	h := NewVersionHistory("S1")

	assert.Equal(t, "S1", h.Slot(1))
	assert.Equal(t, VersionSentinel, h.Slot(2))
	assert.Equal(t, VersionSentinel, h.Slot(3))
}

func TestRecordFillsSlotsInOrder(t *testing.T) {
	h := NewVersionHistory("a")

	h.Record("b")
	h.Record("c")

	assert.Equal(t, "a", h.Slot(1))
	assert.Equal(t, "b", h.Slot(2))
	assert.Equal(t, "c", h.Slot(3))
}

func TestRecordReusesSlotOneWhenFull(t *testing.T) {
	h := NewVersionHistory("a")
	h.Record("b")
	h.Record("c")

	h.Record("d")

	assert.Equal(t, "d", h.Slot(1))
	assert.Equal(t, "b", h.Slot(2))
	assert.Equal(t, "c", h.Slot(3))
}

func TestRestoreSwapsLiveAndSlot(t *testing.T) {
	h := NewVersionHistory("old")

	prev, ok := h.Restore(1, "live")

	require.True(t, ok)
	assert.Equal(t, "old", prev)
	assert.Equal(t, "live", h.Slot(1))
}

func TestRestoreEmptySlotFailsWithoutMutation(t *testing.T) {
	h := NewVersionHistory("old")
	before := h

	_, ok := h.Restore(2, "live")

	assert.False(t, ok)
	assert.Equal(t, before, h)
}

func TestRestoreOutOfRangeSlotFails(t *testing.T) {
	h := NewVersionHistory("old")

	for _, slot := range []int{0, 4, -1} {
		_, ok := h.Restore(slot, "live")
		assert.False(t, ok, "slot %d", slot)
	}
}

func TestSlotOutOfRangeReturnsSentinel(t *testing.T) {
	h := NewVersionHistory("a")

	assert.Equal(t, VersionSentinel, h.Slot(0))
	assert.Equal(t, VersionSentinel, h.Slot(4))
}
