package entity

// VersionSentinel marks a history slot that holds no snapshot yet.
const VersionSentinel = "null"

const versionSlots = 3

// VersionHistory keeps up to three prior values of a booking field so an
// edit can be undone later. Slots fill in order; once all three are
// occupied, new snapshots reuse slot 1. Slot numbers are 1-based.
type VersionHistory [versionSlots]string

// NewVersionHistory seeds slot 1 with the field's initial value and leaves
// the remaining slots empty.
func NewVersionHistory(initial string) VersionHistory {
	return VersionHistory{initial, VersionSentinel, VersionSentinel}
}

// Record snapshots the pre-edit value of the field into the first empty
// slot, falling back to slot 1 when every slot is occupied.
func (h *VersionHistory) Record(preEdit string) {
	for i := range h {
		if h[i] == VersionSentinel {
			h[i] = preEdit
			return
		}
	}
	h[0] = preEdit
}

// Restore swaps the chosen slot with the current live value: the slot takes
// the live value and its previous content is returned as the value to make
// live. Restoring an empty or out-of-range slot fails without mutating
// anything.
func (h *VersionHistory) Restore(slot int, live string) (string, bool) {
	if slot < 1 || slot > versionSlots {
		return "", false
	}
	prev := h[slot-1]
	if prev == VersionSentinel {
		return "", false
	}
	h[slot-1] = live
	return prev, true
}

// Slot returns the snapshot held in a 1-based slot, or the sentinel when
// the slot is out of range.
func (h VersionHistory) Slot(slot int) string {
	if slot < 1 || slot > versionSlots {
		return VersionSentinel
	}
	return h[slot-1]
}
