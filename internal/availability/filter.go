package availability

// FilterFrom returns a copy of a keeping only slots at or after the "HH:MM"
// string from. The input is never mutated, so cached snapshots can be
// filtered per request without affecting later reads. An empty from keeps
// every slot.
func FilterFrom(a *CourtAvailability, from string) *CourtAvailability {
	filtered := *a
	filtered.Slots = make([]TimeSlot, 0, len(a.Slots))
	for _, slot := range a.Slots {
		if from == "" || slot.Time >= from {
			filtered.Slots = append(filtered.Slots, slot)
		}
	}
	return &filtered
}
