package fields

// FieldStore defines the interface for the field schedule store. Raw slots
// are ingested from the external scheduling collaborator; the classifier in
// this package derives per-field/per-day statuses from them.
type FieldStore interface {
	UpsertSlots(slots []FieldTimeSlot) error
	SlotsInRange(from, to string) ([]FieldTimeSlot, error)
	AvailableSlots(fieldID, date string) ([]FieldTimeSlot, error)
	Clear()
}
