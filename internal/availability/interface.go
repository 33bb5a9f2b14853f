package availability

// Registry defines the interface for the user availability registry.
// The registry is deliberately permissive: it accepts records as given,
// removals and updates of unknown ids are silent no-ops, and no uniqueness
// is enforced on (user, date). Only storage failures surface as errors.
type Registry interface {
	Add(rec UserAvailability) (UserAvailability, error)
	Remove(id string) error
	Update(id string, patch Patch) error
	ForDate(date string) ([]UserAvailability, error)
	ForUser(userID string) ([]UserAvailability, error)
	Clear()
}
