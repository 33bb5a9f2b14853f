package matchmaking

import "github.com/openpitch/pickup/internal/timeslot"

// Coordinator owns the match request lifecycle: open requests collect
// interested players until the organizer confirms them against a concrete
// field, date and slot, or cancels them. Confirmed and cancelled are terminal.
type Coordinator interface {
	// Create validates the capacity bounds and stores a new open request.
	Create(input CreateInput) (*MatchRequest, error)

	// Get retrieves a match request by id.
	Get(requestID string) (*MatchRequest, error)

	// Join appends the player to the request's interested list. Capacity is
	// not enforced here: over-subscription is allowed and the organizer
	// chooses at confirmation time.
	Join(requestID string, player JoinInput) (*MatchRequest, error)

	// Leave removes the player's entry if present. Idempotent, and allowed
	// regardless of status since it only prunes a display list.
	Leave(requestID, userID string) (*MatchRequest, error)

	// Confirm transitions an open request to confirmed, binding it to the
	// given field, date and slot. The slot must be reported available by the
	// field schedule at the moment of confirmation.
	Confirm(requestID, fieldID, date string, slot timeslot.TimeSlot) (*MatchRequest, error)

	// Cancel transitions an open request to cancelled.
	Cancel(requestID string) (*MatchRequest, error)

	// Open returns all requests still collecting players.
	Open() ([]MatchRequest, error)

	// ForUser returns all requests the user created or joined.
	ForUser(userID string) ([]MatchRequest, error)

	Clear()
}
