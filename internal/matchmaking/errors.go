package matchmaking

import "errors"

// Domain errors returned by the coordinator. All are deterministic and
// caller-correctable: fix the request and resubmit.
var (
	// ErrInvalidCapacity is returned when minPlayers/maxPlayers violate the
	// ordering or positivity invariant at creation.
	ErrInvalidCapacity = errors.New("min players must be positive and not exceed max players")

	// ErrNotFound is returned when an operation references a match request
	// id that does not exist.
	ErrNotFound = errors.New("match request not found")

	// ErrNotOpen is returned for join/confirm/cancel against a request whose
	// status is already terminal.
	ErrNotOpen = errors.New("match request is not open")

	// ErrAlreadyJoined is returned for a duplicate join attempt by the same
	// user.
	ErrAlreadyJoined = errors.New("player already joined this match request")

	// ErrSlotUnavailable is returned when confirmation names a field/date/slot
	// combination the field schedule does not report as available.
	ErrSlotUnavailable = errors.New("requested slot is not available on this field")
)
