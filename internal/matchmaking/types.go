package matchmaking

import (
	"database/sql"
	"sync"
	"time"

	"github.com/openpitch/pickup/internal/fields"
	"github.com/openpitch/pickup/internal/timeslot"
)

// store handles database operations for match requests.
type store struct {
	db     *sql.DB
	fields fields.FieldStore
	mu     sync.RWMutex
}

// RequestStatus is the lifecycle state of a match request.
type RequestStatus string

const (
	StatusOpen      RequestStatus = "open"
	StatusConfirmed RequestStatus = "confirmed"
	StatusCancelled RequestStatus = "cancelled"
)

// Terminal reports whether the status accepts no further mutations.
func (s RequestStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// SkillLevel is the organizer-declared level of the game.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillMixed        SkillLevel = "mixed"
)

// PlayerStatus is the participation state of an interested player.
type PlayerStatus string

const (
	PlayerInterested PlayerStatus = "interested"
	PlayerConfirmed  PlayerStatus = "confirmed"
)

// InterestedPlayer is one user's recorded intent to join a match request.
// Unique per (request, user).
type InterestedPlayer struct {
	ID       string       `json:"id"` // user id
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar,omitempty"`
	JoinedAt time.Time    `json:"joined_at"`
	Status   PlayerStatus `json:"status"`
}

// MatchRequest is the central aggregate: an open call for players that an
// organizer can confirm against a concrete field, date and slot, or cancel.
// Both terminal states are final.
type MatchRequest struct {
	ID                 string              `json:"id"`
	CreatorID          string              `json:"creator_id"`
	CreatorName        string              `json:"creator_name"`
	Title              string              `json:"title"`
	Description        string              `json:"description,omitempty"`
	PreferredDates     []string            `json:"preferred_dates"` // YYYY-MM-DD
	PreferredTimeSlots []timeslot.TimeSlot `json:"preferred_time_slots"`
	PreferredFields    []string            `json:"preferred_fields"`
	GameMode           string              `json:"game_mode,omitempty"`
	MinPlayers         int                 `json:"min_players"`
	MaxPlayers         int                 `json:"max_players"`
	SkillLevel         SkillLevel          `json:"skill_level"`
	IsOpen             bool                `json:"is_open"`
	InterestedPlayers  []InterestedPlayer  `json:"interested_players"`
	Status             RequestStatus       `json:"status"`
	ConfirmedFieldID   string              `json:"confirmed_field_id,omitempty"`
	ConfirmedDate      string              `json:"confirmed_date,omitempty"`
	ConfirmedTimeSlot  *timeslot.TimeSlot  `json:"confirmed_time_slot,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

// CreateInput carries the caller-supplied fields for a new match request.
type CreateInput struct {
	CreatorID          string
	CreatorName        string
	Title              string
	Description        string
	PreferredDates     []string
	PreferredTimeSlots []timeslot.TimeSlot
	PreferredFields    []string
	GameMode           string
	MinPlayers         int
	MaxPlayers         int
	SkillLevel         SkillLevel
}

// JoinInput identifies the user joining a match request. Identity is supplied
// by the caller; this service does not resolve it.
type JoinInput struct {
	UserID string
	Name   string
	Avatar string
}
