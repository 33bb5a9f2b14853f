package matchmaking

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/openpitch/pickup/internal/fields"
	"github.com/openpitch/pickup/internal/timeslot"
)

// NewStore creates a new match request Coordinator. The field store is only
// consulted at confirmation time, to verify the chosen slot is actually open.
func NewStore(db *sql.DB, fieldStore fields.FieldStore) Coordinator {
	return &store{
		db:     db,
		fields: fieldStore,
	}
}

// Create validates the capacity bounds, assigns id and createdAt and stores
// the request as open with an empty interested list. The creator is not
// implicitly added; joining is always an explicit action.
func (s *store) Create(input CreateInput) (*MatchRequest, error) {
	if input.MinPlayers <= 0 || input.MaxPlayers <= 0 || input.MinPlayers > input.MaxPlayers {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrInvalidCapacity, input.MinPlayers, input.MaxPlayers)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	skill := input.SkillLevel
	if skill == "" {
		skill = SkillMixed
	}

	request := &MatchRequest{
		ID:                 uuid.New().String(),
		CreatorID:          input.CreatorID,
		CreatorName:        input.CreatorName,
		Title:              input.Title,
		Description:        input.Description,
		PreferredDates:     input.PreferredDates,
		PreferredTimeSlots: input.PreferredTimeSlots,
		PreferredFields:    input.PreferredFields,
		GameMode:           input.GameMode,
		MinPlayers:         input.MinPlayers,
		MaxPlayers:         input.MaxPlayers,
		SkillLevel:         skill,
		IsOpen:             true,
		InterestedPlayers:  []InterestedPlayer{},
		Status:             StatusOpen,
		CreatedAt:          time.Now(),
	}
	if request.PreferredDates == nil {
		request.PreferredDates = []string{}
	}
	if request.PreferredTimeSlots == nil {
		request.PreferredTimeSlots = []timeslot.TimeSlot{}
	}
	if request.PreferredFields == nil {
		request.PreferredFields = []string{}
	}

	datesJSON, err := json.Marshal(request.PreferredDates)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferred dates: %w", err)
	}
	slotsJSON, err := json.Marshal(request.PreferredTimeSlots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferred time slots: %w", err)
	}
	fieldsJSON, err := json.Marshal(request.PreferredFields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferred fields: %w", err)
	}
	playersJSON, err := json.Marshal(request.InterestedPlayers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interested players: %w", err)
	}

	query := `
		INSERT INTO match_requests (
			id, creator_id, creator_name, title, description,
			preferred_dates_json, preferred_time_slots_json, preferred_fields_json,
			game_mode, min_players, max_players, skill_level,
			is_open, status, interested_players_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		request.ID,
		request.CreatorID,
		request.CreatorName,
		request.Title,
		request.Description,
		string(datesJSON),
		string(slotsJSON),
		string(fieldsJSON),
		request.GameMode,
		request.MinPlayers,
		request.MaxPlayers,
		string(request.SkillLevel),
		request.IsOpen,
		string(request.Status),
		string(playersJSON),
		request.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}

	log.Info("Created match request", "id", request.ID, "creator", request.CreatorName, "title", request.Title)
	return request, nil
}

// Get retrieves a match request by id.
func (s *store) Get(requestID string) (*MatchRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(requestID)
}

// Join appends the player with joinedAt=now and status "interested".
// Capacity is deliberately not checked: over-subscription is allowed and the
// organizer picks at confirmation time.
func (s *store) Join(requestID string, player JoinInput) (*MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.getLocked(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != StatusOpen {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotOpen, requestID, request.Status)
	}
	for _, existing := range request.InterestedPlayers {
		if existing.ID == player.UserID {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyJoined, player.UserID)
		}
	}

	request.InterestedPlayers = append(request.InterestedPlayers, InterestedPlayer{
		ID:       player.UserID,
		Name:     player.Name,
		Avatar:   player.Avatar,
		JoinedAt: time.Now(),
		Status:   PlayerInterested,
	})

	if err := s.savePlayersLocked(request); err != nil {
		return nil, err
	}

	log.Info("Player joined match request", "requestID", requestID, "player", player.Name, "interested", len(request.InterestedPlayers))
	return request, nil
}

// Leave removes the player's entry if present. Removing an absent player is
// an idempotent no-op, and leaving is allowed in any status: it only prunes
// a display list and never resurrects a terminal request.
func (s *store) Leave(requestID, userID string) (*MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.getLocked(requestID)
	if err != nil {
		return nil, err
	}

	kept := request.InterestedPlayers[:0]
	removed := false
	for _, player := range request.InterestedPlayers {
		if player.ID == userID {
			removed = true
			continue
		}
		kept = append(kept, player)
	}
	if !removed {
		log.Debug("No interested player to remove", "requestID", requestID, "userID", userID)
		return request, nil
	}
	request.InterestedPlayers = kept

	if err := s.savePlayersLocked(request); err != nil {
		return nil, err
	}

	log.Info("Player left match request", "requestID", requestID, "userID", userID)
	return request, nil
}

// Confirm transitions an open request to confirmed. The chosen slot must be
// reported available for the field and date; the check and the commit happen
// under the same lock so the snapshot cannot go stale in between.
func (s *store) Confirm(requestID, fieldID, date string, slot timeslot.TimeSlot) (*MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.getLocked(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != StatusOpen {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotOpen, requestID, request.Status)
	}

	available, err := s.fields.AvailableSlots(fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check field availability: %w", err)
	}
	var confirmed *timeslot.TimeSlot
	for _, candidate := range available {
		if window := candidate.Window(); window.SameWindow(slot) {
			confirmed = &window
			break
		}
	}
	if confirmed == nil {
		return nil, fmt.Errorf("%w: field=%s date=%s %s-%s", ErrSlotUnavailable, fieldID, date, slot.StartTime, slot.EndTime)
	}

	slotJSON, err := json.Marshal(confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirmed slot: %w", err)
	}

	query := `
		UPDATE match_requests
		SET status = ?, is_open = 0, confirmed_field_id = ?, confirmed_date = ?, confirmed_slot_json = ?
		WHERE id = ?
	`
	if _, err := s.db.Exec(query, string(StatusConfirmed), fieldID, date, string(slotJSON), requestID); err != nil {
		return nil, fmt.Errorf("failed to confirm match request: %w", err)
	}

	request.Status = StatusConfirmed
	request.IsOpen = false
	request.ConfirmedFieldID = fieldID
	request.ConfirmedDate = date
	request.ConfirmedTimeSlot = confirmed

	log.Info("Confirmed match request", "requestID", requestID, "fieldID", fieldID, "date", date, "start", confirmed.StartTime)
	return request, nil
}

// Cancel transitions an open request to cancelled. Terminal requests reject
// the call.
func (s *store) Cancel(requestID string) (*MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.getLocked(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != StatusOpen {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotOpen, requestID, request.Status)
	}

	query := `UPDATE match_requests SET status = ?, is_open = 0 WHERE id = ?`
	if _, err := s.db.Exec(query, string(StatusCancelled), requestID); err != nil {
		return nil, fmt.Errorf("failed to cancel match request: %w", err)
	}

	request.Status = StatusCancelled
	request.IsOpen = false

	log.Info("Cancelled match request", "requestID", requestID)
	return request, nil
}

// Open returns all requests with status open. No sort order is guaranteed;
// callers sort for display.
func (s *store) Open() ([]MatchRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectRequest+` WHERE status = ?`, string(StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("failed to query open match requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// ForUser returns all requests the user created or appears in as an
// interested player. Membership lives in a JSON blob, so the filter runs on
// the scanned rows rather than in SQL.
func (s *store) ForUser(userID string) ([]MatchRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to query match requests: %w", err)
	}
	defer rows.Close()

	all, err := collectRequests(rows)
	if err != nil {
		return nil, err
	}

	var mine []MatchRequest
	for _, request := range all {
		if request.CreatorID == userID {
			mine = append(mine, request)
			continue
		}
		for _, player := range request.InterestedPlayers {
			if player.ID == userID {
				mine = append(mine, request)
				break
			}
		}
	}
	return mine, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM match_requests"); err != nil {
		log.Error("Failed to clear match_requests table", "error", err)
	}
}

const selectRequest = `
	SELECT id, creator_id, creator_name, title, description,
	       preferred_dates_json, preferred_time_slots_json, preferred_fields_json,
	       game_mode, min_players, max_players, skill_level,
	       is_open, status, interested_players_json,
	       confirmed_field_id, confirmed_date, confirmed_slot_json, created_at
	FROM match_requests`

func (s *store) getLocked(requestID string) (*MatchRequest, error) {
	row := s.db.QueryRow(selectRequest+` WHERE id = ?`, requestID)
	request, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to get match request: %w", err)
	}
	return request, nil
}

func (s *store) savePlayersLocked(request *MatchRequest) error {
	playersJSON, err := json.Marshal(request.InterestedPlayers)
	if err != nil {
		return fmt.Errorf("failed to marshal interested players: %w", err)
	}
	_, err = s.db.Exec("UPDATE match_requests SET interested_players_json = ? WHERE id = ?", string(playersJSON), request.ID)
	if err != nil {
		return fmt.Errorf("failed to save interested players: %w", err)
	}
	return nil
}

// scanRequest is a helper to scan a single match request row.
func scanRequest(scanner interface{ Scan(...any) error }) (*MatchRequest, error) {
	var request MatchRequest
	var description, gameMode, datesJSON, slotsJSON, fieldsJSON, playersJSON sql.NullString
	var confirmedFieldID, confirmedDate, confirmedSlotJSON sql.NullString
	var status, skill string
	var createdAt int64

	err := scanner.Scan(
		&request.ID, &request.CreatorID, &request.CreatorName, &request.Title, &description,
		&datesJSON, &slotsJSON, &fieldsJSON,
		&gameMode, &request.MinPlayers, &request.MaxPlayers, &skill,
		&request.IsOpen, &status, &playersJSON,
		&confirmedFieldID, &confirmedDate, &confirmedSlotJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	request.Description = description.String
	request.GameMode = gameMode.String
	request.Status = RequestStatus(status)
	request.SkillLevel = SkillLevel(skill)
	request.ConfirmedFieldID = confirmedFieldID.String
	request.ConfirmedDate = confirmedDate.String
	request.CreatedAt = time.Unix(createdAt, 0)

	request.PreferredDates = []string{}
	if datesJSON.Valid && datesJSON.String != "" {
		if err := json.Unmarshal([]byte(datesJSON.String), &request.PreferredDates); err != nil {
			log.Error("Failed to unmarshal preferred_dates_json", "error", err, "requestID", request.ID)
		}
	}
	request.PreferredTimeSlots = []timeslot.TimeSlot{}
	if slotsJSON.Valid && slotsJSON.String != "" {
		if err := json.Unmarshal([]byte(slotsJSON.String), &request.PreferredTimeSlots); err != nil {
			log.Error("Failed to unmarshal preferred_time_slots_json", "error", err, "requestID", request.ID)
		}
	}
	request.PreferredFields = []string{}
	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &request.PreferredFields); err != nil {
			log.Error("Failed to unmarshal preferred_fields_json", "error", err, "requestID", request.ID)
		}
	}
	request.InterestedPlayers = []InterestedPlayer{}
	if playersJSON.Valid && playersJSON.String != "" {
		if err := json.Unmarshal([]byte(playersJSON.String), &request.InterestedPlayers); err != nil {
			log.Error("Failed to unmarshal interested_players_json", "error", err, "requestID", request.ID)
		}
	}
	if confirmedSlotJSON.Valid && confirmedSlotJSON.String != "" {
		var slot timeslot.TimeSlot
		if err := json.Unmarshal([]byte(confirmedSlotJSON.String), &slot); err != nil {
			log.Error("Failed to unmarshal confirmed_slot_json", "error", err, "requestID", request.ID)
		} else {
			request.ConfirmedTimeSlot = &slot
		}
	}

	return &request, nil
}

func collectRequests(rows *sql.Rows) ([]MatchRequest, error) {
	var requests []MatchRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			log.Error("Failed to scan match request row", "error", err)
			continue
		}
		requests = append(requests, *request)
	}
	return requests, nil
}
