package availability

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/openpitch/pickup/internal/timeslot"
)

// New creates a new availability Registry backed by the given database.
func New(db *sql.DB) Registry {
	return &store{
		db: db,
	}
}

// Add assigns a fresh id and createdAt, stores the record and returns it.
// No conflict check is performed against existing records for the same
// user/date; multiple records per user per date are allowed.
func (s *store) Add(rec UserAvailability) (UserAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now()
	if rec.TimeSlots == nil {
		rec.TimeSlots = []timeslot.TimeSlot{}
	}
	if rec.PreferredFields == nil {
		rec.PreferredFields = []string{}
	}

	slotsJSON, err := json.Marshal(rec.TimeSlots)
	if err != nil {
		return UserAvailability{}, fmt.Errorf("failed to marshal time slots: %w", err)
	}
	fieldsJSON, err := json.Marshal(rec.PreferredFields)
	if err != nil {
		return UserAvailability{}, fmt.Errorf("failed to marshal preferred fields: %w", err)
	}

	query := `
		INSERT INTO user_availability (
			id, user_id, user_name, user_avatar, date, time_slots_json,
			is_recurring, preferred_fields_json, max_distance, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		rec.ID,
		rec.UserID,
		rec.UserName,
		rec.UserAvatar,
		rec.Date,
		string(slotsJSON),
		rec.IsRecurring,
		string(fieldsJSON),
		rec.MaxDistance,
		rec.CreatedAt.Unix(),
	)
	if err != nil {
		return UserAvailability{}, fmt.Errorf("failed to insert availability: %w", err)
	}

	log.Info("Added availability record", "id", rec.ID, "user", rec.UserName, "date", rec.Date)
	return rec, nil
}

// Remove deletes the record if present. Removing an unknown id is a no-op,
// deletions are idempotent.
func (s *store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM user_availability WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("No availability record to remove", "id", id)
	} else {
		log.Info("Removed availability record", "id", id)
	}
	return nil
}

// Update merges the patch into the existing record. Updating an unknown id
// is a silent no-op.
func (s *store) Update(id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getLocked(id)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("No availability record to update", "id", id)
			return nil
		}
		return fmt.Errorf("failed to load availability for update: %w", err)
	}

	if patch.Date != nil {
		rec.Date = *patch.Date
	}
	if patch.TimeSlots != nil {
		rec.TimeSlots = *patch.TimeSlots
	}
	if patch.IsRecurring != nil {
		rec.IsRecurring = *patch.IsRecurring
	}
	if patch.PreferredFields != nil {
		rec.PreferredFields = *patch.PreferredFields
	}
	if patch.MaxDistance != nil {
		rec.MaxDistance = *patch.MaxDistance
	}

	slotsJSON, err := json.Marshal(rec.TimeSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal time slots: %w", err)
	}
	fieldsJSON, err := json.Marshal(rec.PreferredFields)
	if err != nil {
		return fmt.Errorf("failed to marshal preferred fields: %w", err)
	}

	query := `
		UPDATE user_availability
		SET date = ?, time_slots_json = ?, is_recurring = ?, preferred_fields_json = ?, max_distance = ?
		WHERE id = ?
	`
	_, err = s.db.Exec(query, rec.Date, string(slotsJSON), rec.IsRecurring, string(fieldsJSON), rec.MaxDistance, id)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}

	log.Info("Updated availability record", "id", id)
	return nil
}

// ForDate returns all records declared for the given calendar date.
func (s *store) ForDate(date string) ([]UserAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, user_id, user_name, user_avatar, date, time_slots_json,
		       is_recurring, preferred_fields_json, max_distance, created_at
		FROM user_availability
		WHERE date = ?
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability by date: %w", err)
	}
	defer rows.Close()

	return s.collect(rows)
}

// ForUser returns all records declared by the given user.
func (s *store) ForUser(userID string) ([]UserAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, user_id, user_name, user_avatar, date, time_slots_json,
		       is_recurring, preferred_fields_json, max_distance, created_at
		FROM user_availability
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability by user: %w", err)
	}
	defer rows.Close()

	return s.collect(rows)
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM user_availability"); err != nil {
		log.Error("Failed to clear availability table", "error", err)
	}
}

func (s *store) getLocked(id string) (UserAvailability, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, user_name, user_avatar, date, time_slots_json,
		       is_recurring, preferred_fields_json, max_distance, created_at
		FROM user_availability
		WHERE id = ?
	`, id)
	return scanRecord(row)
}

func (s *store) collect(rows *sql.Rows) ([]UserAvailability, error) {
	var records []UserAvailability
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan availability row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func scanRecord(scanner interface{ Scan(...any) error }) (UserAvailability, error) {
	var rec UserAvailability
	var avatar, slotsJSON, fieldsJSON sql.NullString
	var createdAt int64

	err := scanner.Scan(
		&rec.ID, &rec.UserID, &rec.UserName, &avatar, &rec.Date,
		&slotsJSON, &rec.IsRecurring, &fieldsJSON, &rec.MaxDistance, &createdAt,
	)
	if err != nil {
		return UserAvailability{}, err
	}

	rec.UserAvatar = avatar.String
	rec.CreatedAt = time.Unix(createdAt, 0)

	rec.TimeSlots = []timeslot.TimeSlot{}
	if slotsJSON.Valid && slotsJSON.String != "" {
		if err := json.Unmarshal([]byte(slotsJSON.String), &rec.TimeSlots); err != nil {
			log.Error("Failed to unmarshal time_slots_json", "error", err, "id", rec.ID)
		}
	}

	rec.PreferredFields = []string{}
	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &rec.PreferredFields); err != nil {
			log.Error("Failed to unmarshal preferred_fields_json", "error", err, "id", rec.ID)
		}
	}

	return rec, nil
}
