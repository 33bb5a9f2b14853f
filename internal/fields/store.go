package fields

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new FieldStore.
func New(db *sql.DB) FieldStore {
	return &store{
		db: db,
	}
}

// UpsertSlots inserts or replaces raw field slots. The upsert is "dumb": the
// collaborator owns these records, so every field is overwritten on conflict.
func (s *store) UpsertSlots(slots []FieldTimeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO field_slots (id, field_id, field_name, field_city, date, start_time, end_time, is_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			field_id = excluded.field_id,
			field_name = excluded.field_name,
			field_city = excluded.field_city,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_available = excluded.is_available;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare field slot statement: %w", err)
	}
	defer stmt.Close()

	for _, slot := range slots {
		if _, err := stmt.Exec(slot.ID, slot.FieldID, slot.FieldName, slot.FieldCity, slot.Date, slot.StartTime, slot.EndTime, slot.IsAvailable); err != nil {
			return fmt.Errorf("failed to upsert field slot %s: %w", slot.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit field slots: %w", err)
	}

	log.Info("Upserted field slots", "count", len(slots))
	return nil
}

// SlotsInRange returns all raw slots with from <= date <= to.
func (s *store) SlotsInRange(from, to string) ([]FieldTimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, field_id, field_name, field_city, date, start_time, end_time, is_available
		FROM field_slots
		WHERE date >= ? AND date <= ?
		ORDER BY field_id, date, start_time
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query field slots: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

// AvailableSlots returns the open slots for one field on one day. This is
// what the match-request coordinator consults during confirmation.
func (s *store) AvailableSlots(fieldID, date string) ([]FieldTimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, field_id, field_name, field_city, date, start_time, end_time, is_available
		FROM field_slots
		WHERE field_id = ? AND date = ? AND is_available = 1
		ORDER BY start_time
	`, fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query available slots: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM field_slots"); err != nil {
		log.Error("Failed to clear field_slots table", "error", err)
	}
}

func collectSlots(rows *sql.Rows) ([]FieldTimeSlot, error) {
	var slots []FieldTimeSlot
	for rows.Next() {
		var slot FieldTimeSlot
		var city sql.NullString
		if err := rows.Scan(&slot.ID, &slot.FieldID, &slot.FieldName, &city, &slot.Date, &slot.StartTime, &slot.EndTime, &slot.IsAvailable); err != nil {
			log.Error("Failed to scan field slot row", "error", err)
			continue
		}
		slot.FieldCity = city.String
		slots = append(slots, slot)
	}
	return slots, nil
}
