package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/openpitch/pickup/internal/availability"
	"github.com/openpitch/pickup/internal/fields"
	"github.com/openpitch/pickup/internal/matchmaking"
	"github.com/openpitch/pickup/internal/pubsub"
	"github.com/openpitch/pickup/internal/timeslot"
)

var validate = validator.New()

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear all stores")
		s.Availability.Clear()
		s.Fields.Clear()
		s.Coordinator.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Stores cleared successfully")
	}
}

// AvailabilityHandler serves the availability registry: POST adds a record,
// PATCH merges a partial update, DELETE removes by id, GET lists by date or
// user. Add/update/remove never fail on domain grounds, matching the
// registry's permissive contract.
func (s *Server) AvailabilityHandler() http.HandlerFunc {
	type addRequest struct {
		UserID          string              `json:"user_id" validate:"required"`
		UserName        string              `json:"user_name" validate:"required"`
		UserAvatar      string              `json:"user_avatar"`
		Date            string              `json:"date" validate:"required,datetime=2006-01-02"`
		TimeSlots       []timeslot.TimeSlot `json:"time_slots"`
		IsRecurring     bool                `json:"is_recurring"`
		PreferredFields []string            `json:"preferred_fields"`
		MaxDistance     float64             `json:"max_distance"`
	}
	type updateRequest struct {
		ID    string             `json:"id" validate:"required"`
		Patch availability.Patch `json:"patch"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req addRequest
			if !decodeAndValidate(w, r, &req) {
				return
			}
			rec, err := s.Availability.Add(availability.UserAvailability{
				UserID:          req.UserID,
				UserName:        req.UserName,
				UserAvatar:      req.UserAvatar,
				Date:            req.Date,
				TimeSlots:       req.TimeSlots,
				IsRecurring:     req.IsRecurring,
				PreferredFields: req.PreferredFields,
				MaxDistance:     req.MaxDistance,
			})
			if err != nil {
				respondError(w, err)
				return
			}
			s.Metrics.IncAvailabilityRecords()
			respondJSON(w, http.StatusCreated, rec)

		case http.MethodPatch:
			var req updateRequest
			if !decodeAndValidate(w, r, &req) {
				return
			}
			if err := s.Availability.Update(req.ID, req.Patch); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				http.Error(w, "id is required", http.StatusBadRequest)
				return
			}
			if err := s.Availability.Remove(id); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case http.MethodGet:
			if userID := r.URL.Query().Get("userID"); userID != "" {
				records, err := s.Availability.ForUser(userID)
				if err != nil {
					respondError(w, err)
					return
				}
				respondJSON(w, http.StatusOK, records)
				return
			}
			date := r.URL.Query().Get("date")
			if date == "" {
				http.Error(w, "date or userID is required", http.StatusBadRequest)
				return
			}
			records, err := s.Availability.ForDate(date)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, records)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// IngestFieldSlotsHandler accepts raw field slots from the external
// field-scheduling collaborator.
func (s *Server) IngestFieldSlotsHandler() http.HandlerFunc {
	type ingestRequest struct {
		Slots []fields.FieldTimeSlot `json:"slots" validate:"required,min=1"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req ingestRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		if err := s.Fields.UpsertSlots(req.Slots); err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncSlotIngests()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Ingested %d slots", len(req.Slots))
	}
}

// FieldScheduleHandler returns the classified per-field/per-day schedule for
// a date range, optionally narrowed to one field. This is the read side of
// the slot availability classifier, consumed by pickers.
func (s *Server) FieldScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		if from == "" || to == "" {
			http.Error(w, "from and to are required", http.StatusBadRequest)
			return
		}

		slots, err := s.Fields.SlotsInRange(from, to)
		if err != nil {
			respondError(w, err)
			return
		}

		if fieldID := r.URL.Query().Get("fieldID"); fieldID != "" {
			filtered := slots[:0]
			for _, slot := range slots {
				if slot.FieldID == fieldID {
					filtered = append(filtered, slot)
				}
			}
			slots = filtered
		}

		schedules := fields.Classify(slots, from, to)
		if schedules == nil {
			schedules = []fields.FieldSchedule{}
		}
		respondJSON(w, http.StatusOK, schedules)
	}
}

func (s *Server) CreateMatchRequestHandler() http.HandlerFunc {
	type createRequest struct {
		CreatorID          string              `json:"creator_id" validate:"required"`
		CreatorName        string              `json:"creator_name" validate:"required"`
		Title              string              `json:"title" validate:"required"`
		Description        string              `json:"description"`
		PreferredDates     []string            `json:"preferred_dates" validate:"omitempty,dive,datetime=2006-01-02"`
		PreferredTimeSlots []timeslot.TimeSlot `json:"preferred_time_slots"`
		PreferredFields    []string            `json:"preferred_fields"`
		GameMode           string              `json:"game_mode"`
		MinPlayers         int                 `json:"min_players" validate:"required"`
		MaxPlayers         int                 `json:"max_players" validate:"required"`
		SkillLevel         string              `json:"skill_level" validate:"omitempty,oneof=beginner intermediate mixed"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req createRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		request, err := s.Coordinator.Create(matchmaking.CreateInput{
			CreatorID:          req.CreatorID,
			CreatorName:        req.CreatorName,
			Title:              req.Title,
			Description:        req.Description,
			PreferredDates:     req.PreferredDates,
			PreferredTimeSlots: req.PreferredTimeSlots,
			PreferredFields:    req.PreferredFields,
			GameMode:           req.GameMode,
			MinPlayers:         req.MinPlayers,
			MaxPlayers:         req.MaxPlayers,
			SkillLevel:         matchmaking.SkillLevel(req.SkillLevel),
		})
		if err != nil {
			respondError(w, err)
			return
		}

		s.Metrics.IncRequestsCreated()
		s.publish(r, pubsub.EventRequestCreated, request)
		respondJSON(w, http.StatusCreated, request)
	}
}

func (s *Server) OpenMatchRequestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := s.Coordinator.Open()
		if err != nil {
			respondError(w, err)
			return
		}
		if requests == nil {
			requests = []matchmaking.MatchRequest{}
		}
		respondJSON(w, http.StatusOK, requests)
	}
}

func (s *Server) MatchRequestsForUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userID")
		if userID == "" {
			http.Error(w, "userID is required", http.StatusBadRequest)
			return
		}
		requests, err := s.Coordinator.ForUser(userID)
		if err != nil {
			respondError(w, err)
			return
		}
		if requests == nil {
			requests = []matchmaking.MatchRequest{}
		}
		respondJSON(w, http.StatusOK, requests)
	}
}

func (s *Server) JoinMatchRequestHandler() http.HandlerFunc {
	type joinRequest struct {
		RequestID string `json:"request_id" validate:"required"`
		UserID    string `json:"user_id" validate:"required"`
		Name      string `json:"name" validate:"required"`
		Avatar    string `json:"avatar"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req joinRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		request, err := s.Coordinator.Join(req.RequestID, matchmaking.JoinInput{
			UserID: req.UserID,
			Name:   req.Name,
			Avatar: req.Avatar,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		s.Metrics.IncPlayersJoined()
		respondJSON(w, http.StatusOK, request)
	}
}

func (s *Server) LeaveMatchRequestHandler() http.HandlerFunc {
	type leaveRequest struct {
		RequestID string `json:"request_id" validate:"required"`
		UserID    string `json:"user_id" validate:"required"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req leaveRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		request, err := s.Coordinator.Leave(req.RequestID, req.UserID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, request)
	}
}

func (s *Server) ConfirmMatchRequestHandler() http.HandlerFunc {
	type confirmRequest struct {
		RequestID string `json:"request_id" validate:"required"`
		FieldID   string `json:"field_id" validate:"required"`
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime string `json:"start_time" validate:"required"`
		EndTime   string `json:"end_time" validate:"required"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req confirmRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		startTime := time.Now()
		request, err := s.Coordinator.Confirm(req.RequestID, req.FieldID, req.Date, timeslot.TimeSlot{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.ObserveConfirmDuration(time.Since(startTime).Seconds())
		s.Metrics.IncRequestsConfirmed()
		s.publish(r, pubsub.EventRequestConfirmed, request)
		respondJSON(w, http.StatusOK, request)
	}
}

func (s *Server) CancelMatchRequestHandler() http.HandlerFunc {
	type cancelRequest struct {
		RequestID string `json:"request_id" validate:"required"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req cancelRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		request, err := s.Coordinator.Cancel(req.RequestID)
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncRequestsCancelled()
		s.publish(r, pubsub.EventRequestCancelled, request)
		respondJSON(w, http.StatusOK, request)
	}
}

// publish fans out a lifecycle event unless the request is a dry run.
// Publishing failures are logged, not surfaced: the mutation has already
// committed.
func (s *Server) publish(r *http.Request, event pubsub.EventType, request *matchmaking.MatchRequest) {
	if isDryRunFromContext(r) {
		log.Info("[Dry Run] Would have published event", "event", event, "requestID", request.ID)
		return
	}
	if err := s.pubsub.SendMessage(event, request); err != nil {
		log.Error("Failed to publish lifecycle event", "event", event, "requestID", request.ID, "error", err)
	}
}

// decodeAndValidate decodes the JSON body into v and validates it with the
// struct tags. It writes the error response itself and reports whether the
// handler should proceed.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Error("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		log.Warn("Request validation failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps domain errors onto status codes: invalid input is 400,
// unknown ids are 404, rejected state transitions are 409, anything else is
// a 500.
func respondError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, matchmaking.ErrInvalidCapacity):
		status = http.StatusBadRequest
	case errors.Is(err, matchmaking.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, matchmaking.ErrNotOpen),
		errors.Is(err, matchmaking.ErrAlreadyJoined),
		errors.Is(err, matchmaking.ErrSlotUnavailable):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}
