package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openpitch/pickup/internal/availability"
	"github.com/openpitch/pickup/internal/config"
	"github.com/openpitch/pickup/internal/database"
	"github.com/openpitch/pickup/internal/fields"
	"github.com/openpitch/pickup/internal/matchmaking"
	"github.com/openpitch/pickup/internal/metrics"
	"github.com/openpitch/pickup/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and a mock
// pubsub client.
func setupTestServer(t *testing.T) (*Server, *pubsub.MockPubSubClient, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	registry := availability.New(db)
	fieldStore := fields.New(db)
	coordinator := matchmaking.NewStore(db, fieldStore)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubMock := pubsub.NewMock("TEST")

	server := NewServer(registry, fieldStore, coordinator, metricsSvc, metricsHandler, cfg, pubsubMock)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, pubsubMock, teardown
}

func postJSON(t *testing.T, server *Server, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, server *Server, target string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", target, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func seedTestSlots(t *testing.T, server *Server) {
	t.Helper()

	rr := postJSON(t, server, "/fields/slots", map[string]any{
		"slots": []map[string]any{
			{"id": "s1", "field_id": "f1", "field_name": "Riverside Pitch", "date": "2026-09-05", "start_time": "18:00", "end_time": "20:00", "is_available": true},
			{"id": "s2", "field_id": "f1", "field_name": "Riverside Pitch", "date": "2026-09-05", "start_time": "20:00", "end_time": "22:00", "is_available": false},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code)
}

func createTestRequest(t *testing.T, server *Server) matchmaking.MatchRequest {
	t.Helper()

	rr := postJSON(t, server, "/match-requests", map[string]any{
		"creator_id":   "user-1",
		"creator_name": "Test User",
		"title":        "Friday five-a-side",
		"min_players":  4,
		"max_players":  10,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var request matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &request))
	return request
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := get(t, server, "/health")

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestAvailabilityLifecycle(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	// Add
	rr := postJSON(t, server, "/availability", map[string]any{
		"user_id":   "user-1",
		"user_name": "Test User",
		"date":      "2026-09-05",
		"time_slots": []map[string]string{
			{"start_time": "18:00", "end_time": "20:00"},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var rec availability.UserAvailability
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.NotEmpty(t, rec.ID)

	// List by date
	rr = get(t, server, "/availability?date=2026-09-05")
	require.Equal(t, http.StatusOK, rr.Code)
	var records []availability.UserAvailability
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	assert.Len(t, records, 1)

	// Patch
	body, err := json.Marshal(map[string]any{
		"id":    rec.ID,
		"patch": map[string]any{"is_recurring": true},
	})
	require.NoError(t, err)
	req, err := http.NewRequest("PATCH", "/availability", bytes.NewReader(body))
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// List by user
	rr = get(t, server, "/availability?userID=user-1")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.True(t, records[0].IsRecurring)

	// Delete
	req, err = http.NewRequest("DELETE", "/availability?id="+rec.ID, nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = get(t, server, "/availability?date=2026-09-05")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	assert.Len(t, records, 0)
}

func TestAvailabilityValidation(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	// Missing user_name and malformed date.
	rr := postJSON(t, server, "/availability", map[string]any{
		"user_id": "user-1",
		"date":    "05-09-2026",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = get(t, server, "/availability")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFieldScheduleHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	seedTestSlots(t, server)

	rr := get(t, server, "/fields/schedule?from=2026-09-05&to=2026-09-06")
	require.Equal(t, http.StatusOK, rr.Code)

	var schedules []fields.FieldSchedule
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &schedules))
	require.Len(t, schedules, 1)
	assert.Equal(t, "f1", schedules[0].FieldID)
	require.Len(t, schedules[0].Days, 2)
	assert.Equal(t, fields.StatusPartial, schedules[0].Days[0].Status)
	assert.Equal(t, fields.StatusNone, schedules[0].Days[1].Status)

	// Unknown field yields an empty schedule list, not an error.
	rr = get(t, server, "/fields/schedule?from=2026-09-05&to=2026-09-06&fieldID=f9")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &schedules))
	assert.Len(t, schedules, 0)

	// Missing range is a 400.
	rr = get(t, server, "/fields/schedule?from=2026-09-05")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchRequestFlow(t *testing.T) {
	server, pubsubMock, teardown := setupTestServer(t)
	defer teardown()

	seedTestSlots(t, server)
	request := createTestRequest(t, server)

	require.Len(t, pubsubMock.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventRequestCreated), pubsubMock.SendMessageCalls[0].Topic)

	// Join
	rr := postJSON(t, server, "/match-requests/join", map[string]any{
		"request_id": request.ID,
		"user_id":    "user-2",
		"name":       "Player 2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var joined matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Len(t, joined.InterestedPlayers, 1)

	// The open view includes it.
	rr = get(t, server, "/match-requests/open")
	require.Equal(t, http.StatusOK, rr.Code)
	var open []matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &open))
	require.Len(t, open, 1)

	// Confirm against the seeded open slot.
	rr = postJSON(t, server, "/match-requests/confirm", map[string]any{
		"request_id": request.ID,
		"field_id":   "f1",
		"date":       "2026-09-05",
		"start_time": "18:00",
		"end_time":   "20:00",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var confirmed matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &confirmed))
	assert.Equal(t, matchmaking.StatusConfirmed, confirmed.Status)
	assert.Equal(t, "f1", confirmed.ConfirmedFieldID)

	require.Len(t, pubsubMock.SendMessageCalls, 2)
	assert.Equal(t, string(pubsub.EventRequestConfirmed), pubsubMock.SendMessageCalls[1].Topic)

	// Confirmed requests leave the open view.
	rr = get(t, server, "/match-requests/open")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &open))
	assert.Len(t, open, 0)

	// But stay in the creator's view.
	rr = get(t, server, "/match-requests/mine?userID=user-1")
	require.Equal(t, http.StatusOK, rr.Code)
	var mine []matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)
}

func TestMatchRequestErrorCodes(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	seedTestSlots(t, server)

	// Invalid capacity is a 400.
	rr := postJSON(t, server, "/match-requests", map[string]any{
		"creator_id":   "user-1",
		"creator_name": "Test User",
		"title":        "Bad capacity",
		"min_players":  10,
		"max_players":  4,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown request id is a 404.
	rr = postJSON(t, server, "/match-requests/join", map[string]any{
		"request_id": "no-such-id",
		"user_id":    "user-2",
		"name":       "Player 2",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	request := createTestRequest(t, server)

	// Double join is a 409.
	join := map[string]any{"request_id": request.ID, "user_id": "user-2", "name": "Player 2"}
	rr = postJSON(t, server, "/match-requests/join", join)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, server, "/match-requests/join", join)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Confirming a taken slot is a 409 and the request stays open.
	rr = postJSON(t, server, "/match-requests/confirm", map[string]any{
		"request_id": request.ID,
		"field_id":   "f1",
		"date":       "2026-09-05",
		"start_time": "20:00",
		"end_time":   "22:00",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Cancelling twice is a 409.
	cancel := map[string]any{"request_id": request.ID}
	rr = postJSON(t, server, "/match-requests/cancel", cancel)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, server, "/match-requests/cancel", cancel)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLeaveMatchRequestHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	request := createTestRequest(t, server)

	rr := postJSON(t, server, "/match-requests/join", map[string]any{
		"request_id": request.ID,
		"user_id":    "user-2",
		"name":       "Player 2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, server, "/match-requests/leave", map[string]any{
		"request_id": request.ID,
		"user_id":    "user-2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var left matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &left))
	assert.Empty(t, left.InterestedPlayers)
}

func TestDryRunSkipsPublishing(t *testing.T) {
	server, pubsubMock, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, server, "/match-requests?dry_run=true", map[string]any{
		"creator_id":   "user-1",
		"creator_name": "Test User",
		"title":        "Dry run",
		"min_players":  4,
		"max_players":  10,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	assert.Len(t, pubsubMock.SendMessageCalls, 0)
}

func TestClearStoreHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	seedTestSlots(t, server)
	createTestRequest(t, server)

	rr := get(t, server, "/clear")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, "/match-requests/open")
	require.Equal(t, http.StatusOK, rr.Code)
	var open []matchmaking.MatchRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &open))
	assert.Len(t, open, 0)
}
