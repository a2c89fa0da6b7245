package server

import (
	"encoding/json"
	"testing"

	"clubhub/internal/mapper"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEvent(t *testing.T, app *fiber.App, token string, body map[string]string) mapper.Event {
	t.Helper()

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/events", token, body)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var event mapper.Event
	require.NoError(t, json.Unmarshal(raw, &event))
	require.NotEmpty(t, event.ID)
	return event
}

func TestCreateEvent_AdminOnly(t *testing.T) {
	s, app := newTestServer(t)
	adminID, adminToken := signup(t, app, "Ada", "", "ada@club.example")
	_, benToken := signup(t, app, "Ben", "", "ben@club.example")
	promote(t, s, adminID)

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/events", benToken, map[string]string{
		"title": "Summer fair",
		"date":  "2026-07-04",
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	event := createEvent(t, app, adminToken, map[string]string{
		"title":    "Summer fair",
		"date":     "2026-07-04",
		"time":     "14:00",
		"location": "Clubhouse lawn",
	})
	assert.Equal(t, "Summer fair", event.Title)
	assert.Empty(t, event.Attendees)
}

func TestCreateEvent_RequiresTitleAndDate(t *testing.T) {
	s, app := newTestServer(t)
	adminID, adminToken := signup(t, app, "Ada", "", "ada@club.example")
	promote(t, s, adminID)

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/events", adminToken, map[string]string{
		"date": "2026-07-04",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/events", adminToken, map[string]string{
		"title": "Summer fair",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestToggleAttendance(t *testing.T) {
	s, app := newTestServer(t)
	adminID, adminToken := signup(t, app, "Ada", "", "ada@club.example")
	benID, benToken := signup(t, app, "Ben", "", "ben@club.example")
	promote(t, s, adminID)

	event := createEvent(t, app, adminToken, map[string]string{
		"title": "Summer fair",
		"date":  "2026-07-04",
	})

	status, raw := doRequest(t, app, fiber.MethodPost, "/api/events/"+event.ID+"/attend", benToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var going mapper.Event
	require.NoError(t, json.Unmarshal(raw, &going))
	assert.Equal(t, []string{benID}, going.Attendees)

	status, raw = doRequest(t, app, fiber.MethodPost, "/api/events/"+event.ID+"/attend", benToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var notGoing mapper.Event
	require.NoError(t, json.Unmarshal(raw, &notGoing))
	assert.Empty(t, notGoing.Attendees)
}

func TestUpdateEvent_PreservesAttendees(t *testing.T) {
	s, app := newTestServer(t)
	adminID, adminToken := signup(t, app, "Ada", "", "ada@club.example")
	benID, benToken := signup(t, app, "Ben", "", "ben@club.example")
	promote(t, s, adminID)

	event := createEvent(t, app, adminToken, map[string]string{
		"title": "Summer fair",
		"date":  "2026-07-04",
	})

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/events/"+event.ID+"/attend", benToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, raw := doRequest(t, app, fiber.MethodPut, "/api/events/"+event.ID, adminToken, map[string]string{
		"title": "Autumn fair",
		"date":  "2026-10-04",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var updated mapper.Event
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Autumn fair", updated.Title)
	assert.Equal(t, []string{benID}, updated.Attendees)
}

func TestDeleteEvent(t *testing.T) {
	s, app := newTestServer(t)
	adminID, adminToken := signup(t, app, "Ada", "", "ada@club.example")
	_, benToken := signup(t, app, "Ben", "", "ben@club.example")
	promote(t, s, adminID)

	event := createEvent(t, app, adminToken, map[string]string{
		"title": "Summer fair",
		"date":  "2026-07-04",
	})

	status, _ := doRequest(t, app, fiber.MethodDelete, "/api/events/"+event.ID, benToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/events/"+event.ID, adminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = doRequest(t, app, fiber.MethodDelete, "/api/events/"+event.ID, adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
