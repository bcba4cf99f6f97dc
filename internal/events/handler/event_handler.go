package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/events/provider"
	"github.com/wso2/customer-health-service/internal/system/authn"
	"github.com/wso2/customer-health-service/internal/system/utils"
)

type EventHandler struct{}

func NewEventHandler() *EventHandler {

	return &EventHandler{}
}

// AddEvents handles POST /events. The body may be a single event object or an
// array of events; either way the batch is persisted atomically.
func (eh *EventHandler) AddEvents(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateAuthentication(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	events, err := decodeEventPayload(body)
	if err != nil {
		http.Error(w, utils.HandleDecodeError(err, "event"), http.StatusBadRequest)
		return
	}
	if len(events) == 0 {
		http.Error(w, "Request body contains no events", http.StatusBadRequest)
		return
	}

	eventService := provider.NewEventProvider().GetEventService()
	if err := eventService.AddEvents(events); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// GetEvents handles GET /events?customer_id=...&time_range=... where
// time_range is a trailing window in seconds.
func (eh *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {

	customerId := r.URL.Query().Get("customer_id")
	timeRange := 0
	if timeStr := r.URL.Query().Get("time_range"); timeStr != "" {
		parsed, err := strconv.Atoi(timeStr)
		if err != nil {
			http.Error(w, "Invalid time_range format, must be an integer representing seconds", http.StatusBadRequest)
			return
		}
		timeRange = parsed
	}

	eventService := provider.NewEventProvider().GetEventService()
	events, err := eventService.GetEventsForCustomer(customerId, timeRange)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, events)
}

// decodeEventPayload accepts either a JSON array or a single JSON object.
func decodeEventPayload(body []byte) ([]model.Event, error) {

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []model.Event
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
		return events, nil
	}

	var event model.Event
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return nil, err
	}
	return []model.Event{event}, nil
}
