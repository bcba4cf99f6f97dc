/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	customerstore "github.com/wso2/customer-health-service/internal/customers/store"
	"github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/events/store"
	"github.com/wso2/customer-health-service/internal/system/config"
	"github.com/wso2/customer-health-service/internal/system/constants"
	errors2 "github.com/wso2/customer-health-service/internal/system/errors"
	"github.com/wso2/customer-health-service/internal/system/metrics"
)

const defaultRecentEventsLimit = 100

type EventServiceInterface interface {
	AddEvents(events []model.Event) error
	GetEventsForCustomer(customerId string, timeRangeSeconds int) ([]model.Event, error)
	GetRecentEventsForCustomer(customerId string, limit int) ([]model.Event, error)
}

// EventService is the default implementation of the EventServiceInterface.
type EventService struct{}

// GetEventService creates a new instance of EventService.
func GetEventService() EventServiceInterface {

	return &EventService{}
}

// AddEvents validates and persists a batch of events. Events are immutable
// once written; there is no update path.
func (es *EventService) AddEvents(events []model.Event) error {

	for i := range events {
		if err := validateEvent(events[i]); err != nil {
			return err
		}
		if events[i].EventId == "" {
			events[i].EventId = uuid.New().String()
		}
		if events[i].Timestamp.IsZero() {
			events[i].Timestamp = time.Now().UTC()
		}
	}

	// Every event must reference an existing customer; the store enforces it
	// with a foreign key, but an early check turns the violation into a
	// useful Not-Found instead of a raw constraint error.
	seen := map[string]bool{}
	for _, event := range events {
		if seen[event.CustomerId] {
			continue
		}
		customer, err := customerstore.GetCustomer(event.CustomerId)
		if err != nil {
			return err
		}
		if customer == nil {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.ErrCustomerNotFound.Code,
				Message:     errors2.ErrCustomerNotFound.Message,
				Description: fmt.Sprintf("No customer exists for id: %s", event.CustomerId),
			}, http.StatusNotFound)
		}
		seen[event.CustomerId] = true
	}

	var err error
	if len(events) == 1 {
		err = store.AddEvent(events[0])
	} else {
		err = store.AddEvents(events)
	}
	if err != nil {
		return err
	}

	for _, event := range events {
		metrics.RecordEventIngested(event.EventType)
	}
	return nil
}

// GetEventsForCustomer fetches events for a customer within the trailing
// time range (seconds), oldest first. A zero range falls back to the scoring
// lookback window.
func (es *EventService) GetEventsForCustomer(customerId string, timeRangeSeconds int) ([]model.Event, error) {

	if customerId == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.ErrMissingCustomerId.Code,
			Message: errors2.ErrMissingCustomerId.Message,
		}, http.StatusBadRequest)
	}
	if err := es.ensureCustomerExists(customerId); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var since time.Time
	if timeRangeSeconds > 0 {
		since = now.Add(-time.Duration(timeRangeSeconds) * time.Second)
	} else {
		since = now.AddDate(0, 0, -config.GetCHSRuntime().Config.Scoring.LookbackDays)
	}

	return store.GetEventsForCustomer(customerId, since)
}

// GetRecentEventsForCustomer fetches the newest events for a customer within
// the scoring lookback window, for the dashboard detail view.
func (es *EventService) GetRecentEventsForCustomer(customerId string, limit int) ([]model.Event, error) {

	if err := es.ensureCustomerExists(customerId); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRecentEventsLimit
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -config.GetCHSRuntime().Config.Scoring.LookbackDays)
	return store.GetRecentEvents(customerId, since, limit)
}

func (es *EventService) ensureCustomerExists(customerId string) error {

	customer, err := customerstore.GetCustomer(customerId)
	if err != nil {
		return err
	}
	if customer == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ErrCustomerNotFound.Code,
			Message:     errors2.ErrCustomerNotFound.Message,
			Description: errors2.ErrCustomerNotFound.Description,
		}, http.StatusNotFound)
	}
	return nil
}

// validateEvent checks an inbound event payload.
func validateEvent(event model.Event) error {

	if event.CustomerId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.ErrMissingCustomerId.Code,
			Message: errors2.ErrMissingCustomerId.Message,
		}, http.StatusBadRequest)
	}
	if !constants.AllowedEventTypes[event.EventType] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ErrInvalidEventType.Code,
			Message:     errors2.ErrInvalidEventType.Message,
			Description: errors2.ErrInvalidEventType.Description,
		}, http.StatusBadRequest)
	}
	return nil
}
