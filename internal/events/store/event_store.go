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

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/database/provider"
	errors2 "github.com/wso2/customer-health-service/internal/system/errors"
	"github.com/wso2/customer-health-service/internal/system/log"
)

// marshalJsonb marshals a metadata map for a JSONB column, handling nil maps.
func marshalJsonb(data map[string]interface{}) (sql.NullString, error) {

	if data == nil {
		return sql.NullString{Valid: false}, nil
	}
	bytes, err := json.Marshal(data)
	if err != nil {
		logger := log.GetLogger()
		errorMsg := "Failed to marshal metadata to JSON for storing in database."
		logger.Debug(errorMsg, log.Error(err))
		return sql.NullString{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}
	return sql.NullString{String: string(bytes), Valid: true}, nil
}

// AddEvent inserts a single event.
func AddEvent(event model.Event) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding event with id: %s", event.EventId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	metadataJson, err := marshalJsonb(event.Metadata)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (event_id, customer_id, event_type, event_timestamp, metadata)
        VALUES ($1, $2, $3, $4, $5)`, constants.EventTable)

	_, err = dbClient.Execute(query, event.EventId, event.CustomerId, event.EventType, event.Timestamp, metadataJson)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert event with id: %s", event.EventId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// AddEvents inserts multiple events in bulk using a transaction.
func AddEvents(events []model.Event) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for adding events"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := "Failed to begin transaction to add events"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
        INSERT INTO %s (event_id, customer_id, event_type, event_timestamp, metadata)
        VALUES ($1, $2, $3, $4, $5)`, constants.EventTable)

	stmt, err := tx.Prepare(query)
	if err != nil {
		errorMsg := "Failed to prepare statement to add events"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer stmt.Close()

	for _, event := range events {
		metadataJson, err := marshalJsonb(event.Metadata)
		if err != nil {
			return err
		}

		_, err = stmt.Exec(event.EventId, event.CustomerId, event.EventType, event.Timestamp, metadataJson)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to insert event: %s during batch addition", event.EventId)
			logger.Debug(errorMsg, log.Error(err))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.ADD_EVENT.Code,
				Message:     errors2.ADD_EVENT.Message,
				Description: errorMsg,
			}, err)
		}
	}

	if err := tx.Commit(); err != nil {
		errorMsg := "Failed to commit transaction while adding events"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EVENT.Code,
			Message:     errors2.ADD_EVENT.Message,
			Description: errorMsg,
		}, err)
	}

	return nil
}

// GetEventsForCustomer fetches all events for a customer with a timestamp at
// or after the given cutoff, ordered by timestamp ascending.
func GetEventsForCustomer(customerId string, since time.Time) ([]model.Event, error) {

	query := fmt.Sprintf(`
        SELECT event_id, customer_id, event_type, event_timestamp, metadata
        FROM %s WHERE customer_id = $1 AND event_timestamp >= $2
        ORDER BY event_timestamp ASC`, constants.EventTable)

	return queryEvents(query, customerId, since)
}

// GetRecentEvents fetches the most recent events for a customer within the
// window, newest first, capped at limit.
func GetRecentEvents(customerId string, since time.Time, limit int) ([]model.Event, error) {

	query := fmt.Sprintf(`
        SELECT event_id, customer_id, event_type, event_timestamp, metadata
        FROM %s WHERE customer_id = $1 AND event_timestamp >= $2
        ORDER BY event_timestamp DESC LIMIT $3`, constants.EventTable)

	return queryEvents(query, customerId, since, limit)
}

func queryEvents(query string, args ...interface{}) ([]model.Event, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching events"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_EVENTS.Code,
			Message:     errors2.GET_EVENTS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed to fetch events"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_EVENTS.Code,
			Message:     errors2.GET_EVENTS.Message,
			Description: errorMsg,
		}, err)
	}

	events := make([]model.Event, 0, len(results))
	for _, row := range results {
		event, err := buildEventFromResultRow(row)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func buildEventFromResultRow(row map[string]interface{}) (model.Event, error) {

	var event model.Event
	if v, ok := row["event_id"].(string); ok {
		event.EventId = v
	}
	if v, ok := row["customer_id"].(string); ok {
		event.CustomerId = v
	}
	if v, ok := row["event_type"].(string); ok {
		event.EventType = v
	}
	if v, ok := row["event_timestamp"].(time.Time); ok {
		event.Timestamp = v
	}

	// JSONB columns come back as raw bytes from the driver.
	switch raw := row["metadata"].(type) {
	case nil:
		// No metadata recorded for this event.
	case []byte:
		if err := json.Unmarshal(raw, &event.Metadata); err != nil {
			logger := log.GetLogger()
			errorMsg := fmt.Sprintf("Failed to unmarshal metadata for event: %s", event.EventId)
			logger.Debug(errorMsg, log.Error(err))
			return model.Event{}, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	case string:
		if err := json.Unmarshal([]byte(raw), &event.Metadata); err != nil {
			logger := log.GetLogger()
			errorMsg := fmt.Sprintf("Failed to unmarshal metadata for event: %s", event.EventId)
			logger.Debug(errorMsg, log.Error(err))
			return model.Event{}, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	}

	return event, nil
}
