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

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	customermodel "github.com/wso2/customer-health-service/internal/customers/model"
	customerservice "github.com/wso2/customer-health-service/internal/customers/service"
	"github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/events/service"
	eventstore "github.com/wso2/customer-health-service/internal/events/store"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/errors"
)

func Test_Events(t *testing.T) {
	customerSvc := customerservice.GetCustomerService()
	eventSvc := service.GetEventService()

	customer, err := customerSvc.AddCustomer(customermodel.Customer{
		Id:      "c_" + uuid.New().String(),
		Name:    "Umbrella Corp",
		Segment: constants.SegmentEnterprise,
	})
	require.NoError(t, err, "Failed to add customer")

	now := time.Now().UTC()

	t.Run("Add_single_event", func(t *testing.T) {
		err := eventSvc.AddEvents([]model.Event{{
			CustomerId: customer.Id,
			EventType:  constants.EventTypeLogin,
			Timestamp:  now.AddDate(0, 0, -2),
			Metadata: map[string]interface{}{
				"device":           "web",
				"session_duration": 42,
			},
		}})
		require.NoError(t, err, "Failed to add event")
	})

	t.Run("Add_event_batch", func(t *testing.T) {
		err := eventSvc.AddEvents([]model.Event{
			{
				CustomerId: customer.Id,
				EventType:  constants.EventTypeFeatureUse,
				Timestamp:  now.AddDate(0, 0, -1),
				Metadata:   map[string]interface{}{"feature_id": "feature_03"},
			},
			{
				CustomerId: customer.Id,
				EventType:  constants.EventTypeTicketOpen,
				Timestamp:  now.Add(-2 * time.Hour),
				Metadata:   map[string]interface{}{"severity": constants.SeverityLow},
			},
		})
		require.NoError(t, err, "Failed to add event batch")
	})

	t.Run("Get_events_ordered_oldest_first", func(t *testing.T) {
		events, err := eventSvc.GetEventsForCustomer(customer.Id, 0)
		require.NoError(t, err, "Failed to fetch events")
		require.Len(t, events, 3)

		for i := 1; i < len(events); i++ {
			require.False(t, events[i].Timestamp.Before(events[i-1].Timestamp),
				"Events should be ordered by timestamp ascending")
		}
	})

	t.Run("Metadata_survives_the_round_trip", func(t *testing.T) {
		events, err := eventSvc.GetEventsForCustomer(customer.Id, 0)
		require.NoError(t, err, "Failed to fetch events")

		require.Equal(t, constants.EventTypeLogin, events[0].EventType)
		require.Equal(t, "web", events[0].Metadata["device"])
		// JSONB numbers come back as float64.
		require.Equal(t, float64(42), events[0].Metadata["session_duration"])
	})

	t.Run("Recent_events_newest_first_with_limit", func(t *testing.T) {
		events, err := eventSvc.GetRecentEventsForCustomer(customer.Id, 2)
		require.NoError(t, err, "Failed to fetch recent events")
		require.Len(t, events, 2)
		require.False(t, events[0].Timestamp.Before(events[1].Timestamp),
			"Recent events should be ordered newest first")
	})

	t.Run("Events_for_unknown_customer_not_found", func(t *testing.T) {
		_, err := eventSvc.GetEventsForCustomer("c_"+uuid.New().String(), 0)
		require.Error(t, err)

		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})

	t.Run("Add_event_for_unknown_customer_not_found", func(t *testing.T) {
		err := eventSvc.AddEvents([]model.Event{{
			CustomerId: "c_" + uuid.New().String(),
			EventType:  constants.EventTypeLogin,
		}})
		require.Error(t, err)

		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})

	t.Run("Customer_with_no_events_returns_empty_list", func(t *testing.T) {
		quiet, err := customerSvc.AddCustomer(customermodel.Customer{
			Name:    "Quiet Industries",
			Segment: constants.SegmentSMB,
		})
		require.NoError(t, err, "Failed to add customer")

		events, err := eventSvc.GetEventsForCustomer(quiet.Id, 0)
		require.NoError(t, err, "Zero events must not be treated as Not-Found")
		require.Empty(t, events)
	})

	t.Run("Deleting_customer_cascades_to_events", func(t *testing.T) {
		err := customerSvc.DeleteCustomer(customer.Id)
		require.NoError(t, err, "Failed to delete customer")

		since := now.AddDate(0, 0, -30)
		events, err := eventstore.GetEventsForCustomer(customer.Id, since)
		require.NoError(t, err, "Failed to query events")
		require.Empty(t, events, "Events should be removed with their customer")
	})
}
