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

// Package seed generates segment-shaped synthetic customers and events for
// local development and demos. Segment only shapes the generated activity;
// the calculator itself never reads it.
package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	customermodel "github.com/wso2/customer-health-service/internal/customers/model"
	eventmodel "github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
)

// activityProfile controls how much activity a segment generates over the
// seeded window.
type activityProfile struct {
	minLoginDays int
	maxLoginDays int
	minFeatures  int
	maxFeatures  int
	minTickets   int
	maxTickets   int
	closeOddsPct int
}

var segmentProfiles = map[string]activityProfile{
	constants.SegmentEnterprise: {minLoginDays: 18, maxLoginDays: 28, minFeatures: 8, maxFeatures: 14, minTickets: 1, maxTickets: 6, closeOddsPct: 80},
	constants.SegmentMidMarket:  {minLoginDays: 10, maxLoginDays: 22, minFeatures: 5, maxFeatures: 11, minTickets: 0, maxTickets: 5, closeOddsPct: 70},
	constants.SegmentSMB:        {minLoginDays: 4, maxLoginDays: 16, minFeatures: 2, maxFeatures: 8, minTickets: 0, maxTickets: 4, closeOddsPct: 60},
	constants.SegmentStartup:    {minLoginDays: 1, maxLoginDays: 12, minFeatures: 1, maxFeatures: 6, minTickets: 0, maxTickets: 3, closeOddsPct: 50},
}

var segments = []string{
	constants.SegmentEnterprise,
	constants.SegmentMidMarket,
	constants.SegmentSMB,
	constants.SegmentStartup,
}

var devices = []string{"web", "ios", "android", "desktop"}

var severities = []string{
	constants.SeverityLow,
	constants.SeverityLow,
	constants.SeverityMedium,
	constants.SeverityHigh,
}

// Generator produces deterministic synthetic data for a given seed.
type Generator struct {
	faker       *gofakeit.Faker
	windowDays  int
	catalogSize int
}

// NewGenerator creates a generator over the given window and feature catalog.
func NewGenerator(seed int64, windowDays, catalogSize int) *Generator {

	return &Generator{
		faker:       gofakeit.New(seed),
		windowDays:  windowDays,
		catalogSize: catalogSize,
	}
}

// Customers generates count customers spread across all segments.
func (g *Generator) Customers(count int) []customermodel.Customer {

	now := time.Now().UTC()
	customers := make([]customermodel.Customer, 0, count)
	for i := 0; i < count; i++ {
		customers = append(customers, customermodel.Customer{
			Id:        "c_" + uuid.New().String(),
			Name:      g.faker.Company(),
			Segment:   segments[i%len(segments)],
			CreatedAt: now.AddDate(0, 0, -g.faker.IntRange(g.windowDays, 365)),
		})
	}
	return customers
}

// EventsFor generates the activity events for one customer over the window,
// shaped by its segment profile.
func (g *Generator) EventsFor(customer customermodel.Customer) []eventmodel.Event {

	profile, ok := segmentProfiles[customer.Segment]
	if !ok {
		profile = segmentProfiles[constants.SegmentSMB]
	}

	now := time.Now().UTC()
	var events []eventmodel.Event

	// Logins: one or two per active day, on distinct days.
	loginDays := g.faker.IntRange(profile.minLoginDays, profile.maxLoginDays)
	if loginDays > g.windowDays {
		loginDays = g.windowDays
	}
	for _, day := range g.pickDays(loginDays) {
		logins := g.faker.IntRange(1, 2)
		for i := 0; i < logins; i++ {
			events = append(events, eventmodel.Event{
				EventId:    uuid.New().String(),
				CustomerId: customer.Id,
				EventType:  constants.EventTypeLogin,
				Timestamp:  g.timestampOnDay(now, day),
				Metadata: map[string]interface{}{
					"device":           g.faker.RandomString(devices),
					"session_duration": g.faker.IntRange(2, 120),
				},
			})
		}
	}

	// Feature usage: a distinct feature set with repeated uses.
	featureCount := g.faker.IntRange(profile.minFeatures, profile.maxFeatures)
	if featureCount > g.catalogSize {
		featureCount = g.catalogSize
	}
	for i := 0; i < featureCount; i++ {
		featureId := fmt.Sprintf("feature_%02d", g.faker.IntRange(1, g.catalogSize))
		uses := g.faker.IntRange(1, 4)
		for j := 0; j < uses; j++ {
			events = append(events, eventmodel.Event{
				EventId:    uuid.New().String(),
				CustomerId: customer.Id,
				EventType:  constants.EventTypeFeatureUse,
				Timestamp:  g.timestampOnDay(now, g.faker.IntRange(0, g.windowDays-1)),
				Metadata: map[string]interface{}{
					"feature_id": featureId,
				},
			})
		}
	}

	// Support tickets: opens with severity, most of them closed later with
	// resolution metadata.
	tickets := g.faker.IntRange(profile.minTickets, profile.maxTickets)
	for i := 0; i < tickets; i++ {
		severity := g.faker.RandomString(severities)
		openedDay := g.faker.IntRange(2, g.windowDays-1)
		events = append(events, eventmodel.Event{
			EventId:    uuid.New().String(),
			CustomerId: customer.Id,
			EventType:  constants.EventTypeTicketOpen,
			Timestamp:  g.timestampOnDay(now, openedDay),
			Metadata: map[string]interface{}{
				"severity": severity,
				"subject":  g.faker.HackerPhrase(),
			},
		})

		if g.faker.IntRange(1, 100) <= profile.closeOddsPct {
			events = append(events, eventmodel.Event{
				EventId:    uuid.New().String(),
				CustomerId: customer.Id,
				EventType:  constants.EventTypeTicketClose,
				Timestamp:  g.timestampOnDay(now, g.faker.IntRange(0, openedDay)),
				Metadata: map[string]interface{}{
					"severity":              severity,
					"resolution_time_hours": g.faker.IntRange(1, 72),
					"satisfaction_rating":   g.faker.IntRange(1, 5),
				},
			})
		}
	}

	return events
}

// pickDays selects count distinct day offsets within the window.
func (g *Generator) pickDays(count int) []int {

	picked := map[int]bool{}
	for len(picked) < count {
		picked[g.faker.IntRange(0, g.windowDays-1)] = true
	}
	days := make([]int, 0, len(picked))
	for day := range picked {
		days = append(days, day)
	}
	return days
}

// timestampOnDay returns a random business-hours timestamp the given number
// of days ago.
func (g *Generator) timestampOnDay(now time.Time, daysAgo int) time.Time {

	day := now.AddDate(0, 0, -daysAgo)
	return time.Date(day.Year(), day.Month(), day.Day(),
		g.faker.IntRange(8, 19), g.faker.IntRange(0, 59), g.faker.IntRange(0, 59), 0, time.UTC)
}
