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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	customermodel "github.com/wso2/customer-health-service/internal/customers/model"
	eventmodel "github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/healthscore/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/log"
)

const testCatalogSize = 15

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

var testCustomer = customermodel.Customer{
	Id:      "c_test",
	Name:    "Acme Corp",
	Segment: constants.SegmentEnterprise,
}

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func loginOnDay(daysAgo int) eventmodel.Event {
	return eventmodel.Event{
		CustomerId: testCustomer.Id,
		EventType:  constants.EventTypeLogin,
		Timestamp:  testNow.AddDate(0, 0, -daysAgo),
	}
}

func featureUse(featureId string, daysAgo int) eventmodel.Event {
	event := eventmodel.Event{
		CustomerId: testCustomer.Id,
		EventType:  constants.EventTypeFeatureUse,
		Timestamp:  testNow.AddDate(0, 0, -daysAgo),
	}
	if featureId != "" {
		event.Metadata = map[string]interface{}{"feature_id": featureId}
	}
	return event
}

func ticketOpen(severity string, daysAgo int) eventmodel.Event {
	event := eventmodel.Event{
		CustomerId: testCustomer.Id,
		EventType:  constants.EventTypeTicketOpen,
		Timestamp:  testNow.AddDate(0, 0, -daysAgo),
	}
	if severity != "" {
		event.Metadata = map[string]interface{}{"severity": severity}
	}
	return event
}

func ticketClose(rating int, daysAgo int) eventmodel.Event {
	return eventmodel.Event{
		CustomerId: testCustomer.Id,
		EventType:  constants.EventTypeTicketClose,
		Timestamp:  testNow.AddDate(0, 0, -daysAgo),
		Metadata:   map[string]interface{}{"satisfaction_rating": rating},
	}
}

// ---------------------------------------------------------------------------
// Baseline and aggregation
// ---------------------------------------------------------------------------

func TestComputeHealthReport_NoEvents_ReportsBaseline(t *testing.T) {
	report := ComputeHealthReport(testCustomer, nil, testNow, testCatalogSize)

	assert.Equal(t, BaselineScore, report.Score)
	assert.Equal(t, model.LabelPoor, report.Label)
	assert.Equal(t, testCustomer.Id, report.Id)

	require.Len(t, report.Breakdown, 4)
	for name, factor := range report.Breakdown {
		assert.Nil(t, factor.Score, "factor %s should carry no score", name)
		assert.NotEmpty(t, factor.Note, "factor %s should explain the missing data", name)
	}
}

func TestComputeHealthReport_HealthyEnterpriseScenario(t *testing.T) {
	var events []eventmodel.Event
	// Logins on 25 distinct days.
	for day := 0; day < 25; day++ {
		events = append(events, loginOnDay(day))
	}
	// 10 distinct features out of a catalog of 15.
	for i := 0; i < 10; i++ {
		events = append(events, featureUse(fmt.Sprintf("feature_%02d", i+1), i))
	}
	// Three low-severity tickets, two of them resolved well.
	events = append(events,
		ticketOpen(constants.SeverityLow, 10),
		ticketOpen(constants.SeverityLow, 8),
		ticketOpen(constants.SeverityLow, 6),
		ticketClose(4, 5),
		ticketClose(5, 3),
	)

	report := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)

	logins := report.Breakdown[model.FactorLoginFrequency]
	require.NotNil(t, logins.Score)
	assert.Equal(t, 85.0, *logins.Score)

	features := report.Breakdown[model.FactorFeatureAdoption]
	require.NotNil(t, features.Score)
	assert.Equal(t, 66.7, *features.Score)

	support := report.Breakdown[model.FactorSupportLoad]
	require.NotNil(t, support.Score)
	assert.Equal(t, 95.0, *support.Score)

	// An active, broadly adopted account with light support load scores high.
	assert.InDelta(t, 82.0, report.Score, 0.1)
	assert.GreaterOrEqual(t, report.Score, 60.0)
	assert.Equal(t, model.LabelExcellent, report.Label)
}

func TestComputeHealthReport_ScoreMatchesBreakdown(t *testing.T) {
	events := []eventmodel.Event{
		loginOnDay(0), loginOnDay(1), loginOnDay(2),
		featureUse("feature_01", 1),
		featureUse("feature_02", 2),
		ticketOpen(constants.SeverityHigh, 4),
	}

	report := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)

	var weightedSum, weightSum float64
	for _, factor := range report.Breakdown {
		if factor.Score == nil {
			continue
		}
		weightedSum += *factor.Score * factor.Weight
		weightSum += factor.Weight
	}
	require.NotZero(t, weightSum)
	assert.Equal(t, round1(weightedSum/weightSum), report.Score)
}

func TestComputeHealthReport_Deterministic(t *testing.T) {
	events := []eventmodel.Event{
		loginOnDay(0), loginOnDay(3), loginOnDay(7),
		featureUse("feature_05", 2),
		ticketOpen(constants.SeverityMedium, 1),
		ticketClose(3, 0),
	}

	first := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)
	second := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)

	assert.Equal(t, first, second)
}

func TestComputeHealthReport_SingleFactorRenormalizes(t *testing.T) {
	// Only login data: the overall score must equal the login sub-score, not a
	// fraction of it diluted by absent factors.
	events := []eventmodel.Event{loginOnDay(0), loginOnDay(1)}

	report := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)

	logins := report.Breakdown[model.FactorLoginFrequency]
	require.NotNil(t, logins.Score)
	assert.Equal(t, *logins.Score, report.Score)
}

func TestComputeHealthReport_PaymentFactorAlwaysExcluded(t *testing.T) {
	report := ComputeHealthReport(testCustomer, []eventmodel.Event{loginOnDay(0)}, testNow, testCatalogSize)

	payment := report.Breakdown[model.FactorPaymentHealth]
	assert.Nil(t, payment.Score)
	assert.NotEmpty(t, payment.Note)
	assert.Equal(t, WeightPaymentHealth, payment.Weight)
}

// ---------------------------------------------------------------------------
// Login frequency
// ---------------------------------------------------------------------------

func TestLoginFrequency_RepeatedLoginsSameDayCountOnce(t *testing.T) {
	var events []eventmodel.Event
	for i := 0; i < 10; i++ {
		events = append(events, eventmodel.Event{
			CustomerId: testCustomer.Id,
			EventType:  constants.EventTypeLogin,
			Timestamp:  testNow.Add(-time.Duration(i) * time.Hour),
		})
	}

	factor := loginFrequencyFactor(events)
	require.NotNil(t, factor.Score)
	assert.Equal(t, 20.0, *factor.Score)
	assert.Equal(t, 1, factor.Counts["login_days"])
	assert.Equal(t, 10, factor.Counts["total_logins"])
}

func TestLoginDayScore_Tiers(t *testing.T) {
	cases := []struct {
		days     int
		expected float64
	}{
		{1, 20}, {5, 20},
		{6, 50}, {15, 50},
		{16, 70}, {20, 70},
		{21, 85}, {25, 85},
		{26, 100}, {30, 100},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, loginDayScore(c.days), "days=%d", c.days)
	}
}

// ---------------------------------------------------------------------------
// Feature adoption
// ---------------------------------------------------------------------------

func TestFeatureAdoption_CappedAtFull(t *testing.T) {
	var events []eventmodel.Event
	for i := 0; i < testCatalogSize+5; i++ {
		events = append(events, featureUse(fmt.Sprintf("feature_%02d", i+1), 0))
	}

	factor := featureAdoptionFactor(events, testCatalogSize)
	require.NotNil(t, factor.Score)
	assert.Equal(t, 100.0, *factor.Score)
}

func TestFeatureAdoption_FallbackKeyAccepted(t *testing.T) {
	events := []eventmodel.Event{{
		CustomerId: testCustomer.Id,
		EventType:  constants.EventTypeFeatureUse,
		Timestamp:  testNow,
		Metadata:   map[string]interface{}{"feature": "reports"},
	}}

	factor := featureAdoptionFactor(events, testCatalogSize)
	require.NotNil(t, factor.Score)
	assert.Equal(t, 1, factor.Counts["distinct_features"])
}

func TestFeatureAdoption_NoIdentifiersYieldsNote(t *testing.T) {
	events := []eventmodel.Event{featureUse("", 0), featureUse("", 1)}

	factor := featureAdoptionFactor(events, testCatalogSize)
	assert.Nil(t, factor.Score)
	assert.NotEmpty(t, factor.Note)
}

// ---------------------------------------------------------------------------
// Support load
// ---------------------------------------------------------------------------

func TestSupportLoad_SeverityPenalties(t *testing.T) {
	factor := supportLoadFactor([]eventmodel.Event{
		ticketOpen(constants.SeverityLow, 1),
		ticketOpen(constants.SeverityMedium, 2),
		ticketOpen(constants.SeverityHigh, 3),
	})

	require.NotNil(t, factor.Score)
	assert.Equal(t, 65.0, *factor.Score)
	assert.Equal(t, 3, factor.Counts["tickets_opened"])
	assert.Equal(t, 3, factor.Counts["unresolved"])
}

func TestSupportLoad_UnknownSeverityTreatedAsMedium(t *testing.T) {
	known := supportLoadFactor([]eventmodel.Event{ticketOpen(constants.SeverityMedium, 1)})
	unknown := supportLoadFactor([]eventmodel.Event{ticketOpen("urgent", 1)})
	missing := supportLoadFactor([]eventmodel.Event{ticketOpen("", 1)})

	require.NotNil(t, known.Score)
	require.NotNil(t, unknown.Score)
	require.NotNil(t, missing.Score)
	assert.Equal(t, *known.Score, *unknown.Score)
	assert.Equal(t, *known.Score, *missing.Score)
}

func TestSupportLoad_ResolutionCreditAndSatisfaction(t *testing.T) {
	factor := supportLoadFactor([]eventmodel.Event{
		ticketOpen(constants.SeverityLow, 5),
		ticketClose(1, 4),
	})

	// Open 5, close -5, low satisfaction +5.
	require.NotNil(t, factor.Score)
	assert.Equal(t, 95.0, *factor.Score)
	assert.Equal(t, 1, factor.Counts["low_satisfaction_closes"])
	assert.Equal(t, 0, factor.Counts["unresolved"])
}

func TestSupportLoad_ClampedAtZero(t *testing.T) {
	var events []eventmodel.Event
	for i := 0; i < 8; i++ {
		events = append(events, ticketOpen(constants.SeverityHigh, i))
	}

	factor := supportLoadFactor(events)
	require.NotNil(t, factor.Score)
	assert.Equal(t, 0.0, *factor.Score)
}

// ---------------------------------------------------------------------------
// Label bands
// ---------------------------------------------------------------------------

func TestLabelForScore_Bands(t *testing.T) {
	cases := []struct {
		score    float64
		expected string
	}{
		{100, model.LabelExcellent},
		{80, model.LabelExcellent},
		{79.9, model.LabelGood},
		{60, model.LabelGood},
		{59.9, model.LabelFair},
		{40, model.LabelFair},
		{39.9, model.LabelPoor},
		{0, model.LabelPoor},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, LabelForScore(c.score), "score=%v", c.score)
	}
}
