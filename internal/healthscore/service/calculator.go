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
	"math"
	"time"

	customermodel "github.com/wso2/customer-health-service/internal/customers/model"
	eventmodel "github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/healthscore/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
)

// Fixed factor weights. They sum to 1.0 across all defined factors; factors
// without data are excluded and the remaining weights renormalized.
const (
	WeightLoginFrequency  = 0.40
	WeightFeatureAdoption = 0.25
	WeightSupportLoad     = 0.20
	WeightPaymentHealth   = 0.15
)

// BaselineScore is reported when no factor has any data in the window.
const BaselineScore = 0.0

// Ticket penalties applied by the support load factor, by severity.
var severityPenalty = map[string]float64{
	constants.SeverityLow:    5,
	constants.SeverityMedium: 10,
	constants.SeverityHigh:   20,
}

const ticketResolutionCredit = 5
const lowSatisfactionPenalty = 5

// ComputeHealthReport derives the health score and per-factor breakdown for a
// customer from its events within the lookback window. The function is pure:
// for a fixed event set and reference time the output is identical on every
// call.
func ComputeHealthReport(customer customermodel.Customer, events []eventmodel.Event, now time.Time,
	catalogSize int) model.HealthReport {

	breakdown := map[string]model.FactorResult{
		model.FactorLoginFrequency:  loginFrequencyFactor(events),
		model.FactorFeatureAdoption: featureAdoptionFactor(events, catalogSize),
		model.FactorSupportLoad:     supportLoadFactor(events),
		model.FactorPaymentHealth:   paymentHealthFactor(),
	}

	score := aggregateScore(breakdown)

	return model.HealthReport{
		Id:          customer.Id,
		Name:        customer.Name,
		Score:       score,
		Label:       LabelForScore(score),
		Breakdown:   breakdown,
		LastUpdated: now.UTC(),
	}
}

// aggregateScore computes the weighted total over factors that have data,
// renormalizing by the sum of their weights. With no scored factor the fixed
// baseline is reported.
func aggregateScore(breakdown map[string]model.FactorResult) float64 {

	var weightedSum, weightSum float64
	for _, factor := range breakdown {
		if factor.Score == nil {
			continue
		}
		weightedSum += *factor.Score * factor.Weight
		weightSum += factor.Weight
	}
	if weightSum == 0 {
		return BaselineScore
	}
	return round1(weightedSum / weightSum)
}

// LabelForScore maps a score to the band used by the presentation layer.
func LabelForScore(score float64) string {
	switch {
	case score >= 80:
		return model.LabelExcellent
	case score >= 60:
		return model.LabelGood
	case score >= 40:
		return model.LabelFair
	default:
		return model.LabelPoor
	}
}

// loginFrequencyFactor scores how regularly the customer signs in, based on
// the number of distinct login days in the window. Repeated logins on the
// same day do not raise the score.
func loginFrequencyFactor(events []eventmodel.Event) model.FactorResult {

	loginDays := map[string]bool{}
	totalLogins := 0
	for _, event := range events {
		if event.EventType != constants.EventTypeLogin {
			continue
		}
		totalLogins++
		loginDays[event.Timestamp.UTC().Format("2006-01-02")] = true
	}

	if totalLogins == 0 {
		return model.FactorResult{
			Weight: WeightLoginFrequency,
			Note:   "no login events in window",
		}
	}

	score := loginDayScore(len(loginDays))
	return model.FactorResult{
		Score:  &score,
		Weight: WeightLoginFrequency,
		Counts: map[string]interface{}{
			"login_days":   len(loginDays),
			"total_logins": totalLogins,
		},
	}
}

// loginDayScore maps a distinct-login-day count onto the 0-100 scale.
func loginDayScore(dayCount int) float64 {
	switch {
	case dayCount <= 5:
		return 20
	case dayCount <= 15:
		return 50
	case dayCount <= 20:
		return 70
	case dayCount <= 25:
		return 85
	default:
		return 100
	}
}

// featureAdoptionFactor scores the breadth of product usage: the number of
// distinct features touched in the window against the size of the feature
// catalog. Events without an identifiable feature are counted but do not add
// to the distinct set.
func featureAdoptionFactor(events []eventmodel.Event, catalogSize int) model.FactorResult {

	features := map[string]bool{}
	totalUses := 0
	for _, event := range events {
		if event.EventType != constants.EventTypeFeatureUse {
			continue
		}
		totalUses++
		if id := featureIdentifier(event.Metadata); id != "" {
			features[id] = true
		}
	}

	if totalUses == 0 {
		return model.FactorResult{
			Weight: WeightFeatureAdoption,
			Note:   "no feature usage events in window",
		}
	}
	if len(features) == 0 {
		return model.FactorResult{
			Weight: WeightFeatureAdoption,
			Note:   "feature usage events carry no feature identifier",
		}
	}

	score := round1(math.Min(float64(len(features))/float64(catalogSize)*100, 100))
	return model.FactorResult{
		Score:  &score,
		Weight: WeightFeatureAdoption,
		Counts: map[string]interface{}{
			"distinct_features":  len(features),
			"catalog_size":       catalogSize,
			"total_feature_uses": totalUses,
		},
	}
}

// featureIdentifier extracts the feature id from feature_use metadata,
// tolerating either key and missing values.
func featureIdentifier(metadata map[string]interface{}) string {

	if metadata == nil {
		return ""
	}
	if id, ok := metadata["feature_id"].(string); ok && id != "" {
		return id
	}
	if id, ok := metadata["feature"].(string); ok && id != "" {
		return id
	}
	return ""
}

// supportLoadFactor scores support pressure. Each opened ticket subtracts a
// severity-weighted penalty, each closed ticket earns a resolution credit,
// and closes with a poor satisfaction rating subtract a little extra. The
// result is clamped to [0, 100].
func supportLoadFactor(events []eventmodel.Event) model.FactorResult {

	var opened, closed, lowSatisfaction int
	var pressure float64
	for _, event := range events {
		switch event.EventType {
		case constants.EventTypeTicketOpen:
			opened++
			pressure += openPenalty(event.Metadata)
		case constants.EventTypeTicketClose:
			closed++
			pressure -= ticketResolutionCredit
			if rating, ok := numericMetadata(event.Metadata, "satisfaction_rating"); ok && rating <= 2 {
				lowSatisfaction++
				pressure += lowSatisfactionPenalty
			}
		}
	}

	if opened == 0 && closed == 0 {
		return model.FactorResult{
			Weight: WeightSupportLoad,
			Note:   "no support ticket events in window",
		}
	}

	unresolved := opened - closed
	if unresolved < 0 {
		unresolved = 0
	}

	score := round1(clamp(100-pressure, 0, 100))
	return model.FactorResult{
		Score:  &score,
		Weight: WeightSupportLoad,
		Counts: map[string]interface{}{
			"tickets_opened":          opened,
			"tickets_closed":          closed,
			"unresolved":              unresolved,
			"low_satisfaction_closes": lowSatisfaction,
		},
	}
}

func openPenalty(metadata map[string]interface{}) float64 {

	severity, _ := metadata["severity"].(string)
	if penalty, ok := severityPenalty[severity]; ok {
		return penalty
	}
	// Unknown or missing severity is treated as medium.
	return severityPenalty[constants.SeverityMedium]
}

// paymentHealthFactor withholds its score: payment events are not part of the
// instrumentation yet, so the factor always reports a note and is excluded
// from the weighted total.
func paymentHealthFactor() model.FactorResult {

	return model.FactorResult{
		Weight: WeightPaymentHealth,
		Note:   "payment events are not instrumented yet",
	}
}

// numericMetadata reads a numeric metadata value, accepting the types the
// JSON decoder and the database driver produce.
func numericMetadata(metadata map[string]interface{}, key string) (float64, bool) {

	if metadata == nil {
		return 0, false
	}
	switch v := metadata[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
