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
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	eventmodel "github.com/wso2/customer-health-service/internal/events/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
)

// genEvents produces arbitrary in-window event sets: a mix of logins, feature
// uses and support tickets with randomized metadata shapes.
func genEvents() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 9)).Map(func(picks []int) []eventmodel.Event {
		var events []eventmodel.Event
		for i, pick := range picks {
			daysAgo := (i * 3) % 29
			switch pick % 4 {
			case 0:
				events = append(events, loginOnDay(daysAgo))
			case 1:
				featureId := ""
				if pick < 8 {
					featureId = fmt.Sprintf("feature_%02d", (i%20)+1)
				}
				events = append(events, featureUse(featureId, daysAgo))
			case 2:
				severities := []string{constants.SeverityLow, constants.SeverityMedium,
					constants.SeverityHigh, "unexpected", ""}
				events = append(events, ticketOpen(severities[pick%len(severities)], daysAgo))
			default:
				events = append(events, ticketClose((pick%5)+1, daysAgo))
			}
		}
		return events
	})
}

func TestProperty_HealthScore(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("overall score and sub-scores stay within [0, 100]", prop.ForAll(
		func(events []eventmodel.Event) bool {
			report := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)
			if report.Score < 0 || report.Score > 100 {
				return false
			}
			for _, factor := range report.Breakdown {
				if factor.Score != nil && (*factor.Score < 0 || *factor.Score > 100) {
					return false
				}
			}
			return true
		},
		genEvents(),
	))

	properties.Property("overall score equals the renormalized weighted sum of the breakdown", prop.ForAll(
		func(events []eventmodel.Event) bool {
			report := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)
			var weightedSum, weightSum float64
			for _, factor := range report.Breakdown {
				if factor.Score == nil {
					continue
				}
				weightedSum += *factor.Score * factor.Weight
				weightSum += factor.Weight
			}
			if weightSum == 0 {
				return report.Score == BaselineScore
			}
			return report.Score == round1(weightedSum/weightSum)
		},
		genEvents(),
	))

	properties.Property("scoring is deterministic for a fixed event set", prop.ForAll(
		func(events []eventmodel.Event) bool {
			first := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)
			second := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)
			return reflect.DeepEqual(first, second)
		},
		genEvents(),
	))

	properties.Property("every factor reports a score or a note, never neither", prop.ForAll(
		func(events []eventmodel.Event) bool {
			report := ComputeHealthReport(testCustomer, events, testNow, testCatalogSize)
			for _, factor := range report.Breakdown {
				if factor.Score == nil && factor.Note == "" {
					return false
				}
			}
			return true
		},
		genEvents(),
	))

	properties.TestingRun(t)
}
