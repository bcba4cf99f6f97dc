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

package model

import "time"

// Factor names reported in the health breakdown.
const (
	FactorLoginFrequency  = "login_frequency"
	FactorFeatureAdoption = "feature_adoption"
	FactorSupportLoad     = "support_load"
	FactorPaymentHealth   = "payment_health"
)

// Health labels used by the presentation layer.
const (
	LabelExcellent = "Excellent"
	LabelGood      = "Good"
	LabelFair      = "Fair"
	LabelPoor      = "Poor"
)

// FactorResult is one weighted input to the overall health score. A nil Score
// together with a Note means the factor had insufficient data; this is a valid
// partial result, not an error, and the factor is excluded from the weighted
// total.
type FactorResult struct {
	Score  *float64               `json:"score"`
	Weight float64                `json:"weight"`
	Counts map[string]interface{} `json:"counts,omitempty"`
	Note   string                 `json:"note,omitempty"`
}

// HealthReport is the full scoring output for one customer.
type HealthReport struct {
	Id          string                  `json:"id"`
	Name        string                  `json:"name"`
	Score       float64                 `json:"score"`
	Label       string                  `json:"label"`
	Breakdown   map[string]FactorResult `json:"breakdown"`
	LastUpdated time.Time               `json:"last_updated"`
}

// CustomerSummary is the list-view projection served by GET /api/customers.
type CustomerSummary struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Segment     string    `json:"segment"`
	Score       float64   `json:"score"`
	Label       string    `json:"label"`
	LastUpdated time.Time `json:"last_updated"`
}
