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
	"net/http"
	"time"

	customerstore "github.com/wso2/customer-health-service/internal/customers/store"
	eventstore "github.com/wso2/customer-health-service/internal/events/store"
	"github.com/wso2/customer-health-service/internal/healthscore/model"
	"github.com/wso2/customer-health-service/internal/system/config"
	errors2 "github.com/wso2/customer-health-service/internal/system/errors"
	"github.com/wso2/customer-health-service/internal/system/metrics"
)

type HealthScoreServiceInterface interface {
	GetCustomerHealth(customerId string) (model.HealthReport, error)
	GetCustomerSummaries() ([]model.CustomerSummary, error)
}

// HealthScoreService is the default implementation of the HealthScoreServiceInterface.
type HealthScoreService struct{}

// GetHealthScoreService creates a new instance of HealthScoreService.
func GetHealthScoreService() HealthScoreServiceInterface {

	return &HealthScoreService{}
}

// GetCustomerHealth computes the health report for one customer. The score is
// computed fresh from stored events on every call; there is no derived state.
func (hss *HealthScoreService) GetCustomerHealth(customerId string) (model.HealthReport, error) {

	customer, err := customerstore.GetCustomer(customerId)
	if err != nil {
		return model.HealthReport{}, err
	}
	if customer == nil {
		return model.HealthReport{}, customerNotFoundError()
	}

	scoring := config.GetCHSRuntime().Config.Scoring
	start := time.Now()
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -scoring.LookbackDays)

	events, err := eventstore.GetEventsForCustomer(customerId, since)
	if err != nil {
		return model.HealthReport{}, err
	}

	report := ComputeHealthReport(*customer, events, now, scoring.FeatureCatalogSize)
	metrics.RecordHealthScoreComputation(time.Since(start))
	return report, nil
}

// GetCustomerSummaries computes the list-view projection for all customers.
func (hss *HealthScoreService) GetCustomerSummaries() ([]model.CustomerSummary, error) {

	customers, err := customerstore.GetCustomers()
	if err != nil {
		return nil, err
	}

	scoring := config.GetCHSRuntime().Config.Scoring
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -scoring.LookbackDays)

	summaries := make([]model.CustomerSummary, 0, len(customers))
	for _, customer := range customers {
		start := time.Now()
		events, err := eventstore.GetEventsForCustomer(customer.Id, since)
		if err != nil {
			return nil, err
		}
		report := ComputeHealthReport(customer, events, now, scoring.FeatureCatalogSize)
		metrics.RecordHealthScoreComputation(time.Since(start))

		summaries = append(summaries, model.CustomerSummary{
			Id:          customer.Id,
			Name:        customer.Name,
			Segment:     customer.Segment,
			Score:       report.Score,
			Label:       report.Label,
			LastUpdated: report.LastUpdated,
		})
	}
	return summaries, nil
}

func customerNotFoundError() error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ErrCustomerNotFound.Code,
		Message:     errors2.ErrCustomerNotFound.Message,
		Description: errors2.ErrCustomerNotFound.Description,
	}, http.StatusNotFound)
}
