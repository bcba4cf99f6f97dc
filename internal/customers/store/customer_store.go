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
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/wso2/customer-health-service/internal/customers/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/database/provider"
	errors2 "github.com/wso2/customer-health-service/internal/system/errors"
	"github.com/wso2/customer-health-service/internal/system/log"
)

// AddCustomer inserts a single customer record.
func AddCustomer(customer model.Customer) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding customer with id: %s", customer.Id)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CUSTOMER.Code,
			Message:     errors2.ADD_CUSTOMER.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`
        INSERT INTO %s (customer_id, name, segment, created_at)
        VALUES ($1, $2, $3, $4)`, constants.CustomerTable)

	_, err = dbClient.Execute(query, customer.Id, customer.Name, customer.Segment, customer.CreatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert customer with id: %s", customer.Id)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CUSTOMER.Code,
			Message:     errors2.ADD_CUSTOMER.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetCustomers fetches all customer records ordered by name.
func GetCustomers() ([]model.Customer, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching customers"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CUSTOMERS.Code,
			Message:     errors2.GET_CUSTOMERS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`
        SELECT customer_id, name, segment, created_at FROM %s ORDER BY name`, constants.CustomerTable)

	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to fetch customers"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CUSTOMERS.Code,
			Message:     errors2.GET_CUSTOMERS.Message,
			Description: errorMsg,
		}, err)
	}

	customers := make([]model.Customer, 0, len(results))
	for _, row := range results {
		customers = append(customers, buildCustomerFromResultRow(row))
	}
	return customers, nil
}

// GetCustomer fetches a customer by id. Returns nil when no such customer
// exists so callers can distinguish Not-Found from a store failure.
func GetCustomer(customerId string) (*model.Customer, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching customer with id: %s", customerId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CUSTOMER.Code,
			Message:     errors2.GET_CUSTOMER.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`
        SELECT customer_id, name, segment, created_at FROM %s WHERE customer_id = $1`, constants.CustomerTable)

	results, err := dbClient.ExecuteQuery(query, customerId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch customer with id: %s", customerId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CUSTOMER.Code,
			Message:     errors2.GET_CUSTOMER.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	customer := buildCustomerFromResultRow(results[0])
	return &customer, nil
}

// DeleteCustomer removes a customer. Events are removed by the cascade on the
// events table foreign key.
func DeleteCustomer(customerId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting customer with id: %s", customerId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_CUSTOMER.Code,
			Message:     errors2.DELETE_CUSTOMER.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`DELETE FROM %s WHERE customer_id = $1`, constants.CustomerTable)

	if _, err := dbClient.Execute(query, customerId); err != nil {
		errorMsg := fmt.Sprintf("Failed to delete customer with id: %s", customerId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_CUSTOMER.Code,
			Message:     errors2.DELETE_CUSTOMER.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

func buildCustomerFromResultRow(row map[string]interface{}) model.Customer {

	var customer model.Customer
	if v, ok := row["customer_id"].(string); ok {
		customer.Id = v
	}
	if v, ok := row["name"].(string); ok {
		customer.Name = v
	}
	if v, ok := row["segment"].(string); ok {
		customer.Segment = v
	}
	if v, ok := row["created_at"].(time.Time); ok {
		customer.CreatedAt = v
	}
	return customer
}
