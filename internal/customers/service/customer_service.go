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

	"github.com/google/uuid"
	"github.com/wso2/customer-health-service/internal/customers/model"
	"github.com/wso2/customer-health-service/internal/customers/store"
	"github.com/wso2/customer-health-service/internal/system/constants"
	errors2 "github.com/wso2/customer-health-service/internal/system/errors"
)

type CustomerServiceInterface interface {
	AddCustomer(customer model.Customer) (model.Customer, error)
	GetCustomers() ([]model.Customer, error)
	GetCustomer(customerId string) (model.Customer, error)
	DeleteCustomer(customerId string) error
}

// CustomerService is the default implementation of the CustomerServiceInterface.
type CustomerService struct{}

// GetCustomerService creates a new instance of CustomerService.
func GetCustomerService() CustomerServiceInterface {

	return &CustomerService{}
}

// AddCustomer validates and persists a new customer record. A missing id is
// generated; a colliding id is rejected.
func (cs *CustomerService) AddCustomer(customer model.Customer) (model.Customer, error) {

	if err := validateCustomer(customer); err != nil {
		return model.Customer{}, err
	}

	if customer.Id == "" {
		customer.Id = uuid.New().String()
	} else {
		existing, err := store.GetCustomer(customer.Id)
		if err != nil {
			return model.Customer{}, err
		}
		if existing != nil {
			return model.Customer{}, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.ErrCustomerAlreadyExists.Code,
				Message:     errors2.ErrCustomerAlreadyExists.Message,
				Description: errors2.ErrCustomerAlreadyExists.Description,
			}, http.StatusConflict)
		}
	}
	customer.CreatedAt = time.Now().UTC()

	if err := store.AddCustomer(customer); err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// GetCustomers returns all customer records.
func (cs *CustomerService) GetCustomers() ([]model.Customer, error) {

	return store.GetCustomers()
}

// GetCustomer returns a customer by id, failing with Not-Found for unknown ids.
func (cs *CustomerService) GetCustomer(customerId string) (model.Customer, error) {

	customer, err := store.GetCustomer(customerId)
	if err != nil {
		return model.Customer{}, err
	}
	if customer == nil {
		return model.Customer{}, customerNotFoundError()
	}
	return *customer, nil
}

// DeleteCustomer removes a customer and, through the store cascade, all of its
// events.
func (cs *CustomerService) DeleteCustomer(customerId string) error {

	customer, err := store.GetCustomer(customerId)
	if err != nil {
		return err
	}
	if customer == nil {
		return customerNotFoundError()
	}
	return store.DeleteCustomer(customerId)
}

// validateCustomer checks the request payload before persisting.
func validateCustomer(customer model.Customer) error {

	if customer.Name == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ErrBadRequest.Code,
			Message:     errors2.ErrBadRequest.Message,
			Description: "Customer name is required.",
		}, http.StatusBadRequest)
	}
	if !constants.AllowedSegments[customer.Segment] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ErrInvalidSegment.Code,
			Message:     errors2.ErrInvalidSegment.Message,
			Description: errors2.ErrInvalidSegment.Description,
		}, http.StatusBadRequest)
	}
	return nil
}

func customerNotFoundError() error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ErrCustomerNotFound.Code,
		Message:     errors2.ErrCustomerNotFound.Message,
		Description: errors2.ErrCustomerNotFound.Description,
	}, http.StatusNotFound)
}
