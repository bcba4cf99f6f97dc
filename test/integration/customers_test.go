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

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wso2/customer-health-service/internal/customers/model"
	"github.com/wso2/customer-health-service/internal/customers/service"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/errors"
)

func Test_CustomerLifecycle(t *testing.T) {
	customerSvc := service.GetCustomerService()

	customer := model.Customer{
		Id:      "c_" + uuid.New().String(),
		Name:    "Globex Corporation",
		Segment: constants.SegmentMidMarket,
	}

	t.Run("Add_customer", func(t *testing.T) {
		created, err := customerSvc.AddCustomer(customer)
		require.NoError(t, err, "Failed to add customer")
		require.Equal(t, customer.Id, created.Id)
		require.False(t, created.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("Add_customer_with_duplicate_id_conflicts", func(t *testing.T) {
		_, err := customerSvc.AddCustomer(customer)
		require.Error(t, err)

		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusConflict, clientErr.StatusCode)
	})

	t.Run("Add_customer_without_id_generates_one", func(t *testing.T) {
		created, err := customerSvc.AddCustomer(model.Customer{
			Name:    "Initech",
			Segment: constants.SegmentStartup,
		})
		require.NoError(t, err, "Failed to add customer")
		require.NotEmpty(t, created.Id, "Expected a generated id")
	})

	t.Run("Get_customer_by_id", func(t *testing.T) {
		fetched, err := customerSvc.GetCustomer(customer.Id)
		require.NoError(t, err, "Failed to get customer")
		require.Equal(t, customer.Name, fetched.Name)
		require.Equal(t, customer.Segment, fetched.Segment)
	})

	t.Run("Get_customers_contains_created", func(t *testing.T) {
		customers, err := customerSvc.GetCustomers()
		require.NoError(t, err, "Failed to list customers")

		found := false
		for _, c := range customers {
			if c.Id == customer.Id {
				found = true
			}
		}
		require.True(t, found, "Created customer missing from the list")
	})

	t.Run("Delete_customer", func(t *testing.T) {
		err := customerSvc.DeleteCustomer(customer.Id)
		require.NoError(t, err, "Failed to delete customer")

		_, err = customerSvc.GetCustomer(customer.Id)
		require.Error(t, err)

		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})

	t.Run("Delete_unknown_customer_not_found", func(t *testing.T) {
		err := customerSvc.DeleteCustomer("c_" + uuid.New().String())
		require.Error(t, err)

		clientErr, ok := err.(*errors.ClientError)
		require.True(t, ok, "expected a ClientError")
		require.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})
}
