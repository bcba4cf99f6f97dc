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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/customer-health-service/internal/customers/model"
	"github.com/wso2/customer-health-service/internal/system/constants"
	"github.com/wso2/customer-health-service/internal/system/errors"
	"github.com/wso2/customer-health-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// AddCustomer – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestAddCustomer_MissingName_Rejected(t *testing.T) {
	svc := &CustomerService{}
	_, err := svc.AddCustomer(model.Customer{
		Segment: constants.SegmentEnterprise,
	})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.ErrBadRequest.Code, clientErr.Code)
}

func TestAddCustomer_UnknownSegment_Rejected(t *testing.T) {
	svc := &CustomerService{}
	_, err := svc.AddCustomer(model.Customer{
		Name:    "Acme Corp",
		Segment: "galactic",
	})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.ErrInvalidSegment.Code, clientErr.Code)
}

func TestAddCustomer_EmptySegment_Rejected(t *testing.T) {
	svc := &CustomerService{}
	_, err := svc.AddCustomer(model.Customer{Name: "Acme Corp"})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestValidateCustomer_AllSegmentsAccepted(t *testing.T) {
	for segment := range constants.AllowedSegments {
		err := validateCustomer(model.Customer{Name: "Acme Corp", Segment: segment})
		assert.NoError(t, err, "segment %s should be valid", segment)
	}
}
