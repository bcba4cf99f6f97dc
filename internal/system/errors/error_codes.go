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

package errors

const errorPrefix = "CHS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	ADD_CUSTOMER = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while adding customer.",
	}

	GET_CUSTOMER = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching customer.",
	}

	GET_CUSTOMERS = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching customers.",
	}

	DELETE_CUSTOMER = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while deleting customer.",
	}

	ADD_EVENT = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while adding event.",
	}

	GET_EVENTS = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching events.",
	}

	COMPUTE_HEALTH_SCORE = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while computing health score.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while un-marshalling JSON.",
	}

	// Client error codes

	ErrBadRequest = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	ErrUnAuthorizedRequest = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	ErrCustomerNotFound = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Customer not found.",
		Description: "No customer exists for the provided customer id.",
	}

	ErrInvalidSegment = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Invalid customer segment.",
		Description: "Segment must be one of enterprise, mid-market, smb or startup.",
	}

	ErrInvalidEventType = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Invalid event type.",
		Description: "Event type must be one of login, feature_use, ticket_open or ticket_close.",
	}

	ErrCustomerAlreadyExists = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Customer already exists.",
		Description: "A customer with the provided customer id already exists.",
	}

	ErrMissingCustomerId = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Customer id is required.",
	}
)
