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

package authn

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/customer-health-service/internal/system/config"
	errors2 "github.com/wso2/customer-health-service/internal/system/errors"
	"github.com/wso2/customer-health-service/internal/system/log"
)

// ValidateAuthentication validates the Authorization: Bearer token on a
// mutating request. Authentication is skipped entirely when no signing key is
// configured, which is the expected mode for local development and tests.
func ValidateAuthentication(r *http.Request) error {

	signingKey := config.GetCHSRuntime().Config.Auth.JWTSigningKey
	if signingKey == "" {
		return nil
	}

	logger := log.GetLogger()
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Debug("Request is missing a bearer token.")
		return unauthorizedError()
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		logger.Debug("Bearer token validation failed.", log.Error(err))
		return unauthorizedError()
	}
	if !token.Valid {
		logger.Debug("Bearer token is not valid.")
		return unauthorizedError()
	}

	return nil
}

func unauthorizedError() error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ErrUnAuthorizedRequest.Code,
		Message:     errors2.ErrUnAuthorizedRequest.Message,
		Description: errors2.ErrUnAuthorizedRequest.Description,
	}, http.StatusUnauthorized)
}
