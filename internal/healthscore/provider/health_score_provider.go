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

package provider

import (
	"github.com/wso2/customer-health-service/internal/healthscore/service"
)

// HealthScoreProviderInterface defines the interface for the health score provider.
type HealthScoreProviderInterface interface {
	GetHealthScoreService() service.HealthScoreServiceInterface
}

// HealthScoreProvider is the default implementation of the HealthScoreProviderInterface.
type HealthScoreProvider struct{}

// NewHealthScoreProvider creates a new instance of HealthScoreProvider.
func NewHealthScoreProvider() HealthScoreProviderInterface {
	return &HealthScoreProvider{}
}

// GetHealthScoreService returns the health score service instance.
func (hsp *HealthScoreProvider) GetHealthScoreService() service.HealthScoreServiceInterface {
	return service.GetHealthScoreService()
}
