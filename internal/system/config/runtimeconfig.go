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

package config

import "sync"

// CHSRuntime holds the runtime configuration for the customer health service.
type CHSRuntime struct {
	CHSHome string `yaml:"chs_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *CHSRuntime
	once          sync.Once
)

// InitializeCHSRuntime initializes the CHSRuntime configuration.
func InitializeCHSRuntime(chsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &CHSRuntime{
			CHSHome: chsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetCHSRuntime returns the CHSRuntime configuration.
func GetCHSRuntime() *CHSRuntime {

	if runtimeConfig == nil {
		panic("CHSRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetCHSRuntimeForTest replaces the runtime config. Test use only.
func ResetCHSRuntimeForTest(chsHome string, config *Config) {

	runtimeConfig = &CHSRuntime{
		CHSHome: chsHome,
		Config:  *config,
	}
}
