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

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	// JWTSigningKey gates mutating endpoints. Empty disables authentication.
	JWTSigningKey      string   `yaml:"jwt_signing_key"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type ScoringConfig struct {
	// LookbackDays is the trailing window over which events are considered.
	LookbackDays int `yaml:"lookback_days"`
	// FeatureCatalogSize is the number of features in the product catalog,
	// used to normalize the feature adoption factor.
	FeatureCatalogSize int `yaml:"feature_catalog_size"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// LoadConfig reads the deployment configuration file relative to the service
// home directory, expanding ${ENV_VAR} references before unmarshalling.
func LoadConfig(serviceHome, configFile string) (*Config, error) {

	file, err := os.ReadFile(path.Join(serviceHome, configFile))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {

	if config.Log.LogLevel == "" {
		config.Log.LogLevel = "INFO"
	}
	if config.Scoring.LookbackDays <= 0 {
		config.Scoring.LookbackDays = 30
	}
	if config.Scoring.FeatureCatalogSize <= 0 {
		config.Scoring.FeatureCatalogSize = 15
	}
	if config.DataSource.SSLMode == "" {
		config.DataSource.SSLMode = "disable"
	}
}
