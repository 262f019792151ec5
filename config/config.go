// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package config

// Config holds all configuration for the application
type Config struct {
	PackageVersion      string
	ServerHost          string
	ServerPort          int
	AutoMaxProcsEnabled bool
	LogLevel            string
	POSTGRESQL          POSTGRESQL

	// HTTP Server timeout configurations
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
	MaxHeaderBytes      int

	// Database operation timeout configuration
	DbOperationTimeoutSeconds int

	IsLocalDevEnv bool

	// Gateway adapter configuration
	Gateway GatewayConfig

	// Outbound HTTP retry configuration
	Retry RetryConfig

	// IDP OAuth2 client credentials for service-to-service auth
	IDP IDPConfig

	// API Platform configuration
	APIPlatform APIPlatformConfig
}

// GatewayConfig holds gateway adapter selection and credential encryption settings
type GatewayConfig struct {
	// AdapterType selects the active gateway adapter implementation
	// ("on-premise" today; "cloud" is a future variant)
	AdapterType string

	// EncryptionKey is the base64-encoded 32-byte AES-256 key used to
	// encrypt gateway credentials at rest
	EncryptionKey string `json:"-"`

	DefaultTimeoutSeconds     int
	HealthCheckTimeoutSeconds int

	// TokenCacheTTLSeconds controls how long verified gateway API tokens
	// stay in the in-memory cache
	TokenCacheTTLSeconds int
}

// RetryConfig holds outbound HTTP retry tuning knobs
type RetryConfig struct {
	WaitMinMilliseconds   int64
	WaitMaxMilliseconds   int64
	AttemptsMax           int
	AttemptTimeoutSeconds int
}

type IDPConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string `json:"-"`
}

// APIPlatformConfig holds API Platform client configuration
type APIPlatformConfig struct {
	BaseURL string // Base URL for API Platform
	Enable  bool
}

type POSTGRESQL struct {
	Host     string
	Port     int
	User     string
	DBName   string
	Password string `json:"-"`
	DbConfigs
}

type DbConfigs struct {
	// gorm configs
	SlowThresholdMilliseconds int64
	SkipDefaultTransaction    bool

	// go sql configs
	MaxIdleCount       *int64 // zero means defaultMaxIdleConns (2); negative means 0
	MaxOpenCount       *int64 // <= 0 means unlimited
	MaxLifetimeSeconds *int64 // maximum amount of time a connection may be reused
	MaxIdleTimeSeconds *int64
}
