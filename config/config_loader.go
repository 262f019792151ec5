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

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

var config *Config

func GetConfig() *Config {
	return config
}

func init() {
	loadEnvs()
}

func loadEnvs() {
	config = &Config{}

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath != "" {
		err := godotenv.Load(envFilePath)
		if err != nil {
			panic(err)
		}
	}

	r := &configReader{}
	config.ServerHost = r.readOptionalString("SERVER_HOST", "")
	config.ServerPort = int(r.readOptionalInt64("SERVER_PORT", 8080))
	config.AutoMaxProcsEnabled = r.readOptionalBool("AUTO_MAX_PROCS_ENABLED", true)

	// Logging configuration
	config.LogLevel = r.readOptionalString("LOG_LEVEL", "INFO")

	// read database configs
	config.POSTGRESQL = POSTGRESQL{
		Host:     r.readRequiredString("DB_HOST"),
		Port:     int(r.readOptionalInt64("DB_PORT", 5432)),
		User:     r.readRequiredString("DB_USER"),
		Password: r.readRequiredString("DB_PASSWORD"),
		DBName:   r.readRequiredString("DB_NAME"),
	}
	config.POSTGRESQL.DbConfigs = DbConfigs{
		// gorm configs
		SkipDefaultTransaction:    r.readOptionalBool("GORM_SKIP_DEFAULT_TRANSACTION", true),
		SlowThresholdMilliseconds: r.readOptionalInt64("GORM_SLOW_THRESHOLD_MILLISECONDS", 200),

		// sql.DB configs
		MaxIdleCount:       r.readNullableInt64("DB_MAX_IDLE_COUNT"),
		MaxOpenCount:       r.readNullableInt64("DB_MAX_OPEN_COUNT"),
		MaxIdleTimeSeconds: r.readNullableInt64("DB_MAX_IDLE_TIME_SECONDS"),
		MaxLifetimeSeconds: r.readNullableInt64("DB_MAX_LIFETIME_SECONDS"),
	}

	// HTTP Server timeout configurations
	config.ReadTimeoutSeconds = int(r.readOptionalInt64("HTTP_READ_TIMEOUT_SECONDS", 10))
	config.WriteTimeoutSeconds = int(r.readOptionalInt64("HTTP_WRITE_TIMEOUT_SECONDS", 90))
	config.IdleTimeoutSeconds = int(r.readOptionalInt64("HTTP_IDLE_TIMEOUT_SECONDS", 60))
	config.MaxHeaderBytes = int(r.readOptionalInt64("HTTP_MAX_HEADER_BYTES", 65536)) // 1024 * 64

	// Database operation timeout configuration
	config.DbOperationTimeoutSeconds = int(r.readOptionalInt64("DB_OPERATION_TIMEOUT_SECONDS", 10))

	config.IsLocalDevEnv = r.readOptionalBool("IS_LOCAL_DEV_ENV", false)

	// Use Version from ldflags or environment variable override
	config.PackageVersion = r.readOptionalString("GMS_VERSION", Version)

	// Gateway adapter configuration
	config.Gateway = GatewayConfig{
		AdapterType:               r.readOptionalString("GATEWAY_ADAPTER_TYPE", "on-premise"),
		EncryptionKey:             r.readRequiredString("GATEWAY_ENCRYPTION_KEY"),
		DefaultTimeoutSeconds:     int(r.readOptionalInt64("GATEWAY_DEFAULT_TIMEOUT_SECONDS", 30)),
		HealthCheckTimeoutSeconds: int(r.readOptionalInt64("GATEWAY_HEALTH_CHECK_TIMEOUT_SECONDS", 5)),
		TokenCacheTTLSeconds:      int(r.readOptionalInt64("GATEWAY_TOKEN_CACHE_TTL_SECONDS", 300)),
	}

	// Outbound HTTP retry configuration
	config.Retry = RetryConfig{
		WaitMinMilliseconds:   r.readOptionalInt64("HTTP_RETRY_WAIT_MIN_MILLISECONDS", 1000),
		WaitMaxMilliseconds:   r.readOptionalInt64("HTTP_RETRY_WAIT_MAX_MILLISECONDS", 10000),
		AttemptsMax:           int(r.readOptionalInt64("HTTP_RETRY_ATTEMPTS_MAX", 3)),
		AttemptTimeoutSeconds: int(r.readOptionalInt64("HTTP_ATTEMPT_TIMEOUT_SECONDS", 30)),
	}

	// IDP OAuth2 client credentials for service-to-service auth
	config.IDP = IDPConfig{
		TokenURL:     r.readOptionalString("IDP_TOKEN_URL", "http://thunder.amp.localhost:8080/oauth2/token"),
		ClientID:     r.readOptionalString("IDP_CLIENT_ID", "gms-api-client"),
		ClientSecret: r.readOptionalString("IDP_CLIENT_SECRET", "gms-api-client-secret"),
	}

	config.APIPlatform = APIPlatformConfig{
		BaseURL: r.readOptionalString("API_PLATFORM_BASE_URL", ""),
		Enable:  r.readOptionalBool("API_PLATFORM_ENABLE", false),
	}

	// Validate HTTP server configurations
	validateHTTPServerConfigs(config, r)

	// Validate retry configurations
	validateRetryConfigs(config, r)

	r.logAndExitIfErrorsFound()

	slog.Info("configReader: configs loaded")
}

func validateHTTPServerConfigs(cfg *Config, r *configReader) {
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		r.errors = append(r.errors, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort))
	}
	if cfg.ReadTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.ReadTimeoutSeconds))
	}
	if cfg.WriteTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_WRITE_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.WriteTimeoutSeconds))
	}
	if cfg.ReadTimeoutSeconds >= cfg.WriteTimeoutSeconds {
		r.errors = append(r.errors, fmt.Errorf("HTTP_READ_TIMEOUT_SECONDS (%d) must be < HTTP_WRITE_TIMEOUT_SECONDS (%d)",
			cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds))
	}
	if cfg.IdleTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_IDLE_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.IdleTimeoutSeconds))
	}
	if cfg.MaxHeaderBytes < 1024 || cfg.MaxHeaderBytes > 1048576 { // 1KB to 1MB
		r.errors = append(r.errors, fmt.Errorf("HTTP_MAX_HEADER_BYTES must be between 1024 and 1048576, got %d", cfg.MaxHeaderBytes))
	}
}

func validateRetryConfigs(cfg *Config, r *configReader) {
	if cfg.Retry.WaitMinMilliseconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_RETRY_WAIT_MIN_MILLISECONDS must be greater than 0, got %d", cfg.Retry.WaitMinMilliseconds))
	}
	if cfg.Retry.WaitMaxMilliseconds < cfg.Retry.WaitMinMilliseconds {
		r.errors = append(r.errors, fmt.Errorf("HTTP_RETRY_WAIT_MAX_MILLISECONDS (%d) must be >= HTTP_RETRY_WAIT_MIN_MILLISECONDS (%d)",
			cfg.Retry.WaitMaxMilliseconds, cfg.Retry.WaitMinMilliseconds))
	}
	if cfg.Retry.AttemptsMax < 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_RETRY_ATTEMPTS_MAX must be >= 0, got %d", cfg.Retry.AttemptsMax))
	}
	if cfg.Retry.AttemptTimeoutSeconds <= 0 {
		r.errors = append(r.errors, fmt.Errorf("HTTP_ATTEMPT_TIMEOUT_SECONDS must be greater than 0, got %d", cfg.Retry.AttemptTimeoutSeconds))
	}
}
