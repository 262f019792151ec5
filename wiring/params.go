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

package wiring

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	apiplatformclient "github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/apiplatformsvc/client"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/idp"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/config"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/repositories"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/services"
)

// AppParams contains all wired application dependencies
type AppParams struct {
	Logger *slog.Logger

	// Services
	GatewayService      services.GatewayService
	GatewayTokenService services.GatewayTokenService

	// Gateway adapter bound at startup
	GatewayAdapter gateway.IGatewayAdapter

	// Clients
	APIPlatformClient apiplatformclient.APIPlatformClient

	// Database
	DB *gorm.DB
}

func ProvideConfigFromPtr(config *config.Config) config.Config {
	return *config
}

// ProvideLogger provides the configured slog.Logger instance
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

// ProvideRetryConfig translates retry tuning knobs from configuration into the
// retryable HTTP client's config
func ProvideRetryConfig(cfg config.Config) requests.RequestRetryConfig {
	return requests.RequestRetryConfig{
		RetryWaitMin:     time.Duration(cfg.Retry.WaitMinMilliseconds) * time.Millisecond,
		RetryWaitMax:     time.Duration(cfg.Retry.WaitMaxMilliseconds) * time.Millisecond,
		RetryAttemptsMax: cfg.Retry.AttemptsMax,
		AttemptTimeout:   time.Duration(cfg.Retry.AttemptTimeoutSeconds) * time.Second,
	}
}

// ProvideGatewayRepository provides the gateway repository
func ProvideGatewayRepository(db *gorm.DB) repositories.GatewayRepository {
	return repositories.NewGatewayRepo(db)
}

// ProvideTokenCache provides the gateway token verification cache
func ProvideTokenCache(cfg config.Config) *services.TokenCache {
	return services.NewTokenCache(time.Duration(cfg.Gateway.TokenCacheTTLSeconds) * time.Second)
}

// ProvideAuthProvider creates the IDP-backed auth provider used by platform
// service clients
func ProvideAuthProvider(cfg config.Config) apiplatformclient.AuthProvider {
	return idp.NewTokenProvider(cfg.IDP)
}

// ProvideAPIPlatformClient creates the API Platform client. Returns nil when
// the integration is disabled by configuration.
func ProvideAPIPlatformClient(cfg config.Config, authProvider apiplatformclient.AuthProvider, retryConfig requests.RequestRetryConfig) (apiplatformclient.APIPlatformClient, error) {
	if !cfg.APIPlatform.Enable {
		return nil, nil
	}
	return apiplatformclient.NewAPIPlatformClient(&apiplatformclient.Config{
		BaseURL:      cfg.APIPlatform.BaseURL,
		AuthProvider: authProvider,
		RetryConfig:  retryConfig,
	})
}
