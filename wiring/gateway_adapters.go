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
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients/requests"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/config"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway/adapter/mock"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway/adapter/onpremise"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway/credstore"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/repositories"
)

// ProvideGatewayEncryptionKey provides the encryption key for gateway credentials
func ProvideGatewayEncryptionKey(cfg config.Config) ([]byte, error) {
	if cfg.Gateway.EncryptionKey == "" {
		return nil, fmt.Errorf("GATEWAY_ENCRYPTION_KEY is required")
	}

	// Decode base64-encoded key
	key, err := base64.StdEncoding.DecodeString(cfg.Gateway.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode GATEWAY_ENCRYPTION_KEY: %w", err)
	}

	// Validate key size (32 bytes for AES-256)
	if len(key) != 32 {
		return nil, fmt.Errorf("GATEWAY_ENCRYPTION_KEY must be 32 bytes (base64-encoded), got %d bytes", len(key))
	}

	return key, nil
}

// ProvideCredentialStore provides the gateway credential store backed by the
// gateway repository
func ProvideCredentialStore(repo repositories.GatewayRepository, encryptionKey []byte) credstore.Store {
	return credstore.NewStore(repo, encryptionKey)
}

// ProvideGatewayControllerClient provides the typed client for backend gateway
// control planes
func ProvideGatewayControllerClient(retryConfig requests.RequestRetryConfig) clients.GatewayControllerClient {
	return clients.NewGatewayControllerClient(retryConfig)
}

// ProvideGatewayAdapter provides a gateway adapter for dependency injection.
// Uses configuration to select the appropriate adapter type.
func ProvideGatewayAdapter(cfg config.Config, credentials credstore.Store, gatewayClient clients.GatewayControllerClient, logger *slog.Logger) gateway.IGatewayAdapter {
	// Create adapter factory
	factory := gateway.NewAdapterFactory(logger)

	// Initialize adapters
	InitGatewayAdapters(factory, credentials, gatewayClient)

	// Create adapter config from environment config
	adapterConfig := gateway.AdapterConfig{
		Type:       cfg.Gateway.AdapterType,
		Parameters: make(map[string]interface{}),
	}

	// Add on-premise specific parameters
	if cfg.Gateway.AdapterType == "on-premise" {
		adapterConfig.Parameters["defaultTimeout"] = time.Duration(cfg.Gateway.DefaultTimeoutSeconds) * time.Second
		adapterConfig.Parameters["healthCheckTimeout"] = time.Duration(cfg.Gateway.HealthCheckTimeoutSeconds) * time.Second
	}

	// Create adapter using factory
	adapter, err := factory.CreateAdapter(adapterConfig)
	if err != nil {
		// Fall back to mock adapter if there's an error
		logger.Error("Failed to create configured gateway adapter, falling back to mock",
			"adapterType", cfg.Gateway.AdapterType,
			"error", err)
		adapter, _ = mock.NewMockAdapter("mock-fallback", false, logger)
		return adapter
	}

	logger.Info("Gateway adapter initialized", "adapterType", adapter.GetAdapterType())
	return adapter
}

// InitGatewayAdapters initializes the gateway factory with built-in adapters.
// This function should be called during application initialization.
func InitGatewayAdapters(factory *gateway.AdapterFactory, credentials credstore.Store, gatewayClient clients.GatewayControllerClient) {
	// Register on-premise adapter
	factory.Register("on-premise", func(config gateway.AdapterConfig, logger *slog.Logger) (gateway.IGatewayAdapter, error) {
		return onpremise.NewOnPremiseAdapter(config, credentials, gatewayClient, logger)
	})

	// Register mock adapter for testing
	factory.Register("mock", func(config gateway.AdapterConfig, logger *slog.Logger) (gateway.IGatewayAdapter, error) {
		// Create a mock adapter with configurable behavior
		shouldFail := false
		if fail, ok := config.Parameters["shouldFail"].(bool); ok {
			shouldFail = fail
		}
		adapterType := "mock"
		if at, ok := config.Parameters["adapterType"].(string); ok {
			adapterType = at
		}
		return mock.NewMockAdapter(adapterType, shouldFail, logger)
	})

	// Cloud adapter will be registered in future implementations
}
