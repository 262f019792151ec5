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

// Package gateway defines the adapter contract for managing LLM provider
// deployments across heterogeneous API gateway implementations.
package gateway

import (
	"context"
)

// IGatewayAdapter defines the contract for gateway management operations.
// Only ONE implementation is active at runtime based on deployment configuration.
type IGatewayAdapter interface {
	// GetAdapterType returns the adapter type identifier (e.g., "on-premise", "cloud")
	GetAdapterType() string

	// Close cleans up adapter resources
	Close() error

	// ========================================================================
	// Gateway Lifecycle Management
	// ========================================================================

	// ValidateGatewayEndpoint checks if a gateway endpoint is reachable
	ValidateGatewayEndpoint(ctx context.Context, controlPlaneURL string) error

	// CheckHealth performs a health check on a gateway
	CheckHealth(ctx context.Context, controlPlaneURL string) (*HealthStatus, error)

	// ========================================================================
	// LLM Provider Management
	// ========================================================================

	// DeployProvider deploys an LLM provider configuration to a gateway
	DeployProvider(ctx context.Context, gatewayID string, config *ProviderDeploymentConfig) (*ProviderDeploymentResult, error)

	// UpdateProvider updates an existing LLM provider on a gateway
	UpdateProvider(ctx context.Context, gatewayID string, providerID string, config *ProviderDeploymentConfig) (*ProviderDeploymentResult, error)

	// UndeployProvider removes an LLM provider from a gateway
	UndeployProvider(ctx context.Context, gatewayID string, providerID string) error

	// GetProviderStatus retrieves the status of a provider deployment on a gateway
	GetProviderStatus(ctx context.Context, gatewayID string, providerID string) (*ProviderStatus, error)

	// ListProviders lists all LLM providers deployed on a gateway
	ListProviders(ctx context.Context, gatewayID string) ([]*ProviderStatus, error)

	// GetPolicies retrieves available policies from a gateway
	GetPolicies(ctx context.Context, gatewayID string) ([]*PolicyInfo, error)
}
