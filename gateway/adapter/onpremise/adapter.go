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

package onpremise

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/clients"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway/credstore"
)

const (
	defaultHealthCheckTimeout = 5 * time.Second
)

// OnPremiseAdapter implements IGatewayAdapter for on-premise deployments.
// Gateway credentials are resolved per operation through the credential
// store; the adapter holds no plaintext secrets between calls.
type OnPremiseAdapter struct {
	credentials        credstore.Store
	gatewayClient      clients.GatewayControllerClient
	healthCheckTimeout time.Duration
	config             gateway.AdapterConfig
	logger             *slog.Logger
}

// NewOnPremiseAdapter creates a new on-premise adapter instance
func NewOnPremiseAdapter(config gateway.AdapterConfig, credentials credstore.Store, gatewayClient clients.GatewayControllerClient, logger *slog.Logger) (gateway.IGatewayAdapter, error) {
	if credentials == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if gatewayClient == nil {
		return nil, fmt.Errorf("gateway controller client is required")
	}

	healthCheckTimeout := defaultHealthCheckTimeout
	if t, ok := config.Parameters["healthCheckTimeout"].(time.Duration); ok && t > 0 {
		healthCheckTimeout = t
	}

	return &OnPremiseAdapter{
		credentials:        credentials,
		gatewayClient:      gatewayClient,
		healthCheckTimeout: healthCheckTimeout,
		config:             config,
		logger:             logger,
	}, nil
}

// GetAdapterType returns the adapter type identifier
func (a *OnPremiseAdapter) GetAdapterType() string {
	return "on-premise"
}

// Close cleans up adapter resources
func (a *OnPremiseAdapter) Close() error {
	return nil
}

// ValidateGatewayEndpoint checks if a gateway endpoint is reachable
func (a *OnPremiseAdapter) ValidateGatewayEndpoint(ctx context.Context, controlPlaneURL string) error {
	checkCtx, cancel := context.WithTimeout(ctx, a.healthCheckTimeout)
	defer cancel()

	if err := a.gatewayClient.HealthCheck(checkCtx, controlPlaneURL); err != nil {
		return fmt.Errorf("gateway endpoint unreachable: %w", err)
	}
	return nil
}

// CheckHealth performs a health check on a gateway. Unreachable gateways are
// reported through the returned status rather than an error.
func (a *OnPremiseAdapter) CheckHealth(ctx context.Context, controlPlaneURL string) (*gateway.HealthStatus, error) {
	start := time.Now()

	err := a.ValidateGatewayEndpoint(ctx, controlPlaneURL)
	responseTime := time.Since(start)

	status := &gateway.HealthStatus{
		Status:       gateway.HealthStatusActive,
		ResponseTime: responseTime,
		CheckedAt:    time.Now(),
	}

	if err != nil {
		status.Status = gateway.HealthStatusError
		status.ErrorMessage = err.Error()
	}

	return status, nil
}

// requestCredentials converts stored credentials to controller client credentials
func requestCredentials(info *credstore.ConnectionInfo) *clients.RequestCredentials {
	return &clients.RequestCredentials{
		Username: info.Credentials.Username,
		Password: info.Credentials.Password,
	}
}

// DeployProvider deploys an LLM provider configuration to a gateway
func (a *OnPremiseAdapter) DeployProvider(ctx context.Context, gatewayID string, config *gateway.ProviderDeploymentConfig) (*gateway.ProviderDeploymentResult, error) {
	a.logger.Info("Deploying provider to gateway", "gatewayID", gatewayID, "handle", config.Handle)

	info, err := a.credentials.GetConnectionInfo(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	resp, err := a.gatewayClient.CreateLLMProvider(ctx, info.ControlPlaneURL, config.Configuration, requestCredentials(info))
	if err != nil {
		return nil, fmt.Errorf("failed to create provider on gateway: %w", err)
	}

	return &gateway.ProviderDeploymentResult{
		DeploymentID: resp.ID,
		Status:       resp.Status,
		DeployedAt:   time.Now(),
	}, nil
}

// UpdateProvider updates an existing LLM provider on a gateway
func (a *OnPremiseAdapter) UpdateProvider(ctx context.Context, gatewayID string, providerID string, config *gateway.ProviderDeploymentConfig) (*gateway.ProviderDeploymentResult, error) {
	a.logger.Info("Updating provider on gateway", "gatewayID", gatewayID, "providerID", providerID)

	info, err := a.credentials.GetConnectionInfo(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	resp, err := a.gatewayClient.UpdateLLMProvider(ctx, info.ControlPlaneURL, providerID, config.Configuration, requestCredentials(info))
	if err != nil {
		return nil, fmt.Errorf("failed to update provider on gateway: %w", err)
	}

	return &gateway.ProviderDeploymentResult{
		DeploymentID: resp.ID,
		Status:       resp.Status,
		DeployedAt:   time.Now(),
	}, nil
}

// UndeployProvider removes an LLM provider from a gateway
func (a *OnPremiseAdapter) UndeployProvider(ctx context.Context, gatewayID string, providerID string) error {
	a.logger.Info("Undeploying provider from gateway", "gatewayID", gatewayID, "providerID", providerID)

	info, err := a.credentials.GetConnectionInfo(ctx, gatewayID)
	if err != nil {
		return err
	}

	if err := a.gatewayClient.DeleteLLMProvider(ctx, info.ControlPlaneURL, providerID, requestCredentials(info)); err != nil {
		return fmt.Errorf("failed to delete provider on gateway: %w", err)
	}

	return nil
}

// GetProviderStatus retrieves the status of a provider deployment on a gateway
func (a *OnPremiseAdapter) GetProviderStatus(ctx context.Context, gatewayID string, providerID string) (*gateway.ProviderStatus, error) {
	info, err := a.credentials.GetConnectionInfo(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	resp, err := a.gatewayClient.GetLLMProvider(ctx, info.ControlPlaneURL, providerID, requestCredentials(info))
	if err != nil {
		return nil, fmt.Errorf("failed to get provider status: %w", err)
	}

	return providerStatusFromResponse(resp), nil
}

// ListProviders lists all LLM providers deployed on a gateway
func (a *OnPremiseAdapter) ListProviders(ctx context.Context, gatewayID string) ([]*gateway.ProviderStatus, error) {
	info, err := a.credentials.GetConnectionInfo(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	resp, err := a.gatewayClient.ListLLMProviders(ctx, info.ControlPlaneURL, requestCredentials(info))
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	providers := make([]*gateway.ProviderStatus, 0, len(resp.Providers))
	for i := range resp.Providers {
		providers = append(providers, providerStatusFromResponse(&resp.Providers[i]))
	}
	return providers, nil
}

// GetPolicies retrieves available policies from a gateway
func (a *OnPremiseAdapter) GetPolicies(ctx context.Context, gatewayID string) ([]*gateway.PolicyInfo, error) {
	info, err := a.credentials.GetConnectionInfo(ctx, gatewayID)
	if err != nil {
		return nil, err
	}

	resp, err := a.gatewayClient.GetPolicies(ctx, info.ControlPlaneURL, requestCredentials(info))
	if err != nil {
		return nil, fmt.Errorf("failed to get policies: %w", err)
	}

	policies := make([]*gateway.PolicyInfo, 0, len(resp.Policies))
	for _, p := range resp.Policies {
		policies = append(policies, &gateway.PolicyInfo{
			Name:        p.Name,
			Version:     p.Version,
			Description: p.Description,
			Parameters:  p.Parameters,
		})
	}
	return policies, nil
}

// providerStatusFromResponse maps a controller response to the adapter status
// type. Timestamps arrive as RFC3339 strings; unparsable values are dropped
// rather than failing the whole call.
func providerStatusFromResponse(resp *clients.LLMProviderResponse) *gateway.ProviderStatus {
	status := &gateway.ProviderStatus{
		ID:     resp.ID,
		Name:   resp.Name,
		Kind:   resp.Kind,
		Status: resp.Status,
		Spec:   resp.Spec,
	}

	if resp.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.CreatedAt); err == nil {
			status.CreatedAt = t
		}
	}
	if resp.DeployedAt != "" {
		if t, err := time.Parse(time.RFC3339, resp.DeployedAt); err == nil {
			status.DeployedAt = &t
		}
	}

	return status
}
