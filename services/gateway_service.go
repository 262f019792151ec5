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

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/gateway"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/repositories"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// GatewayService defines the interface for gateway lifecycle operations
type GatewayService interface {
	RegisterGateway(ctx context.Context, orgName string, req *models.CreateGatewayRequest) (*models.GatewayResponse, error)
	GetGateway(ctx context.Context, orgName string, gatewayID string) (*models.GatewayResponse, error)
	ListGateways(ctx context.Context, orgName string, limit, offset int) (*models.GatewayListResponse, error)
	UpdateGateway(ctx context.Context, orgName string, gatewayID string, req *models.UpdateGatewayRequest) (*models.GatewayResponse, error)
	DeleteGateway(ctx context.Context, orgName string, gatewayID string) error
	CheckGatewayHealth(ctx context.Context, orgName string, gatewayID string) (*models.HealthStatusResponse, error)
}

const defaultListLimit = 50

type gatewayService struct {
	repo          repositories.GatewayRepository
	adapter       gateway.IGatewayAdapter
	encryptionKey []byte
	logger        *slog.Logger
}

// isValidGatewayStatus validates if the given status is a valid gateway status
func isValidGatewayStatus(status string) bool {
	validStatuses := []string{
		string(models.GatewayStatusActive),
		string(models.GatewayStatusInactive),
		string(models.GatewayStatusMaintenance),
	}
	return slices.Contains(validStatuses, status)
}

// NewGatewayService creates a new gateway service
func NewGatewayService(repo repositories.GatewayRepository, adapter gateway.IGatewayAdapter, encryptionKey []byte, logger *slog.Logger) GatewayService {
	return &gatewayService{
		repo:          repo,
		adapter:       adapter,
		encryptionKey: encryptionKey,
		logger:        logger,
	}
}

func (s *gatewayService) RegisterGateway(ctx context.Context, orgName string, req *models.CreateGatewayRequest) (*models.GatewayResponse, error) {
	s.logger.Info("Registering gateway", "name", req.Name, "orgName", orgName)

	if req.Name == "" {
		return nil, fmt.Errorf("gateway name is required: %w", utils.ErrInvalidInput)
	}

	// Check if gateway already exists
	_, err := s.repo.GetGatewayByName(ctx, orgName, req.Name)
	if err == nil {
		return nil, utils.ErrGatewayAlreadyExists
	}
	if !errors.Is(err, utils.ErrGatewayNotFound) {
		return nil, fmt.Errorf("failed to check existing gateway: %w", err)
	}

	// Extract control plane URL for on-premise mode
	var controlPlaneURL string
	if url, ok := req.AdapterConfig["controlPlaneUrl"].(string); ok {
		controlPlaneURL = url

		// Validate endpoint is reachable
		if err := s.adapter.ValidateGatewayEndpoint(ctx, controlPlaneURL); err != nil {
			s.logger.Error("Gateway endpoint validation failed", "url", controlPlaneURL, "error", err)
			return nil, fmt.Errorf("gateway endpoint unreachable: %w", err)
		}
	}

	gatewayType := req.GatewayType
	if gatewayType == "" {
		gatewayType = s.adapter.GetAdapterType()
	}

	gw := &models.Gateway{
		UUID:             uuid.New(),
		OrganizationName: orgName,
		Name:             req.Name,
		DisplayName:      req.DisplayName,
		Description:      req.Description,
		GatewayType:      gatewayType,
		ControlPlaneURL:  controlPlaneURL,
		Region:           req.Region,
		IsCritical:       req.IsCritical,
		Status:           string(models.GatewayStatusActive),
		AdapterConfig:    req.AdapterConfig,
	}

	// Encrypt credentials if provided
	if req.Credentials != nil {
		encryptedCreds, err := utils.EncryptCredentials(req.Credentials, s.encryptionKey)
		if err != nil {
			s.logger.Error("Failed to encrypt credentials", "error", err)
			return nil, fmt.Errorf("failed to encrypt credentials: %w", err)
		}
		gw.CredentialsEncrypted = encryptedCreds
	}

	if err := s.repo.CreateGateway(ctx, gw); err != nil {
		s.logger.Error("Failed to create gateway", "error", err)
		return nil, err
	}

	s.logger.Info("Gateway registered successfully", "uuid", gw.UUID)
	return gw.ToResponse(), nil
}

func (s *gatewayService) GetGateway(ctx context.Context, orgName string, gatewayID string) (*models.GatewayResponse, error) {
	gw, err := s.getOwnedGateway(ctx, orgName, gatewayID)
	if err != nil {
		return nil, err
	}
	return gw.ToResponse(), nil
}

func (s *gatewayService) ListGateways(ctx context.Context, orgName string, limit, offset int) (*models.GatewayListResponse, error) {
	s.logger.Info("Listing gateways", "orgName", orgName, "limit", limit, "offset", offset)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	gateways, total, err := s.repo.ListGateways(ctx, orgName, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]models.GatewayResponse, len(gateways))
	for i, gw := range gateways {
		responses[i] = *gw.ToResponse()
	}

	return &models.GatewayListResponse{
		Gateways: responses,
		Total:    int32(total),
		Limit:    int32(limit),
		Offset:   int32(offset),
	}, nil
}

func (s *gatewayService) UpdateGateway(ctx context.Context, orgName string, gatewayID string, req *models.UpdateGatewayRequest) (*models.GatewayResponse, error) {
	s.logger.Info("Updating gateway", "gatewayID", gatewayID, "orgName", orgName)

	gw, err := s.getOwnedGateway(ctx, orgName, gatewayID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		gw.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		gw.Description = *req.Description
	}
	if req.IsCritical != nil {
		gw.IsCritical = *req.IsCritical
	}
	if req.Status != nil {
		if !isValidGatewayStatus(*req.Status) {
			return nil, fmt.Errorf("invalid gateway status %q: %w", *req.Status, utils.ErrInvalidInput)
		}
		gw.Status = *req.Status
	}
	if req.AdapterConfig != nil {
		// Merge adapter config
		if gw.AdapterConfig == nil {
			gw.AdapterConfig = make(map[string]interface{})
		}
		for k, v := range req.AdapterConfig {
			gw.AdapterConfig[k] = v
		}

		// Re-validate the endpoint when the control plane URL changes
		if url, ok := req.AdapterConfig["controlPlaneUrl"].(string); ok && url != gw.ControlPlaneURL {
			if err := s.adapter.ValidateGatewayEndpoint(ctx, url); err != nil {
				s.logger.Error("Gateway endpoint validation failed", "url", url, "error", err)
				return nil, fmt.Errorf("gateway endpoint unreachable: %w", err)
			}
			gw.ControlPlaneURL = url
		}
	}

	// Encrypt and update credentials if provided
	if req.Credentials != nil {
		encryptedCreds, err := utils.EncryptCredentials(req.Credentials, s.encryptionKey)
		if err != nil {
			s.logger.Error("Failed to encrypt credentials", "error", err)
			return nil, fmt.Errorf("failed to encrypt credentials: %w", err)
		}
		gw.CredentialsEncrypted = encryptedCreds
	}

	if err := s.repo.UpdateGateway(ctx, gw); err != nil {
		return nil, err
	}

	return gw.ToResponse(), nil
}

func (s *gatewayService) DeleteGateway(ctx context.Context, orgName string, gatewayID string) error {
	s.logger.Info("Deleting gateway", "gatewayID", gatewayID, "orgName", orgName)

	gw, err := s.getOwnedGateway(ctx, orgName, gatewayID)
	if err != nil {
		return err
	}

	return s.repo.DeleteGateway(ctx, gw.UUID)
}

func (s *gatewayService) CheckGatewayHealth(ctx context.Context, orgName string, gatewayID string) (*models.HealthStatusResponse, error) {
	s.logger.Info("Checking gateway health", "gatewayID", gatewayID)

	gw, err := s.getOwnedGateway(ctx, orgName, gatewayID)
	if err != nil {
		return nil, err
	}

	if gw.ControlPlaneURL == "" {
		return &models.HealthStatusResponse{
			GatewayID:    gatewayID,
			Status:       "UNKNOWN",
			ErrorMessage: "No control plane URL configured",
			CheckedAt:    time.Now().Format(time.RFC3339),
		}, nil
	}

	health, err := s.adapter.CheckHealth(ctx, gw.ControlPlaneURL)

	// If health struct is returned (even with error status), encode it in response
	if health != nil {
		return &models.HealthStatusResponse{
			GatewayID:    gatewayID,
			Status:       health.Status,
			ResponseTime: health.ResponseTime.String(),
			ErrorMessage: health.ErrorMessage,
			CheckedAt:    health.CheckedAt.Format(time.RFC3339),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to check gateway health: %w", err)
	}

	return &models.HealthStatusResponse{
		GatewayID:    gatewayID,
		Status:       "UNKNOWN",
		ErrorMessage: "Health check returned no data",
		CheckedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

// getOwnedGateway resolves a gateway by ID and checks organization ownership
func (s *gatewayService) getOwnedGateway(ctx context.Context, orgName string, gatewayID string) (*models.Gateway, error) {
	gwUUID, err := uuid.Parse(gatewayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidGatewayID, gatewayID)
	}

	gw, err := s.repo.GetGatewayByUUID(ctx, gwUUID)
	if err != nil {
		return nil, err
	}
	if gw.OrganizationName != orgName {
		return nil, utils.ErrGatewayNotFound
	}
	return gw, nil
}
