/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/models"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// GatewayRepository defines the interface for gateway data access
type GatewayRepository interface {
	CreateGateway(ctx context.Context, gw *models.Gateway) error
	GetGatewayByUUID(ctx context.Context, gatewayUUID uuid.UUID) (*models.Gateway, error)
	GetGatewayByName(ctx context.Context, orgName, name string) (*models.Gateway, error)
	ListGateways(ctx context.Context, orgName string, limit, offset int) ([]*models.Gateway, int64, error)
	UpdateGateway(ctx context.Context, gw *models.Gateway) error
	DeleteGateway(ctx context.Context, gatewayUUID uuid.UUID) error

	CreateGatewayToken(ctx context.Context, token *models.GatewayToken) error
	GetActiveTokenByPrefix(ctx context.Context, prefix string) (*models.GatewayToken, error)
	GetTokenByUUID(ctx context.Context, tokenUUID uuid.UUID) (*models.GatewayToken, error)
	ListActiveTokensByGateway(ctx context.Context, gatewayUUID uuid.UUID) ([]*models.GatewayToken, error)
	RevokeToken(ctx context.Context, token *models.GatewayToken) error
}

// GatewayRepo implements GatewayRepository using GORM
type GatewayRepo struct {
	db *gorm.DB
}

// NewGatewayRepo creates a new gateway repository
func NewGatewayRepo(db *gorm.DB) GatewayRepository {
	return &GatewayRepo{db: db}
}

// CreateGateway inserts a new gateway
func (r *GatewayRepo) CreateGateway(ctx context.Context, gw *models.Gateway) error {
	now := time.Now()
	gw.CreatedAt = now
	gw.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(gw).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", utils.ErrGatewayAlreadyExists, gw.Name)
		}
		return fmt.Errorf("failed to create gateway: %w", err)
	}
	return nil
}

// GetGatewayByUUID retrieves a gateway by its UUID
func (r *GatewayRepo) GetGatewayByUUID(ctx context.Context, gatewayUUID uuid.UUID) (*models.Gateway, error) {
	var gw models.Gateway
	err := r.db.WithContext(ctx).Where("uuid = ?", gatewayUUID).First(&gw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrGatewayNotFound
		}
		return nil, fmt.Errorf("failed to query gateway: %w", err)
	}
	return &gw, nil
}

// GetGatewayByName retrieves a gateway by organization and name
func (r *GatewayRepo) GetGatewayByName(ctx context.Context, orgName, name string) (*models.Gateway, error) {
	var gw models.Gateway
	err := r.db.WithContext(ctx).
		Where("organization_name = ? AND name = ?", orgName, name).
		First(&gw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrGatewayNotFound
		}
		return nil, fmt.Errorf("failed to query gateway: %w", err)
	}
	return &gw, nil
}

// ListGateways retrieves gateways for an organization with pagination
func (r *GatewayRepo) ListGateways(ctx context.Context, orgName string, limit, offset int) ([]*models.Gateway, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Gateway{}).
		Where("organization_name = ?", orgName)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count gateways: %w", err)
	}

	var gateways []*models.Gateway
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&gateways).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gateways: %w", err)
	}
	return gateways, total, nil
}

// UpdateGateway modifies an existing gateway
func (r *GatewayRepo) UpdateGateway(ctx context.Context, gw *models.Gateway) error {
	gw.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&models.Gateway{}).
		Where("uuid = ?", gw.UUID).
		Updates(map[string]interface{}{
			"display_name":          gw.DisplayName,
			"description":           gw.Description,
			"control_plane_url":     gw.ControlPlaneURL,
			"is_critical":           gw.IsCritical,
			"status":                gw.Status,
			"adapter_config":        gw.AdapterConfig,
			"credentials_encrypted": gw.CredentialsEncrypted,
			"updated_at":            gw.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update gateway: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrGatewayNotFound
	}
	return nil
}

// DeleteGateway soft-deletes a gateway
func (r *GatewayRepo) DeleteGateway(ctx context.Context, gatewayUUID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("uuid = ?", gatewayUUID).Delete(&models.Gateway{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete gateway: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrGatewayNotFound
	}
	return nil
}

// CreateGatewayToken inserts a new gateway token
func (r *GatewayRepo) CreateGatewayToken(ctx context.Context, token *models.GatewayToken) error {
	token.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create gateway token: %w", err)
	}
	return nil
}

// GetActiveTokenByPrefix retrieves the active token matching the given prefix
func (r *GatewayRepo) GetActiveTokenByPrefix(ctx context.Context, prefix string) (*models.GatewayToken, error) {
	var token models.GatewayToken
	err := r.db.WithContext(ctx).
		Where("token_prefix = ? AND status = ?", prefix, "active").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to query gateway token: %w", err)
	}
	return &token, nil
}

// GetTokenByUUID retrieves a token by its UUID
func (r *GatewayRepo) GetTokenByUUID(ctx context.Context, tokenUUID uuid.UUID) (*models.GatewayToken, error) {
	var token models.GatewayToken
	err := r.db.WithContext(ctx).Where("uuid = ?", tokenUUID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to query gateway token: %w", err)
	}
	return &token, nil
}

// ListActiveTokensByGateway retrieves all active tokens for a gateway
func (r *GatewayRepo) ListActiveTokensByGateway(ctx context.Context, gatewayUUID uuid.UUID) ([]*models.GatewayToken, error) {
	var tokens []*models.GatewayToken
	err := r.db.WithContext(ctx).
		Where("gateway_uuid = ? AND status = ?", gatewayUUID, "active").
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gateway tokens: %w", err)
	}
	return tokens, nil
}

// RevokeToken marks a token as revoked
func (r *GatewayRepo) RevokeToken(ctx context.Context, token *models.GatewayToken) error {
	token.Revoke()
	result := r.db.WithContext(ctx).Model(&models.GatewayToken{}).
		Where("uuid = ? AND status = ?", token.UUID, "active").
		Updates(map[string]interface{}{
			"status":     token.Status,
			"revoked_at": token.RevokedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke gateway token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrTokenAlreadyRevoked
	}
	return nil
}
