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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GatewayStatus represents the lifecycle status of a registered gateway
type GatewayStatus string

const (
	GatewayStatusActive      GatewayStatus = "ACTIVE"
	GatewayStatusInactive    GatewayStatus = "INACTIVE"
	GatewayStatusMaintenance GatewayStatus = "MAINTENANCE"
)

// Gateway represents a registered gateway backend on which LLM providers are deployed
type Gateway struct {
	UUID             uuid.UUID              `gorm:"column:uuid;primaryKey" json:"id"`
	OrganizationName string                 `gorm:"column:organization_name" json:"organizationName"`
	Name             string                 `gorm:"column:name" json:"name"`
	DisplayName      string                 `gorm:"column:display_name" json:"displayName"`
	Description      string                 `gorm:"column:description" json:"description"`
	GatewayType      string                 `gorm:"column:gateway_type" json:"gatewayType"`
	ControlPlaneURL  string                 `gorm:"column:control_plane_url" json:"controlPlaneUrl"`
	Region           string                 `gorm:"column:region" json:"region"`
	IsCritical       bool                   `gorm:"column:is_critical" json:"isCritical"`
	Status           string                 `gorm:"column:status" json:"status"`
	AdapterConfig    map[string]interface{} `gorm:"column:adapter_config;type:jsonb;serializer:json" json:"adapterConfig,omitempty"`
	// CredentialsEncrypted holds the AES-256-GCM encrypted credential blob.
	// Never exposed in JSON responses.
	CredentialsEncrypted []byte         `gorm:"column:credentials_encrypted" json:"-"`
	CreatedAt            time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt            time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// TableName returns the table name for the Gateway model
func (Gateway) TableName() string {
	return "gateways"
}

// ToResponse converts a Gateway to its API response representation
func (g *Gateway) ToResponse() *GatewayResponse {
	return &GatewayResponse{
		ID:               g.UUID.String(),
		OrganizationName: g.OrganizationName,
		Name:             g.Name,
		DisplayName:      g.DisplayName,
		Description:      g.Description,
		GatewayType:      g.GatewayType,
		ControlPlaneURL:  g.ControlPlaneURL,
		Region:           g.Region,
		IsCritical:       g.IsCritical,
		Status:           g.Status,
		HasCredentials:   len(g.CredentialsEncrypted) > 0,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

// GatewayCredentials holds decrypted secret material for one gateway.
// Instances are only ever held in memory for the duration of one call.
type GatewayCredentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	Token    string `json:"token,omitempty"`
}

// GatewayToken represents an authentication token for a registered gateway
type GatewayToken struct {
	UUID        uuid.UUID  `gorm:"column:uuid;primaryKey" json:"id"`
	GatewayUUID uuid.UUID  `gorm:"column:gateway_uuid" json:"gatewayId"`
	TokenPrefix string     `gorm:"column:token_prefix" json:"-"` // First 8 chars of plaintext token for indexed lookup
	TokenHash   string     `gorm:"column:token_hash" json:"-"`   // Never expose in JSON responses
	Status      string     `gorm:"column:status" json:"status"`  // "active" or "revoked"
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	RevokedAt   *time.Time `gorm:"column:revoked_at" json:"revokedAt,omitempty"` // Pointer for NULL support
}

// TableName returns the table name for the GatewayToken model
func (GatewayToken) TableName() string {
	return "gateway_tokens"
}

// IsActive returns true if token status is active
func (t *GatewayToken) IsActive() bool {
	return t.Status == "active"
}

// Revoke marks the token as revoked with current timestamp
func (t *GatewayToken) Revoke() {
	now := time.Now()
	t.Status = "revoked"
	t.RevokedAt = &now
}

// CreateGatewayRequest is the request payload for registering a gateway
type CreateGatewayRequest struct {
	Name          string                 `json:"name"`
	DisplayName   string                 `json:"displayName"`
	Description   string                 `json:"description"`
	GatewayType   string                 `json:"gatewayType"`
	Region        string                 `json:"region"`
	IsCritical    bool                   `json:"isCritical"`
	AdapterConfig map[string]interface{} `json:"adapterConfig,omitempty"`
	Credentials   *GatewayCredentials    `json:"credentials,omitempty"`
}

// UpdateGatewayRequest is the request payload for updating a gateway
type UpdateGatewayRequest struct {
	DisplayName   *string                `json:"displayName,omitempty"`
	Description   *string                `json:"description,omitempty"`
	IsCritical    *bool                  `json:"isCritical,omitempty"`
	Status        *string                `json:"status,omitempty"`
	AdapterConfig map[string]interface{} `json:"adapterConfig,omitempty"`
	Credentials   *GatewayCredentials    `json:"credentials,omitempty"`
}

// GatewayResponse is the API representation of a gateway
type GatewayResponse struct {
	ID               string    `json:"id"`
	OrganizationName string    `json:"organizationName"`
	Name             string    `json:"name"`
	DisplayName      string    `json:"displayName"`
	Description      string    `json:"description"`
	GatewayType      string    `json:"gatewayType"`
	ControlPlaneURL  string    `json:"controlPlaneUrl"`
	Region           string    `json:"region"`
	IsCritical       bool      `json:"isCritical"`
	Status           string    `json:"status"`
	HasCredentials   bool      `json:"hasCredentials"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// GatewayListResponse is the paginated list representation of gateways
type GatewayListResponse struct {
	Gateways []GatewayResponse `json:"gateways"`
	Total    int32             `json:"total"`
	Limit    int32             `json:"limit"`
	Offset   int32             `json:"offset"`
}

// HealthStatusResponse is the API representation of a gateway health probe
type HealthStatusResponse struct {
	GatewayID    string `json:"gatewayId"`
	Status       string `json:"status"`
	ResponseTime string `json:"responseTime,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	CheckedAt    string `json:"checkedAt"`
}

// GatewayTokenResponse is returned once at token issuance; Token carries the
// plaintext API key and is never persisted.
type GatewayTokenResponse struct {
	ID        string    `json:"id"`
	GatewayID string    `json:"gatewayId"`
	Token     string    `json:"token,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
