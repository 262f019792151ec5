//
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
//

package client

import "time"

// FunctionalityType defines the type of gateway functionality
type FunctionalityType string

const (
	FunctionalityTypeRegular FunctionalityType = "regular"
	FunctionalityTypeAI      FunctionalityType = "ai"
	FunctionalityTypeEvent   FunctionalityType = "event"
)

// RegisterGatewayRequest contains data for registering a gateway with API Platform
type RegisterGatewayRequest struct {
	Name              string                  `json:"name"`
	DisplayName       string                  `json:"displayName"`
	Vhost             string                  `json:"vhost,omitempty"`
	FunctionalityType FunctionalityType       `json:"functionalityType"`
	Description       *string                 `json:"description,omitempty"`
	IsCritical        *bool                   `json:"isCritical,omitempty"`
	Properties        *map[string]interface{} `json:"properties,omitempty"`
}

// UpdateGatewayRequest contains data for updating a gateway in API Platform
type UpdateGatewayRequest struct {
	DisplayName *string                 `json:"displayName,omitempty"`
	Description *string                 `json:"description,omitempty"`
	IsCritical  *bool                   `json:"isCritical,omitempty"`
	Properties  *map[string]interface{} `json:"properties,omitempty"`
}

// GatewayResponse represents a gateway response from API Platform
type GatewayResponse struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	DisplayName       string                 `json:"displayName"`
	Description       string                 `json:"description,omitempty"`
	Vhost             string                 `json:"vhost,omitempty"`
	FunctionalityType string                 `json:"functionalityType"`
	IsCritical        bool                   `json:"isCritical"`
	IsActive          bool                   `json:"isActive"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
	Properties        map[string]interface{} `json:"properties,omitempty"`
}

// GatewayListResponse wraps the gateway collection returned by API Platform
type GatewayListResponse struct {
	List []GatewayResponse `json:"list"`
}

// GatewayTokenResponse represents a gateway token rotation response
type GatewayTokenResponse struct {
	GatewayID string     `json:"gatewayId"`
	TokenID   string     `json:"id"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
