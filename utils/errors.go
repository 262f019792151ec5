// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
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

package utils

import "errors"

var (
	// Request errors
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Upstream errors
	ErrServiceUnavailable = errors.New("service unavailable")

	// Gateway-related errors
	ErrGatewayNotFound        = errors.New("gateway not found")
	ErrGatewayAlreadyExists   = errors.New("gateway already exists")
	ErrInvalidGatewayID       = errors.New("invalid gateway ID")
	ErrInvalidAdapterType     = errors.New("invalid adapter type")
	ErrGatewayUnreachable     = errors.New("gateway unreachable")
	ErrMissingCredentials     = errors.New("gateway has no credentials stored")
	ErrDecryptionFailed       = errors.New("failed to decrypt gateway credentials")
	ErrMissingControlPlaneURL = errors.New("controlPlaneUrl not found in gateway adapter config")

	// Gateway token errors
	ErrTokenNotFound       = errors.New("gateway token not found")
	ErrTokenAlreadyRevoked = errors.New("gateway token already revoked")

	// LLM Provider-related errors
	ErrProviderNotFound      = errors.New("provider not found")
	ErrProviderAlreadyExists = errors.New("provider already exists")
	ErrDeploymentFailed      = errors.New("deployment failed")
	ErrInvalidProviderConfig = errors.New("invalid provider configuration")
)
