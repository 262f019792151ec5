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

//go:build wireinject
// +build wireinject

package wiring

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/config"
	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/services"
)

var configProviderSet = wire.NewSet(
	ProvideConfigFromPtr,
	ProvideRetryConfig,
	ProvideGatewayEncryptionKey,
)

var clientProviderSet = wire.NewSet(
	ProvideAuthProvider,
	ProvideAPIPlatformClient,
	ProvideGatewayControllerClient,
)

var gatewayProviderSet = wire.NewSet(
	ProvideGatewayRepository,
	ProvideCredentialStore,
	ProvideGatewayAdapter,
)

var serviceProviderSet = wire.NewSet(
	ProvideTokenCache,
	services.NewGatewayService,
	services.NewGatewayTokenService,
)

var loggerProviderSet = wire.NewSet(
	ProvideLogger,
)

func InitializeAppParams(cfg *config.Config, db *gorm.DB) (*AppParams, error) {
	wire.Build(
		configProviderSet,
		clientProviderSet,
		gatewayProviderSet,
		loggerProviderSet,
		serviceProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return &AppParams{}, nil
}
