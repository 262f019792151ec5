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

package gateway

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/utils"
)

// AdapterConstructor creates an adapter instance from its configuration.
type AdapterConstructor func(config AdapterConfig, logger *slog.Logger) (IGatewayAdapter, error)

// AdapterFactory creates gateway adapters by registered type name.
type AdapterFactory struct {
	mu           sync.RWMutex
	constructors map[string]AdapterConstructor
	logger       *slog.Logger
}

// NewAdapterFactory creates an empty adapter factory
func NewAdapterFactory(logger *slog.Logger) *AdapterFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdapterFactory{
		constructors: make(map[string]AdapterConstructor),
		logger:       logger,
	}
}

// Register adds an adapter constructor under the given type name.
// Registering the same type twice replaces the previous constructor.
func (f *AdapterFactory) Register(adapterType string, constructor AdapterConstructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.constructors[adapterType]; exists {
		f.logger.Warn("Replacing registered gateway adapter constructor", "adapterType", adapterType)
	}
	f.constructors[adapterType] = constructor
}

// CreateAdapter builds an adapter for the configured type
func (f *AdapterFactory) CreateAdapter(config AdapterConfig) (IGatewayAdapter, error) {
	f.mu.RLock()
	constructor, ok := f.constructors[config.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", utils.ErrInvalidAdapterType, config.Type, f.RegisteredTypes())
	}

	adapter, err := constructor(config, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %q adapter: %w", config.Type, err)
	}
	return adapter, nil
}

// RegisteredTypes returns the sorted list of registered adapter type names
func (f *AdapterFactory) RegisteredTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]string, 0, len(f.constructors))
	for t := range f.constructors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
