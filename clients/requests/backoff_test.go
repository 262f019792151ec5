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

package requests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoff(t *testing.T) {
	t.Run("First attempt stays within [min/2, min]", func(t *testing.T) {
		min := 100 * time.Millisecond
		max := 5 * time.Second

		for i := 0; i < 100; i++ {
			wait := calculateBackoff(min, max, 1)
			assert.GreaterOrEqual(t, wait, min/2)
			assert.LessOrEqual(t, wait, min)
		}
	})

	t.Run("Backoff doubles per attempt with equal jitter", func(t *testing.T) {
		min := 100 * time.Millisecond
		max := 5 * time.Second

		// attempt=3 -> base = min(100ms*4, 5s) = 400ms, wait in [200ms, 400ms]
		for i := 0; i < 100; i++ {
			wait := calculateBackoff(min, max, 3)
			assert.GreaterOrEqual(t, wait, 200*time.Millisecond)
			assert.LessOrEqual(t, wait, 400*time.Millisecond)
		}
	})

	t.Run("Backoff is capped by max regardless of attempt count", func(t *testing.T) {
		min := 1 * time.Second
		max := 10 * time.Second

		for i := 0; i < 100; i++ {
			wait := calculateBackoff(min, max, 30)
			assert.GreaterOrEqual(t, wait, max/2)
			assert.LessOrEqual(t, wait, max)
		}
	})

	t.Run("Degenerate near-zero min returns base unmodified", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), calculateBackoff(0, time.Second, 1))
		assert.Equal(t, time.Duration(1), calculateBackoff(1, time.Second, 1))
	})
}
