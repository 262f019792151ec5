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
	"math/rand"
	"time"
)

// calculateBackoff returns an exponential backoff duration with jitter, capped by max.
// Uses "equal jitter" strategy: base/2 + random(0, base/2), giving a range of [base/2, base].
// This prevents thundering herd when many clients retry simultaneously.
func calculateBackoff(min, max time.Duration, attempt int) time.Duration {
	// Calculate base exponential backoff: 2^(attempt-1) * min
	base := min * time.Duration(1<<uint(attempt-1))
	if base > max {
		base = max
	}
	// Equal jitter: random value between base/2 and base
	halfBase := base / 2
	if halfBase <= 0 {
		return base
	}
	return halfBase + time.Duration(rand.Int63n(int64(halfBase)))
}
