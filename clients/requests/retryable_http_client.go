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
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// outcomeKind classifies the result of a single HTTP attempt.
type outcomeKind int

const (
	// outcomeSuccess carries a response the caller should receive as-is.
	outcomeSuccess outcomeKind = iota
	// outcomeRetry signals a transient failure; the loop decides whether
	// another attempt is allowed.
	outcomeRetry
	// outcomeFatal carries a terminal error; no further attempts are made.
	outcomeFatal
)

// attemptOutcome is the tagged result of one attempt. Exactly one of resp or
// err is set for outcomeSuccess and outcomeFatal; both are nil for outcomeRetry.
type attemptOutcome struct {
	kind outcomeKind
	resp *http.Response
	err  error
}

func success(resp *http.Response) attemptOutcome {
	return attemptOutcome{kind: outcomeSuccess, resp: resp}
}

func retry() attemptOutcome {
	return attemptOutcome{kind: outcomeRetry}
}

func fatal(err error) attemptOutcome {
	return attemptOutcome{kind: outcomeFatal, err: err}
}

// RetryableHTTPClient wraps an HttpClient with retry logic.
// It implements the HttpClient interface and can be used anywhere a plain
// http.Client is accepted.
type RetryableHTTPClient struct {
	client HttpClient
	config RequestRetryConfig
}

// NewRetryableHTTPClient creates a new RetryableHTTPClient.
// Config is optional - defaults will be used if not provided.
func NewRetryableHTTPClient(client HttpClient, config ...RequestRetryConfig) *RetryableHTTPClient {
	if client == nil {
		client = &http.Client{}
	}
	var cfg RequestRetryConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	return &RetryableHTTPClient{
		client: client,
		config: cfg,
	}
}

// Do executes the HTTP request with retry logic.
//
// The request body is read fully into memory once and replayed on every
// attempt. Returned responses always carry an in-memory buffered body; the
// network-backed reader is closed here, never by the caller.
func (c *RetryableHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	cfg := c.config.getRetryConfig(req.Method)
	log := slog.Default().With(
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	)

	// Capture body bytes for replay on retries
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if closeErr := req.Body.Close(); closeErr != nil {
			log.Warn("failed to close request body", slog.String("error", closeErr.Error()))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	for attempt := 1; attempt <= cfg.RetryAttemptsMax+1; attempt++ {
		isLastAttempt := attempt == cfg.RetryAttemptsMax+1

		// Reset body for each attempt
		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		outcome := c.doAttempt(ctx, req, cfg, attempt, isLastAttempt, log)
		switch outcome.kind {
		case outcomeSuccess:
			return outcome.resp, nil
		case outcomeFatal:
			return nil, outcome.err
		case outcomeRetry:
			// Wait before next attempt; the wait races against the parent
			// context so cancellation aborts the whole operation.
			if !isLastAttempt {
				waitDuration := calculateBackoff(cfg.RetryWaitMin, cfg.RetryWaitMax, attempt)
				select {
				case <-time.After(waitDuration):
					// Continue to next attempt
				case <-ctx.Done():
					return nil, fmt.Errorf("context cancelled during retry wait: %w", ctx.Err())
				}
			}
		}
	}
	return nil, fmt.Errorf("unreachable: retry loop exited without returning a response or error")
}

func (c *RetryableHTTPClient) doAttempt(ctx context.Context, req *http.Request, cfg RequestRetryConfig, attempt int, isLastAttempt bool, log *slog.Logger) attemptOutcome {
	attemptCtx, cancel := context.WithTimeout(ctx, cfg.AttemptTimeout)
	defer cancel()

	reqWithTimeout := req.Clone(attemptCtx)

	// Request editors run on every attempt so hooks that attach credentials
	// see state changes made between attempts.
	for _, edit := range cfg.RequestEditors {
		if err := edit(attemptCtx, reqWithTimeout); err != nil {
			return fatal(fmt.Errorf("request editor failed: %w", err))
		}
	}

	start := time.Now()
	resp, err := c.client.Do(reqWithTimeout)
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return fatal(fmt.Errorf("context cancelled or timed out: %w", ctx.Err()))
		}
		if attemptCtx.Err() != nil {
			logAttrs := []any{
				slog.Int("attempt", attempt),
				slog.Int("maxAttempts", cfg.RetryAttemptsMax+1),
				slog.Duration("timeout", cfg.AttemptTimeout),
			}
			if isLastAttempt {
				log.Warn("HTTP request timed out after all attempts", logAttrs...)
				return fatal(fmt.Errorf("request timed out after %d attempts: %w", attempt, err))
			}
			log.Debug("HTTP request attempt timed out, retrying", logAttrs...)
			return retry()
		}
		logAttrs := []any{
			slog.Int("attempt", attempt),
			slog.Int("maxAttempts", cfg.RetryAttemptsMax+1),
			slog.String("error", err.Error()),
		}
		if isLastAttempt {
			log.Warn("HTTP request failed after all attempts", logAttrs...)
			return fatal(fmt.Errorf("request failed after %d attempts: %w", attempt, err))
		}
		log.Debug("HTTP request failed, retrying", logAttrs...)
		return retry()
	}

	// Check if status code is retryable
	if cfg.RetryOnStatus != nil && cfg.RetryOnStatus(resp.StatusCode) {
		logAttrs := []any{
			slog.Int("attempt", attempt),
			slog.Int("maxAttempts", cfg.RetryAttemptsMax+1),
			slog.Duration("duration", elapsed),
			slog.Int("status", resp.StatusCode),
		}
		if isLastAttempt {
			// Attempts exhausted: hand the last response back to the caller
			// rather than an opaque error, so it can inspect status and body.
			log.Warn("HTTP request returned retryable status after all attempts", logAttrs...)
			return c.bufferResponse(resp, log)
		}
		log.Debug("HTTP request returned retryable status, retrying", logAttrs...)
		// Drain and close body to allow connection reuse
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			log.Warn("failed to drain response body", slog.String("error", err.Error()))
		}
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("failed to close response body", slog.String("error", closeErr.Error()))
		}
		return retry()
	}

	return c.bufferResponse(resp, log)
}

// bufferResponse reads the body before attemptCtx is canceled and replaces it
// with an in-memory copy so the caller can still read it afterwards.
func (c *RetryableHTTPClient) bufferResponse(resp *http.Response, log *slog.Logger) attemptOutcome {
	bodyBytes, err := io.ReadAll(resp.Body)
	if closeErr := resp.Body.Close(); closeErr != nil {
		log.Warn("failed to close response body", slog.String("error", closeErr.Error()))
	}
	if err != nil {
		return fatal(fmt.Errorf("failed to read response body: %w", err))
	}
	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return success(resp)
}
