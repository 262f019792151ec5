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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HttpRequest describes a single outbound HTTP request declaratively.
// Name identifies the request in logs and error messages.
type HttpRequest struct {
	Name   string
	URL    string
	Method string

	headers     map[string]string
	queryParams url.Values

	body        []byte
	contentType string
}

// SetHeader sets a request header.
func (r *HttpRequest) SetHeader(key, value string) {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
}

// SetQueryParam sets a URL query parameter.
func (r *HttpRequest) SetQueryParam(key, value string) {
	if r.queryParams == nil {
		r.queryParams = url.Values{}
	}
	r.queryParams.Set(key, value)
}

// SetJSONBody marshals the given value as the JSON request body.
func (r *HttpRequest) SetJSONBody(body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	r.body = data
	r.contentType = "application/json"
	return nil
}

// SetFormData sets a URL-encoded form body.
func (r *HttpRequest) SetFormData(form map[string]string) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	r.body = []byte(values.Encode())
	r.contentType = "application/x-www-form-urlencoded"
}

// buildHttpRequest materializes the declarative request into an *http.Request.
func (r *HttpRequest) buildHttpRequest(ctx context.Context) (*http.Request, error) {
	if r.URL == "" {
		return nil, fmt.Errorf("request URL is required")
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	requestURL := r.URL
	if len(r.queryParams) > 0 {
		sep := "?"
		if strings.Contains(requestURL, "?") {
			sep = "&"
		}
		requestURL += sep + r.queryParams.Encode()
	}

	var bodyReader *bytes.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	for k, v := range r.headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}
