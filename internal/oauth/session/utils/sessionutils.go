/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package utils provides the signed flow continuation token used to carry
// authorization request state across browser round trips.
package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/crypto/hash"
)

// FlowContextValidityPeriod bounds how long an in-flight authorization request
// may sit at the login or consent page.
const FlowContextValidityPeriod = 10 * time.Minute

// Flow continuation token errors.
var (
	ErrMalformedFlowContext = errors.New("malformed flow context token")
	ErrInvalidSignature     = errors.New("invalid flow context signature")
	ErrFlowContextExpired   = errors.New("flow context has expired")
)

// EncodeFlowContext serializes and signs a flow context. The result is a
// base64url payload and an HMAC-SHA256 signature joined with a dot.
func EncodeFlowContext(flowCtx model.FlowContext, signingKey string) (string, error) {
	if flowCtx.ExpiryTime == 0 {
		flowCtx.ExpiryTime = time.Now().Add(FlowContextValidityPeriod).Unix()
	}

	payload, err := json.Marshal(flowCtx)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	signature := hash.HMACSHA256([]byte(signingKey), []byte(encoded))
	return encoded + "." + signature, nil
}

// DecodeFlowContext verifies the signature and expiry of a continuation token
// and returns the embedded flow context. Tampered tokens fail closed.
func DecodeFlowContext(token, signingKey string) (*model.FlowContext, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrMalformedFlowContext
	}

	if !hash.VerifyHMACSHA256([]byte(signingKey), []byte(parts[0]), parts[1]) {
		return nil, ErrInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformedFlowContext
	}

	var flowCtx model.FlowContext
	if err := json.Unmarshal(payload, &flowCtx); err != nil {
		return nil, ErrMalformedFlowContext
	}

	if time.Now().Unix() >= flowCtx.ExpiryTime {
		return nil, ErrFlowContextExpired
	}

	return &flowCtx, nil
}
