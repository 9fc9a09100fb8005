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

package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
)

// GetTokenValidityPeriod retrieves the access token validity period from the configuration.
func GetTokenValidityPeriod() int64 {
	conf := config.GetServerRuntime().Config
	validityPeriod := conf.OAuth.JWT.ValidityPeriod

	if validityPeriod == 0 {
		validityPeriod = defaultTokenValidity
	}

	return validityPeriod
}

// GetIDTokenValidityPeriod retrieves the ID token validity period from the configuration.
func GetIDTokenValidityPeriod() int64 {
	conf := config.GetServerRuntime().Config
	validityPeriod := conf.OAuth.JWT.IDTokenValidityPeriod

	if validityPeriod == 0 {
		validityPeriod = defaultTokenValidity
	}

	return validityPeriod
}

// DecodeJWT decodes a JWT string and returns its header and payload as maps.
// It does not verify the signature.
func DecodeJWT(token string) (map[string]interface{}, map[string]interface{}, error) {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) != 3 {
		return nil, nil, errors.New("invalid JWT format")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, errors.New("failed to decode JWT header: " + err.Error())
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, errors.New("failed to decode JWT payload: " + err.Error())
	}

	header := make(map[string]interface{})
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, errors.New("failed to unmarshal JWT header: " + err.Error())
	}
	payload := make(map[string]interface{})
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, nil, errors.New("failed to unmarshal JWT payload: " + err.Error())
	}

	return header, payload, nil
}
