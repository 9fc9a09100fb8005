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

// Package jwks provides the implementation for publishing the JSON Web Key Set (JWKS).
package jwks

import (
	"encoding/base64"
	"errors"
	"math/big"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/jwt"
)

// JWK represents a single JSON Web Key.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSResponse represents the JSON Web Key Set document.
type JWKSResponse struct {
	Keys []JWK `json:"keys"`
}

// JWKSServiceInterface defines the interface for the JWKS service.
type JWKSServiceInterface interface {
	GetJWKS() (*JWKSResponse, error)
}

// JWKSService implements the JWKSServiceInterface from the server's signing key.
type JWKSService struct {
	jwtService jwt.JWTServiceInterface
}

// NewJWKSService creates a new instance of JWKSService.
func NewJWKSService(jwtService jwt.JWTServiceInterface) JWKSServiceInterface {
	return &JWKSService{
		jwtService: jwtService,
	}
}

// GetJWKS returns the JSON Web Key Set containing the token signing public key.
func (s *JWKSService) GetJWKS() (*JWKSResponse, error) {
	publicKey := s.jwtService.GetPublicKey()
	if publicKey == nil {
		return nil, errors.New("signing key is not available")
	}

	return &JWKSResponse{
		Keys: []JWK{
			{
				Kty: "RSA",
				Use: "sig",
				Alg: "RS256",
				Kid: s.jwtService.GetKeyID(),
				N:   base64.RawURLEncoding.EncodeToString(publicKey.N.Bytes()),
				E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(publicKey.E)).Bytes()),
			},
		},
	}, nil
}
