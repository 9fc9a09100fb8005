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

// Package jwt provides functionality for generating and managing JWT tokens.
package jwt

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const defaultTokenValidity = 900 // default validity period of 15 minutes

var (
	instance *JWTService
	once     sync.Once
)

// JWTServiceInterface defines the interface for JWT operations.
type JWTServiceInterface interface {
	Init() error
	GetPublicKey() *rsa.PublicKey
	GetKeyID() string
	GenerateJWT(sub, aud string, validityPeriod int64, claims map[string]interface{}) (string, int64, error)
	VerifyJWTSignature(token string, publicKey *rsa.PublicKey) error
}

// JWTService implements the JWTServiceInterface for generating and managing JWT tokens.
type JWTService struct {
	privateKey *rsa.PrivateKey
	keyID      string
}

// GetJWTService returns a singleton instance of JWTService.
func GetJWTService() *JWTService {
	once.Do(func() {
		instance = &JWTService{}
	})
	return instance
}

// Init loads the private key from the configured file path. The server must
// not start when the key is missing or malformed.
func (js *JWTService) Init() error {
	serverRuntime := config.GetServerRuntime()
	keyFilePath := path.Join(serverRuntime.ServerHome, serverRuntime.Config.Security.KeyFile)
	keyFilePath = filepath.Clean(keyFilePath)

	if _, err := os.Stat(keyFilePath); os.IsNotExist(err) {
		return errors.New("key file not found at " + keyFilePath)
	}

	keyData, err := os.ReadFile(keyFilePath)
	if err != nil {
		return err
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return errors.New("failed to decode PEM block containing private key")
	}

	// Handle PKCS1 and PKCS8 private keys.
	switch block.Type {
	case "RSA PRIVATE KEY":
		js.privateKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return err
		}
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return err
		}
		var ok bool
		js.privateKey, ok = key.(*rsa.PrivateKey)
		if !ok {
			return errors.New("not an RSA private key")
		}
	default:
		return errors.New("unsupported private key type: " + block.Type)
	}

	js.keyID, err = computeKeyID(&js.privateKey.PublicKey)
	if err != nil {
		return err
	}

	return nil
}

// GetPublicKey returns the RSA public key corresponding to the server's private key.
func (js *JWTService) GetPublicKey() *rsa.PublicKey {
	if js.privateKey == nil {
		return nil
	}
	return &js.privateKey.PublicKey
}

// GetKeyID returns the key identifier published in the JWKS document and JWT headers.
func (js *JWTService) GetKeyID() string {
	return js.keyID
}

// GenerateJWT generates a standard JWT signed with the server's private key.
func (js *JWTService) GenerateJWT(sub, aud string, validityPeriod int64, claims map[string]interface{}) (
	string, int64, error) {
	if js.privateKey == nil {
		return "", 0, errors.New("private key not loaded")
	}

	serverRuntime := config.GetServerRuntime()

	header := map[string]string{
		"alg": "RS256",
		"typ": "JWT",
		"kid": js.keyID,
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", 0, err
	}

	if validityPeriod == 0 {
		validityPeriod = defaultTokenValidity
	}
	iat := time.Now()
	expirationTime := iat.Add(time.Duration(validityPeriod) * time.Second).Unix()

	payload := map[string]interface{}{
		"sub": sub,
		"iss": serverRuntime.Config.OAuth.JWT.Issuer,
		"aud": aud,
		"exp": expirationTime,
		"iat": iat.Unix(),
		"nbf": iat.Unix(),
		"jti": utils.GenerateUUID(),
	}

	for key, value := range claims {
		payload[key] = value
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", 0, err
	}

	headerBase64 := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadBase64 := base64.RawURLEncoding.EncodeToString(payloadJSON)

	signingInput := headerBase64 + "." + payloadBase64
	hashed := sha256.Sum256([]byte(signingInput))

	signature, err := rsa.SignPKCS1v15(nil, js.privateKey, crypto.SHA256, hashed[:])
	if err != nil {
		return "", 0, err
	}

	signatureBase64 := base64.RawURLEncoding.EncodeToString(signature)

	return signingInput + "." + signatureBase64, iat.Unix(), nil
}

// VerifyJWTSignature verifies the RS256 signature of a JWT against the given public key.
func (js *JWTService) VerifyJWTSignature(token string, publicKey *rsa.PublicKey) error {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) != 3 {
		return errors.New("invalid JWT format")
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return errors.New("failed to decode JWT signature")
	}

	hashed := sha256.Sum256([]byte(parts[0] + "." + parts[1]))
	return rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, hashed[:], signature)
}

// computeKeyID derives a stable key identifier from the SHA-256 thumbprint of
// the DER-encoded public key.
func computeKeyID(publicKey *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", err
	}
	thumbprint := sha256.Sum256(der)
	return base64.RawURLEncoding.EncodeToString(thumbprint[:16]), nil
}
