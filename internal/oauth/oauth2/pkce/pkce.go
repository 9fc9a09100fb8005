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

// Package pkce provides PKCE (Proof Key for Code Exchange) validation utilities.
package pkce

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
)

// PKCE validation errors.
var (
	ErrInvalidCodeVerifier    = errors.New("invalid code verifier")
	ErrInvalidCodeChallenge   = errors.New("invalid code challenge")
	ErrInvalidChallengeMethod = errors.New("invalid code challenge method")
	ErrPKCEValidationFailed   = errors.New("PKCE validation failed")
)

// isUnreservedChar reports whether a character is in the RFC 7636 unreserved set.
func isUnreservedChar(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// isBase64URLChar reports whether a character is in the unpadded base64url alphabet.
func isBase64URLChar(c rune) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

// ValidateCodeVerifier validates the format of a code verifier per RFC 7636:
// 43 to 128 characters from the unreserved set.
func ValidateCodeVerifier(codeVerifier string) error {
	if len(codeVerifier) < 43 || len(codeVerifier) > 128 {
		return ErrInvalidCodeVerifier
	}
	for _, c := range codeVerifier {
		if !isUnreservedChar(c) {
			return ErrInvalidCodeVerifier
		}
	}
	return nil
}

// ValidateCodeChallenge validates the format of a code challenge per RFC 7636.
// An S256 challenge is exactly 43 unpadded base64url characters.
func ValidateCodeChallenge(codeChallenge, codeChallengeMethod string) error {
	switch codeChallengeMethod {
	case "", constants.CodeChallengeMethodPlain:
		if len(codeChallenge) < 43 || len(codeChallenge) > 128 {
			return ErrInvalidCodeChallenge
		}
		for _, c := range codeChallenge {
			if !isUnreservedChar(c) {
				return ErrInvalidCodeChallenge
			}
		}
		return nil
	case constants.CodeChallengeMethodS256:
		if len(codeChallenge) != 43 {
			return ErrInvalidCodeChallenge
		}
		for _, c := range codeChallenge {
			if !isBase64URLChar(c) {
				return ErrInvalidCodeChallenge
			}
		}
		return nil
	default:
		return ErrInvalidChallengeMethod
	}
}

// ComputeCodeChallenge derives the code challenge for a verifier using the given method.
func ComputeCodeChallenge(codeVerifier, codeChallengeMethod string) (string, error) {
	if err := ValidateCodeVerifier(codeVerifier); err != nil {
		return "", err
	}

	switch codeChallengeMethod {
	case "", constants.CodeChallengeMethodPlain:
		return codeVerifier, nil
	case constants.CodeChallengeMethodS256:
		hash := sha256.Sum256([]byte(codeVerifier))
		return base64.RawURLEncoding.EncodeToString(hash[:]), nil
	default:
		return "", ErrInvalidChallengeMethod
	}
}

// VerifyCodeVerifier checks a presented code verifier against the stored challenge.
// An absent method defaults to plain per RFC 7636.
func VerifyCodeVerifier(codeChallenge, codeChallengeMethod, codeVerifier string) error {
	if codeChallenge == "" {
		return ErrInvalidCodeChallenge
	}

	derived, err := ComputeCodeChallenge(codeVerifier, codeChallengeMethod)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(derived), []byte(codeChallenge)) != 1 {
		return ErrPKCEValidationFailed
	}
	return nil
}
