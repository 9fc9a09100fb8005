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

package pkce

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
)

const testVerifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

type PKCETestSuite struct {
	suite.Suite
}

func TestPKCESuite(t *testing.T) {
	suite.Run(t, new(PKCETestSuite))
}

func (suite *PKCETestSuite) TestValidateCodeVerifier() {
	testCases := []struct {
		name     string
		verifier string
		wantErr  error
	}{
		{
			name:     "Valid verifier",
			verifier: testVerifier,
			wantErr:  nil,
		},
		{
			name:     "Minimum length",
			verifier: strings.Repeat("a", 43),
			wantErr:  nil,
		},
		{
			name:     "Maximum length",
			verifier: strings.Repeat("a", 128),
			wantErr:  nil,
		},
		{
			name:     "All unreserved special characters",
			verifier: strings.Repeat("aB3-._~", 7),
			wantErr:  nil,
		},
		{
			name:     "Too short",
			verifier: strings.Repeat("a", 42),
			wantErr:  ErrInvalidCodeVerifier,
		},
		{
			name:     "Too long",
			verifier: strings.Repeat("a", 129),
			wantErr:  ErrInvalidCodeVerifier,
		},
		{
			name:     "Invalid character",
			verifier: strings.Repeat("a", 42) + "+",
			wantErr:  ErrInvalidCodeVerifier,
		},
		{
			name:     "Empty",
			verifier: "",
			wantErr:  ErrInvalidCodeVerifier,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			err := ValidateCodeVerifier(tc.verifier)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (suite *PKCETestSuite) TestValidateCodeChallenge() {
	s256Challenge := strings.Repeat("a", 43)

	testCases := []struct {
		name      string
		challenge string
		method    string
		wantErr   error
	}{
		{
			name:      "Valid S256 challenge",
			challenge: s256Challenge,
			method:    constants.CodeChallengeMethodS256,
			wantErr:   nil,
		},
		{
			name:      "S256 challenge wrong length",
			challenge: strings.Repeat("a", 44),
			method:    constants.CodeChallengeMethodS256,
			wantErr:   ErrInvalidCodeChallenge,
		},
		{
			name:      "S256 challenge with tilde",
			challenge: strings.Repeat("a", 42) + "~",
			method:    constants.CodeChallengeMethodS256,
			wantErr:   ErrInvalidCodeChallenge,
		},
		{
			name:      "Valid plain challenge",
			challenge: testVerifier,
			method:    constants.CodeChallengeMethodPlain,
			wantErr:   nil,
		},
		{
			name:      "Absent method defaults to plain",
			challenge: testVerifier,
			method:    "",
			wantErr:   nil,
		},
		{
			name:      "Plain challenge too short",
			challenge: strings.Repeat("a", 42),
			method:    constants.CodeChallengeMethodPlain,
			wantErr:   ErrInvalidCodeChallenge,
		},
		{
			name:      "Unsupported method",
			challenge: s256Challenge,
			method:    "S512",
			wantErr:   ErrInvalidChallengeMethod,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			err := ValidateCodeChallenge(tc.challenge, tc.method)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (suite *PKCETestSuite) TestComputeCodeChallengeS256() {
	challenge, err := ComputeCodeChallenge(testVerifier, constants.CodeChallengeMethodS256)
	assert.NoError(suite.T(), err)

	hash := sha256.Sum256([]byte(testVerifier))
	expected := base64.RawURLEncoding.EncodeToString(hash[:])
	assert.Equal(suite.T(), expected, challenge)
	assert.Len(suite.T(), challenge, 43)
}

func (suite *PKCETestSuite) TestComputeCodeChallengePlain() {
	challenge, err := ComputeCodeChallenge(testVerifier, constants.CodeChallengeMethodPlain)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), testVerifier, challenge)
}

func (suite *PKCETestSuite) TestComputeCodeChallengeInvalidVerifier() {
	_, err := ComputeCodeChallenge("short", constants.CodeChallengeMethodS256)
	assert.ErrorIs(suite.T(), err, ErrInvalidCodeVerifier)
}

func (suite *PKCETestSuite) TestVerifyCodeVerifier() {
	s256Challenge, err := ComputeCodeChallenge(testVerifier, constants.CodeChallengeMethodS256)
	assert.NoError(suite.T(), err)

	wrongVerifier := strings.Repeat("b", 43)

	testCases := []struct {
		name      string
		challenge string
		method    string
		verifier  string
		wantErr   error
	}{
		{
			name:      "S256 match",
			challenge: s256Challenge,
			method:    constants.CodeChallengeMethodS256,
			verifier:  testVerifier,
			wantErr:   nil,
		},
		{
			name:      "S256 mismatch",
			challenge: s256Challenge,
			method:    constants.CodeChallengeMethodS256,
			verifier:  wrongVerifier,
			wantErr:   ErrPKCEValidationFailed,
		},
		{
			name:      "Plain match",
			challenge: testVerifier,
			method:    constants.CodeChallengeMethodPlain,
			verifier:  testVerifier,
			wantErr:   nil,
		},
		{
			name:      "Absent method treated as plain",
			challenge: testVerifier,
			method:    "",
			verifier:  testVerifier,
			wantErr:   nil,
		},
		{
			name:      "Plain mismatch",
			challenge: testVerifier,
			method:    constants.CodeChallengeMethodPlain,
			verifier:  wrongVerifier,
			wantErr:   ErrPKCEValidationFailed,
		},
		{
			name:      "Missing challenge",
			challenge: "",
			method:    constants.CodeChallengeMethodS256,
			verifier:  testVerifier,
			wantErr:   ErrInvalidCodeChallenge,
		},
		{
			name:      "Malformed verifier",
			challenge: s256Challenge,
			method:    constants.CodeChallengeMethodS256,
			verifier:  "tooshort",
			wantErr:   ErrInvalidCodeVerifier,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			err := VerifyCodeVerifier(tc.challenge, tc.method, tc.verifier)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
