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

package granthandlers

import (
	"time"

	clientmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/claims"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/jwt"
	authzconstants "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/store"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/pkce"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	usermodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/user/model"
	userservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/user/service"
)

// authorizationCodeGrantHandler handles the authorization code grant type.
type authorizationCodeGrantHandler struct {
	JWTService  jwt.JWTServiceInterface
	AuthZStore  store.AuthorizationCodeStoreInterface
	UserService userservice.UserServiceInterface
}

// NewAuthorizationCodeGrantHandler creates a new instance of the authorization code grant handler.
func NewAuthorizationCodeGrantHandler() GrantHandlerInterface {
	return &authorizationCodeGrantHandler{
		JWTService:  jwt.GetJWTService(),
		AuthZStore:  store.NewAuthorizationCodeStore(),
		UserService: userservice.GetUserService(),
	}
}

// ValidateGrant validates the shape of the authorization code grant request.
func (h *authorizationCodeGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthClient *clientmodel.OAuthClient) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypeAuthorizationCode {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if !oauthClient.IsAllowedGrantType(constants.GrantTypeAuthorizationCode) {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnauthorizedClient,
			ErrorDescription: "Authorization code grant type is not allowed for the client",
		}
	}
	if tokenRequest.Code == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Authorization code is required",
		}
	}
	if tokenRequest.RedirectURI == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Redirect URI is required",
		}
	}

	return nil
}

// HandleGrant redeems an authorization code and issues the token response.
// The code is consumed with a compare-and-swap before the binding and PKCE
// checks run, so a replayed, raced, or failed exchange never leaves the code
// redeemable for another attempt.
func (h *authorizationCodeGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthClient *clientmodel.OAuthClient) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationCodeGrantHandler"))

	authCode, err := h.AuthZStore.GetAuthorizationCode(tokenRequest.ClientID, tokenRequest.Code)
	if err != nil || authCode.Code == "" {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid authorization code",
		}
	}

	if err := h.AuthZStore.ConsumeAuthorizationCode(tokenRequest.ClientID, tokenRequest.Code); err != nil {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid authorization code",
		}
	}

	if errResponse := h.validateAuthorizationCode(tokenRequest, authCode); errResponse != nil {
		return nil, errResponse
	}

	user, svcErr := h.UserService.GetUser(authCode.AuthorizedUserID)
	if svcErr != nil {
		logger.Error("Failed to resolve the authorized user",
			log.String("userID", authCode.AuthorizedUserID))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	return h.issueTokens(authCode, user)
}

// validateAuthorizationCode checks the redeemed code against the token request.
func (h *authorizationCodeGrantHandler) validateAuthorizationCode(tokenRequest *model.TokenRequest,
	authCode authzmodel.AuthorizationCode) *model.ErrorResponse {
	if tokenRequest.ClientID != authCode.ClientID {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Authorization code was issued to another client",
		}
	}

	// The redirect URI must byte-match the one bound at authorization time.
	if tokenRequest.RedirectURI != authCode.RedirectURI {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid redirect URI",
		}
	}

	if authCode.State != authzconstants.AuthCodeStateActive {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Inactive authorization code",
		}
	}

	if authCode.ExpiryTime <= time.Now().Unix() {
		if err := h.AuthZStore.ExpireAuthorizationCode(authCode); err != nil {
			log.GetLogger().Error("Failed to mark authorization code as expired", log.Error(err))
		}
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Expired authorization code",
		}
	}

	return h.validatePKCE(tokenRequest, authCode)
}

// validatePKCE verifies the code verifier against the challenge bound to the code.
func (h *authorizationCodeGrantHandler) validatePKCE(tokenRequest *model.TokenRequest,
	authCode authzmodel.AuthorizationCode) *model.ErrorResponse {
	if authCode.CodeChallenge == "" {
		if tokenRequest.CodeVerifier != "" {
			return &model.ErrorResponse{
				Error:            constants.ErrorInvalidRequest,
				ErrorDescription: "A code verifier was sent but no code challenge was bound to the code",
			}
		}
		return nil
	}

	if tokenRequest.CodeVerifier == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Code verifier is required",
		}
	}

	if err := pkce.VerifyCodeVerifier(authCode.CodeChallenge, authCode.CodeChallengeMethod,
		tokenRequest.CodeVerifier); err != nil {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "PKCE validation failed",
		}
	}

	return nil
}

// issueTokens mints the access token, and the ID token when the openid scope was granted.
func (h *authorizationCodeGrantHandler) issueTokens(authCode authzmodel.AuthorizationCode,
	user *usermodel.User) (*model.TokenResponseDTO, *model.ErrorResponse) {
	accessTokenClaims := claims.BuildAccessTokenClaims(user, authCode.ClientID, authCode.Scopes)

	audience := config.GetServerRuntime().Config.OAuth.JWT.ResourceAudience
	if audience == "" {
		audience = authCode.ClientID
	}

	validityPeriod := jwt.GetTokenValidityPeriod()
	accessToken, iat, err := h.JWTService.GenerateJWT(authCode.AuthorizedUserID, audience,
		validityPeriod, accessTokenClaims)
	if err != nil {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	response := &model.TokenResponseDTO{
		AccessToken: model.TokenDTO{
			Token:     accessToken,
			TokenType: constants.TokenTypeBearer,
			IssuedAt:  iat,
			ExpiresIn: validityPeriod,
			Scopes:    authCode.Scopes,
			ClientID:  authCode.ClientID,
		},
	}

	if claims.RequestsIDToken(authCode.Scopes) {
		idTokenClaims := claims.BuildIDTokenClaims(user, authCode.Scopes, authCode.TimeCreated)
		idTokenValidity := jwt.GetIDTokenValidityPeriod()
		idToken, idIat, err := h.JWTService.GenerateJWT(authCode.AuthorizedUserID, authCode.ClientID,
			idTokenValidity, idTokenClaims)
		if err != nil {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorServerError,
				ErrorDescription: "Failed to generate token",
			}
		}
		response.IDToken = model.TokenDTO{
			Token:     idToken,
			TokenType: constants.TokenTypeBearer,
			IssuedAt:  idIat,
			ExpiresIn: idTokenValidity,
			Scopes:    authCode.Scopes,
			ClientID:  authCode.ClientID,
		}
	}

	return response, nil
}
