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

// Package token provides the handler for managing OAuth 2.0 token requests.
package token

import (
	"encoding/json"
	"net/http"

	clientprovider "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/provider"
	clientservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/service"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/granthandlers"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/model"
	serverconst "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

// TokenHandler handles OAuth 2.0 token requests.
type TokenHandler struct {
	clientService clientservice.ClientServiceInterface
}

// NewTokenHandler creates a new instance of TokenHandler.
func NewTokenHandler() *TokenHandler {
	return &TokenHandler{
		clientService: clientprovider.NewClientProvider().GetClientService(),
	}
}

// HandleTokenRequest handles the token request for OAuth 2.0.
// It authenticates the client and delegates to the grant handler.
func (th *TokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to parse request body", http.StatusBadRequest, nil)
		return
	}

	grantType := r.FormValue(constants.GrantType)
	if grantType == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Missing grant_type parameter", http.StatusBadRequest, nil)
		return
	}

	grantHandler := granthandlers.GetGrantHandler(grantType)
	if grantHandler == nil {
		utils.WriteJSONError(w, constants.ErrorUnsupportedGrantType,
			"Unsupported grant type", http.StatusBadRequest, nil)
		return
	}

	clientID, clientSecret, errResponse := th.extractClientCredentials(r)
	if errResponse != nil {
		statusCode := http.StatusUnauthorized
		var respHeaders []map[string]string
		if errResponse.Error == constants.ErrorInvalidRequest {
			statusCode = http.StatusBadRequest
		} else {
			respHeaders = []map[string]string{{"WWW-Authenticate": "Basic"}}
		}
		utils.WriteJSONError(w, errResponse.Error, errResponse.ErrorDescription, statusCode, respHeaders)
		return
	}
	if clientID == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidClient,
			"Client id is required", http.StatusUnauthorized, nil)
		return
	}

	oauthClient, svcErr := th.clientService.AuthenticateClient(clientID, clientSecret)
	if svcErr != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidClient,
			"Invalid client credentials", http.StatusUnauthorized, nil)
		return
	}

	tokenRequest := &model.TokenRequest{
		GrantType:    grantType,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        r.FormValue(constants.Scope),
		CodeVerifier: r.FormValue(constants.CodeVerifier),
		Code:         r.FormValue(constants.Code),
		RedirectURI:  r.FormValue(constants.RedirectURI),
	}

	if tokenError := grantHandler.ValidateGrant(tokenRequest, oauthClient); tokenError != nil {
		utils.WriteJSONError(w, tokenError.Error, tokenError.ErrorDescription, http.StatusBadRequest, nil)
		return
	}

	tokenResponseDTO, tokenError := grantHandler.HandleGrant(tokenRequest, oauthClient)
	if tokenError != nil {
		utils.WriteJSONError(w, tokenError.Error, tokenError.ErrorDescription, http.StatusBadRequest, nil)
		return
	}

	tokenResponse := model.TokenResponse{
		AccessToken: tokenResponseDTO.AccessToken.Token,
		IDToken:     tokenResponseDTO.IDToken.Token,
		TokenType:   tokenResponseDTO.AccessToken.TokenType,
		ExpiresIn:   tokenResponseDTO.AccessToken.ExpiresIn,
		Scope:       utils.JoinScopes(tokenResponseDTO.AccessToken.Scopes),
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	// Sensitive material must not be cached.
	w.Header().Set(serverconst.CacheControlHeaderName, serverconst.CacheControlNoStore)
	w.Header().Set(serverconst.PragmaHeaderName, "no-cache")

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(tokenResponse); err != nil {
		logger.Error("Failed to write token response", log.Error(err))
		return
	}
	logger.Debug("Token response sent", log.String("clientID", clientID))
}

// extractClientCredentials resolves the client credentials from either the
// Authorization header or the request body. Sending both is rejected.
func (th *TokenHandler) extractClientCredentials(r *http.Request) (string, string, *model.ErrorResponse) {
	clientID := ""
	clientSecret := ""

	if r.Header.Get(serverconst.AuthorizationHeaderName) != "" {
		var err error
		clientID, clientSecret, err = utils.ExtractBasicAuthCredentials(r)
		if err != nil {
			return "", "", &model.ErrorResponse{
				Error:            constants.ErrorInvalidClient,
				ErrorDescription: "Invalid client credentials",
			}
		}
	}

	clientIDFromBody := r.FormValue(constants.ClientID)
	clientSecretFromBody := r.FormValue(constants.ClientSecret)

	if clientIDFromBody != "" && clientSecretFromBody != "" && clientID != "" && clientSecret != "" {
		return "", "", &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Authorization information is provided in both header and body",
		}
	}

	if clientID == "" {
		clientID = clientIDFromBody
	}
	if clientSecret == "" {
		clientSecret = clientSecretFromBody
	}

	return clientID, clientSecret, nil
}
