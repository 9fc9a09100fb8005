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

package introspect

import (
	"encoding/json"
	"net/http"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/jwt"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	serverconst "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

// TokenIntrospectionHandler handles OAuth 2.0 token introspection requests.
type TokenIntrospectionHandler struct {
	service TokenIntrospectionServiceInterface
}

// NewTokenIntrospectionHandler creates a new token introspection handler.
func NewTokenIntrospectionHandler() *TokenIntrospectionHandler {
	return &TokenIntrospectionHandler{
		service: NewTokenIntrospectionService(jwt.GetJWTService()),
	}
}

// HandleIntrospect handles token introspection requests.
func (h *TokenIntrospectionHandler) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to decode request body", http.StatusBadRequest, nil)
		return
	}

	token := r.FormValue(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Token parameter is required", http.StatusBadRequest, nil)
		return
	}
	tokenTypeHint := r.FormValue(constants.TokenTypeHint)

	response, err := h.service.IntrospectToken(token, tokenTypeHint)
	if err != nil {
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Server error while introspecting token", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Error encoding response", log.Error(err))
	}
}
