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

// Package logout provides the end-session endpoint that terminates sign-on sessions.
package logout

import (
	"net/http"

	clientprovider "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/provider"
	clientservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/service"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/jwt"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	sessionstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/store"
	serverconst "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

// LogoutHandler handles end-session requests.
type LogoutHandler struct {
	clientService clientservice.ClientServiceInterface
	sessionStore  sessionstore.SessionStoreInterface
}

// NewLogoutHandler creates a new instance of LogoutHandler.
func NewLogoutHandler() *LogoutHandler {
	return &LogoutHandler{
		clientService: clientprovider.NewClientProvider().GetClientService(),
		sessionStore:  sessionstore.GetSessionStore(),
	}
}

// HandleLogoutRequest terminates the sign-on session and optionally redirects
// back to the client. A post-logout redirect is honored only when it exactly
// matches a registered post-logout redirect URI; otherwise a neutral
// logged-out page is rendered so the endpoint cannot be used as an open redirect.
func (lh *LogoutHandler) HandleLogoutRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutHandler"))

	lh.clearSession(w, r)

	postLogoutRedirectURI := r.URL.Query().Get(constants.PostLogoutRedirectURI)
	if postLogoutRedirectURI == "" {
		lh.renderLoggedOutPage(w)
		return
	}

	clientID := lh.resolveClientID(r)
	if clientID == "" {
		logger.Debug("Post-logout redirect requested without a resolvable client")
		lh.renderLoggedOutPage(w)
		return
	}

	oauthClient, svcErr := lh.clientService.GetOAuthClient(clientID)
	if svcErr != nil || !oauthClient.IsValidPostLogoutRedirectURI(postLogoutRedirectURI) {
		logger.Debug("Post-logout redirect URI rejected", log.String("clientID", clientID))
		lh.renderLoggedOutPage(w)
		return
	}

	queryParams := map[string]string{}
	if state := r.URL.Query().Get(constants.State); state != "" {
		queryParams[constants.State] = state
	}

	redirectURI, err := utils.GetURIWithQueryParams(postLogoutRedirectURI, queryParams)
	if err != nil {
		logger.Error("Failed to construct post-logout redirect URI", log.Error(err))
		lh.renderLoggedOutPage(w)
		return
	}

	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// clearSession removes the server-side sign-on session and expires the cookie.
func (lh *LogoutHandler) clearSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionstore.SessionCookieName); err == nil {
		lh.sessionStore.ClearSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionstore.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// resolveClientID determines the client from the id_token_hint audience or the
// client_id parameter.
func (lh *LogoutHandler) resolveClientID(r *http.Request) string {
	if clientID := r.URL.Query().Get(constants.ClientID); clientID != "" {
		return clientID
	}

	idTokenHint := r.URL.Query().Get(constants.IDTokenHint)
	if idTokenHint == "" {
		return ""
	}

	_, payload, err := jwt.DecodeJWT(idTokenHint)
	if err != nil {
		return ""
	}
	if aud, ok := payload["aud"].(string); ok {
		return aud
	}
	return ""
}

// renderLoggedOutPage writes a neutral confirmation page.
func (lh *LogoutHandler) renderLoggedOutPage(w http.ResponseWriter) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!DOCTYPE html><html><head><title>Signed Out</title></head>" +
		"<body><h1>You have been signed out.</h1></body></html>\n"))
}
