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

package authz

import (
	"net/http"
	"time"

	clientservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/service"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	sessionstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/store"
	sessionutils "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/utils"
	serverconst "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
	userservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/user/service"
)

// LoginHandler serves the credential collection surface of the authorization flow.
type LoginHandler struct {
	userService      userservice.UserServiceInterface
	clientService    clientservice.ClientServiceInterface
	sessionStore     sessionstore.SessionStoreInterface
	authorizeHandler *AuthorizeHandler
}

// NewLoginHandler creates a new instance of LoginHandler.
func NewLoginHandler(authorizeHandler *AuthorizeHandler) *LoginHandler {
	return &LoginHandler{
		userService:      userservice.GetUserService(),
		clientService:    clientservice.GetClientService(),
		sessionStore:     sessionstore.GetSessionStore(),
		authorizeHandler: authorizeHandler,
	}
}

// HandleLoginRequest renders the login page or processes a submitted credential form.
func (lh *LoginHandler) HandleLoginRequest(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		lh.showLoginPage(w, r)
	case http.MethodPost:
		lh.processLoginForm(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// showLoginPage validates the continuation token and renders the credential form.
func (lh *LoginHandler) showLoginPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(constants.FlowContext)
	flowCtx, err := sessionutils.DecodeFlowContext(token, signingKey())
	if err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Invalid or expired authorization flow", http.StatusBadRequest, nil)
		return
	}

	lh.renderLoginPage(w, token, flowCtx.OAuthParameters.ClientID, "")
}

// processLoginForm authenticates the submitted credentials and resumes the flow.
// A failed attempt re-renders the form without breaking the continuation.
func (lh *LoginHandler) processLoginForm(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LoginHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to parse the login form", http.StatusBadRequest, nil)
		return
	}

	token := r.PostFormValue(constants.FlowContext)
	flowCtx, err := sessionutils.DecodeFlowContext(token, signingKey())
	if err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Invalid or expired authorization flow", http.StatusBadRequest, nil)
		return
	}

	username := r.PostFormValue(constants.Username)
	password := r.PostFormValue(constants.Password)

	user, svcErr := lh.userService.AuthenticateUser(username, password)
	if svcErr != nil {
		logger.Debug("User authentication failed", log.String("username", log.MaskString(username)))
		lh.renderLoginPage(w, token, flowCtx.OAuthParameters.ClientID, "Invalid username or password")
		return
	}

	sessionID := utils.GenerateUUID()
	lh.sessionStore.AddSession(sessionID, sessionmodel.UserSession{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles,
		AuthTime: time.Now(),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     sessionstore.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	flowCtx.User = sessionmodel.AuthenticatedUser{
		IsAuthenticated: true,
		UserID:          user.ID,
		Username:        user.Username,
		Roles:           user.Roles,
	}

	lh.authorizeHandler.ContinueAuthorizationFlow(w, r, flowCtx)
}

// renderLoginPage writes the credential form for the client named in the flow.
func (lh *LoginHandler) renderLoginPage(w http.ResponseWriter, token, clientID, errorMessage string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LoginHandler"))

	appName := clientID
	if oauthClient, svcErr := lh.clientService.GetOAuthClient(clientID); svcErr == nil {
		appName = oauthClient.Name
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeHTML)
	err := loginPageTemplate.Execute(w, loginPageData{
		AppName:      appName,
		Action:       constants.LoginEndpoint,
		FlowContext:  token,
		ErrorMessage: errorMessage,
	})
	if err != nil {
		logger.Error("Failed to render the login page", log.Error(err))
	}
}
