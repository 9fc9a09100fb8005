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

// Package authz provides the OAuth2 authorization endpoint and its login and
// consent surfaces.
package authz

import (
	"net/http"

	clientconstants "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/constants"
	clientprovider "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/provider"
	clientservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/service"
	consentservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/consent/service"
	authzstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/store"
	authzutils "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/utils"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	sessionstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/store"
	sessionutils "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/utils"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

const loggerComponentName = "AuthorizeHandler"

// AuthorizeHandler handles the OAuth2 authorization endpoint.
type AuthorizeHandler struct {
	clientService  clientservice.ClientServiceInterface
	consentService consentservice.ConsentServiceInterface
	authzCodeStore authzstore.AuthorizationCodeStoreInterface
	sessionStore   sessionstore.SessionStoreInterface
	authValidator  AuthorizationValidatorInterface
}

// NewAuthorizeHandler creates a new instance of AuthorizeHandler.
func NewAuthorizeHandler() *AuthorizeHandler {
	return &AuthorizeHandler{
		clientService:  clientprovider.NewClientProvider().GetClientService(),
		consentService: consentservice.GetConsentService(),
		authzCodeStore: authzstore.NewAuthorizationCodeStore(),
		sessionStore:   sessionstore.GetSessionStore(),
		authValidator:  NewAuthorizationValidator(),
	}
}

// HandleAuthorizeRequest handles the OAuth2 authorization request.
//
// Until the client id and redirect URI are validated against the registry the
// user agent gets a direct error response. Every later failure is reported
// through a redirect to the trusted redirect URI.
func (ah *AuthorizeHandler) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	queryParams := extractQueryParams(r)

	clientID := queryParams[constants.ClientID]
	if clientID == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Missing client_id parameter", http.StatusBadRequest, nil)
		return
	}

	redirectURI := queryParams[constants.RedirectURI]
	state := queryParams[constants.State]
	scopes := utils.ParseScopes(queryParams[constants.Scope])

	oauthClient, svcErr := ah.clientService.ValidateAuthorizationRequest(clientID, redirectURI,
		scopes, queryParams[constants.CodeChallenge])
	if svcErr != nil {
		logger.Debug("Authorization request rejected", log.String("clientID", clientID),
			log.String("errorCode", svcErr.Code))
		switch svcErr.Code {
		case clientconstants.ErrorInvalidScope.Code:
			// The redirect URI was validated before the scopes, so it is safe to report through it.
			ah.redirectWithError(w, r, redirectURI, state, constants.ErrorInvalidScope,
				svcErr.ErrorDescription)
		case clientconstants.ErrorPKCERequired.Code:
			ah.redirectWithError(w, r, redirectURI, state, constants.ErrorInvalidRequest,
				svcErr.ErrorDescription)
		default:
			// The client or redirect URI could not be trusted; never redirect.
			utils.WriteJSONError(w, constants.ErrorInvalidRequest, svcErr.ErrorDescription,
				http.StatusBadRequest, nil)
		}
		return
	}

	// The redirect URI is trusted from this point on.
	if errCode, errDesc := ah.authValidator.ValidateAuthorizationParameters(
		oauthClient, queryParams); errCode != "" {
		ah.redirectWithError(w, r, redirectURI, state, errCode, errDesc)
		return
	}

	flowCtx := sessionmodel.FlowContext{
		OAuthParameters: sessionmodel.OAuthParameters{
			ClientID:            clientID,
			RedirectURI:         redirectURI,
			ResponseType:        queryParams[constants.ResponseType],
			Scopes:              scopes,
			State:               state,
			CodeChallenge:       queryParams[constants.CodeChallenge],
			CodeChallengeMethod: queryParams[constants.CodeChallengeMethod],
		},
	}

	// A live sign-on session skips the login page.
	if cookie, err := r.Cookie(sessionstore.SessionCookieName); err == nil {
		if found, userSession := ah.sessionStore.GetSession(cookie.Value); found {
			flowCtx.User = sessionmodel.AuthenticatedUser{
				IsAuthenticated: true,
				UserID:          userSession.UserID,
				Username:        userSession.Username,
				Roles:           userSession.Roles,
			}
			ah.ContinueAuthorizationFlow(w, r, &flowCtx)
			return
		}
	}

	ah.redirectToFlowPage(w, r, constants.LoginEndpoint, &flowCtx)
}

// ContinueAuthorizationFlow resumes an authorization request once the user is
// authenticated: either the stored consent covers the request and a code is
// issued, or the user is sent to the consent page.
func (ah *AuthorizeHandler) ContinueAuthorizationFlow(w http.ResponseWriter, r *http.Request,
	flowCtx *sessionmodel.FlowContext) {
	params := flowCtx.OAuthParameters

	covered, svcErr := ah.consentService.HasConsent(flowCtx.User.UserID, params.ClientID, params.Scopes)
	if svcErr != nil {
		ah.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to evaluate user consent")
		return
	}

	if covered {
		ah.IssueAuthorizationCode(w, r, flowCtx)
		return
	}

	ah.redirectToFlowPage(w, r, constants.ConsentEndpoint, flowCtx)
}

// IssueAuthorizationCode mints and persists an authorization code and sends the
// user agent back to the client with code and state.
func (ah *AuthorizeHandler) IssueAuthorizationCode(w http.ResponseWriter, r *http.Request,
	flowCtx *sessionmodel.FlowContext) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	params := flowCtx.OAuthParameters

	authzCode, err := authzutils.BuildAuthorizationCode(flowCtx)
	if err != nil {
		logger.Error("Failed to generate authorization code", log.Error(err))
		ah.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to generate authorization code")
		return
	}

	if err := ah.authzCodeStore.InsertAuthorizationCode(authzCode); err != nil {
		logger.Error("Failed to persist authorization code", log.Error(err))
		ah.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to generate authorization code")
		return
	}

	queryParams := map[string]string{
		constants.Code: authzCode.Code,
	}
	if params.State != "" {
		queryParams[constants.State] = params.State
	}

	redirectURI, err := utils.GetURIWithQueryParams(params.RedirectURI, queryParams)
	if err != nil {
		logger.Error("Failed to construct redirect URI", log.Error(err))
		ah.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to construct redirect URI")
		return
	}

	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// RedirectWithAccessDenied reports a user denial or failed authentication to the client.
func (ah *AuthorizeHandler) RedirectWithAccessDenied(w http.ResponseWriter, r *http.Request,
	flowCtx *sessionmodel.FlowContext, description string) {
	params := flowCtx.OAuthParameters
	ah.redirectWithError(w, r, params.RedirectURI, params.State, constants.ErrorAccessDenied, description)
}

// redirectToFlowPage hands the flow to a browser surface with a signed continuation token.
func (ah *AuthorizeHandler) redirectToFlowPage(w http.ResponseWriter, r *http.Request,
	page string, flowCtx *sessionmodel.FlowContext) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	params := flowCtx.OAuthParameters

	token, err := sessionutils.EncodeFlowContext(*flowCtx, signingKey())
	if err != nil {
		logger.Error("Failed to encode flow context", log.Error(err))
		ah.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to process the authorization request")
		return
	}

	pageURI, err := utils.GetURIWithQueryParams(page, map[string]string{
		constants.FlowContext: token,
	})
	if err != nil {
		logger.Error("Failed to construct redirect URI", log.Error(err))
		ah.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to process the authorization request")
		return
	}

	http.Redirect(w, r, pageURI, http.StatusFound)
}

// redirectWithError reports a failure to the client through the trusted redirect URI.
func (ah *AuthorizeHandler) redirectWithError(w http.ResponseWriter, r *http.Request,
	redirectURI, state, errCode, errDesc string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	queryParams := map[string]string{
		constants.Error:            errCode,
		constants.ErrorDescription: errDesc,
	}
	if state != "" {
		queryParams[constants.State] = state
	}

	errorRedirectURI, err := utils.GetURIWithQueryParams(redirectURI, queryParams)
	if err != nil {
		logger.Error("Failed to construct error redirect URI", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to process the authorization request", http.StatusInternalServerError, nil)
		return
	}

	http.Redirect(w, r, errorRedirectURI, http.StatusFound)
}

// extractQueryParams flattens the request query parameters into a map.
func extractQueryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	// Form-posted authorization requests carry the same parameters in the body.
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			for key, values := range r.PostForm {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}
		}
	}

	return params
}

// signingKey returns the key material for flow continuation tokens.
func signingKey() string {
	return config.GetServerRuntime().Config.Crypto.Key
}
