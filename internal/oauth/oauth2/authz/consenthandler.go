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

	clientservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/service"
	consentservice "github.com/Diogo-Ferraz/TaskManagementServer/internal/consent/service"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	sessionutils "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/utils"
	serverconst "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
)

// ConsentHandler serves the scope approval surface of the authorization flow.
type ConsentHandler struct {
	consentService   consentservice.ConsentServiceInterface
	clientService    clientservice.ClientServiceInterface
	authorizeHandler *AuthorizeHandler
}

// NewConsentHandler creates a new instance of ConsentHandler.
func NewConsentHandler(authorizeHandler *AuthorizeHandler) *ConsentHandler {
	return &ConsentHandler{
		consentService:   consentservice.GetConsentService(),
		clientService:    clientservice.GetClientService(),
		authorizeHandler: authorizeHandler,
	}
}

// HandleConsentRequest renders the consent page or processes the user's decision.
func (ch *ConsentHandler) HandleConsentRequest(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ch.showConsentPage(w, r)
	case http.MethodPost:
		ch.processConsentForm(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// showConsentPage validates the continuation token and renders the approval form.
func (ch *ConsentHandler) showConsentPage(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentHandler"))

	token := r.URL.Query().Get(constants.FlowContext)
	flowCtx, err := sessionutils.DecodeFlowContext(token, signingKey())
	if err != nil || !flowCtx.User.IsAuthenticated {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Invalid or expired authorization flow", http.StatusBadRequest, nil)
		return
	}

	appName := flowCtx.OAuthParameters.ClientID
	if oauthClient, svcErr := ch.clientService.GetOAuthClient(flowCtx.OAuthParameters.ClientID); svcErr == nil {
		appName = oauthClient.Name
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeHTML)
	renderErr := consentPageTemplate.Execute(w, consentPageData{
		AppName:     appName,
		Username:    flowCtx.User.Username,
		Action:      constants.ConsentEndpoint,
		FlowContext: token,
		Scopes:      flowCtx.OAuthParameters.Scopes,
	})
	if renderErr != nil {
		logger.Error("Failed to render the consent page", log.Error(renderErr))
	}
}

// processConsentForm records the user's decision and resumes the flow. A denial
// is reported to the client as access_denied on the trusted redirect URI.
func (ch *ConsentHandler) processConsentForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to parse the consent form", http.StatusBadRequest, nil)
		return
	}

	token := r.PostFormValue(constants.FlowContext)
	flowCtx, err := sessionutils.DecodeFlowContext(token, signingKey())
	if err != nil || !flowCtx.User.IsAuthenticated {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Invalid or expired authorization flow", http.StatusBadRequest, nil)
		return
	}

	if r.PostFormValue(constants.ConsentAction) != constants.ConsentAccept {
		ch.authorizeHandler.RedirectWithAccessDenied(w, r, flowCtx, "The user denied the authorization request")
		return
	}

	ch.recordConsentAndIssueCode(w, r, flowCtx)
}

// recordConsentAndIssueCode stores the approved scopes and mints the code.
func (ch *ConsentHandler) recordConsentAndIssueCode(w http.ResponseWriter, r *http.Request,
	flowCtx *sessionmodel.FlowContext) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentHandler"))
	params := flowCtx.OAuthParameters

	if svcErr := ch.consentService.RecordConsent(
		flowCtx.User.UserID, params.ClientID, params.Scopes); svcErr != nil {
		logger.Error("Failed to record user consent", log.String("clientID", params.ClientID))
		ch.authorizeHandler.redirectWithError(w, r, params.RedirectURI, params.State,
			constants.ErrorServerError, "Failed to record user consent")
		return
	}

	ch.authorizeHandler.IssueAuthorizationCode(w, r, flowCtx)
}
