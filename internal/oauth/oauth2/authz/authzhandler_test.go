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
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	clientconstants "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/constants"
	clientmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/model"
	consentconstants "github.com/Diogo-Ferraz/TaskManagementServer/internal/consent/constants"
	authzmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/authz/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	sessionstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/store"
	sessionutils "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/utils"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
)

const (
	testSigningKey   = "68b329da9893e34099c7d8ad5cb9c940"
	testHandlerState = "af0ifjsldkj"
	testChallenge    = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

// mockClientService is a function-field mock of the ClientServiceInterface.
type mockClientService struct {
	MockGetOAuthClient               func(clientID string) (*clientmodel.OAuthClient, *serviceerror.ServiceError)
	MockValidateAuthorizationRequest func(clientID, redirectURI string, scopes []string,
		codeChallenge string) (*clientmodel.OAuthClient, *serviceerror.ServiceError)
	ValidateAuthorizationRequestCalls int
}

func (m *mockClientService) GetOAuthClient(clientID string) (
	*clientmodel.OAuthClient, *serviceerror.ServiceError) {
	if m.MockGetOAuthClient != nil {
		return m.MockGetOAuthClient(clientID)
	}
	return nil, &clientconstants.ErrorClientNotFound
}

func (m *mockClientService) ValidateAuthorizationRequest(clientID, redirectURI string, scopes []string,
	codeChallenge string) (*clientmodel.OAuthClient, *serviceerror.ServiceError) {
	m.ValidateAuthorizationRequestCalls++
	if m.MockValidateAuthorizationRequest != nil {
		return m.MockValidateAuthorizationRequest(clientID, redirectURI, scopes, codeChallenge)
	}
	return nil, &clientconstants.ErrorClientNotFound
}

func (m *mockClientService) AuthenticateClient(clientID, clientSecret string) (
	*clientmodel.OAuthClient, *serviceerror.ServiceError) {
	return nil, &clientconstants.ErrorInvalidClientSecret
}

// mockConsentService is a function-field mock of the ConsentServiceInterface.
type mockConsentService struct {
	MockHasConsent    func(userID, clientID string, scopes []string) (bool, *serviceerror.ServiceError)
	MockRecordConsent func(userID, clientID string, scopes []string) *serviceerror.ServiceError
}

func (m *mockConsentService) HasConsent(userID, clientID string, scopes []string) (
	bool, *serviceerror.ServiceError) {
	if m.MockHasConsent != nil {
		return m.MockHasConsent(userID, clientID, scopes)
	}
	return false, nil
}

func (m *mockConsentService) RecordConsent(userID, clientID string,
	scopes []string) *serviceerror.ServiceError {
	if m.MockRecordConsent != nil {
		return m.MockRecordConsent(userID, clientID, scopes)
	}
	return nil
}

func (m *mockConsentService) RevokeConsent(userID, clientID string) *serviceerror.ServiceError {
	return nil
}

// mockAuthzCodeStore is a function-field mock of the AuthorizationCodeStoreInterface.
type mockAuthzCodeStore struct {
	MockInsertAuthorizationCode func(authzCode authzmodel.AuthorizationCode) error
	InsertedCodes               []authzmodel.AuthorizationCode
}

func (m *mockAuthzCodeStore) InsertAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	m.InsertedCodes = append(m.InsertedCodes, authzCode)
	if m.MockInsertAuthorizationCode != nil {
		return m.MockInsertAuthorizationCode(authzCode)
	}
	return nil
}

func (m *mockAuthzCodeStore) GetAuthorizationCode(clientID, authCode string) (
	authzmodel.AuthorizationCode, error) {
	return authzmodel.AuthorizationCode{}, nil
}

func (m *mockAuthzCodeStore) ConsumeAuthorizationCode(clientID, authCode string) error { return nil }

func (m *mockAuthzCodeStore) RevokeAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	return nil
}

func (m *mockAuthzCodeStore) ExpireAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	return nil
}

func (m *mockAuthzCodeStore) DeleteExpiredAuthorizationCodes(cutoff int64) (int64, error) {
	return 0, nil
}

type AuthorizeHandlerTestSuite struct {
	suite.Suite
	mockClientService  *mockClientService
	mockConsentService *mockConsentService
	mockCodeStore      *mockAuthzCodeStore
	sessionStore       sessionstore.SessionStoreInterface
	handler            *AuthorizeHandler
}

func TestAuthorizeHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthorizeHandlerTestSuite))
}

func (suite *AuthorizeHandlerTestSuite) SetupTest() {
	config.ResetServerRuntime()
	cfg := &config.Config{}
	cfg.Crypto.Key = testSigningKey
	cfg.OAuth.JWT.AuthzCodeValidityPeriod = 120
	err := config.InitializeServerRuntime("/tmp", cfg)
	assert.NoError(suite.T(), err)

	registered := suite.registeredClient()
	suite.mockClientService = &mockClientService{
		MockGetOAuthClient: func(clientID string) (*clientmodel.OAuthClient, *serviceerror.ServiceError) {
			if clientID == registered.ClientID {
				return registered, nil
			}
			return nil, &clientconstants.ErrorClientNotFound
		},
		// Mirrors the registry validation order: client, redirect URI, scopes, PKCE.
		MockValidateAuthorizationRequest: func(clientID, redirectURI string, scopes []string,
			codeChallenge string) (*clientmodel.OAuthClient, *serviceerror.ServiceError) {
			if clientID != registered.ClientID {
				return nil, &clientconstants.ErrorClientNotFound
			}
			if err := registered.ValidateRedirectURI(redirectURI); err != nil {
				return nil, serviceerror.CustomServiceError(
					clientconstants.ErrorInvalidRedirectURI, err.Error())
			}
			for _, scope := range scopes {
				if !registered.IsAllowedScope(scope) {
					return nil, serviceerror.CustomServiceError(clientconstants.ErrorInvalidScope,
						"Scope is not allowed for the client: "+scope)
				}
			}
			if registered.RequirePKCE && codeChallenge == "" {
				return nil, &clientconstants.ErrorPKCERequired
			}
			return registered, nil
		},
	}
	suite.mockConsentService = &mockConsentService{}
	suite.mockCodeStore = &mockAuthzCodeStore{}
	suite.sessionStore = sessionstore.NewSessionStore(1 * time.Hour)

	suite.handler = &AuthorizeHandler{
		clientService:  suite.mockClientService,
		consentService: suite.mockConsentService,
		authzCodeStore: suite.mockCodeStore,
		sessionStore:   suite.sessionStore,
		authValidator:  NewAuthorizationValidator(),
	}
}

func (suite *AuthorizeHandlerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *AuthorizeHandlerTestSuite) registeredClient() *clientmodel.OAuthClient {
	return &clientmodel.OAuthClient{
		ClientID:             "task_web_app",
		RedirectURIs:         []string{"https://localhost:3000/callback"},
		AllowedScopes:        []string{"openid", "profile", "tasks:read"},
		AllowedGrantTypes:    []string{"authorization_code"},
		AllowedResponseTypes: []string{"code"},
		RequirePKCE:          true,
	}
}

func (suite *AuthorizeHandlerTestSuite) authorizeQuery() url.Values {
	return url.Values{
		"client_id":             {"task_web_app"},
		"redirect_uri":          {"https://localhost:3000/callback"},
		"response_type":         {"code"},
		"scope":                 {"openid tasks:read"},
		"state":                 {testHandlerState},
		"code_challenge":        {testChallenge},
		"code_challenge_method": {"S256"},
	}
}

func (suite *AuthorizeHandlerTestSuite) authorize(query url.Values,
	sessionCookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/connect/authorize?"+query.Encode(), nil)
	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionstore.SessionCookieName, Value: sessionCookie})
	}

	rec := httptest.NewRecorder()
	suite.handler.HandleAuthorizeRequest(rec, req)
	return rec
}

func (suite *AuthorizeHandlerTestSuite) locationURL(rec *httptest.ResponseRecorder) *url.URL {
	location, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(suite.T(), err)
	return location
}

func (suite *AuthorizeHandlerTestSuite) signIn() string {
	sessionID := "session-1"
	suite.sessionStore.AddSession(sessionID, sessionmodel.UserSession{
		UserID:   "user-1",
		Username: "alice",
		Roles:    []string{"member"},
		AuthTime: time.Now(),
	})
	return sessionID
}

func (suite *AuthorizeHandlerTestSuite) TestMissingClientIDFailsDirectly() {
	query := suite.authorizeQuery()
	query.Del("client_id")

	rec := suite.authorize(query, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Empty(suite.T(), rec.Header().Get("Location"))
}

func (suite *AuthorizeHandlerTestSuite) TestUnknownClientFailsDirectly() {
	query := suite.authorizeQuery()
	query.Set("client_id", "unknown_app")

	rec := suite.authorize(query, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Empty(suite.T(), rec.Header().Get("Location"))
}

func (suite *AuthorizeHandlerTestSuite) TestUnregisteredRedirectURIFailsDirectly() {
	query := suite.authorizeQuery()
	query.Set("redirect_uri", "https://evil.example.com/callback")

	// Never redirect to an untrusted URI, not even to report an error.
	rec := suite.authorize(query, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Empty(suite.T(), rec.Header().Get("Location"))
}

func (suite *AuthorizeHandlerTestSuite) TestRequestIsValidatedAgainstClientRegistry() {
	var gotRedirectURI, gotChallenge string
	var gotScopes []string
	inner := suite.mockClientService.MockValidateAuthorizationRequest
	suite.mockClientService.MockValidateAuthorizationRequest = func(clientID, redirectURI string,
		scopes []string, codeChallenge string) (*clientmodel.OAuthClient, *serviceerror.ServiceError) {
		gotRedirectURI = redirectURI
		gotScopes = scopes
		gotChallenge = codeChallenge
		return inner(clientID, redirectURI, scopes, codeChallenge)
	}

	suite.authorize(suite.authorizeQuery(), "")
	assert.Equal(suite.T(), 1, suite.mockClientService.ValidateAuthorizationRequestCalls)
	assert.Equal(suite.T(), "https://localhost:3000/callback", gotRedirectURI)
	assert.Equal(suite.T(), []string{"openid", "tasks:read"}, gotScopes)
	assert.Equal(suite.T(), testChallenge, gotChallenge)
}

func (suite *AuthorizeHandlerTestSuite) TestParameterErrorsRedirectToClient() {
	testCases := []struct {
		name          string
		mutate        func(query url.Values)
		expectedError string
	}{
		{
			name:          "MissingResponseType",
			mutate:        func(query url.Values) { query.Del("response_type") },
			expectedError: constants.ErrorInvalidRequest,
		},
		{
			name:          "UnsupportedResponseType",
			mutate:        func(query url.Values) { query.Set("response_type", "token") },
			expectedError: constants.ErrorUnsupportedResponseType,
		},
		{
			name:          "DisallowedScope",
			mutate:        func(query url.Values) { query.Set("scope", "openid admin:all") },
			expectedError: constants.ErrorInvalidScope,
		},
		{
			name:          "MissingCodeChallenge",
			mutate:        func(query url.Values) { query.Del("code_challenge") },
			expectedError: constants.ErrorInvalidRequest,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			query := suite.authorizeQuery()
			tc.mutate(query)

			rec := suite.authorize(query, "")
			assert.Equal(t, http.StatusFound, rec.Code)

			location := suite.locationURL(rec)
			assert.Equal(t, "localhost:3000", location.Host)
			assert.Equal(t, "/callback", location.Path)
			assert.Equal(t, tc.expectedError, location.Query().Get("error"))
			assert.Equal(t, testHandlerState, location.Query().Get("state"))
		})
	}
}

func (suite *AuthorizeHandlerTestSuite) TestRedirectsToLoginWithoutSession() {
	rec := suite.authorize(suite.authorizeQuery(), "")
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	location := suite.locationURL(rec)
	assert.Equal(suite.T(), constants.LoginEndpoint, location.Path)

	token := location.Query().Get(constants.FlowContext)
	assert.NotEmpty(suite.T(), token)

	// The continuation token round-trips the validated request parameters.
	flowCtx, err := sessionutils.DecodeFlowContext(token, testSigningKey)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "task_web_app", flowCtx.OAuthParameters.ClientID)
	assert.Equal(suite.T(), []string{"openid", "tasks:read"}, flowCtx.OAuthParameters.Scopes)
	assert.Equal(suite.T(), testChallenge, flowCtx.OAuthParameters.CodeChallenge)
	assert.False(suite.T(), flowCtx.User.IsAuthenticated)
}

func (suite *AuthorizeHandlerTestSuite) TestFormPostedRequestRedirectsToLogin() {
	form := suite.authorizeQuery()
	req := httptest.NewRequest(http.MethodPost, "/connect/authorize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	suite.handler.HandleAuthorizeRequest(rec, req)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	assert.Equal(suite.T(), constants.LoginEndpoint, suite.locationURL(rec).Path)
}

func (suite *AuthorizeHandlerTestSuite) TestLiveSessionWithConsentIssuesCode() {
	sessionID := suite.signIn()
	suite.mockConsentService.MockHasConsent = func(userID, clientID string, scopes []string) (
		bool, *serviceerror.ServiceError) {
		return true, nil
	}

	rec := suite.authorize(suite.authorizeQuery(), sessionID)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	assert.Len(suite.T(), suite.mockCodeStore.InsertedCodes, 1)
	issued := suite.mockCodeStore.InsertedCodes[0]
	assert.Equal(suite.T(), "user-1", issued.AuthorizedUserID)
	assert.Equal(suite.T(), "task_web_app", issued.ClientID)

	location := suite.locationURL(rec)
	assert.Equal(suite.T(), "/callback", location.Path)
	assert.Equal(suite.T(), issued.Code, location.Query().Get("code"))
	assert.Equal(suite.T(), testHandlerState, location.Query().Get("state"))
	assert.Empty(suite.T(), location.Query().Get("error"))
}

func (suite *AuthorizeHandlerTestSuite) TestLiveSessionWithoutConsentRedirectsToConsent() {
	sessionID := suite.signIn()

	rec := suite.authorize(suite.authorizeQuery(), sessionID)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	location := suite.locationURL(rec)
	assert.Equal(suite.T(), constants.ConsentEndpoint, location.Path)

	flowCtx, err := sessionutils.DecodeFlowContext(location.Query().Get(constants.FlowContext), testSigningKey)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), flowCtx.User.IsAuthenticated)
	assert.Equal(suite.T(), "user-1", flowCtx.User.UserID)
	assert.Empty(suite.T(), suite.mockCodeStore.InsertedCodes)
}

func (suite *AuthorizeHandlerTestSuite) TestExpiredSessionFallsBackToLogin() {
	suite.sessionStore = sessionstore.NewSessionStore(-1 * time.Second)
	suite.handler.sessionStore = suite.sessionStore
	sessionID := suite.signIn()

	rec := suite.authorize(suite.authorizeQuery(), sessionID)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	assert.Equal(suite.T(), constants.LoginEndpoint, suite.locationURL(rec).Path)
}

func (suite *AuthorizeHandlerTestSuite) TestConsentEvaluationFailureRedirectsWithServerError() {
	sessionID := suite.signIn()
	suite.mockConsentService.MockHasConsent = func(userID, clientID string, scopes []string) (
		bool, *serviceerror.ServiceError) {
		return false, &consentconstants.ErrorInternalServerError
	}

	rec := suite.authorize(suite.authorizeQuery(), sessionID)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	location := suite.locationURL(rec)
	assert.Equal(suite.T(), "/callback", location.Path)
	assert.Equal(suite.T(), constants.ErrorServerError, location.Query().Get("error"))
}

func (suite *AuthorizeHandlerTestSuite) TestCodePersistenceFailureRedirectsWithServerError() {
	sessionID := suite.signIn()
	suite.mockConsentService.MockHasConsent = func(userID, clientID string, scopes []string) (
		bool, *serviceerror.ServiceError) {
		return true, nil
	}
	suite.mockCodeStore.MockInsertAuthorizationCode = func(authzCode authzmodel.AuthorizationCode) error {
		return errors.New("constraint violation")
	}

	rec := suite.authorize(suite.authorizeQuery(), sessionID)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	location := suite.locationURL(rec)
	assert.Equal(suite.T(), constants.ErrorServerError, location.Query().Get("error"))
	assert.Empty(suite.T(), location.Query().Get("code"))
}
