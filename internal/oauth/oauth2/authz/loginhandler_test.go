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
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	clientconstants "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/constants"
	clientmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/client/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/oauth2/constants"
	sessionmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/model"
	sessionstore "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/store"
	sessionutils "github.com/Diogo-Ferraz/TaskManagementServer/internal/oauth/session/utils"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
	userconstants "github.com/Diogo-Ferraz/TaskManagementServer/internal/user/constants"
	usermodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/user/model"
)

// mockLoginUserService is a function-field mock of the UserServiceInterface.
type mockLoginUserService struct {
	MockAuthenticateUser func(username, password string) (*usermodel.User, *serviceerror.ServiceError)
}

func (m *mockLoginUserService) AuthenticateUser(username, password string) (
	*usermodel.User, *serviceerror.ServiceError) {
	if m.MockAuthenticateUser != nil {
		return m.MockAuthenticateUser(username, password)
	}
	return nil, &userconstants.ErrorAuthenticationFailed
}

func (m *mockLoginUserService) GetUser(userID string) (*usermodel.User, *serviceerror.ServiceError) {
	return nil, &userconstants.ErrorUserNotFound
}

type LoginHandlerTestSuite struct {
	suite.Suite
	mockUserService    *mockLoginUserService
	mockClientService  *mockClientService
	mockConsentService *mockConsentService
	mockCodeStore      *mockAuthzCodeStore
	sessionStore       sessionstore.SessionStoreInterface
	handler            *LoginHandler
}

func TestLoginHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoginHandlerTestSuite))
}

func (suite *LoginHandlerTestSuite) SetupTest() {
	config.ResetServerRuntime()
	cfg := &config.Config{}
	cfg.Crypto.Key = testSigningKey
	cfg.OAuth.JWT.AuthzCodeValidityPeriod = 120
	err := config.InitializeServerRuntime("/tmp", cfg)
	assert.NoError(suite.T(), err)

	registered := &clientmodel.OAuthClient{
		ClientID:             "task_web_app",
		Name:                 "Task Management Web",
		RedirectURIs:         []string{"https://localhost:3000/callback"},
		AllowedScopes:        []string{"openid", "profile", "tasks:read"},
		AllowedGrantTypes:    []string{"authorization_code"},
		AllowedResponseTypes: []string{"code"},
		RequirePKCE:          true,
	}
	suite.mockClientService = &mockClientService{
		MockGetOAuthClient: func(clientID string) (*clientmodel.OAuthClient, *serviceerror.ServiceError) {
			if clientID == registered.ClientID {
				return registered, nil
			}
			return nil, &clientconstants.ErrorClientNotFound
		},
	}
	suite.mockUserService = &mockLoginUserService{
		MockAuthenticateUser: func(username, password string) (*usermodel.User, *serviceerror.ServiceError) {
			if username == "alice" && password == "correct-horse" {
				return &usermodel.User{
					ID:       "user-1",
					Username: "alice",
					Roles:    []string{usermodel.RoleUser},
					Active:   true,
				}, nil
			}
			return nil, &userconstants.ErrorAuthenticationFailed
		},
	}
	suite.mockConsentService = &mockConsentService{}
	suite.mockCodeStore = &mockAuthzCodeStore{}
	suite.sessionStore = sessionstore.NewSessionStore(1 * time.Hour)

	authorizeHandler := &AuthorizeHandler{
		clientService:  suite.mockClientService,
		consentService: suite.mockConsentService,
		authzCodeStore: suite.mockCodeStore,
		sessionStore:   suite.sessionStore,
		authValidator:  NewAuthorizationValidator(),
	}
	suite.handler = &LoginHandler{
		userService:      suite.mockUserService,
		clientService:    suite.mockClientService,
		sessionStore:     suite.sessionStore,
		authorizeHandler: authorizeHandler,
	}
}

func (suite *LoginHandlerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *LoginHandlerTestSuite) flowToken() string {
	token, err := sessionutils.EncodeFlowContext(sessionmodel.FlowContext{
		OAuthParameters: sessionmodel.OAuthParameters{
			ClientID:            "task_web_app",
			RedirectURI:         "https://localhost:3000/callback",
			ResponseType:        "code",
			Scopes:              []string{"openid", "tasks:read"},
			State:               testHandlerState,
			CodeChallenge:       testChallenge,
			CodeChallengeMethod: "S256",
		},
	}, testSigningKey)
	assert.NoError(suite.T(), err)
	return token
}

func (suite *LoginHandlerTestSuite) getLoginPage(token string) *httptest.ResponseRecorder {
	target := constants.LoginEndpoint + "?" + url.Values{constants.FlowContext: {token}}.Encode()
	req := httptest.NewRequest(http.MethodGet, target, nil)

	rec := httptest.NewRecorder()
	suite.handler.HandleLoginRequest(rec, req)
	return rec
}

func (suite *LoginHandlerTestSuite) postLoginForm(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, constants.LoginEndpoint,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	suite.handler.HandleLoginRequest(rec, req)
	return rec
}

func (suite *LoginHandlerTestSuite) sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionstore.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func (suite *LoginHandlerTestSuite) TestShowLoginPage() {
	token := suite.flowToken()

	rec := suite.getLoginPage(token)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Sign in to Task Management Web")
	assert.Contains(suite.T(), body, token)
	assert.NotContains(suite.T(), body, "Invalid username or password")
}

func (suite *LoginHandlerTestSuite) TestShowLoginPageFallsBackToClientID() {
	// An unresolvable client still gets a usable page, labeled by client_id.
	suite.mockClientService.MockGetOAuthClient = nil

	rec := suite.getLoginPage(suite.flowToken())
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Sign in to task_web_app")
}

func (suite *LoginHandlerTestSuite) TestShowLoginPageWithInvalidToken() {
	testCases := []struct {
		name  string
		token string
	}{
		{"MissingToken", ""},
		{"MalformedToken", "not-a-token"},
		{"TamperedToken", suite.flowToken() + "x"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			rec := suite.getLoginPage(tc.token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), constants.ErrorInvalidRequest)
		})
	}
}

func (suite *LoginHandlerTestSuite) TestProcessLoginFormWithInvalidToken() {
	rec := suite.postLoginForm(url.Values{
		constants.FlowContext: {"not-a-token"},
		constants.Username:    {"alice"},
		constants.Password:    {"correct-horse"},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), constants.ErrorInvalidRequest)
	assert.Nil(suite.T(), suite.sessionCookie(rec))
}

func (suite *LoginHandlerTestSuite) TestFailedLoginRerendersForm() {
	token := suite.flowToken()

	rec := suite.postLoginForm(url.Values{
		constants.FlowContext: {token},
		constants.Username:    {"alice"},
		constants.Password:    {"wrong-password"},
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// The continuation survives the failed attempt.
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Invalid username or password")
	assert.Contains(suite.T(), body, token)
	assert.Nil(suite.T(), suite.sessionCookie(rec))
}

func (suite *LoginHandlerTestSuite) TestSuccessfulLoginEstablishesSession() {
	rec := suite.postLoginForm(url.Values{
		constants.FlowContext: {suite.flowToken()},
		constants.Username:    {"alice"},
		constants.Password:    {"correct-horse"},
	})
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	cookie := suite.sessionCookie(rec)
	assert.NotNil(suite.T(), cookie)
	assert.NotEmpty(suite.T(), cookie.Value)
	assert.Equal(suite.T(), "/", cookie.Path)
	assert.True(suite.T(), cookie.HttpOnly)
	assert.Equal(suite.T(), http.SameSiteLaxMode, cookie.SameSite)

	found, session := suite.sessionStore.GetSession(cookie.Value)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "user-1", session.UserID)
	assert.Equal(suite.T(), "alice", session.Username)
}

func (suite *LoginHandlerTestSuite) TestSuccessfulLoginWithoutConsentContinuesToConsent() {
	rec := suite.postLoginForm(url.Values{
		constants.FlowContext: {suite.flowToken()},
		constants.Username:    {"alice"},
		constants.Password:    {"correct-horse"},
	})
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.ConsentEndpoint, location.Path)

	flowCtx, err := sessionutils.DecodeFlowContext(
		location.Query().Get(constants.FlowContext), testSigningKey)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), flowCtx.User.IsAuthenticated)
	assert.Equal(suite.T(), "user-1", flowCtx.User.UserID)
	assert.Empty(suite.T(), suite.mockCodeStore.InsertedCodes)
}

func (suite *LoginHandlerTestSuite) TestSuccessfulLoginWithConsentIssuesCode() {
	suite.mockConsentService.MockHasConsent = func(userID, clientID string, scopes []string) (
		bool, *serviceerror.ServiceError) {
		return true, nil
	}

	rec := suite.postLoginForm(url.Values{
		constants.FlowContext: {suite.flowToken()},
		constants.Username:    {"alice"},
		constants.Password:    {"correct-horse"},
	})
	assert.Equal(suite.T(), http.StatusFound, rec.Code)

	assert.Len(suite.T(), suite.mockCodeStore.InsertedCodes, 1)
	issued := suite.mockCodeStore.InsertedCodes[0]
	assert.Equal(suite.T(), "user-1", issued.AuthorizedUserID)

	location, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/callback", location.Path)
	assert.Equal(suite.T(), issued.Code, location.Query().Get("code"))
	assert.Equal(suite.T(), testHandlerState, location.Query().Get("state"))
}

func (suite *LoginHandlerTestSuite) TestUnsupportedMethod() {
	req := httptest.NewRequest(http.MethodDelete, constants.LoginEndpoint, nil)
	rec := httptest.NewRecorder()
	suite.handler.HandleLoginRequest(rec, req)
	assert.Equal(suite.T(), http.StatusMethodNotAllowed, rec.Code)
}
