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

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/healthcheck/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/healthcheck/service"
)

// mockHealthCheckService is a function-field mock of the HealthCheckServiceInterface.
type mockHealthCheckService struct {
	MockCheckReadiness func() model.ServerStatus
}

func (m *mockHealthCheckService) CheckReadiness() model.ServerStatus {
	if m.MockCheckReadiness != nil {
		return m.MockCheckReadiness()
	}
	return model.ServerStatus{Status: model.StatusUp}
}

// mockHealthCheckProvider returns the mocked service.
type mockHealthCheckProvider struct {
	service service.HealthCheckServiceInterface
}

func (m *mockHealthCheckProvider) GetHealthCheckService() service.HealthCheckServiceInterface {
	return m.service
}

type HealthCheckHandlerTestSuite struct {
	suite.Suite
	mockService *mockHealthCheckService
	handler     *HealthCheckHandler
}

func TestHealthCheckHandlerSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckHandlerTestSuite))
}

func (suite *HealthCheckHandlerTestSuite) SetupTest() {
	suite.mockService = &mockHealthCheckService{}
	suite.handler = &HealthCheckHandler{
		Provider: &mockHealthCheckProvider{service: suite.mockService},
	}
}

func (suite *HealthCheckHandlerTestSuite) TestHandleLivenessRequest() {
	req := httptest.NewRequest(http.MethodGet, "/health/liveness", nil)
	rec := httptest.NewRecorder()

	suite.handler.HandleLivenessRequest(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *HealthCheckHandlerTestSuite) TestHandleReadinessRequestWhenUp() {
	suite.mockService.MockCheckReadiness = func() model.ServerStatus {
		return model.ServerStatus{
			Status: model.StatusUp,
			ServiceStatus: []model.ServiceStatus{
				{ServiceName: "ClientRegistry", Status: model.StatusUp},
				{ServiceName: "AuthorizationCodeStore", Status: model.StatusUp},
			},
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health/readiness", nil)
	rec := httptest.NewRecorder()

	suite.handler.HandleReadinessRequest(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Header().Get("Content-Type"), "application/json")

	var status model.ServerStatus
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(suite.T(), model.StatusUp, status.Status)
	assert.Len(suite.T(), status.ServiceStatus, 2)
}

func (suite *HealthCheckHandlerTestSuite) TestHandleReadinessRequestWhenDown() {
	suite.mockService.MockCheckReadiness = func() model.ServerStatus {
		return model.ServerStatus{
			Status: model.StatusDown,
			ServiceStatus: []model.ServiceStatus{
				{ServiceName: "ClientRegistry", Status: model.StatusUp},
				{ServiceName: "AuthorizationCodeStore", Status: model.StatusDown},
			},
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health/readiness", nil)
	rec := httptest.NewRecorder()

	suite.handler.HandleReadinessRequest(rec, req)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)

	// The body still reports the per-dependency breakdown.
	var status model.ServerStatus
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(suite.T(), model.StatusDown, status.Status)
	assert.Equal(suite.T(), model.StatusDown, status.ServiceStatus[1].Status)
}
