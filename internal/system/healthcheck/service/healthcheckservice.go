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

// Package service provides health check-related business logic and operations.
package service

import (
	"sync"

	dbmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/provider"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/healthcheck/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
)

var (
	instance *HealthCheckService
	once     sync.Once
)

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness() model.ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
type HealthCheckService struct {
	DBProvider provider.DBProviderInterface
}

// GetHealthCheckService returns a singleton instance of HealthCheckService.
func GetHealthCheckService() HealthCheckServiceInterface {
	once.Do(func() {
		instance = &HealthCheckService{
			DBProvider: provider.NewDBProvider(),
		}
	})
	return instance
}

// NewHealthCheckService creates a health check service with the given provider.
func NewHealthCheckService(dbProvider provider.DBProviderInterface) HealthCheckServiceInterface {
	return &HealthCheckService{
		DBProvider: dbProvider,
	}
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *HealthCheckService) CheckReadiness() model.ServerStatus {
	clientTableStatus := model.ServiceStatus{
		ServiceName: "ClientRegistry",
		Status:      hcs.checkDatabaseStatus(queryClientTable),
	}

	authzCodeTableStatus := model.ServiceStatus{
		ServiceName: "AuthorizationCodeStore",
		Status:      hcs.checkDatabaseStatus(queryAuthzCodeTable),
	}

	status := model.StatusUp
	if clientTableStatus.Status == model.StatusDown || authzCodeTableStatus.Status == model.StatusDown {
		status = model.StatusDown
	}
	return model.ServerStatus{
		Status: status,
		ServiceStatus: []model.ServiceStatus{
			clientTableStatus,
			authzCodeTableStatus,
		},
	}
}

// checkDatabaseStatus checks the status of the identity database with the specified query.
func (hcs *HealthCheckService) checkDatabaseStatus(query dbmodel.DBQuery) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.StatusDown
	}

	if _, err := dbClient.Query(query); err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}
