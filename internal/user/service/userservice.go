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

// Package service provides the credential verification operations for principals.
package service

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/error/serviceerror"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/user/constants"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/user/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/user/store"
)

const loggerComponentName = "UserService"

var (
	instance *UserService
	once     sync.Once
)

// UserServiceInterface defines the contract for principal operations.
type UserServiceInterface interface {
	AuthenticateUser(username, password string) (*model.User, *serviceerror.ServiceError)
	GetUser(userID string) (*model.User, *serviceerror.ServiceError)
}

// UserService implements the UserServiceInterface for credential verification.
type UserService struct {
	userStore store.UserStoreInterface
}

// GetUserService returns a singleton instance of UserService.
func GetUserService() UserServiceInterface {
	once.Do(func() {
		instance = &UserService{
			userStore: store.NewUserStore(),
		}
	})
	return instance
}

// NewUserService creates a user service backed by the given store.
func NewUserService(userStore store.UserStoreInterface) UserServiceInterface {
	return &UserService{
		userStore: userStore,
	}
}

// AuthenticateUser verifies the login credentials and active status of a principal.
// A wrong username and a wrong password produce the same authentication failure.
func (us *UserService) AuthenticateUser(username, password string) (*model.User, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if username == "" || password == "" {
		return nil, &constants.ErrorAuthenticationFailed
	}

	userWithCredential, err := us.userStore.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, &constants.ErrorAuthenticationFailed
		}
		logger.Error("Failed to retrieve user", log.String("username", log.MaskString(username)), log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	if bcryptErr := bcrypt.CompareHashAndPassword(
		[]byte(userWithCredential.CredentialHash), []byte(password)); bcryptErr != nil {
		return nil, &constants.ErrorAuthenticationFailed
	}

	if !userWithCredential.User.Active {
		return nil, &constants.ErrorUserInactive
	}

	user := userWithCredential.User
	return &user, nil
}

// GetUser retrieves a principal by user id.
func (us *UserService) GetUser(userID string) (*model.User, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if userID == "" {
		return nil, &constants.ErrorUserNotFound
	}

	user, err := us.userStore.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, &constants.ErrorUserNotFound
		}
		logger.Error("Failed to retrieve user", log.String("userID", userID), log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return user, nil
}
