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

// Package store provides the implementation for principal persistence operations.
package store

import (
	"errors"
	"fmt"

	dbmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/provider"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/utils"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/user/model"
)

const loggerComponentName = "UserStore"

// ErrUserNotFound is returned when no principal exists for the given identifier.
var ErrUserNotFound = errors.New("user not found")

// UserWithCredential couples a principal with its stored credential hash.
type UserWithCredential struct {
	User           model.User
	CredentialHash string
}

// UserStoreInterface defines the interface for principal persistence.
type UserStoreInterface interface {
	GetUserByUsername(username string) (*UserWithCredential, error)
	GetUserByID(userID string) (*model.User, error)
}

// UserStore implements the UserStoreInterface for retrieving principals.
type UserStore struct {
	DBProvider provider.DBProviderInterface
}

// NewUserStore creates a new instance of UserStore.
func NewUserStore() UserStoreInterface {
	return &UserStore{
		DBProvider: provider.NewDBProvider(),
	}
}

// GetUserByUsername retrieves a principal with its credential hash by login identifier.
func (us *UserStore) GetUserByUsername(username string) (*UserWithCredential, error) {
	row, err := us.queryUser(QueryGetUserByUsername, username)
	if err != nil {
		return nil, err
	}

	return &UserWithCredential{
		User:           userFromRow(row),
		CredentialHash: parseStringField(row["credential"]),
	}, nil
}

// GetUserByID retrieves a principal by user id.
func (us *UserStore) GetUserByID(userID string) (*model.User, error) {
	row, err := us.queryUser(QueryGetUserByID, userID)
	if err != nil {
		return nil, err
	}

	user := userFromRow(row)
	return &user, nil
}

// queryUser executes a single-row principal lookup.
func (us *UserStore) queryUser(query dbmodel.DBQuery, arg string) (map[string]interface{}, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := us.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	results, err := dbClient.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving user: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrUserNotFound
	}
	return results[0], nil
}

// userFromRow maps a result row to a principal.
func userFromRow(row map[string]interface{}) model.User {
	return model.User{
		ID:       parseStringField(row["user_id"]),
		Username: parseStringField(row["username"]),
		Roles:    utils.ParseStringArray(row["roles"]),
		Active:   parseBoolField(row["is_active"]),
	}
}

// parseStringField converts a raw result column to a string.
func parseStringField(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// parseBoolField converts a raw result column to a boolean.
func parseBoolField(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	default:
		return false
	}
}
