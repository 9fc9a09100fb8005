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

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	dbclient "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/client"
	dbmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/model"
	"github.com/Diogo-Ferraz/TaskManagementServer/tests/mocks/databasemock"
)

type ConsentStoreTestSuite struct {
	suite.Suite
	mockDBClient *databasemock.MockDBClient
	store        ConsentStoreInterface
}

func TestConsentStoreSuite(t *testing.T) {
	suite.Run(t, new(ConsentStoreTestSuite))
}

func (suite *ConsentStoreTestSuite) SetupTest() {
	suite.mockDBClient = &databasemock.MockDBClient{}
	suite.store = &ConsentStore{
		DBProvider: &databasemock.MockDBProvider{
			MockGetDBClient: func(dbName string) (dbclient.DBClientInterface, error) {
				return suite.mockDBClient, nil
			},
		},
	}
}

func (suite *ConsentStoreTestSuite) consentRow() map[string]interface{} {
	return map[string]interface{}{
		"consent_id":   "consent-1",
		"authz_user":   "user-1",
		"consumer_key": "task_web_app",
		"scopes":       "openid,profile",
		"time_granted": int64(1756300000),
	}
}

func (suite *ConsentStoreTestSuite) TestGetConsent() {
	suite.mockDBClient.MockQuery = func(query dbmodel.DBQuery,
		args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{suite.consentRow()}, nil
	}

	grant, err := suite.store.GetConsent("user-1", "task_web_app")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), grant)
	assert.Equal(suite.T(), "consent-1", grant.ConsentID)
	assert.Equal(suite.T(), "user-1", grant.UserID)
	assert.Equal(suite.T(), "task_web_app", grant.ClientID)
	assert.Equal(suite.T(), []string{"openid", "profile"}, grant.Scopes)
	assert.Equal(suite.T(), int64(1756300000), grant.TimeGranted)
}

func (suite *ConsentStoreTestSuite) TestGetConsentNotFound() {
	suite.mockDBClient.MockQuery = func(query dbmodel.DBQuery,
		args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{}, nil
	}

	grant, err := suite.store.GetConsent("user-1", "task_web_app")
	assert.ErrorIs(suite.T(), err, ErrConsentNotFound)
	assert.Nil(suite.T(), grant)
}

func (suite *ConsentStoreTestSuite) TestUpsertConsentInsertsNewGrant() {
	suite.mockDBClient.MockQuery = func(query dbmodel.DBQuery,
		args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{}, nil
	}
	suite.mockDBClient.MockExecute = func(query dbmodel.DBQuery,
		args ...interface{}) (int64, error) {
		return 1, nil
	}

	err := suite.store.UpsertConsent("user-1", "task_web_app", []string{"openid", "profile"})
	assert.NoError(suite.T(), err)

	assert.Len(suite.T(), suite.mockDBClient.ExecuteCalls, 1)
	insertArgs := suite.mockDBClient.ExecuteCalls[0].Args
	assert.Len(suite.T(), insertArgs, 5)
	assert.Equal(suite.T(), "user-1", insertArgs[1])
	assert.Equal(suite.T(), "task_web_app", insertArgs[2])
	assert.Equal(suite.T(), "openid,profile", insertArgs[3])
}

func (suite *ConsentStoreTestSuite) TestUpsertConsentMergesScopes() {
	suite.mockDBClient.MockQuery = func(query dbmodel.DBQuery,
		args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{suite.consentRow()}, nil
	}
	suite.mockDBClient.MockExecute = func(query dbmodel.DBQuery,
		args ...interface{}) (int64, error) {
		return 1, nil
	}

	err := suite.store.UpsertConsent("user-1", "task_web_app", []string{"profile", "tasks:read"})
	assert.NoError(suite.T(), err)

	// The update carries the union of the old and new scope sets.
	assert.Len(suite.T(), suite.mockDBClient.ExecuteCalls, 1)
	updateArgs := suite.mockDBClient.ExecuteCalls[0].Args
	assert.Equal(suite.T(), "openid,profile,tasks:read", updateArgs[0])
	assert.Equal(suite.T(), "user-1", updateArgs[2])
	assert.Equal(suite.T(), "task_web_app", updateArgs[3])
}

func (suite *ConsentStoreTestSuite) TestUpsertConsentExecuteError() {
	suite.mockDBClient.MockQuery = func(query dbmodel.DBQuery,
		args ...interface{}) ([]map[string]interface{}, error) {
		return []map[string]interface{}{}, nil
	}
	suite.mockDBClient.MockExecute = func(query dbmodel.DBQuery,
		args ...interface{}) (int64, error) {
		return 0, errors.New("constraint violation")
	}

	err := suite.store.UpsertConsent("user-1", "task_web_app", []string{"openid"})
	assert.Error(suite.T(), err)
}

func (suite *ConsentStoreTestSuite) TestDeleteConsent() {
	suite.mockDBClient.MockExecute = func(query dbmodel.DBQuery,
		args ...interface{}) (int64, error) {
		return 1, nil
	}

	err := suite.store.DeleteConsent("user-1", "task_web_app")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.mockDBClient.ExecuteCalls, 1)
	assert.Equal(suite.T(), []interface{}{"user-1", "task_web_app"},
		suite.mockDBClient.ExecuteCalls[0].Args)
}

func (suite *ConsentStoreTestSuite) TestDeleteConsentExecuteError() {
	suite.mockDBClient.MockExecute = func(query dbmodel.DBQuery,
		args ...interface{}) (int64, error) {
		return 0, errors.New("connection reset")
	}

	err := suite.store.DeleteConsent("user-1", "task_web_app")
	assert.Error(suite.T(), err)
}
