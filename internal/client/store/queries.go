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

import dbmodel "github.com/Diogo-Ferraz/TaskManagementServer/internal/system/database/model"

// QueryGetClientByID is the query to retrieve a client registration by client id.
var QueryGetClientByID = dbmodel.DBQuery{
	ID: "CLQ-00001",
	Query: "SELECT CLIENT_ID, CLIENT_SECRET_HASH, APP_NAME, REDIRECT_URIS, POST_LOGOUT_REDIRECT_URIS, " +
		"ALLOWED_SCOPES, GRANT_TYPES, RESPONSE_TYPES, REQUIRE_PKCE, IS_PUBLIC " +
		"FROM IDN_OAUTH_CLIENT WHERE CLIENT_ID = $1",
	SQLiteQuery: "SELECT CLIENT_ID, CLIENT_SECRET_HASH, APP_NAME, REDIRECT_URIS, POST_LOGOUT_REDIRECT_URIS, " +
		"ALLOWED_SCOPES, GRANT_TYPES, RESPONSE_TYPES, REQUIRE_PKCE, IS_PUBLIC " +
		"FROM IDN_OAUTH_CLIENT WHERE CLIENT_ID = ?",
}
