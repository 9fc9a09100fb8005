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

import "html/template"

// loginPageTemplate renders the credential collection form.
var loginPageTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign In</title></head>
<body>
  <h1>Sign in to {{.AppName}}</h1>
  {{if .ErrorMessage}}<p class="error">{{.ErrorMessage}}</p>{{end}}
  <form method="post" action="{{.Action}}">
    <input type="hidden" name="flow_context" value="{{.FlowContext}}">
    <label>Username <input type="text" name="username" autocomplete="username"></label>
    <label>Password <input type="password" name="password" autocomplete="current-password"></label>
    <button type="submit">Sign In</button>
  </form>
</body>
</html>
`))

// consentPageTemplate renders the scope approval form.
var consentPageTemplate = template.Must(template.New("consent").Parse(`<!DOCTYPE html>
<html>
<head><title>Authorize Access</title></head>
<body>
  <h1>{{.AppName}} is requesting access</h1>
  <p>Signed in as {{.Username}}. The application requests the following permissions:</p>
  <ul>
    {{range .Scopes}}<li>{{.}}</li>{{end}}
  </ul>
  <form method="post" action="{{.Action}}">
    <input type="hidden" name="flow_context" value="{{.FlowContext}}">
    <button type="submit" name="consent_action" value="accept">Allow</button>
    <button type="submit" name="consent_action" value="deny">Deny</button>
  </form>
</body>
</html>
`))

// loginPageData carries the values rendered into the login page.
type loginPageData struct {
	AppName      string
	Action       string
	FlowContext  string
	ErrorMessage string
}

// consentPageData carries the values rendered into the consent page.
type consentPageData struct {
	AppName     string
	Username    string
	Action      string
	FlowContext string
	Scopes      []string
}
