/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package utils

// SubjectFromClaims extracts the subject of a validated token for audit
// logging. Tokens without a subject are recorded as "unknown".
func SubjectFromClaims(claims map[string]interface{}) string {

	if claims != nil {
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			return sub
		}
	}
	return "unknown"
}
