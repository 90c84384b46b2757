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

package authentication

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/reachline/journey-automation-service/internal/system/config"
	"github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

// ValidateStreamAuthentication validates the Authorization: StreamKey header
// carried by the push event feeds (delivery callbacks, conversion events,
// tracked behavioral events).
func ValidateStreamAuthentication(r *http.Request) (bool, error) {
	key, err := extractStreamKey(r)
	if err != nil {
		return false, err
	}
	return validateStreamKey(key)
}

func extractStreamKey(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", unauthorizedError()
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "StreamKey" {
		log.GetLogger().Debug("Invalid stream key format in Authorization header")
		return "", unauthorizedError()
	}
	return parts[1], nil
}

func validateStreamKey(key string) (bool, error) {
	cfg := config.GetJASRuntime().Config
	for _, configured := range cfg.Auth.StreamAPIKeys {
		if subtle.ConstantTimeCompare([]byte(configured), []byte(key)) == 1 {
			return true, nil
		}
	}
	log.GetLogger().Debug("Stream key did not match any configured key")
	return false, unauthorizedError()
}

func unauthorizedError() error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrUnAuthorizedRequest.Code,
		Message:     errors.ErrUnAuthorizedRequest.Message,
		Description: errors.ErrUnAuthorizedRequest.Description,
	}, http.StatusUnauthorized)
}
