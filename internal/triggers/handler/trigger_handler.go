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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/reachline/journey-automation-service/internal/system/authn"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/utils"
	"github.com/reachline/journey-automation-service/internal/triggers/model"
	"github.com/reachline/journey-automation-service/internal/triggers/provider"
)

type TriggerHandler struct{}

func NewTriggerHandler() *TriggerHandler {

	return &TriggerHandler{}
}

// EstimateReach validates a target segment and counts the customers that
// currently match it.
func (th *TriggerHandler) EstimateReach(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var segment model.TargetSegment
	if err := json.NewDecoder(r.Body).Decode(&segment); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "target segment"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	matcher := provider.NewTriggersProvider().GetTriggerMatcher()
	reach, err := matcher.EstimateReach(segment)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]int{"reach": reach})
}

// ValidateTrigger validates a target segment without evaluating it, so a
// journey builder can surface rule problems before activation.
func (th *TriggerHandler) ValidateTrigger(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var segment model.TargetSegment
	if err := json.NewDecoder(r.Body).Decode(&segment); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "target segment"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	matcher := provider.NewTriggersProvider().GetTriggerMatcher()
	if err := matcher.ValidateTargetSegment(segment); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
