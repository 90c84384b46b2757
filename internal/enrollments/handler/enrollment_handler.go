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

	"github.com/reachline/journey-automation-service/internal/enrollments/provider"
	"github.com/reachline/journey-automation-service/internal/system/authn"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/utils"
)

type EnrollmentHandler struct{}

func NewEnrollmentHandler() *EnrollmentHandler {

	return &EnrollmentHandler{}
}

type enrollRequest struct {
	CustomerId string `json:"customerId"`
	JourneyId  string `json:"journeyId"`
}

// Enroll creates a new enrollment of a customer into an active journey.
func (eh *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "enrollment"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if request.CustomerId == "" || request.JourneyId == "" {
		http.Error(w, "customerId and journeyId are required", http.StatusBadRequest)
		return
	}

	enrollmentService := provider.NewEnrollmentsProvider().GetEnrollmentService()
	enrollment, err := enrollmentService.Enroll(request.CustomerId, request.JourneyId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, enrollment)
}

// GetEnrollment fetches one enrollment with its node history, recorded
// actions and attributed conversions.
func (eh *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	enrollmentId := r.PathValue("enrollmentId")
	if enrollmentId == "" {
		http.Error(w, "Missing enrollmentId parameter", http.StatusBadRequest)
		return
	}

	enrollmentService := provider.NewEnrollmentsProvider().GetEnrollmentService()
	enrollment, err := enrollmentService.GetEnrollment(enrollmentId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, enrollment)
}

// GetEnrollments lists enrollments filtered by journeyId and/or customerId
// query parameters.
func (eh *EnrollmentHandler) GetEnrollments(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	enrollmentService := provider.NewEnrollmentsProvider().GetEnrollmentService()
	enrollments, err := enrollmentService.ListEnrollments(
		r.URL.Query().Get("journeyId"), r.URL.Query().Get("customerId"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, enrollments)
}
