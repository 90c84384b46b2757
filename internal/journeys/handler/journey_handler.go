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

	"github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/journeys/provider"
	"github.com/reachline/journey-automation-service/internal/system/authn"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
	"github.com/reachline/journey-automation-service/internal/system/utils"
)

type JourneyHandler struct{}

func NewJourneyHandler() *JourneyHandler {

	return &JourneyHandler{}
}

// CreateJourney stores a new journey in draft status.
func (jh *JourneyHandler) CreateJourney(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var journey model.Journey
	if err := json.NewDecoder(r.Body).Decode(&journey); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "journey"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	created, err := journeyService.CreateJourney(journey)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetJourneys lists journeys, optionally filtered by status.
func (jh *JourneyHandler) GetJourneys(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	journeys, err := journeyService.ListJourneys(r.URL.Query().Get("status"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, journeys)
}

// GetJourney fetches one journey definition by id.
func (jh *JourneyHandler) GetJourney(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	journeyId := r.PathValue("journeyId")
	if journeyId == "" {
		http.Error(w, "Missing journeyId parameter", http.StatusBadRequest)
		return
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	journey, err := journeyService.GetJourney(journeyId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, journey)
}

// UpdateJourney replaces a journey definition.
func (jh *JourneyHandler) UpdateJourney(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var journey model.Journey
	if err := json.NewDecoder(r.Body).Decode(&journey); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "journey"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if journey.JourneyId == "" {
		journey.JourneyId = r.PathValue("journeyId")
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	updated, err := journeyService.UpdateJourney(journey)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, updated)
}

// DeleteJourney removes a journey definition.
func (jh *JourneyHandler) DeleteJourney(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.ValidateAuthenticationAndReturnClaims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	journeyId := r.PathValue("journeyId")
	if journeyId == "" {
		http.Error(w, "Missing journeyId parameter", http.StatusBadRequest)
		return
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	if err := journeyService.DeleteJourney(journeyId); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   utils.SubjectFromClaims(claims),
		InitiatorType: "user",
		TargetID:      journeyId,
		TargetType:    "journey",
		ActionID:      log.ActionDeleteJourney,
	})
	w.WriteHeader(http.StatusNoContent)
}

// ActivateJourney runs the validation gate and flips the journey to active.
func (jh *JourneyHandler) ActivateJourney(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.ValidateAuthenticationAndReturnClaims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	journeyId := r.PathValue("journeyId")
	if journeyId == "" {
		http.Error(w, "Missing journeyId parameter", http.StatusBadRequest)
		return
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	if err := journeyService.ActivateJourney(journeyId); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   utils.SubjectFromClaims(claims),
		InitiatorType: "user",
		TargetID:      journeyId,
		TargetType:    "journey",
		ActionID:      log.ActionActivateJourney,
	})
	w.WriteHeader(http.StatusOK)
}

// PauseJourney stops new entries into a journey.
func (jh *JourneyHandler) PauseJourney(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.ValidateAuthenticationAndReturnClaims(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	journeyId := r.PathValue("journeyId")
	if journeyId == "" {
		http.Error(w, "Missing journeyId parameter", http.StatusBadRequest)
		return
	}

	journeyService := provider.NewJourneysProvider().GetJourneyService()
	if err := journeyService.PauseJourney(journeyId); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   utils.SubjectFromClaims(claims),
		InitiatorType: "user",
		TargetID:      journeyId,
		TargetType:    "journey",
		ActionID:      log.ActionDeactivateJourney,
	})
	w.WriteHeader(http.StatusOK)
}
