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
	"time"

	"github.com/google/uuid"
	enrollmentprovider "github.com/reachline/journey-automation-service/internal/enrollments/provider"
	"github.com/reachline/journey-automation-service/internal/events/model"
	"github.com/reachline/journey-automation-service/internal/events/provider"
	"github.com/reachline/journey-automation-service/internal/system/authentication"
	"github.com/reachline/journey-automation-service/internal/system/authn"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/utils"
	"github.com/reachline/journey-automation-service/internal/system/workers"
)

type EventHandler struct{}

func NewEventHandler() *EventHandler {

	return &EventHandler{}
}

// TrackEvent ingests one behavioral event from the stream feed.
func (eh *EventHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {

	if _, err := authentication.ValidateStreamAuthentication(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var event model.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "event"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	eventService := provider.NewEventsProvider().GetEventService()
	stored, err := eventService.TrackEvent(event)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, stored)
}

// GetCustomerEvents lists a customer's tracked events, newest first.
func (eh *EventHandler) GetCustomerEvents(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerId := r.PathValue("customerId")
	if customerId == "" {
		http.Error(w, "Missing customerId parameter", http.StatusBadRequest)
		return
	}

	eventService := provider.NewEventsProvider().GetEventService()
	events, err := eventService.GetEventsByCustomer(customerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, events)
}

// HandleDeliveryEvent accepts a delivery or interaction callback from the
// messaging provider and hands it to the enrollment's worker shard. The feed
// is acknowledged before processing; bad enrollment references are swallowed
// downstream.
func (eh *EventHandler) HandleDeliveryEvent(w http.ResponseWriter, r *http.Request) {

	if _, err := authentication.ValidateStreamAuthentication(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var event model.DeliveryEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "delivery event"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if event.EnrollmentId == "" || event.NodeId == "" || event.EventType == "" {
		http.Error(w, "enrollmentId, nodeId and eventType are required", http.StatusBadRequest)
		return
	}
	if event.EventId == "" {
		event.EventId = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	enrollmentService := enrollmentprovider.NewEnrollmentsProvider().GetEnrollmentService()
	workers.EnqueueEnrollmentTask(event.EnrollmentId, func() {
		enrollmentService.HandleDeliveryEvent(event)
	})

	w.WriteHeader(http.StatusAccepted)
}

// HandleConversionEvent accepts a conversion event and fans it out over the
// customer's active enrollments. Tasks are keyed by customer id so all of a
// customer's enrollments see conversions in arrival order.
func (eh *EventHandler) HandleConversionEvent(w http.ResponseWriter, r *http.Request) {

	if _, err := authentication.ValidateStreamAuthentication(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var event model.ConversionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "conversion event"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if event.CustomerId == "" || event.EventName == "" {
		http.Error(w, "customerId and eventName are required", http.StatusBadRequest)
		return
	}
	if event.EventId == "" {
		event.EventId = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	enrollmentService := enrollmentprovider.NewEnrollmentsProvider().GetEnrollmentService()
	workers.EnqueueEnrollmentTask(event.CustomerId, func() {
		enrollmentService.HandleConversionEvent(event)
	})

	w.WriteHeader(http.StatusAccepted)
}
