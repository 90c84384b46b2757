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

package service

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/reachline/journey-automation-service/internal/events/model"
	"github.com/reachline/journey-automation-service/internal/events/store"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
)

// EventServiceInterface ingests tracked behavioral events and answers the
// qualifying-occurrence queries behind behavior trigger rules.
type EventServiceInterface interface {
	TrackEvent(event model.Event) (*model.Event, error)
	GetEventsSince(customerId, eventName string, since time.Time) ([]model.Event, error)
	GetEventsByCustomer(customerId string) ([]model.Event, error)
}

// EventService is the default implementation of the EventServiceInterface.
type EventService struct{}

// GetEventService creates a new instance of EventService.
func GetEventService() EventServiceInterface {

	return &EventService{}
}

// TrackEvent validates and stores a behavioral event. Missing ids and
// timestamps are filled in on ingestion.
func (es *EventService) TrackEvent(event model.Event) (*model.Event, error) {

	if event.CustomerId == "" || event.EventName == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_EVENT.Code,
			Message:     errors2.INVALID_EVENT.Message,
			Description: "Both customer id and event name are required.",
		}, http.StatusBadRequest)
	}

	if event.EventId == "" {
		event.EventId = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := store.AddEvent(event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventsSince returns a customer's occurrences of one event at or after
// the cutoff, oldest first.
func (es *EventService) GetEventsSince(customerId, eventName string, since time.Time) ([]model.Event, error) {

	return store.GetEventsSince(customerId, eventName, since)
}

// GetEventsByCustomer returns all tracked events of a customer, newest first.
func (es *EventService) GetEventsByCustomer(customerId string) ([]model.Event, error) {

	return store.GetEventsByCustomer(customerId)
}
