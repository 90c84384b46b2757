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

package provider

import (
	"github.com/reachline/journey-automation-service/internal/events/service"
)

// EventsProviderInterface defines the interface for the events provider.
type EventsProviderInterface interface {
	GetEventService() service.EventServiceInterface
}

// EventsProvider is the default implementation of the EventsProviderInterface.
type EventsProvider struct{}

// NewEventsProvider creates a new instance of EventsProvider.
func NewEventsProvider() EventsProviderInterface {

	return &EventsProvider{}
}

// GetEventService returns the event service instance.
func (ep *EventsProvider) GetEventService() service.EventServiceInterface {

	return service.GetEventService()
}
