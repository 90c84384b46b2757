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

package services

import (
	"fmt"
	"net/http"

	"github.com/reachline/journey-automation-service/internal/journeys/handler"
)

type JourneyService struct {
	journeyHandler *handler.JourneyHandler
}

func NewJourneyService(mux *http.ServeMux, apiBasePath string) *JourneyService {

	instance := &JourneyService{
		journeyHandler: handler.NewJourneyHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *JourneyService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/journeys", apiBasePath), s.journeyHandler.CreateJourney)
	mux.HandleFunc(fmt.Sprintf("GET %s/journeys", apiBasePath), s.journeyHandler.GetJourneys)
	mux.HandleFunc(fmt.Sprintf("GET %s/journeys/{journeyId}", apiBasePath), s.journeyHandler.GetJourney)
	mux.HandleFunc(fmt.Sprintf("PUT %s/journeys/{journeyId}", apiBasePath), s.journeyHandler.UpdateJourney)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/journeys/{journeyId}", apiBasePath), s.journeyHandler.DeleteJourney)
	mux.HandleFunc(fmt.Sprintf("POST %s/journeys/{journeyId}/activate", apiBasePath), s.journeyHandler.ActivateJourney)
	mux.HandleFunc(fmt.Sprintf("POST %s/journeys/{journeyId}/pause", apiBasePath), s.journeyHandler.PauseJourney)
}
