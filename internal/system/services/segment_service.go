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

	"github.com/reachline/journey-automation-service/internal/segments/handler"
)

type SegmentService struct {
	segmentHandler *handler.SegmentHandler
}

func NewSegmentService(mux *http.ServeMux, apiBasePath string) *SegmentService {

	instance := &SegmentService{
		segmentHandler: handler.NewSegmentHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *SegmentService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/segments", apiBasePath), s.segmentHandler.CreateSegment)
	mux.HandleFunc(fmt.Sprintf("GET %s/segments", apiBasePath), s.segmentHandler.GetSegments)
	mux.HandleFunc(fmt.Sprintf("POST %s/segments/evaluate", apiBasePath), s.segmentHandler.EvaluateSegment)
	mux.HandleFunc(fmt.Sprintf("GET %s/segments/{segmentId}", apiBasePath), s.segmentHandler.GetSegment)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/segments/{segmentId}", apiBasePath), s.segmentHandler.DeleteSegment)
	mux.HandleFunc(fmt.Sprintf("GET %s/segments/{segmentId}/members", apiBasePath), s.segmentHandler.GetSegmentMembers)
	mux.HandleFunc(fmt.Sprintf("GET %s/customers/{customerId}/rfm", apiBasePath), s.segmentHandler.GetRFM)
}
