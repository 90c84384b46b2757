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
	"github.com/reachline/journey-automation-service/internal/segments/service"
)

// SegmentsProviderInterface defines the interface for the segments provider.
type SegmentsProviderInterface interface {
	GetSegmentService() service.SegmentServiceInterface
	GetRFMScorer() service.RFMScorerInterface
}

// SegmentsProvider is the default implementation of the SegmentsProviderInterface.
type SegmentsProvider struct{}

// NewSegmentsProvider creates a new instance of SegmentsProvider.
func NewSegmentsProvider() SegmentsProviderInterface {

	return &SegmentsProvider{}
}

// GetSegmentService returns the segment service instance.
func (sp *SegmentsProvider) GetSegmentService() service.SegmentServiceInterface {

	return service.GetSegmentService()
}

// GetRFMScorer returns the RFM scorer instance.
func (sp *SegmentsProvider) GetRFMScorer() service.RFMScorerInterface {

	return service.GetRFMScorer()
}
