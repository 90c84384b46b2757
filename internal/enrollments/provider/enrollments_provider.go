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
	"github.com/reachline/journey-automation-service/internal/enrollments/service"
)

// EnrollmentsProviderInterface defines the interface for the enrollments provider.
type EnrollmentsProviderInterface interface {
	GetEnrollmentService() service.EnrollmentServiceInterface
}

// EnrollmentsProvider is the default implementation of the enrollments provider.
type EnrollmentsProvider struct{}

// NewEnrollmentsProvider creates a new instance of EnrollmentsProvider.
func NewEnrollmentsProvider() EnrollmentsProviderInterface {

	return &EnrollmentsProvider{}
}

// GetEnrollmentService returns the enrollment service instance.
func (ep *EnrollmentsProvider) GetEnrollmentService() service.EnrollmentServiceInterface {

	return service.GetEnrollmentService()
}
