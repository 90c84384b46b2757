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
	"github.com/reachline/journey-automation-service/internal/customers/service"
)

// CustomersProviderInterface defines the interface for the customers provider.
type CustomersProviderInterface interface {
	GetCustomerService() service.CustomerServiceInterface
}

// CustomersProvider is the default implementation of the CustomersProviderInterface.
type CustomersProvider struct{}

// NewCustomersProvider creates a new instance of CustomersProvider.
func NewCustomersProvider() CustomersProviderInterface {

	return &CustomersProvider{}
}

// GetCustomerService returns the customer service instance.
func (cp *CustomersProvider) GetCustomerService() service.CustomerServiceInterface {

	return service.GetCustomerService()
}
