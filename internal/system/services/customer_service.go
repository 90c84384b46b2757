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

	"github.com/reachline/journey-automation-service/internal/customers/handler"
)

type CustomerService struct {
	customerHandler *handler.CustomerHandler
}

func NewCustomerService(mux *http.ServeMux, apiBasePath string) *CustomerService {

	instance := &CustomerService{
		customerHandler: handler.NewCustomerHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *CustomerService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("GET %s/customers", apiBasePath), s.customerHandler.GetCustomers)
	mux.HandleFunc(fmt.Sprintf("POST %s/customers", apiBasePath), s.customerHandler.UpsertCustomer)
	mux.HandleFunc(fmt.Sprintf("GET %s/customers/{customerId}", apiBasePath), s.customerHandler.GetCustomer)
	mux.HandleFunc(fmt.Sprintf("PUT %s/customers/{customerId}", apiBasePath), s.customerHandler.UpsertCustomer)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/customers/{customerId}", apiBasePath), s.customerHandler.DeleteCustomer)
	mux.HandleFunc(fmt.Sprintf("GET %s/customers/{customerId}/orders", apiBasePath), s.customerHandler.GetOrders)
	mux.HandleFunc(fmt.Sprintf("POST %s/customers/{customerId}/orders", apiBasePath), s.customerHandler.AddOrder)
}
