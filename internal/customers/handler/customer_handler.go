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

	"github.com/reachline/journey-automation-service/internal/customers/model"
	"github.com/reachline/journey-automation-service/internal/customers/provider"
	"github.com/reachline/journey-automation-service/internal/system/authn"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/utils"
)

type CustomerHandler struct{}

func NewCustomerHandler() *CustomerHandler {

	return &CustomerHandler{}
}

// GetCustomers lists all customer snapshots.
func (ch *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerService := provider.NewCustomersProvider().GetCustomerService()
	customers, err := customerService.ListCustomers()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, customers)
}

// GetCustomer fetches a single customer snapshot by id.
func (ch *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerId := r.PathValue("customerId")
	if customerId == "" {
		http.Error(w, "Missing customerId parameter", http.StatusBadRequest)
		return
	}

	customerService := provider.NewCustomersProvider().GetCustomerService()
	customer, err := customerService.GetCustomer(customerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, customer)
}

// GetOrders fetches a customer's order history, newest first.
func (ch *CustomerHandler) GetOrders(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerId := r.PathValue("customerId")
	if customerId == "" {
		http.Error(w, "Missing customerId parameter", http.StatusBadRequest)
		return
	}

	customerService := provider.NewCustomersProvider().GetCustomerService()
	orders, err := customerService.GetOrders(customerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, orders)
}

// UpsertCustomer creates or replaces a customer snapshot.
func (ch *CustomerHandler) UpsertCustomer(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var customer model.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "customer"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	customerService := provider.NewCustomersProvider().GetCustomerService()
	if err := customerService.UpsertCustomer(customer); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteCustomer removes a customer and their orders.
func (ch *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerId := r.PathValue("customerId")
	if customerId == "" {
		http.Error(w, "Missing customerId parameter", http.StatusBadRequest)
		return
	}

	customerService := provider.NewCustomersProvider().GetCustomerService()
	if err := customerService.DeleteCustomer(customerId); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddOrder records a single order against a customer.
func (ch *CustomerHandler) AddOrder(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "order"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if order.CustomerId == "" {
		order.CustomerId = r.PathValue("customerId")
	}

	customerService := provider.NewCustomersProvider().GetCustomerService()
	if err := customerService.AddOrder(order); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
