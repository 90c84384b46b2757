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
	"fmt"
	"net/http"
	"time"

	"github.com/reachline/journey-automation-service/internal/customers/model"
	"github.com/reachline/journey-automation-service/internal/customers/store"
	segmentcache "github.com/reachline/journey-automation-service/internal/segments/cache"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

// CustomerServiceInterface is the customer/order provider surface the rest
// of the core consumes.
type CustomerServiceInterface interface {
	GetCustomer(customerId string) (*model.Customer, error)
	GetOrders(customerId string) ([]model.Order, error)
	ListCustomers() ([]model.Customer, error)
	UpsertCustomer(customer model.Customer) error
	DeleteCustomer(customerId string) error
	AddOrder(order model.Order) error
}

// CustomerService is the default implementation of the CustomerServiceInterface.
type CustomerService struct {
	membership *segmentcache.MembershipCache
}

// GetCustomerService creates a new instance of CustomerService backed by the
// shared segment membership cache.
func GetCustomerService() CustomerServiceInterface {

	return &CustomerService{membership: segmentcache.GetSharedCache()}
}

// GetCustomerServiceWithCache creates an instance with an injected cache.
func GetCustomerServiceWithCache(membership *segmentcache.MembershipCache) CustomerServiceInterface {

	return &CustomerService{membership: membership}
}

func (cs *CustomerService) GetCustomer(customerId string) (*model.Customer, error) {

	customer, err := store.GetCustomer(customerId)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CUSTOMER_NOT_FOUND.Code,
			Message:     errors2.CUSTOMER_NOT_FOUND.Message,
			Description: fmt.Sprintf("Customer with id %s not found.", customerId),
		}, http.StatusNotFound)
	}
	return customer, nil
}

func (cs *CustomerService) GetOrders(customerId string) ([]model.Order, error) {

	return store.GetOrders(customerId)
}

func (cs *CustomerService) ListCustomers() ([]model.Customer, error) {

	return store.ListCustomers()
}

// UpsertCustomer stores a customer snapshot. Since segment membership may
// depend on any customer field, every mutation invalidates the whole
// membership cache.
func (cs *CustomerService) UpsertCustomer(customer model.Customer) error {

	if customer.CustomerId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: "Customer id is required.",
		}, http.StatusBadRequest)
	}

	now := time.Now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	if err := store.AddCustomer(customer); err != nil {
		return err
	}

	cs.membership.InvalidateAll()
	return nil
}

func (cs *CustomerService) DeleteCustomer(customerId string) error {

	if err := store.DeleteCustomer(customerId); err != nil {
		return err
	}

	cs.membership.InvalidateAll()
	return nil
}

// AddOrder stores an order and refreshes the owning customer's aggregates.
func (cs *CustomerService) AddOrder(order model.Order) error {

	if order.OrderId == "" || order.CustomerId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: "Both order id and customer id are required.",
		}, http.StatusBadRequest)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	if err := store.AddOrder(order); err != nil {
		return err
	}

	customer, err := store.GetCustomer(order.CustomerId)
	if err != nil {
		return err
	}
	if customer == nil {
		log.GetLogger().Debug(fmt.Sprintf("Order %s references unknown customer %s; skipping aggregate refresh",
			order.OrderId, order.CustomerId))
		return nil
	}

	orders, err := store.GetOrders(order.CustomerId)
	if err != nil {
		return err
	}
	customer.OrdersCount = len(orders)
	total := 0.0
	var lastActivity time.Time
	for _, o := range orders {
		total += o.Total
		if o.CreatedAt.After(lastActivity) {
			lastActivity = o.CreatedAt
		}
	}
	customer.TotalSpent = total
	if !lastActivity.IsZero() {
		customer.LastActivityAt = &lastActivity
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := store.AddCustomer(*customer); err != nil {
		return err
	}

	cs.membership.InvalidateAll()
	return nil
}
