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

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/reachline/journey-automation-service/internal/customers/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/database/provider"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

// marshalJsonb marshals a JSONB column value, handling nil maps.
func marshalJsonb(data map[string]interface{}) (sql.NullString, error) {
	if data == nil {
		return sql.NullString{Valid: false}, nil
	}
	bytes, err := json.Marshal(data)
	if err != nil {
		errorMsg := "Failed to marshal attributes to JSON for storing in database."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
		return sql.NullString{}, serverError
	}
	return sql.NullString{String: string(bytes), Valid: true}, nil
}

func storageError(base errors2.ErrorMessage, description string, cause error) error {
	log.GetLogger().Debug(description, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        base.Code,
		Message:     base.Message,
		Description: description,
	}, cause)
}

// AddCustomer inserts or replaces a customer record.
func AddCustomer(customer model.Customer) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.ADD_CUSTOMER,
			fmt.Sprintf("Failed to get database client for adding customer with id: %s", customer.CustomerId), err)
	}
	defer dbClient.Close()

	attributesJson, err := marshalJsonb(customer.Attributes)
	if err != nil {
		return err
	}
	tagsJson, err := json.Marshal(customer.Tags)
	if err != nil {
		return storageError(errors2.MARSHAL_JSON, "Failed to marshal customer tags.", err)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (customer_id, email, phone, first_name, last_name, orders_count, total_spent,
            last_activity_at, city, country, tags, accepts_marketing, attributes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (customer_id) DO UPDATE SET
            email = EXCLUDED.email, phone = EXCLUDED.phone, first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name, orders_count = EXCLUDED.orders_count,
            total_spent = EXCLUDED.total_spent, last_activity_at = EXCLUDED.last_activity_at,
            city = EXCLUDED.city, country = EXCLUDED.country, tags = EXCLUDED.tags,
            accepts_marketing = EXCLUDED.accepts_marketing, attributes = EXCLUDED.attributes,
            updated_at = EXCLUDED.updated_at`, constants.CustomerTable)

	_, err = dbClient.Execute(query,
		customer.CustomerId, customer.Email, customer.Phone, customer.FirstName, customer.LastName,
		customer.OrdersCount, customer.TotalSpent, customer.LastActivityAt, customer.City, customer.Country,
		string(tagsJson), customer.AcceptsMarketing, attributesJson, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return storageError(errors2.ADD_CUSTOMER,
			fmt.Sprintf("Failed to persist customer with id: %s", customer.CustomerId), err)
	}
	return nil
}

// DeleteCustomer removes a customer and their orders.
func DeleteCustomer(customerId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.FETCH_CUSTOMERS,
			fmt.Sprintf("Failed to get database client for deleting customer with id: %s", customerId), err)
	}
	defer dbClient.Close()

	if _, err := dbClient.Execute(
		fmt.Sprintf("DELETE FROM %s WHERE customer_id = $1", constants.OrderTable), customerId); err != nil {
		return storageError(errors2.FETCH_CUSTOMERS,
			fmt.Sprintf("Failed to delete orders for customer with id: %s", customerId), err)
	}
	if _, err := dbClient.Execute(
		fmt.Sprintf("DELETE FROM %s WHERE customer_id = $1", constants.CustomerTable), customerId); err != nil {
		return storageError(errors2.FETCH_CUSTOMERS,
			fmt.Sprintf("Failed to delete customer with id: %s", customerId), err)
	}
	return nil
}

// GetCustomer fetches a single customer snapshot, or nil when absent.
func GetCustomer(customerId string) (*model.Customer, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_CUSTOMERS,
			fmt.Sprintf("Failed to get database client for fetching customer with id: %s", customerId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("SELECT * FROM %s WHERE customer_id = $1", constants.CustomerTable)
	rows, err := dbClient.ExecuteQuery(query, customerId)
	if err != nil {
		return nil, storageError(errors2.FETCH_CUSTOMERS,
			fmt.Sprintf("Failed to fetch customer with id: %s", customerId), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	customer := rowToCustomer(rows[0])
	return &customer, nil
}

// ListCustomers fetches all customer snapshots.
func ListCustomers() ([]model.Customer, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_CUSTOMERS,
			"Failed to get database client for listing customers.", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY customer_id", constants.CustomerTable)
	rows, err := dbClient.ExecuteQuery(query)
	if err != nil {
		return nil, storageError(errors2.FETCH_CUSTOMERS, "Failed to fetch customers.", err)
	}

	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, rowToCustomer(row))
	}
	return customers, nil
}

// AddOrder inserts a single order.
func AddOrder(order model.Order) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.FETCH_ORDERS,
			fmt.Sprintf("Failed to get database client for adding order with id: %s", order.OrderId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`
        INSERT INTO %s (order_id, customer_id, total, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (order_id) DO NOTHING`, constants.OrderTable)

	_, err = dbClient.Execute(query, order.OrderId, order.CustomerId, order.Total, order.Status, order.CreatedAt)
	if err != nil {
		return storageError(errors2.FETCH_ORDERS,
			fmt.Sprintf("Failed to persist order with id: %s", order.OrderId), err)
	}
	return nil
}

// GetOrders fetches the order history of a customer, newest first.
func GetOrders(customerId string) ([]model.Order, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_ORDERS,
			fmt.Sprintf("Failed to get database client for fetching orders of customer: %s", customerId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE customer_id = $1 ORDER BY created_at DESC", constants.OrderTable)
	rows, err := dbClient.ExecuteQuery(query, customerId)
	if err != nil {
		return nil, storageError(errors2.FETCH_ORDERS,
			fmt.Sprintf("Failed to fetch orders for customer: %s", customerId), err)
	}

	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, model.Order{
			OrderId:    asString(row["order_id"]),
			CustomerId: asString(row["customer_id"]),
			Total:      asFloat(row["total"]),
			Status:     asString(row["status"]),
			CreatedAt:  asTime(row["created_at"]),
		})
	}
	return orders, nil
}

func rowToCustomer(row map[string]interface{}) model.Customer {

	customer := model.Customer{
		CustomerId:       asString(row["customer_id"]),
		Email:            asString(row["email"]),
		Phone:            asString(row["phone"]),
		FirstName:        asString(row["first_name"]),
		LastName:         asString(row["last_name"]),
		OrdersCount:      int(asFloat(row["orders_count"])),
		TotalSpent:       asFloat(row["total_spent"]),
		City:             asString(row["city"]),
		Country:          asString(row["country"]),
		AcceptsMarketing: asBool(row["accepts_marketing"]),
		CreatedAt:        asTime(row["created_at"]),
		UpdatedAt:        asTime(row["updated_at"]),
	}

	if ts, ok := row["last_activity_at"].(time.Time); ok {
		customer.LastActivityAt = &ts
	}
	if raw := asString(row["tags"]); raw != "" {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			customer.Tags = tags
		}
	}
	if raw := asString(row["attributes"]); raw != "" {
		var attributes map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &attributes); err == nil {
			customer.Attributes = attributes
		}
	}
	return customer
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}

func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case []byte:
		var f float64
		_, _ = fmt.Sscanf(string(val), "%g", &f)
		return f
	default:
		return 0
	}
}

func asBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

func asTime(v interface{}) time.Time {
	if ts, ok := v.(time.Time); ok {
		return ts
	}
	return time.Time{}
}
