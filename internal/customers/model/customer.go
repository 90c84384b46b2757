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

package model

import (
	"strings"
	"time"
)

// Customer is an immutable snapshot of a customer at evaluation time. The
// record is produced by the external customer data provider; the core never
// mutates it during evaluation.
type Customer struct {
	CustomerId       string                 `json:"customer_id" bson:"customer_id"`
	Email            string                 `json:"email,omitempty" bson:"email,omitempty"`
	Phone            string                 `json:"phone,omitempty" bson:"phone,omitempty"`
	FirstName        string                 `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName         string                 `json:"last_name,omitempty" bson:"last_name,omitempty"`
	OrdersCount      int                    `json:"orders_count" bson:"orders_count"`
	TotalSpent       float64                `json:"total_spent" bson:"total_spent"`
	LastActivityAt   *time.Time             `json:"last_activity_at,omitempty" bson:"last_activity_at,omitempty"`
	City             string                 `json:"city,omitempty" bson:"city,omitempty"`
	Country          string                 `json:"country,omitempty" bson:"country,omitempty"`
	Tags             []string               `json:"tags,omitempty" bson:"tags,omitempty"`
	AcceptsMarketing bool                   `json:"accepts_marketing" bson:"accepts_marketing"`
	Attributes       map[string]interface{} `json:"attributes,omitempty" bson:"attributes,omitempty"`
	CreatedAt        time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at" bson:"updated_at"`
}

// Order is a single purchase belonging to a customer.
type Order struct {
	OrderId    string    `json:"order_id" bson:"order_id"`
	CustomerId string    `json:"customer_id" bson:"customer_id"`
	Total      float64   `json:"total" bson:"total"`
	Status     string    `json:"status,omitempty" bson:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Snapshot flattens the customer into the field map consumed by the
// condition evaluator. Custom attributes are merged in but never shadow the
// built-in fields.
func (c *Customer) Snapshot() map[string]interface{} {

	snapshot := make(map[string]interface{}, len(c.Attributes)+12)
	for key, value := range c.Attributes {
		snapshot[key] = value
	}

	snapshot["customer_id"] = c.CustomerId
	snapshot["email"] = c.Email
	snapshot["phone"] = c.Phone
	snapshot["first_name"] = c.FirstName
	snapshot["last_name"] = c.LastName
	snapshot["orders_count"] = c.OrdersCount
	snapshot["total_spent"] = c.TotalSpent
	snapshot["city"] = c.City
	snapshot["country"] = c.Country
	snapshot["accepts_marketing"] = c.AcceptsMarketing
	snapshot["tags"] = strings.Join(c.Tags, ",")
	if c.LastActivityAt != nil {
		snapshot["last_activity_at"] = *c.LastActivityAt
	}

	return snapshot
}

// HasTag reports whether the customer carries the given tag, ignoring case.
func (c *Customer) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
