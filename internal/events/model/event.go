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

import "time"

// Event is a tracked behavioral event. Behavior trigger rules are answered
// by querying these records per customer, event name and time frame.
type Event struct {
	EventId    string                 `json:"event_id"`
	CustomerId string                 `json:"customer_id"`
	EventName  string                 `json:"event_name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// DeliveryEvent is a push notification from the messaging provider about one
// enrollment's action node: sent, delivered, read, replied, button_clicked,
// failed, unreachable or timeout.
type DeliveryEvent struct {
	EventId      string    `json:"event_id"`
	EnrollmentId string    `json:"enrollment_id"`
	NodeId       string    `json:"node_id"`
	EventType    string    `json:"event_type"`
	ButtonId     string    `json:"button_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ConversionEvent is a push notification about a customer action that may
// count toward a journey goal.
type ConversionEvent struct {
	EventId    string                 `json:"event_id"`
	CustomerId string                 `json:"customer_id"`
	EventName  string                 `json:"event_name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}
