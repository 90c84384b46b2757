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
	"time"

	"github.com/reachline/journey-automation-service/internal/system/constants"
)

// HistoryEntry records one visit to a node. ExitedAt is nil while the
// enrollment still sits on the node; it is set atomically with the move to
// the next node.
type HistoryEntry struct {
	NodeId    string     `json:"node_id" bson:"node_id"`
	EnteredAt time.Time  `json:"entered_at" bson:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at,omitempty" bson:"exited_at,omitempty"`
}

// EnrollmentAction is a side effect recorded against the enrollment, such as
// a message send or a tracking event.
type EnrollmentAction struct {
	Type     string                 `json:"type" bson:"type"`
	At       time.Time              `json:"at" bson:"at"`
	Metadata map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// AttributedConversion is one counted goal conversion with its credited
// touch and credit share.
type AttributedConversion struct {
	EventId   string    `json:"event_id" bson:"event_id"`
	EventName string    `json:"event_name" bson:"event_name"`
	At        time.Time `json:"at" bson:"at"`
	TouchAt   time.Time `json:"touch_at" bson:"touch_at"`
	Credit    float64   `json:"credit" bson:"credit"`
}

// Enrollment is one customer's progress through one journey. While the
// status is ACTIVE there is exactly one CurrentNodeId; History is append-only
// and monotonically increasing in time. ProcessedKeys holds the idempotency
// keys (enrollment+node+event) of applied transitions so duplicate event
// deliveries replay as no-ops.
type Enrollment struct {
	EnrollmentId  string                 `json:"enrollment_id" bson:"enrollment_id"`
	JourneyId     string                 `json:"journey_id" bson:"journey_id"`
	CustomerId    string                 `json:"customer_id" bson:"customer_id"`
	Status        string                 `json:"status" bson:"status"`
	CurrentNodeId string                 `json:"current_node_id" bson:"current_node_id"`
	History       []HistoryEntry         `json:"history" bson:"history"`
	Actions       []EnrollmentAction     `json:"actions,omitempty" bson:"actions,omitempty"`
	Conversions   []AttributedConversion `json:"conversions,omitempty" bson:"conversions,omitempty"`
	ProcessedKeys []string               `json:"-" bson:"processed_keys,omitempty"`
	EnrolledAt    time.Time              `json:"enrolled_at" bson:"enrolled_at"`
	UpdatedAt     time.Time              `json:"updated_at" bson:"updated_at"`
}

// IsTerminal reports whether the enrollment has reached a terminal status.
func (e *Enrollment) IsTerminal() bool {
	switch e.Status {
	case constants.EnrollmentCompleted, constants.EnrollmentExited, constants.EnrollmentDropped:
		return true
	}
	return false
}

// TransitionKey builds the idempotency key for applying one event to one
// node of one enrollment.
func TransitionKey(enrollmentId, nodeId, eventId string) string {
	return enrollmentId + ":" + nodeId + ":" + eventId
}

// Pending transition kinds.
const (
	TransitionDelay = "delay"
	TransitionWait  = "wait"
)

// PendingTransition is a persisted suspension point: a delay node or an
// armed wait timer. The scheduler resumes it at or after DueAt; if the
// enrollment has moved off NodeId by then, the resume is a no-op.
type PendingTransition struct {
	TransitionId string    `json:"transition_id" bson:"transition_id"`
	EnrollmentId string    `json:"enrollment_id" bson:"enrollment_id"`
	NodeId       string    `json:"node_id" bson:"node_id"`
	Kind         string    `json:"kind" bson:"kind"`
	DueAt        time.Time `json:"due_at" bson:"due_at"`
	TimeoutPath  string    `json:"timeout_path,omitempty" bson:"timeout_path,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
