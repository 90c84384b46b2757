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

package constants

import "time"

const ApiBasePath = "/automation/v1"

// Table names for the PostgreSQL stores.
const (
	CustomerTable = "customers"
	OrderTable    = "orders"
	EventTable    = "events"
	SegmentTable  = "segments"
	JourneyTable  = "journeys"
)

// Mongo collection names for the enrollment stores.
const (
	EnrollmentCollection        = "enrollments"
	PendingTransitionCollection = "pending_transitions"
)

const (
	// DefaultQueueSize is the buffer of each enrollment worker queue.
	DefaultQueueSize = 1024

	// EnrollmentWorkerShards is the number of single-writer queues events
	// are hashed onto by enrollment id.
	EnrollmentWorkerShards = 8

	// DefaultSegmentCacheTTL bounds how long a computed segment member
	// list may be served without re-evaluation.
	DefaultSegmentCacheTTL = 5 * time.Minute

	// PendingTransitionPollInterval is how often the scheduler looks for
	// due delay/wait transitions.
	PendingTransitionPollInterval = 15 * time.Second
)

// Condition operators supported by the condition evaluator.
const (
	OpEquals      = "equals"
	OpNotEquals   = "not_equals"
	OpContains    = "contains"
	OpNotContains = "not_contains"
	OpStartsWith  = "starts_with"
	OpEndsWith    = "ends_with"
	OpGreaterThan = "greater_than"
	OpLessThan    = "less_than"
	OpBetween     = "between"
	OpIsEmpty     = "is_empty"
	OpIsNotEmpty  = "is_not_empty"
	OpInLastDays  = "in_last_days"
	OpBeforeDate  = "before_date"
	OpAfterDate   = "after_date"
)

var AllowedConditionOperators = map[string]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpContains:    true,
	OpNotContains: true,
	OpStartsWith:  true,
	OpEndsWith:    true,
	OpGreaterThan: true,
	OpLessThan:    true,
	OpBetween:     true,
	OpIsEmpty:     true,
	OpIsNotEmpty:  true,
	OpInLastDays:  true,
	OpBeforeDate:  true,
	OpAfterDate:   true,
}

// Logical operators for condition groups and rule groups.
const (
	LogicalAnd = "AND"
	LogicalOr  = "OR"
)

// Trigger rule kinds.
const (
	RuleTypeProperty = "property"
	RuleTypeBehavior = "behavior"
	RuleTypeInterest = "interest"
)

// Trigger rule actions.
const (
	RuleActionDid    = "did"
	RuleActionDidNot = "did_not"
)

// Enumerated time frame periods for behavior rules.
const (
	PeriodLast24Hours = "last_24_hours"
	PeriodLast7Days   = "last_7_days"
	PeriodLast30Days  = "last_30_days"
	PeriodLast90Days  = "last_90_days"
	PeriodCustom      = "custom"
)

var AllowedTimeFramePeriods = map[string]bool{
	PeriodLast24Hours: true,
	PeriodLast7Days:   true,
	PeriodLast30Days:  true,
	PeriodLast90Days:  true,
	PeriodCustom:      true,
}

// Journey node kinds.
const (
	NodeTypeTrigger   = "trigger"
	NodeTypeDelay     = "delay"
	NodeTypeCondition = "condition"
	NodeTypeAction    = "action"
	NodeTypeGoal      = "goal"
	NodeTypeExit      = "exit"
)

var AllowedNodeTypes = map[string]bool{
	NodeTypeTrigger:   true,
	NodeTypeDelay:     true,
	NodeTypeCondition: true,
	NodeTypeAction:    true,
	NodeTypeGoal:      true,
	NodeTypeExit:      true,
}

// Branch labels used by condition nodes.
const (
	BranchTrue  = "true"
	BranchFalse = "false"
)

// Enrollment statuses. Completed, exited and dropped are terminal.
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentExited    = "EXITED"
	EnrollmentDropped   = "DROPPED"
)

// Delivery and interaction event types emitted by the messaging provider.
const (
	DeliverySent          = "sent"
	DeliveryDelivered     = "delivered"
	DeliveryRead          = "read"
	DeliveryReplied       = "replied"
	DeliveryButtonClicked = "button_clicked"
	DeliveryFailed        = "failed"
	DeliveryUnreachable   = "unreachable"
	DeliveryTimeout       = "timeout"
)

var AllowedDeliveryEventTypes = map[string]bool{
	DeliverySent:          true,
	DeliveryDelivered:     true,
	DeliveryRead:          true,
	DeliveryReplied:       true,
	DeliveryButtonClicked: true,
	DeliveryFailed:        true,
	DeliveryUnreachable:   true,
	DeliveryTimeout:       true,
}

// Exit path actions.
const (
	ExitActionContinue = "continue"
	ExitActionBranch   = "branch"
	ExitActionExit     = "exit"
	ExitActionWait     = "wait"
)

var AllowedExitPathActions = map[string]bool{
	ExitActionContinue: true,
	ExitActionBranch:   true,
	ExitActionExit:     true,
	ExitActionWait:     true,
}

// Goal attribution models.
const (
	AttributionFirstTouch = "first_touch"
	AttributionLastTouch  = "last_touch"
	AttributionLinear     = "linear"
)

var AllowedAttributionModels = map[string]bool{
	AttributionFirstTouch: true,
	AttributionLastTouch:  true,
	AttributionLinear:     true,
}

// Attribution window units.
const (
	WindowUnitHours = "hours"
	WindowUnitDays  = "days"
)

var AllowedWindowUnits = map[string]bool{
	WindowUnitHours: true,
	WindowUnitDays:  true,
}

// ContextKey is the type for request context keys.
type ContextKey string

const TenantContextKey ContextKey = "tenant"
