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

	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
)

// Segment is a named set of customers matching a condition tree.
type Segment struct {
	SegmentId   string                        `json:"segment_id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description,omitempty"`
	Conditions  conditionmodel.ConditionGroup `json:"conditions"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// RFMScore holds recency/frequency/monetary scores (1-5 each) and the derived
// segment label. Scores are computed fresh per call and never persisted here;
// the caller owns persistence and invalidation.
type RFMScore struct {
	CustomerId         string  `json:"customer_id"`
	Recency            int     `json:"recency"`
	Frequency          int     `json:"frequency"`
	Monetary           int     `json:"monetary"`
	SegmentLabel       string  `json:"segment_label"`
	DaysSinceLastOrder int     `json:"days_since_last_order"`
	OrdersCount        int     `json:"orders_count"`
	TotalSpent         float64 `json:"total_spent"`
}

// EvaluationRequest is the payload of the segment evaluation API: a condition
// tree plus an optional explicit customer id scope. An empty scope evaluates
// against the full customer base.
type EvaluationRequest struct {
	Conditions  conditionmodel.ConditionGroup `json:"conditions"`
	CustomerIds []string                      `json:"customer_ids,omitempty"`
}

// EvaluationResult carries the matching customer ids.
type EvaluationResult struct {
	CustomerIds []string `json:"customer_ids"`
	Total       int      `json:"total"`
	Matched     int      `json:"matched"`
}
