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
	triggermodel "github.com/reachline/journey-automation-service/internal/triggers/model"
)

// Journey statuses.
const (
	JourneyDraft  = "DRAFT"
	JourneyActive = "ACTIVE"
	JourneyPaused = "PAUSED"
)

// Journey is a full journey definition: trigger audience, entry-frequency
// settings and the node graph. Nodes and edges are flat id-keyed collections;
// the graph may contain cycles (wait/timeout loops), so traversal goes
// through the adjacency index built by Graph, never through object pointers.
type Journey struct {
	JourneyId   string                    `json:"journey_id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Status      string                    `json:"status"`
	Trigger     triggermodel.TargetSegment `json:"trigger"`
	Entry       EntrySettings             `json:"entry"`
	Nodes       []Node                    `json:"nodes"`
	Edges       []Edge                    `json:"edges"`
	Metrics     map[string]NodeMetrics    `json:"metrics,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// EntrySettings controls how often one customer may enter the journey.
type EntrySettings struct {
	AllowReentry bool `json:"allow_reentry"`
	CooldownDays int  `json:"cooldown_days,omitempty"`
	MaxEntries   int  `json:"max_entries,omitempty"`
}

// Node is one step of the journey graph. Type selects which of the optional
// configs applies; the others stay nil.
type Node struct {
	NodeId    string                         `json:"node_id"`
	Type      string                         `json:"type"`
	Name      string                         `json:"name,omitempty"`
	Delay     *DelayConfig                   `json:"delay,omitempty"`
	Condition *conditionmodel.ConditionGroup `json:"condition,omitempty"`
	Action    *ActionConfig                  `json:"action,omitempty"`
	Goal      *GoalConfig                    `json:"goal,omitempty"`
}

// DelayConfig suspends an enrollment for a fixed duration.
type DelayConfig struct {
	DurationMinutes int `json:"duration_minutes"`
}

// ActionConfig sends a message and routes delivery events via exit paths.
type ActionConfig struct {
	TemplateId string          `json:"template_id,omitempty"`
	ExitPaths  ExitPathsConfig `json:"exit_paths"`
}

// ExitPathsConfig maps delivery event types to exit paths. Button-click
// paths are keyed separately by button id and are consulted first for
// button_clicked events.
type ExitPathsConfig struct {
	Paths       map[string]ExitPath `json:"paths,omitempty"`
	ButtonPaths map[string]ExitPath `json:"button_paths,omitempty"`
}

// ExitPath is the configured response to one delivery/interaction event.
type ExitPath struct {
	Enabled           bool       `json:"enabled"`
	Action            ExitAction `json:"action"`
	TrackingEventName string     `json:"tracking_event_name,omitempty"`
}

// ExitAction decides the next step: continue along the default edge, branch
// to a labeled edge, exit the journey, or wait and follow the timeout path
// if no qualifying event arrives in time.
type ExitAction struct {
	Type                string `json:"type"`
	BranchId            string `json:"branch_id,omitempty"`
	WaitDurationMinutes int    `json:"wait_duration_minutes,omitempty"`
	TimeoutPath         string `json:"timeout_path,omitempty"`
}

// AttributionWindow bounds how long after a touch a conversion still counts.
type AttributionWindow struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Duration resolves the window to a time.Duration.
func (w AttributionWindow) Duration() time.Duration {
	if w.Unit == "hours" {
		return time.Duration(w.Value) * time.Hour
	}
	return time.Duration(w.Value) * 24 * time.Hour
}

// GoalConfig configures a goal node: which conversion events qualify and how
// credit is attributed.
type GoalConfig struct {
	GoalType                 string                     `json:"goal_type,omitempty"`
	EventName                string                     `json:"event_name"`
	EventFilters             []conditionmodel.Condition `json:"event_filters,omitempty"`
	AttributionWindow        AttributionWindow          `json:"attribution_window"`
	AttributionModel         string                     `json:"attribution_model"`
	CountMultipleConversions bool                       `json:"count_multiple_conversions"`
	ExitAfterGoal            bool                       `json:"exit_after_goal"`
	MarkAsCompleted          bool                       `json:"mark_as_completed"`
}

// NodeMetrics are per-node transition counters kept on the journey.
type NodeMetrics struct {
	Entered   int `json:"entered"`
	Completed int `json:"completed"`
	Exited    int `json:"exited"`
}
