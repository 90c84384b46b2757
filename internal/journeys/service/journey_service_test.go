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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	"github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
	triggermodel "github.com/reachline/journey-automation-service/internal/triggers/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// validJourney builds a journey that passes the activation gate; tests break
// one aspect at a time.
func validJourney() model.Journey {
	return model.Journey{
		JourneyId: "j1",
		Name:      "Welcome flow",
		Trigger: triggermodel.TargetSegment{
			Rules: []triggermodel.RuleEnvelope{{
				RuleType: constants.RuleTypeProperty,
				Conditions: []conditionmodel.Condition{
					{Field: "country", Operator: constants.OpEquals, Value: "DE"}},
			}},
		},
		Nodes: []model.Node{
			{NodeId: "t1", Type: constants.NodeTypeTrigger},
			{NodeId: "d1", Type: constants.NodeTypeDelay, Delay: &model.DelayConfig{DurationMinutes: 60}},
			{NodeId: "c1", Type: constants.NodeTypeCondition, Condition: &conditionmodel.ConditionGroup{
				LogicalOperator: constants.LogicalAnd,
				Conditions: []conditionmodel.Condition{
					{Field: "accepts_marketing", Operator: constants.OpEquals, Value: true}},
			}},
			{NodeId: "a1", Type: constants.NodeTypeAction, Action: &model.ActionConfig{
				TemplateId: "welcome-v1",
				ExitPaths: model.ExitPathsConfig{
					Paths: map[string]model.ExitPath{
						constants.DeliveryRead: {
							Enabled: true,
							Action:  model.ExitAction{Type: constants.ExitActionContinue},
						},
					},
				},
			}},
			{NodeId: "g1", Type: constants.NodeTypeGoal, Goal: &model.GoalConfig{
				EventName:         "purchase_completed",
				AttributionWindow: model.AttributionWindow{Value: 7, Unit: "days"},
				AttributionModel:  constants.AttributionLastTouch,
			}},
			{NodeId: "x1", Type: constants.NodeTypeExit},
		},
		Edges: []model.Edge{
			{From: "t1", To: "d1"},
			{From: "d1", To: "c1"},
			{From: "c1", To: "a1", Label: constants.BranchTrue},
			{From: "c1", To: "x1", Label: constants.BranchFalse},
			{From: "a1", To: "g1"},
			{From: "g1", To: "x1"},
		},
	}
}

func Test_ValidateJourney_Valid(t *testing.T) {
	svc := GetJourneyService()
	require.NoError(t, svc.ValidateJourney(validJourney()))
}

func Test_ValidateJourney_GraphErrors(t *testing.T) {
	svc := GetJourneyService()

	tests := []struct {
		name   string
		mutate func(j *model.Journey)
	}{
		{"no nodes", func(j *model.Journey) { j.Nodes = nil }},
		{"no trigger node", func(j *model.Journey) { j.Nodes = j.Nodes[1:] }},
		{"empty node id", func(j *model.Journey) { j.Nodes[1].NodeId = "" }},
		{"duplicate node id", func(j *model.Journey) { j.Nodes[1].NodeId = "t1" }},
		{"unsupported node type", func(j *model.Journey) { j.Nodes[1].Type = "webhook" }},
		{"edge to unknown node", func(j *model.Journey) {
			j.Edges = append(j.Edges, model.Edge{From: "x1", To: "ghost"})
		}},
		{"delay without duration", func(j *model.Journey) { j.Nodes[1].Delay = &model.DelayConfig{} }},
		{"condition missing true edge", func(j *model.Journey) {
			j.Edges[2].Label = "yes"
		}},
		{"condition missing false edge", func(j *model.Journey) {
			j.Edges[3].Label = "no"
		}},
		{"action without config", func(j *model.Journey) { j.Nodes[3].Action = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			journey := validJourney()
			tc.mutate(&journey)
			require.Error(t, svc.ValidateJourney(journey))
		})
	}
}

func Test_ValidateJourney_InstantCycles(t *testing.T) {
	svc := GetJourneyService()

	conditionNode := func(id string) model.Node {
		return model.Node{NodeId: id, Type: constants.NodeTypeCondition, Condition: &conditionmodel.ConditionGroup{
			Conditions: []conditionmodel.Condition{
				{Field: "country", Operator: constants.OpEquals, Value: "DE"}},
		}}
	}

	t.Run("condition looping onto itself is rejected", func(t *testing.T) {
		journey := model.Journey{
			Name: "Tight loop",
			Nodes: []model.Node{
				{NodeId: "t1", Type: constants.NodeTypeTrigger},
				conditionNode("c1"),
				{NodeId: "x1", Type: constants.NodeTypeExit},
			},
			Edges: []model.Edge{
				{From: "t1", To: "c1"},
				{From: "c1", To: "c1", Label: constants.BranchTrue},
				{From: "c1", To: "x1", Label: constants.BranchFalse},
			},
		}
		require.Error(t, svc.ValidateJourney(journey))
	})

	t.Run("cycle of two conditions is rejected", func(t *testing.T) {
		journey := model.Journey{
			Name: "Ping pong",
			Nodes: []model.Node{
				{NodeId: "t1", Type: constants.NodeTypeTrigger},
				conditionNode("c1"),
				conditionNode("c2"),
				{NodeId: "x1", Type: constants.NodeTypeExit},
			},
			Edges: []model.Edge{
				{From: "t1", To: "c1"},
				{From: "c1", To: "c2", Label: constants.BranchTrue},
				{From: "c1", To: "x1", Label: constants.BranchFalse},
				{From: "c2", To: "c1", Label: constants.BranchTrue},
				{From: "c2", To: "x1", Label: constants.BranchFalse},
			},
		}
		require.Error(t, svc.ValidateJourney(journey))
	})

	t.Run("loop through a delay node is allowed", func(t *testing.T) {
		journey := model.Journey{
			Name: "Retry loop",
			Nodes: []model.Node{
				{NodeId: "t1", Type: constants.NodeTypeTrigger},
				conditionNode("c1"),
				{NodeId: "d1", Type: constants.NodeTypeDelay, Delay: &model.DelayConfig{DurationMinutes: 60}},
				{NodeId: "x1", Type: constants.NodeTypeExit},
			},
			Edges: []model.Edge{
				{From: "t1", To: "c1"},
				{From: "c1", To: "d1", Label: constants.BranchTrue},
				{From: "c1", To: "x1", Label: constants.BranchFalse},
				{From: "d1", To: "c1"},
			},
		}
		require.NoError(t, svc.ValidateJourney(journey))
	})
}

func Test_ValidateJourney_ExitPathErrors(t *testing.T) {
	svc := GetJourneyService()

	setPath := func(j *model.Journey, eventType string, path model.ExitPath) {
		j.Nodes[3].Action.ExitPaths.Paths = map[string]model.ExitPath{eventType: path}
	}

	t.Run("disabled path is never validated", func(t *testing.T) {
		journey := validJourney()
		setPath(&journey, constants.DeliveryFailed, model.ExitPath{
			Enabled: false,
			Action:  model.ExitAction{Type: "explode"},
		})
		require.NoError(t, svc.ValidateJourney(journey))
	})

	t.Run("unsupported delivery event type", func(t *testing.T) {
		journey := validJourney()
		setPath(&journey, "carrier_pigeon_lost", model.ExitPath{
			Enabled: true,
			Action:  model.ExitAction{Type: constants.ExitActionContinue},
		})
		require.Error(t, svc.ValidateJourney(journey))
	})

	t.Run("unsupported exit action", func(t *testing.T) {
		journey := validJourney()
		setPath(&journey, constants.DeliveryRead, model.ExitPath{
			Enabled: true,
			Action:  model.ExitAction{Type: "explode"},
		})
		require.Error(t, svc.ValidateJourney(journey))
	})

	t.Run("branch without matching edge label", func(t *testing.T) {
		journey := validJourney()
		setPath(&journey, constants.DeliveryRead, model.ExitPath{
			Enabled: true,
			Action:  model.ExitAction{Type: constants.ExitActionBranch, BranchId: "replied_path"},
		})
		require.Error(t, svc.ValidateJourney(journey))
	})

	t.Run("branch with matching edge label", func(t *testing.T) {
		journey := validJourney()
		journey.Edges = append(journey.Edges, model.Edge{From: "a1", To: "x1", Label: "replied_path"})
		setPath(&journey, constants.DeliveryRead, model.ExitPath{
			Enabled: true,
			Action:  model.ExitAction{Type: constants.ExitActionBranch, BranchId: "replied_path"},
		})
		require.NoError(t, svc.ValidateJourney(journey))
	})

	t.Run("wait without duration", func(t *testing.T) {
		journey := validJourney()
		setPath(&journey, constants.DeliveryTimeout, model.ExitPath{
			Enabled: true,
			Action:  model.ExitAction{Type: constants.ExitActionWait},
		})
		require.Error(t, svc.ValidateJourney(journey))
	})

	t.Run("button paths are validated too", func(t *testing.T) {
		journey := validJourney()
		journey.Nodes[3].Action.ExitPaths.ButtonPaths = map[string]model.ExitPath{
			"btn-1": {Enabled: true, Action: model.ExitAction{Type: "explode"}},
		}
		require.Error(t, svc.ValidateJourney(journey))
	})
}

func Test_ValidateJourney_GoalErrors(t *testing.T) {
	svc := GetJourneyService()

	tests := []struct {
		name   string
		mutate func(g *model.GoalConfig)
	}{
		{"missing event name", func(g *model.GoalConfig) { g.EventName = "" }},
		{"zero window", func(g *model.GoalConfig) { g.AttributionWindow.Value = 0 }},
		{"unsupported window unit", func(g *model.GoalConfig) { g.AttributionWindow.Unit = "fortnights" }},
		{"unsupported attribution model", func(g *model.GoalConfig) { g.AttributionModel = "quantum" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			journey := validJourney()
			tc.mutate(journey.Nodes[4].Goal)
			require.Error(t, svc.ValidateJourney(journey))
		})
	}

	t.Run("missing goal config", func(t *testing.T) {
		journey := validJourney()
		journey.Nodes[4].Goal = nil
		require.Error(t, svc.ValidateJourney(journey))
	})
}

func Test_ValidateJourney_TriggerErrors(t *testing.T) {
	svc := GetJourneyService()

	journey := validJourney()
	journey.Trigger.Rules = []triggermodel.RuleEnvelope{{RuleType: "geo"}}
	err := svc.ValidateJourney(journey)
	require.Error(t, err, "invalid trigger rules block activation")
	assert.Contains(t, err.Error(), errors2.INVALID_TRIGGER_RULE.Code, "the trigger problem is surfaced")
}
