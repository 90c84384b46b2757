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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	eventmodel "github.com/reachline/journey-automation-service/internal/events/model"
	journeymodel "github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

var attributionBase = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func purchaseGoal() journeymodel.GoalConfig {
	return journeymodel.GoalConfig{
		EventName:         "purchase_completed",
		AttributionWindow: journeymodel.AttributionWindow{Value: 7, Unit: "days"},
		AttributionModel:  constants.AttributionLastTouch,
	}
}

func conversion(daysAfterBase int) eventmodel.ConversionEvent {
	return eventmodel.ConversionEvent{
		EventId:    "evt-1",
		CustomerId: "c1",
		EventName:  "purchase_completed",
		Timestamp:  attributionBase.Add(time.Duration(daysAfterBase) * 24 * time.Hour),
	}
}

func Test_Attribute_NameMismatch(t *testing.T) {
	ga := GetGoalAttributionEvaluator()

	event := conversion(2)
	event.EventName = "signup_completed"
	_, counted := ga.Attribute(purchaseGoal(), []time.Time{attributionBase}, event, 0)
	assert.False(t, counted)
}

func Test_Attribute_AlreadyCountedGate(t *testing.T) {
	ga := GetGoalAttributionEvaluator()
	touches := []time.Time{attributionBase}

	_, counted := ga.Attribute(purchaseGoal(), touches, conversion(2), 1)
	assert.False(t, counted, "single-conversion goal ignores repeats")

	goal := purchaseGoal()
	goal.CountMultipleConversions = true
	_, counted = ga.Attribute(goal, touches, conversion(2), 3)
	assert.True(t, counted, "multi-conversion goal keeps counting")
}

func Test_Attribute_Window(t *testing.T) {
	ga := GetGoalAttributionEvaluator()
	touches := []time.Time{attributionBase}

	_, counted := ga.Attribute(purchaseGoal(), touches, conversion(2), 0)
	assert.True(t, counted, "day 2 of a 7-day window counts")

	_, counted = ga.Attribute(purchaseGoal(), touches, conversion(9), 0)
	assert.False(t, counted, "day 9 of a 7-day window does not")

	event := conversion(0)
	event.Timestamp = attributionBase.Add(-time.Hour)
	_, counted = ga.Attribute(purchaseGoal(), touches, event, 0)
	assert.False(t, counted, "conversions before the touch never count")
}

func Test_Attribute_EventFilters(t *testing.T) {
	ga := GetGoalAttributionEvaluator()
	goal := purchaseGoal()
	goal.EventFilters = []conditionmodel.Condition{
		{Field: "total", Operator: constants.OpGreaterThan, Value: 50},
	}
	touches := []time.Time{attributionBase}

	event := conversion(1)
	event.Properties = map[string]interface{}{"total": 120.0}
	_, counted := ga.Attribute(goal, touches, event, 0)
	assert.True(t, counted)

	event.Properties = map[string]interface{}{"total": 20.0}
	_, counted = ga.Attribute(goal, touches, event, 0)
	assert.False(t, counted, "filters are AND-ed over the event properties")
}

func Test_Attribute_Models(t *testing.T) {
	ga := GetGoalAttributionEvaluator()

	first := attributionBase
	second := attributionBase.Add(24 * time.Hour)
	third := attributionBase.Add(48 * time.Hour)
	touches := []time.Time{second, first, third}
	event := conversion(3)

	t.Run("last_touch credits the latest qualifying touch", func(t *testing.T) {
		attributed, counted := ga.Attribute(purchaseGoal(), touches, event, 0)
		require.True(t, counted)
		assert.Equal(t, third, attributed.TouchAt)
		assert.Equal(t, 1.0, attributed.Credit)
	})

	t.Run("first_touch credits the earliest qualifying touch", func(t *testing.T) {
		goal := purchaseGoal()
		goal.AttributionModel = constants.AttributionFirstTouch
		attributed, counted := ga.Attribute(goal, touches, event, 0)
		require.True(t, counted)
		assert.Equal(t, first, attributed.TouchAt)
		assert.Equal(t, 1.0, attributed.Credit)
	})

	t.Run("linear splits credit across qualifying touches", func(t *testing.T) {
		goal := purchaseGoal()
		goal.AttributionModel = constants.AttributionLinear
		attributed, counted := ga.Attribute(goal, touches, event, 0)
		require.True(t, counted)
		assert.InDelta(t, 1.0/3.0, attributed.Credit, 0.0001)
	})

	t.Run("only touches whose window contains the event qualify", func(t *testing.T) {
		// The event lands 8 days after the first touch, outside its 7-day
		// window but inside the later touches' windows.
		late := conversion(8)
		goal := purchaseGoal()
		goal.AttributionModel = constants.AttributionFirstTouch
		attributed, counted := ga.Attribute(goal, touches, late, 0)
		require.True(t, counted)
		assert.Equal(t, second, attributed.TouchAt, "the first touch no longer qualifies")
	})

	t.Run("no qualifying touch discards the event", func(t *testing.T) {
		_, counted := ga.Attribute(purchaseGoal(), []time.Time{first}, conversion(20), 0)
		assert.False(t, counted)
	})
}

func Test_Attribute_HourWindow(t *testing.T) {
	ga := GetGoalAttributionEvaluator()
	goal := purchaseGoal()
	goal.AttributionWindow = journeymodel.AttributionWindow{Value: 6, Unit: "hours"}

	event := conversion(0)
	event.Timestamp = attributionBase.Add(5 * time.Hour)
	_, counted := ga.Attribute(goal, []time.Time{attributionBase}, event, 0)
	assert.True(t, counted)

	event.Timestamp = attributionBase.Add(7 * time.Hour)
	_, counted = ga.Attribute(goal, []time.Time{attributionBase}, event, 0)
	assert.False(t, counted)
}
