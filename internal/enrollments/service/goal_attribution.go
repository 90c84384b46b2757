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
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	conditionservice "github.com/reachline/journey-automation-service/internal/conditions/service"
	"github.com/reachline/journey-automation-service/internal/enrollments/model"
	eventmodel "github.com/reachline/journey-automation-service/internal/events/model"
	journeymodel "github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	"time"
)

// GoalAttributionEvaluator decides whether a conversion event counts toward
// a journey goal given the goal's attribution window and model.
type GoalAttributionEvaluator struct {
	evaluator conditionservice.ConditionEvaluatorInterface
}

// GetGoalAttributionEvaluator creates a new instance of
// GoalAttributionEvaluator.
func GetGoalAttributionEvaluator() *GoalAttributionEvaluator {

	return &GoalAttributionEvaluator{evaluator: conditionservice.GetConditionEvaluator()}
}

// Attribute evaluates one conversion event against a goal. touches are the
// enrollment's touch timestamps (entry plus message sends); alreadyCounted
// is how many conversions this enrollment has recorded so far.
//
// The event is discarded when its name or filters do not match, when no
// touch window contains it, or when a conversion was already counted and the
// goal does not count multiple conversions. Otherwise the credited touch
// follows the attribution model: first_touch credits the earliest qualifying
// touch, last_touch the latest, linear splits credit equally across all
// qualifying touches (still a single counted conversion).
func (ga *GoalAttributionEvaluator) Attribute(goal journeymodel.GoalConfig, touches []time.Time,
	event eventmodel.ConversionEvent, alreadyCounted int) (model.AttributedConversion, bool) {

	var none model.AttributedConversion

	if event.EventName != goal.EventName {
		return none, false
	}
	if alreadyCounted > 0 && !goal.CountMultipleConversions {
		return none, false
	}
	if !ga.matchesFilters(goal.EventFilters, event.Properties) {
		return none, false
	}

	window := goal.AttributionWindow.Duration()
	qualifying := make([]time.Time, 0, len(touches))
	for _, touch := range touches {
		if !event.Timestamp.Before(touch) && !event.Timestamp.After(touch.Add(window)) {
			qualifying = append(qualifying, touch)
		}
	}
	if len(qualifying) == 0 {
		return none, false
	}

	conversion := model.AttributedConversion{
		EventId:   event.EventId,
		EventName: event.EventName,
		At:        event.Timestamp,
		Credit:    1,
	}

	switch goal.AttributionModel {
	case constants.AttributionFirstTouch:
		conversion.TouchAt = earliest(qualifying)
	case constants.AttributionLastTouch:
		conversion.TouchAt = latest(qualifying)
	case constants.AttributionLinear:
		conversion.TouchAt = earliest(qualifying)
		conversion.Credit = 1 / float64(len(qualifying))
	default:
		conversion.TouchAt = latest(qualifying)
	}
	return conversion, true
}

func (ga *GoalAttributionEvaluator) matchesFilters(filters []conditionmodel.Condition,
	properties map[string]interface{}) bool {

	if len(filters) == 0 {
		return true
	}
	group := conditionmodel.ConditionGroup{
		LogicalOperator: constants.LogicalAnd,
		Conditions:      filters,
	}
	return ga.evaluator.EvaluateGroup(properties, group)
}

func earliest(times []time.Time) time.Time {
	result := times[0]
	for _, t := range times[1:] {
		if t.Before(result) {
			result = t
		}
	}
	return result
}

func latest(times []time.Time) time.Time {
	result := times[0]
	for _, t := range times[1:] {
		if t.After(result) {
			result = t
		}
	}
	return result
}
