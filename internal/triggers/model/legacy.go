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
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

// LegacyTriggerConfig is the older flat trigger shape still accepted on the
// wire. It can express a single event rule (with an optional lookback) plus a
// flat condition list over customer properties. All conversion between the
// two shapes goes through ToEnhanced/ToLegacy; they are never merged inline.
type LegacyTriggerConfig struct {
	RuleId     string                     `json:"rule_id,omitempty"`
	EventName  string                     `json:"event_name,omitempty"`
	Action     string                     `json:"action,omitempty"`
	Period     string                     `json:"period,omitempty"`
	CustomDays int                        `json:"custom_days,omitempty"`
	Conditions []conditionmodel.Condition `json:"conditions,omitempty"`
}

// ToEnhanced lifts a legacy config into a TargetSegment. An event name maps
// to a behavior rule carrying the conditions; without an event name the
// conditions become a property rule.
func ToEnhanced(legacy LegacyTriggerConfig) TargetSegment {

	if legacy.EventName == "" {
		if len(legacy.Conditions) == 0 {
			return TargetSegment{}
		}
		return TargetSegment{
			Rules: []RuleEnvelope{{
				Id:         legacy.RuleId,
				RuleType:   constants.RuleTypeProperty,
				Conditions: legacy.Conditions,
			}},
		}
	}

	action := legacy.Action
	if action == "" {
		action = constants.RuleActionDid
	}
	period := legacy.Period
	if period == "" {
		period = constants.PeriodLast30Days
	}
	return TargetSegment{
		Rules: []RuleEnvelope{{
			Id:         legacy.RuleId,
			RuleType:   constants.RuleTypeBehavior,
			EventName:  legacy.EventName,
			Action:     action,
			TimeFrame:  &TimeFrame{Period: period, Days: legacy.CustomDays},
			Conditions: legacy.Conditions,
		}},
	}
}

// ToLegacy projects a TargetSegment back onto the legacy shape. Only the
// first main rule survives the projection; rule groups and further rules have
// no legacy representation and are dropped. On the fields both shapes retain,
// ToEnhanced followed by ToLegacy is the identity.
func ToLegacy(enhanced TargetSegment) LegacyTriggerConfig {

	if len(enhanced.Rules) == 0 {
		return LegacyTriggerConfig{}
	}

	first := enhanced.Rules[0]
	legacy := LegacyTriggerConfig{
		RuleId:     first.Id,
		Conditions: first.Conditions,
	}
	if first.RuleType == constants.RuleTypeBehavior {
		legacy.EventName = first.EventName
		legacy.Action = first.Action
		if first.TimeFrame != nil {
			legacy.Period = first.TimeFrame.Period
			legacy.CustomDays = first.TimeFrame.Days
		}
	}
	return legacy
}
