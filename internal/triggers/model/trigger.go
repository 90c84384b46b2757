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
	"fmt"
	"net/http"
	"strings"

	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
)

// TimeFrame bounds a behavior rule to a lookback period. Period is one of the
// enumerated last_* values, or "custom" with an explicit day count.
type TimeFrame struct {
	Period string `json:"period"`
	Days   int    `json:"days,omitempty"`
}

// LookbackDays resolves the time frame to a day count. Unknown periods
// resolve to zero, which the matcher treats as no qualifying window.
func (tf TimeFrame) LookbackDays() float64 {
	switch tf.Period {
	case constants.PeriodLast24Hours:
		return 1
	case constants.PeriodLast7Days:
		return 7
	case constants.PeriodLast30Days:
		return 30
	case constants.PeriodLast90Days:
		return 90
	case constants.PeriodCustom:
		return float64(tf.Days)
	default:
		return 0
	}
}

// TriggerRule is the closed set of rule variants a trigger can carry. Each
// variant holds only the fields valid for its kind.
type TriggerRule interface {
	RuleId() string
	Kind() string
}

// PropertyRule matches the customer snapshot against its conditions.
type PropertyRule struct {
	Id         string
	Conditions []conditionmodel.Condition
}

func (r PropertyRule) RuleId() string { return r.Id }
func (r PropertyRule) Kind() string   { return constants.RuleTypeProperty }

// BehaviorRule matches event occurrences within a time frame. Action "did"
// requires at least one qualifying occurrence, "did_not" requires zero.
type BehaviorRule struct {
	Id         string
	EventName  string
	Action     string
	TimeFrame  TimeFrame
	Conditions []conditionmodel.Condition
}

func (r BehaviorRule) RuleId() string { return r.Id }
func (r BehaviorRule) Kind() string   { return constants.RuleTypeBehavior }

// InterestRule matches a customer tag. Action "did_not" inverts the match.
type InterestRule struct {
	Id       string
	Interest string
	Action   string
}

func (r InterestRule) RuleId() string { return r.Id }
func (r InterestRule) Kind() string   { return constants.RuleTypeInterest }

// RuleEnvelope is the wire shape of a rule: a type tag plus the union of
// variant fields. ToRule narrows it to the matching variant and rejects
// invalid combinations before a trigger can be activated.
type RuleEnvelope struct {
	Id         string                     `json:"id"`
	RuleType   string                     `json:"rule_type"`
	EventName  string                     `json:"event_name,omitempty"`
	Action     string                     `json:"action,omitempty"`
	TimeFrame  *TimeFrame                 `json:"time_frame,omitempty"`
	Interest   string                     `json:"interest,omitempty"`
	Conditions []conditionmodel.Condition `json:"conditions,omitempty"`
}

// ToRule narrows the envelope to its typed variant.
func (re RuleEnvelope) ToRule() (TriggerRule, error) {

	switch strings.ToLower(re.RuleType) {
	case constants.RuleTypeProperty:
		return PropertyRule{Id: re.Id, Conditions: re.Conditions}, nil

	case constants.RuleTypeBehavior:
		if re.EventName == "" {
			return nil, invalidRule(re.Id, "A behavior rule must name the event it tracks.")
		}
		action := strings.ToLower(re.Action)
		if action == "" {
			action = constants.RuleActionDid
		}
		if action != constants.RuleActionDid && action != constants.RuleActionDidNot {
			return nil, invalidRule(re.Id, fmt.Sprintf("Unsupported rule action '%s'.", re.Action))
		}
		timeFrame := TimeFrame{Period: constants.PeriodLast30Days}
		if re.TimeFrame != nil {
			timeFrame = *re.TimeFrame
		}
		if !constants.AllowedTimeFramePeriods[timeFrame.Period] {
			return nil, invalidRule(re.Id, fmt.Sprintf("Unsupported time frame period '%s'.", timeFrame.Period))
		}
		if timeFrame.Period == constants.PeriodCustom && timeFrame.Days <= 0 {
			return nil, invalidRule(re.Id, "A custom time frame must carry a positive day count.")
		}
		return BehaviorRule{
			Id:         re.Id,
			EventName:  re.EventName,
			Action:     action,
			TimeFrame:  timeFrame,
			Conditions: re.Conditions,
		}, nil

	case constants.RuleTypeInterest:
		if re.Interest == "" {
			return nil, invalidRule(re.Id, "An interest rule must name the interest tag.")
		}
		action := strings.ToLower(re.Action)
		if action == "" {
			action = constants.RuleActionDid
		}
		return InterestRule{Id: re.Id, Interest: re.Interest, Action: action}, nil

	default:
		return nil, invalidRule(re.Id, fmt.Sprintf("Unsupported rule type '%s'.", re.RuleType))
	}
}

// RuleGroup combines member rules under a single logical operator.
type RuleGroup struct {
	Operator string         `json:"operator"`
	Rules    []RuleEnvelope `json:"rules"`
}

// TargetSegment is the full trigger audience: a flat list of main rules
// (implicitly AND-ed) plus zero or more rule groups. The overall match is the
// AND across the main rules and each group's combined result.
type TargetSegment struct {
	Rules      []RuleEnvelope `json:"rules,omitempty"`
	RuleGroups []RuleGroup    `json:"rule_groups,omitempty"`
}

func invalidRule(ruleId, description string) error {
	if ruleId != "" {
		description = fmt.Sprintf("Rule %s: %s", ruleId, description)
	}
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_TRIGGER_RULE.Code,
		Message:     errors2.INVALID_TRIGGER_RULE.Message,
		Description: description,
	}, http.StatusBadRequest)
}
