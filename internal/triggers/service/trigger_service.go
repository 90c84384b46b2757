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
	"fmt"
	"strings"
	"time"

	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	conditionservice "github.com/reachline/journey-automation-service/internal/conditions/service"
	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
	customerprovider "github.com/reachline/journey-automation-service/internal/customers/provider"
	eventservice "github.com/reachline/journey-automation-service/internal/events/service"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/log"
	"github.com/reachline/journey-automation-service/internal/triggers/model"
)

// TriggerMatcherInterface decides journey entry: whether a customer matches a
// trigger's rules, rule groups and overall target segment. Matching never
// returns an error; broken rules and store failures fail closed so one bad
// rule never crashes a batch evaluation.
type TriggerMatcherInterface interface {
	MatchesRule(customer customermodel.Customer, envelope model.RuleEnvelope) bool
	MatchesGroup(customer customermodel.Customer, group model.RuleGroup) bool
	MatchesTargetSegment(customer customermodel.Customer, segment model.TargetSegment) bool
	ValidateTargetSegment(segment model.TargetSegment) error
	EstimateReach(segment model.TargetSegment) (int, error)
}

// TriggerMatcher is the default implementation of the TriggerMatcherInterface.
type TriggerMatcher struct {
	evaluator conditionservice.ConditionEvaluatorInterface
	events    eventservice.EventServiceInterface
	now       func() time.Time
}

// GetTriggerMatcher creates a new instance of TriggerMatcher.
func GetTriggerMatcher() TriggerMatcherInterface {

	return &TriggerMatcher{
		evaluator: conditionservice.GetConditionEvaluator(),
		events:    eventservice.GetEventService(),
		now:       time.Now,
	}
}

// GetTriggerMatcherWithDeps creates a matcher with injected collaborators.
func GetTriggerMatcherWithDeps(evaluator conditionservice.ConditionEvaluatorInterface,
	events eventservice.EventServiceInterface, now func() time.Time) TriggerMatcherInterface {

	return &TriggerMatcher{evaluator: evaluator, events: events, now: now}
}

// MatchesRule evaluates a single rule envelope against a customer. Envelopes
// that fail to narrow to a valid variant fail closed.
func (tm *TriggerMatcher) MatchesRule(customer customermodel.Customer, envelope model.RuleEnvelope) bool {

	rule, err := envelope.ToRule()
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Skipping invalid trigger rule %s", envelope.Id), log.Error(err))
		return false
	}

	switch r := rule.(type) {
	case model.PropertyRule:
		return tm.evaluator.EvaluateGroup(customer.Snapshot(), conditionGroup(r.Conditions))

	case model.BehaviorRule:
		return tm.matchesBehaviorRule(customer, r)

	case model.InterestRule:
		matched := customer.HasTag(r.Interest)
		if r.Action == constants.RuleActionDidNot {
			return !matched
		}
		return matched

	default:
		return false
	}
}

// matchesBehaviorRule checks whether the customer performed (or did not
// perform) the named event within the rule's time frame, counting only
// occurrences whose properties satisfy the rule's conditions.
func (tm *TriggerMatcher) matchesBehaviorRule(customer customermodel.Customer, rule model.BehaviorRule) bool {

	cutoff := tm.now().Add(-time.Duration(rule.TimeFrame.LookbackDays()*24) * time.Hour)
	occurrences, err := tm.events.GetEventsSince(customer.CustomerId, rule.EventName, cutoff)
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf(
			"Failed to fetch occurrences of %s for customer %s; rule %s fails closed",
			rule.EventName, customer.CustomerId, rule.Id), log.Error(err))
		return false
	}

	qualifying := 0
	group := conditionGroup(rule.Conditions)
	for _, occurrence := range occurrences {
		if tm.evaluator.EvaluateGroup(occurrence.Properties, group) {
			qualifying++
		}
	}

	if rule.Action == constants.RuleActionDidNot {
		return qualifying == 0
	}
	return qualifying >= 1
}

// MatchesGroup combines the member rules under the group's operator.
func (tm *TriggerMatcher) MatchesGroup(customer customermodel.Customer, group model.RuleGroup) bool {

	if len(group.Rules) == 0 {
		return true
	}

	if strings.ToUpper(group.Operator) == constants.LogicalOr {
		for _, envelope := range group.Rules {
			if tm.MatchesRule(customer, envelope) {
				return true
			}
		}
		return false
	}

	for _, envelope := range group.Rules {
		if !tm.MatchesRule(customer, envelope) {
			return false
		}
	}
	return true
}

// MatchesTargetSegment is the overall entry decision: AND across every main
// rule and every rule group's combined result.
func (tm *TriggerMatcher) MatchesTargetSegment(customer customermodel.Customer, segment model.TargetSegment) bool {

	for _, envelope := range segment.Rules {
		if !tm.MatchesRule(customer, envelope) {
			return false
		}
	}
	for _, group := range segment.RuleGroups {
		if !tm.MatchesGroup(customer, group) {
			return false
		}
	}
	return true
}

// ValidateTargetSegment narrows every rule to its variant and validates every
// condition, reporting the first problem. A validation failure never affects
// other, unrelated triggers.
func (tm *TriggerMatcher) ValidateTargetSegment(segment model.TargetSegment) error {

	validate := func(envelope model.RuleEnvelope) error {
		if _, err := envelope.ToRule(); err != nil {
			return err
		}
		for _, condition := range envelope.Conditions {
			if err := tm.evaluator.ValidateCondition(condition); err != nil {
				return err
			}
		}
		return nil
	}

	for _, envelope := range segment.Rules {
		if err := validate(envelope); err != nil {
			return err
		}
	}
	for _, group := range segment.RuleGroups {
		for _, envelope := range group.Rules {
			if err := validate(envelope); err != nil {
				return err
			}
		}
	}
	return nil
}

// EstimateReach counts how many customers currently match the segment.
func (tm *TriggerMatcher) EstimateReach(segment model.TargetSegment) (int, error) {

	if err := tm.ValidateTargetSegment(segment); err != nil {
		return 0, err
	}

	customerService := customerprovider.NewCustomersProvider().GetCustomerService()
	customers, err := customerService.ListCustomers()
	if err != nil {
		return 0, err
	}

	reach := 0
	for _, customer := range customers {
		if tm.MatchesTargetSegment(customer, segment) {
			reach++
		}
	}
	return reach, nil
}

func conditionGroup(conditions []conditionmodel.Condition) conditionmodel.ConditionGroup {
	return conditionmodel.ConditionGroup{
		LogicalOperator: constants.LogicalAnd,
		Conditions:      conditions,
	}
}
