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
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/reachline/journey-automation-service/internal/conditions/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
)

// ConditionEvaluatorInterface evaluates conditions and condition groups
// against a snapshot of fields. Evaluation never returns an error: malformed
// input fails closed so a broken filter excludes rather than crashes.
type ConditionEvaluatorInterface interface {
	EvaluateCondition(snapshot map[string]interface{}, condition model.Condition) bool
	EvaluateGroup(snapshot map[string]interface{}, group model.ConditionGroup) bool
	ValidateCondition(condition model.Condition) error
}

// ConditionEvaluator is the default implementation of the
// ConditionEvaluatorInterface. The clock is injectable so the relative date
// operators can be tested deterministically.
type ConditionEvaluator struct {
	now func() time.Time
}

// GetConditionEvaluator creates a new instance of ConditionEvaluator.
func GetConditionEvaluator() ConditionEvaluatorInterface {

	return &ConditionEvaluator{now: time.Now}
}

// GetConditionEvaluatorWithClock creates an evaluator that reads time through
// the given clock.
func GetConditionEvaluatorWithClock(now func() time.Time) ConditionEvaluatorInterface {

	return &ConditionEvaluator{now: now}
}

// EvaluateCondition evaluates a single condition against a snapshot. An
// unknown field resolves to nil; any operator except the emptiness checks
// returns false for nil.
func (ce *ConditionEvaluator) EvaluateCondition(snapshot map[string]interface{}, condition model.Condition) bool {

	var actual interface{}
	if snapshot != nil {
		actual = snapshot[condition.Field]
	}

	operator := strings.ToLower(condition.Operator)

	switch operator {
	case constants.OpIsEmpty:
		return isEmpty(actual)
	case constants.OpIsNotEmpty:
		return !isEmpty(actual)
	}

	if actual == nil {
		return false
	}

	switch operator {
	case constants.OpEquals:
		return looseEquals(actual, condition.Value)

	case constants.OpNotEquals:
		return !looseEquals(actual, condition.Value)

	case constants.OpContains:
		return stringTest(actual, condition.Value, strings.Contains)

	case constants.OpNotContains:
		if _, ok := actual.(string); !ok {
			return false
		}
		return !stringTest(actual, condition.Value, strings.Contains)

	case constants.OpStartsWith:
		return stringTest(actual, condition.Value, strings.HasPrefix)

	case constants.OpEndsWith:
		return stringTest(actual, condition.Value, strings.HasSuffix)

	case constants.OpGreaterThan:
		return compareNumeric(actual, condition.Value, ">")

	case constants.OpLessThan:
		return compareNumeric(actual, condition.Value, "<")

	case constants.OpBetween:
		low, high, ok := rangeBounds(condition.Value)
		if !ok {
			return false
		}
		actualFloat, err := toFloat(actual)
		if err != nil {
			return false
		}
		return actualFloat >= low && actualFloat <= high

	case constants.OpInLastDays:
		days, err := toFloat(condition.Value)
		if err != nil || days < 0 {
			return false
		}
		ts, ok := toTime(actual)
		if !ok {
			return false
		}
		cutoff := ce.now().Add(-time.Duration(days*24) * time.Hour)
		return !ts.Before(cutoff)

	case constants.OpBeforeDate:
		ts, ok := toTime(actual)
		if !ok {
			return false
		}
		ref, refOk := toTime(condition.Value)
		if !refOk {
			return false
		}
		return ts.Before(ref)

	case constants.OpAfterDate:
		ts, ok := toTime(actual)
		if !ok {
			return false
		}
		ref, refOk := toTime(condition.Value)
		if !refOk {
			return false
		}
		return ts.After(ref)

	default:
		return false
	}
}

// EvaluateGroup evaluates a condition group. AND short-circuits on the first
// false, OR on the first true. An empty group matches vacuously so journeys
// with no explicit filters still match everyone.
func (ce *ConditionEvaluator) EvaluateGroup(snapshot map[string]interface{}, group model.ConditionGroup) bool {

	operator := strings.ToUpper(group.LogicalOperator)
	if operator == "" {
		operator = constants.LogicalAnd
	}

	if len(group.Conditions) == 0 && len(group.NestedGroups) == 0 {
		return true
	}

	if operator == constants.LogicalOr {
		for _, cond := range group.Conditions {
			if ce.EvaluateCondition(snapshot, cond) {
				return true
			}
		}
		for _, nested := range group.NestedGroups {
			if ce.EvaluateGroup(snapshot, nested) {
				return true
			}
		}
		return false
	}

	for _, cond := range group.Conditions {
		if !ce.EvaluateCondition(snapshot, cond) {
			return false
		}
	}
	for _, nested := range group.NestedGroups {
		if !ce.EvaluateGroup(snapshot, nested) {
			return false
		}
	}
	return true
}

// ValidateCondition validates a condition before a trigger or segment using
// it can be activated.
func (ce *ConditionEvaluator) ValidateCondition(condition model.Condition) error {

	if condition.Field == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_CONDITION.Code,
			Message:     errors2.INVALID_CONDITION.Message,
			Description: "Each condition must have a field defined.",
		}, http.StatusBadRequest)
	}
	if !constants.AllowedConditionOperators[strings.ToLower(condition.Operator)] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_CONDITION.Code,
			Message:     errors2.INVALID_CONDITION.Message,
			Description: fmt.Sprintf("Operator '%s' is not supported.", condition.Operator),
		}, http.StatusBadRequest)
	}
	return nil
}

// isEmpty reports whether a value is nil or a blank string.
func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	if str, ok := value.(string); ok {
		return strings.TrimSpace(str) == ""
	}
	return false
}

// looseEquals compares case-insensitively when both sides are strings and
// numerically when both sides coerce to numbers; otherwise it falls back to
// formatted comparison.
func looseEquals(actual, expected interface{}) bool {
	actualStr, actualIsStr := actual.(string)
	expectedStr, expectedIsStr := expected.(string)
	if actualIsStr && expectedIsStr {
		return strings.EqualFold(actualStr, expectedStr)
	}

	actualFloat, err1 := toFloat(actual)
	expectedFloat, err2 := toFloat(expected)
	if err1 == nil && err2 == nil {
		return actualFloat == expectedFloat
	}

	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

// stringTest applies a string predicate; non-string actual values fail.
func stringTest(actual, expected interface{}, test func(string, string) bool) bool {
	actualStr, ok := actual.(string)
	if !ok {
		return false
	}
	expectedStr := fmt.Sprintf("%v", expected)
	return test(strings.ToLower(actualStr), strings.ToLower(expectedStr))
}

// compareNumeric compares two values numerically. Non-numeric input fails closed.
func compareNumeric(actual, expected interface{}, op string) bool {
	actualFloat, err1 := toFloat(actual)
	expectedFloat, err2 := toFloat(expected)
	if err1 != nil || err2 != nil {
		return false
	}

	switch op {
	case ">":
		return actualFloat > expectedFloat
	case "<":
		return actualFloat < expectedFloat
	default:
		return false
	}
}

// rangeBounds extracts an inclusive numeric range from a two-element array.
func rangeBounds(value interface{}) (float64, float64, bool) {
	items, ok := value.([]interface{})
	if !ok || len(items) != 2 {
		return 0, 0, false
	}
	low, err1 := toFloat(items[0])
	high, err2 := toFloat(items[1])
	if err1 != nil || err2 != nil || low > high {
		return 0, 0, false
	}
	return low, high, true
}

// toFloat converts various types to float64.
func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(val, 64)
	default:
		return 0, fmt.Errorf("invalid type for conversion to float: %T", v)
	}
}

// toTime converts a timestamp value to time.Time. Accepted shapes are
// time.Time, RFC3339 (with or without nanoseconds), plain dates and unix
// seconds.
func toTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, true
	case string:
		formats := []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}
		for _, format := range formats {
			if ts, err := time.Parse(format, val); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	case int, int32, int64, float32, float64:
		seconds, err := toFloat(val)
		if err != nil || seconds <= 0 {
			return time.Time{}, false
		}
		return time.Unix(int64(seconds), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}
