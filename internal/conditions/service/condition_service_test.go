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
	"github.com/reachline/journey-automation-service/internal/conditions/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

func snapshot() map[string]interface{} {
	return map[string]interface{}{
		"email":        "Anna@Example.com",
		"country":      "DE",
		"total_spent":  249.90,
		"orders_count": 3,
		"city":         "",
		"signed_up_at": "2026-08-20T10:00:00Z",
	}
}

func Test_EvaluateCondition_Operators(t *testing.T) {
	evaluator := GetConditionEvaluator()

	tests := []struct {
		name      string
		condition model.Condition
		expected  bool
	}{
		{"equals is case insensitive", model.Condition{Field: "email", Operator: constants.OpEquals, Value: "anna@example.com"}, true},
		{"equals numeric coercion", model.Condition{Field: "orders_count", Operator: constants.OpEquals, Value: "3"}, true},
		{"not_equals", model.Condition{Field: "country", Operator: constants.OpNotEquals, Value: "FR"}, true},
		{"contains", model.Condition{Field: "email", Operator: constants.OpContains, Value: "example"}, true},
		{"not_contains", model.Condition{Field: "email", Operator: constants.OpNotContains, Value: "gmail"}, true},
		{"starts_with", model.Condition{Field: "email", Operator: constants.OpStartsWith, Value: "anna"}, true},
		{"ends_with", model.Condition{Field: "email", Operator: constants.OpEndsWith, Value: ".com"}, true},
		{"greater_than", model.Condition{Field: "total_spent", Operator: constants.OpGreaterThan, Value: 100}, true},
		{"greater_than false on equal", model.Condition{Field: "orders_count", Operator: constants.OpGreaterThan, Value: 3}, false},
		{"less_than", model.Condition{Field: "orders_count", Operator: constants.OpLessThan, Value: 10}, true},
		{"between inclusive", model.Condition{Field: "orders_count", Operator: constants.OpBetween, Value: []interface{}{3, 5}}, true},
		{"between outside", model.Condition{Field: "total_spent", Operator: constants.OpBetween, Value: []interface{}{300, 500}}, false},
		{"is_empty on blank string", model.Condition{Field: "city", Operator: constants.OpIsEmpty}, true},
		{"is_empty on missing field", model.Condition{Field: "nickname", Operator: constants.OpIsEmpty}, true},
		{"is_not_empty", model.Condition{Field: "email", Operator: constants.OpIsNotEmpty}, true},
		{"before_date", model.Condition{Field: "signed_up_at", Operator: constants.OpBeforeDate, Value: "2026-09-01"}, true},
		{"after_date", model.Condition{Field: "signed_up_at", Operator: constants.OpAfterDate, Value: "2026-08-01"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, evaluator.EvaluateCondition(snapshot(), tc.condition))
		})
	}
}

func Test_EvaluateCondition_FailsClosed(t *testing.T) {
	evaluator := GetConditionEvaluator()

	tests := []struct {
		name      string
		condition model.Condition
	}{
		{"missing field", model.Condition{Field: "nickname", Operator: constants.OpEquals, Value: "x"}},
		{"unknown operator", model.Condition{Field: "email", Operator: "matches_regex", Value: ".*"}},
		{"numeric compare on string", model.Condition{Field: "email", Operator: constants.OpGreaterThan, Value: 1}},
		{"malformed between range", model.Condition{Field: "orders_count", Operator: constants.OpBetween, Value: []interface{}{5}}},
		{"inverted between range", model.Condition{Field: "orders_count", Operator: constants.OpBetween, Value: []interface{}{5, 1}}},
		{"date operator on non-date", model.Condition{Field: "country", Operator: constants.OpBeforeDate, Value: "2026-01-01"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, evaluator.EvaluateCondition(snapshot(), tc.condition))
		})
	}
}

func Test_EvaluateCondition_InLastDays(t *testing.T) {
	fixed := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	evaluator := GetConditionEvaluatorWithClock(func() time.Time { return fixed })

	recent := map[string]interface{}{"last_order_at": fixed.Add(-5 * 24 * time.Hour)}
	stale := map[string]interface{}{"last_order_at": fixed.Add(-45 * 24 * time.Hour)}

	condition := model.Condition{Field: "last_order_at", Operator: constants.OpInLastDays, Value: 30}
	assert.True(t, evaluator.EvaluateCondition(recent, condition))
	assert.False(t, evaluator.EvaluateCondition(stale, condition))

	negative := model.Condition{Field: "last_order_at", Operator: constants.OpInLastDays, Value: -1}
	assert.False(t, evaluator.EvaluateCondition(recent, negative))
}

func Test_EvaluateGroup(t *testing.T) {
	evaluator := GetConditionEvaluator()

	matchDE := model.Condition{Field: "country", Operator: constants.OpEquals, Value: "DE"}
	matchSpend := model.Condition{Field: "total_spent", Operator: constants.OpGreaterThan, Value: 100}
	noMatch := model.Condition{Field: "country", Operator: constants.OpEquals, Value: "JP"}

	t.Run("empty group matches vacuously", func(t *testing.T) {
		assert.True(t, evaluator.EvaluateGroup(snapshot(), model.ConditionGroup{LogicalOperator: constants.LogicalAnd}))
	})

	t.Run("AND requires all", func(t *testing.T) {
		assert.True(t, evaluator.EvaluateGroup(snapshot(), model.ConditionGroup{
			LogicalOperator: constants.LogicalAnd,
			Conditions:      []model.Condition{matchDE, matchSpend},
		}))
		assert.False(t, evaluator.EvaluateGroup(snapshot(), model.ConditionGroup{
			LogicalOperator: constants.LogicalAnd,
			Conditions:      []model.Condition{matchDE, noMatch},
		}))
	})

	t.Run("OR requires one", func(t *testing.T) {
		assert.True(t, evaluator.EvaluateGroup(snapshot(), model.ConditionGroup{
			LogicalOperator: constants.LogicalOr,
			Conditions:      []model.Condition{noMatch, matchSpend},
		}))
		assert.False(t, evaluator.EvaluateGroup(snapshot(), model.ConditionGroup{
			LogicalOperator: constants.LogicalOr,
			Conditions:      []model.Condition{noMatch, noMatch},
		}))
	})

	t.Run("missing operator defaults to AND", func(t *testing.T) {
		assert.False(t, evaluator.EvaluateGroup(snapshot(), model.ConditionGroup{
			Conditions: []model.Condition{matchDE, noMatch},
		}))
	})

	t.Run("nested groups combine recursively", func(t *testing.T) {
		group := model.ConditionGroup{
			LogicalOperator: constants.LogicalAnd,
			Conditions:      []model.Condition{matchDE},
			NestedGroups: []model.ConditionGroup{
				{
					LogicalOperator: constants.LogicalOr,
					Conditions:      []model.Condition{noMatch, matchSpend},
				},
			},
		}
		assert.True(t, evaluator.EvaluateGroup(snapshot(), group))
	})
}

func Test_ValidateCondition(t *testing.T) {
	evaluator := GetConditionEvaluator()

	require.NoError(t, evaluator.ValidateCondition(model.Condition{
		Field: "country", Operator: constants.OpEquals, Value: "DE"}))

	err := evaluator.ValidateCondition(model.Condition{Operator: constants.OpEquals, Value: "DE"})
	require.Error(t, err, "field is required")

	err = evaluator.ValidateCondition(model.Condition{Field: "country", Operator: "regex"})
	require.Error(t, err, "operator must be in the allowed set")
}
