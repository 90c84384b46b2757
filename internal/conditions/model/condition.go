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

// Condition is a single field test against a customer snapshot or an event
// occurrence's properties.
//
// Value carries the comparison operand. For the "between" operator it must be
// a two-element array (inclusive range); for "in_last_days" a day count; for
// "is_empty"/"is_not_empty" it is ignored.
type Condition struct {
	Field    string      `json:"field" bson:"field"`
	Operator string      `json:"operator" bson:"operator"`
	Value    interface{} `json:"value,omitempty" bson:"value,omitempty"`
}

// ConditionGroup combines direct conditions and nested groups under a single
// logical operator. Evaluation of a group is the logical combination of its
// direct conditions and the recursive evaluation of nested groups using the
// same operator.
type ConditionGroup struct {
	LogicalOperator string           `json:"logical_operator" bson:"logical_operator"`
	Conditions      []Condition      `json:"conditions,omitempty" bson:"conditions,omitempty"`
	NestedGroups    []ConditionGroup `json:"nested_groups,omitempty" bson:"nested_groups,omitempty"`
}
