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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Snapshot(t *testing.T) {
	activity := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	customer := Customer{
		CustomerId:     "c1",
		Email:          "anna@example.com",
		Country:        "DE",
		OrdersCount:    3,
		TotalSpent:     249.90,
		Tags:           []string{"running", "yoga"},
		LastActivityAt: &activity,
		Attributes: map[string]interface{}{
			"plan":    "premium",
			"country": "shadowed",
		},
	}

	snapshot := customer.Snapshot()
	assert.Equal(t, "anna@example.com", snapshot["email"])
	assert.Equal(t, 3, snapshot["orders_count"])
	assert.Equal(t, 249.90, snapshot["total_spent"])
	assert.Equal(t, "running,yoga", snapshot["tags"])
	assert.Equal(t, activity, snapshot["last_activity_at"])
	assert.Equal(t, "premium", snapshot["plan"], "custom attributes are merged in")
	assert.Equal(t, "DE", snapshot["country"], "built-in fields never get shadowed")
}

func Test_Snapshot_OmitsMissingActivity(t *testing.T) {
	customer := Customer{CustomerId: "c1"}
	_, present := customer.Snapshot()["last_activity_at"]
	assert.False(t, present)
}

func Test_HasTag(t *testing.T) {
	customer := Customer{Tags: []string{"Running", "yoga"}}
	assert.True(t, customer.HasTag("running"), "tag match ignores case")
	assert.True(t, customer.HasTag("YOGA"))
	assert.False(t, customer.HasTag("cycling"))

	none := Customer{}
	assert.False(t, none.HasTag("running"))
}
