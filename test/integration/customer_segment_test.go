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

package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
	customerservice "github.com/reachline/journey-automation-service/internal/customers/service"
	segmentmodel "github.com/reachline/journey-automation-service/internal/segments/model"
	segmentservice "github.com/reachline/journey-automation-service/internal/segments/service"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

func Test_CustomerLifecycleAndSegmentEvaluation(t *testing.T) {
	customerSvc := customerservice.GetCustomerService()
	segmentSvc := segmentservice.GetSegmentService()

	now := time.Now().UTC()
	matching := customermodel.Customer{
		CustomerId:       "cust-" + uuid.New().String(),
		Email:            "anna@example.com",
		Country:          "DE",
		AcceptsMarketing: true,
		Attributes:       map[string]interface{}{"plan": "premium"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	other := customermodel.Customer{
		CustomerId: "cust-" + uuid.New().String(),
		Email:      "bob@example.com",
		Country:    "FR",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	t.Run("Upsert_customers", func(t *testing.T) {
		require.NoError(t, customerSvc.UpsertCustomer(matching))
		require.NoError(t, customerSvc.UpsertCustomer(other))
	})

	t.Run("Add_orders_updates_aggregates", func(t *testing.T) {
		require.NoError(t, customerSvc.AddOrder(customermodel.Order{
			OrderId:    uuid.New().String(),
			CustomerId: matching.CustomerId,
			Total:      120.50,
			Status:     "paid",
			CreatedAt:  now.Add(-48 * time.Hour),
		}))
		require.NoError(t, customerSvc.AddOrder(customermodel.Order{
			OrderId:    uuid.New().String(),
			CustomerId: matching.CustomerId,
			Total:      79.50,
			Status:     "paid",
			CreatedAt:  now.Add(-24 * time.Hour),
		}))

		stored, err := customerSvc.GetCustomer(matching.CustomerId)
		require.NoError(t, err)
		require.Equal(t, 2, stored.OrdersCount)
		require.InDelta(t, 200.0, stored.TotalSpent, 0.001)
		require.NotNil(t, stored.LastActivityAt)
	})

	t.Run("Evaluate_segment_members", func(t *testing.T) {
		segment := segmentmodel.Segment{
			Name:        "German big spenders",
			Description: "Customers in DE with over 100 total spend",
			Conditions: conditionmodel.ConditionGroup{
				LogicalOperator: constants.LogicalAnd,
				Conditions: []conditionmodel.Condition{
					{Field: "country", Operator: constants.OpEquals, Value: "DE"},
					{Field: "total_spent", Operator: constants.OpGreaterThan, Value: 100},
				},
			},
		}
		created, err := segmentSvc.CreateSegment(segment)
		require.NoError(t, err)
		require.NotEmpty(t, created.SegmentId)

		members, err := segmentSvc.EvaluateSegment(created.SegmentId)
		require.NoError(t, err)
		require.Contains(t, members, matching.CustomerId)
		require.NotContains(t, members, other.CustomerId)
	})

	t.Run("RFM_scores_champion", func(t *testing.T) {
		champion := customermodel.Customer{
			CustomerId: "cust-" + uuid.New().String(),
			Email:      "carla@example.com",
			Country:    "DE",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		require.NoError(t, customerSvc.UpsertCustomer(champion))

		for i := 0; i < 12; i++ {
			require.NoError(t, customerSvc.AddOrder(customermodel.Order{
				OrderId:    uuid.New().String(),
				CustomerId: champion.CustomerId,
				Total:      520,
				Status:     "paid",
				CreatedAt:  now.Add(-time.Duration(10+i) * 24 * time.Hour),
			}))
		}

		score, err := segmentSvc.ScoreCustomer(champion.CustomerId)
		require.NoError(t, err)
		require.Equal(t, 5, score.Recency, "latest order is 10 days old")
		require.Equal(t, 4, score.Frequency, "12 orders")
		require.Equal(t, 4, score.Monetary, fmt.Sprintf("total spend %.0f", score.TotalSpent))
		require.Equal(t, "Champions", score.SegmentLabel)
	})
}
