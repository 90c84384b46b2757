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
	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
)

var scoringNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

// ordersFor builds count orders of the given total each, the most recent one
// placed daysAgo days before the fixed clock.
func ordersFor(customerId string, count int, each float64, daysAgo int) []customermodel.Order {
	orders := make([]customermodel.Order, 0, count)
	for i := 0; i < count; i++ {
		orders = append(orders, customermodel.Order{
			OrderId:    customerId + "-o" + string(rune('a'+i)),
			CustomerId: customerId,
			Total:      each,
			CreatedAt:  scoringNow.Add(-time.Duration(daysAgo+i) * 24 * time.Hour),
		})
	}
	return orders
}

func Test_Score_NoOrders(t *testing.T) {
	scorer := GetRFMScorerWithClock(func() time.Time { return scoringNow })

	score := scorer.Score(customermodel.Customer{CustomerId: "c1"}, nil)

	assert.Equal(t, 1, score.Recency)
	assert.Equal(t, 1, score.Frequency)
	assert.Equal(t, 1, score.Monetary)
	assert.Equal(t, 999, score.DaysSinceLastOrder)
	assert.Equal(t, "Hibernating", score.SegmentLabel)
}

func Test_Score_Bands(t *testing.T) {
	scorer := GetRFMScorerWithClock(func() time.Time { return scoringNow })

	tests := []struct {
		name     string
		orders   []customermodel.Order
		recency  int
		freq     int
		monetary int
		label    string
	}{
		{
			name:    "champion",
			orders:  ordersFor("c", 12, 520, 10),
			recency: 5, freq: 4, monetary: 4,
			label: "Champions",
		},
		{
			name:    "loyal customer",
			orders:  ordersFor("c", 6, 400, 75),
			recency: 3, freq: 3, monetary: 3,
			label: "Loyal Customers",
		},
		{
			name:    "potential loyalist",
			orders:  ordersFor("c", 2, 100, 20),
			recency: 5, freq: 2, monetary: 1,
			label: "Potential Loyalists",
		},
		{
			name:    "at risk",
			orders:  ordersFor("c", 6, 500, 200),
			recency: 2, freq: 3, monetary: 3,
			label: "At Risk",
		},
		{
			name:    "cannot lose them",
			orders:  ordersFor("c", 11, 100, 200),
			recency: 2, freq: 4, monetary: 1,
			label: "Cannot Lose Them",
		},
		{
			name:    "new customer",
			orders:  ordersFor("c", 1, 50, 5),
			recency: 5, freq: 1, monetary: 1,
			label: "New Customers",
		},
		{
			name:    "promising",
			orders:  ordersFor("c", 1, 50, 80),
			recency: 3, freq: 1, monetary: 1,
			label: "Promising",
		},
		{
			name:    "need attention",
			orders:  ordersFor("c", 2, 300, 80),
			recency: 3, freq: 2, monetary: 2,
			label: "Need Attention",
		},
		{
			name:    "about to sleep",
			orders:  ordersFor("c", 2, 100, 80),
			recency: 3, freq: 2, monetary: 1,
			label: "About to Sleep",
		},
		{
			name:    "hibernating",
			orders:  ordersFor("c", 1, 50, 300),
			recency: 1, freq: 1, monetary: 1,
			label: "Hibernating",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := scorer.Score(customermodel.Customer{CustomerId: "c"}, tc.orders)
			assert.Equal(t, tc.recency, score.Recency, "recency")
			assert.Equal(t, tc.freq, score.Frequency, "frequency")
			assert.Equal(t, tc.monetary, score.Monetary, "monetary")
			assert.Equal(t, tc.label, score.SegmentLabel)
		})
	}
}

func Test_Score_FutureOrderClampsToZeroDays(t *testing.T) {
	scorer := GetRFMScorerWithClock(func() time.Time { return scoringNow })

	orders := []customermodel.Order{{
		OrderId:    "o1",
		CustomerId: "c1",
		Total:      100,
		CreatedAt:  scoringNow.Add(6 * time.Hour),
	}}
	score := scorer.Score(customermodel.Customer{CustomerId: "c1"}, orders)
	assert.Equal(t, 0, score.DaysSinceLastOrder)
	assert.Equal(t, 5, score.Recency)
}
