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
	"time"

	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
	"github.com/reachline/journey-automation-service/internal/segments/model"
)

// noOrderRecencyDays is the recency assigned to customers without any order.
const noOrderRecencyDays = 999

// RFMScorerInterface computes recency/frequency/monetary scores per customer.
type RFMScorerInterface interface {
	Score(customer customermodel.Customer, orders []customermodel.Order) model.RFMScore
}

// RFMScorer is the default implementation of the RFMScorerInterface.
type RFMScorer struct {
	now func() time.Time
}

// GetRFMScorer creates a new instance of RFMScorer.
func GetRFMScorer() RFMScorerInterface {

	return &RFMScorer{now: time.Now}
}

// GetRFMScorerWithClock creates an instance that reads time through the given
// clock.
func GetRFMScorerWithClock(now func() time.Time) RFMScorerInterface {

	return &RFMScorer{now: now}
}

// Score computes the RFM score of one customer from their order history.
func (rs *RFMScorer) Score(customer customermodel.Customer, orders []customermodel.Order) model.RFMScore {

	days := noOrderRecencyDays
	var lastOrderAt time.Time
	totalSpent := 0.0
	for _, order := range orders {
		totalSpent += order.Total
		if order.CreatedAt.After(lastOrderAt) {
			lastOrderAt = order.CreatedAt
		}
	}
	if !lastOrderAt.IsZero() {
		days = int(rs.now().Sub(lastOrderAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}

	recency := recencyScore(days)
	frequency := frequencyScore(len(orders))
	monetary := monetaryScore(totalSpent)

	return model.RFMScore{
		CustomerId:         customer.CustomerId,
		Recency:            recency,
		Frequency:          frequency,
		Monetary:           monetary,
		SegmentLabel:       segmentLabel(recency, frequency, monetary),
		DaysSinceLastOrder: days,
		OrdersCount:        len(orders),
		TotalSpent:         totalSpent,
	}
}

func recencyScore(days int) int {
	switch {
	case days <= 30:
		return 5
	case days <= 60:
		return 4
	case days <= 90:
		return 3
	case days <= 180:
		return 2
	default:
		return 1
	}
}

func frequencyScore(orders int) int {
	switch {
	case orders >= 20:
		return 5
	case orders >= 10:
		return 4
	case orders >= 5:
		return 3
	case orders >= 2:
		return 2
	default:
		return 1
	}
}

func monetaryScore(spend float64) int {
	switch {
	case spend >= 10000:
		return 5
	case spend >= 5000:
		return 4
	case spend >= 2000:
		return 3
	case spend >= 500:
		return 2
	default:
		return 1
	}
}

// segmentLabel maps an RFM triple to a named segment. The rules are checked
// top to bottom and the first match wins; several rules can be true at once,
// so the order here is part of the contract.
func segmentLabel(recency, frequency, monetary int) string {

	switch {
	case recency >= 4 && frequency >= 4 && monetary >= 4:
		return "Champions"
	case recency >= 3 && frequency >= 3 && monetary >= 3:
		return "Loyal Customers"
	case recency >= 4 && frequency >= 2:
		return "Potential Loyalists"
	case recency <= 2 && frequency >= 3 && monetary >= 3:
		return "At Risk"
	case recency <= 2 && frequency >= 4:
		return "Cannot Lose Them"
	case recency <= 2 && frequency <= 2:
		return "Hibernating"
	case recency >= 4 && frequency <= 1:
		return "New Customers"
	case recency == 3 && frequency <= 1:
		return "Promising"
	case recency == 3 && frequency >= 2 && monetary >= 2:
		return "Need Attention"
	case recency == 3:
		return "About to Sleep"
	default:
		return "Others"
	}
}
