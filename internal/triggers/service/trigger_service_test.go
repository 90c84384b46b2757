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
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	conditionservice "github.com/reachline/journey-automation-service/internal/conditions/service"
	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
	eventmodel "github.com/reachline/journey-automation-service/internal/events/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/log"
	"github.com/reachline/journey-automation-service/internal/triggers/model"
)

var matchingNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

// fakeEventService serves canned occurrences so behavior rules can be matched
// without a database. It records the cutoff it was asked for.
type fakeEventService struct {
	events     []eventmodel.Event
	err        error
	lastSince  time.Time
	lastEvent  string
	lastCustId string
}

func (f *fakeEventService) TrackEvent(event eventmodel.Event) (*eventmodel.Event, error) {
	return &event, nil
}

func (f *fakeEventService) GetEventsSince(customerId, eventName string, since time.Time) ([]eventmodel.Event, error) {
	f.lastCustId = customerId
	f.lastEvent = eventName
	f.lastSince = since
	if f.err != nil {
		return nil, f.err
	}
	filtered := make([]eventmodel.Event, 0, len(f.events))
	for _, event := range f.events {
		if event.EventName == eventName && !event.Timestamp.Before(since) {
			filtered = append(filtered, event)
		}
	}
	return filtered, nil
}

func (f *fakeEventService) GetEventsByCustomer(customerId string) ([]eventmodel.Event, error) {
	return f.events, nil
}

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func matcherWith(events *fakeEventService) TriggerMatcherInterface {
	return GetTriggerMatcherWithDeps(
		conditionservice.GetConditionEvaluator(), events, func() time.Time { return matchingNow })
}

func occurrence(name string, daysAgo int, properties map[string]interface{}) eventmodel.Event {
	return eventmodel.Event{
		EventId:    name + "-e",
		CustomerId: "c1",
		EventName:  name,
		Properties: properties,
		Timestamp:  matchingNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func Test_MatchesRule_Property(t *testing.T) {
	matcher := matcherWith(&fakeEventService{})
	customer := customermodel.Customer{CustomerId: "c1", Country: "DE", TotalSpent: 250}

	envelope := model.RuleEnvelope{
		RuleType: constants.RuleTypeProperty,
		Conditions: []conditionmodel.Condition{
			{Field: "country", Operator: constants.OpEquals, Value: "DE"},
			{Field: "total_spent", Operator: constants.OpGreaterThan, Value: 100},
		},
	}
	assert.True(t, matcher.MatchesRule(customer, envelope))

	envelope.Conditions[0].Value = "FR"
	assert.False(t, matcher.MatchesRule(customer, envelope))
}

func Test_MatchesRule_Behavior_TimeFrame(t *testing.T) {
	customer := customermodel.Customer{CustomerId: "c1"}

	tests := []struct {
		name     string
		daysAgo  int
		action   string
		expected bool
	}{
		{"did within window", 5, constants.RuleActionDid, true},
		{"did outside window", 40, constants.RuleActionDid, false},
		{"did_not with recent occurrence", 5, constants.RuleActionDidNot, false},
		{"did_not with stale occurrence", 40, constants.RuleActionDidNot, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events := &fakeEventService{events: []eventmodel.Event{
				occurrence("product_viewed", tc.daysAgo, nil),
			}}
			matcher := matcherWith(events)

			envelope := model.RuleEnvelope{
				RuleType:  constants.RuleTypeBehavior,
				EventName: "product_viewed",
				Action:    tc.action,
				TimeFrame: &model.TimeFrame{Period: constants.PeriodLast30Days},
			}
			assert.Equal(t, tc.expected, matcher.MatchesRule(customer, envelope))
			assert.Equal(t, "c1", events.lastCustId)
			assert.Equal(t, "product_viewed", events.lastEvent)
			assert.Equal(t, matchingNow.Add(-30*24*time.Hour), events.lastSince)
		})
	}
}

func Test_MatchesRule_Behavior_ConditionsFilterOccurrences(t *testing.T) {
	events := &fakeEventService{events: []eventmodel.Event{
		occurrence("purchase_completed", 3, map[string]interface{}{"total": 20.0}),
		occurrence("purchase_completed", 2, map[string]interface{}{"total": 80.0}),
	}}
	matcher := matcherWith(events)
	customer := customermodel.Customer{CustomerId: "c1"}

	envelope := model.RuleEnvelope{
		RuleType:  constants.RuleTypeBehavior,
		EventName: "purchase_completed",
		Action:    constants.RuleActionDid,
		TimeFrame: &model.TimeFrame{Period: constants.PeriodLast7Days},
		Conditions: []conditionmodel.Condition{
			{Field: "total", Operator: constants.OpGreaterThan, Value: 50},
		},
	}
	assert.True(t, matcher.MatchesRule(customer, envelope), "one occurrence qualifies")

	envelope.Conditions[0].Value = 100
	assert.False(t, matcher.MatchesRule(customer, envelope), "no occurrence qualifies")
}

func Test_MatchesRule_Behavior_FetchErrorFailsClosed(t *testing.T) {
	events := &fakeEventService{err: errors.New("connection refused")}
	matcher := matcherWith(events)

	envelope := model.RuleEnvelope{
		RuleType:  constants.RuleTypeBehavior,
		EventName: "product_viewed",
		Action:    constants.RuleActionDidNot,
	}
	assert.False(t, matcher.MatchesRule(customermodel.Customer{CustomerId: "c1"}, envelope),
		"even did_not fails closed when occurrences cannot be fetched")
}

func Test_MatchesRule_Interest(t *testing.T) {
	matcher := matcherWith(&fakeEventService{})
	customer := customermodel.Customer{CustomerId: "c1", Tags: []string{"Running", "yoga"}}

	envelope := model.RuleEnvelope{RuleType: constants.RuleTypeInterest, Interest: "running"}
	assert.True(t, matcher.MatchesRule(customer, envelope), "tag match is case insensitive")

	envelope.Interest = "cycling"
	assert.False(t, matcher.MatchesRule(customer, envelope))

	envelope.Action = constants.RuleActionDidNot
	assert.True(t, matcher.MatchesRule(customer, envelope), "did_not inverts the tag match")
}

func Test_MatchesRule_InvalidEnvelopeFailsClosed(t *testing.T) {
	matcher := matcherWith(&fakeEventService{})

	envelope := model.RuleEnvelope{RuleType: constants.RuleTypeBehavior}
	assert.False(t, matcher.MatchesRule(customermodel.Customer{CustomerId: "c1"}, envelope),
		"behavior rule without an event name never matches")
}

func Test_MatchesGroup(t *testing.T) {
	matcher := matcherWith(&fakeEventService{})
	customer := customermodel.Customer{CustomerId: "c1", Country: "DE"}

	matchDE := model.RuleEnvelope{
		RuleType: constants.RuleTypeProperty,
		Conditions: []conditionmodel.Condition{
			{Field: "country", Operator: constants.OpEquals, Value: "DE"}},
	}
	matchFR := model.RuleEnvelope{
		RuleType: constants.RuleTypeProperty,
		Conditions: []conditionmodel.Condition{
			{Field: "country", Operator: constants.OpEquals, Value: "FR"}},
	}

	t.Run("empty group matches", func(t *testing.T) {
		assert.True(t, matcher.MatchesGroup(customer, model.RuleGroup{Operator: constants.LogicalAnd}))
	})

	t.Run("AND requires all members", func(t *testing.T) {
		assert.True(t, matcher.MatchesGroup(customer, model.RuleGroup{
			Operator: constants.LogicalAnd, Rules: []model.RuleEnvelope{matchDE, matchDE}}))
		assert.False(t, matcher.MatchesGroup(customer, model.RuleGroup{
			Operator: constants.LogicalAnd, Rules: []model.RuleEnvelope{matchDE, matchFR}}))
	})

	t.Run("OR requires one member", func(t *testing.T) {
		assert.True(t, matcher.MatchesGroup(customer, model.RuleGroup{
			Operator: constants.LogicalOr, Rules: []model.RuleEnvelope{matchFR, matchDE}}))
		assert.False(t, matcher.MatchesGroup(customer, model.RuleGroup{
			Operator: constants.LogicalOr, Rules: []model.RuleEnvelope{matchFR, matchFR}}))
	})

	t.Run("missing operator defaults to AND", func(t *testing.T) {
		assert.False(t, matcher.MatchesGroup(customer, model.RuleGroup{
			Rules: []model.RuleEnvelope{matchDE, matchFR}}))
	})
}

func Test_MatchesTargetSegment(t *testing.T) {
	events := &fakeEventService{events: []eventmodel.Event{
		occurrence("cart_abandoned", 1, nil),
	}}
	matcher := matcherWith(events)
	customer := customermodel.Customer{CustomerId: "c1", Country: "DE", Tags: []string{"sale"}}

	segment := model.TargetSegment{
		Rules: []model.RuleEnvelope{
			{
				RuleType: constants.RuleTypeProperty,
				Conditions: []conditionmodel.Condition{
					{Field: "country", Operator: constants.OpEquals, Value: "DE"}},
			},
			{
				RuleType:  constants.RuleTypeBehavior,
				EventName: "cart_abandoned",
				TimeFrame: &model.TimeFrame{Period: constants.PeriodLast24Hours},
			},
		},
		RuleGroups: []model.RuleGroup{
			{
				Operator: constants.LogicalOr,
				Rules: []model.RuleEnvelope{
					{RuleType: constants.RuleTypeInterest, Interest: "sale"},
					{RuleType: constants.RuleTypeInterest, Interest: "clearance"},
				},
			},
		},
	}
	assert.True(t, matcher.MatchesTargetSegment(customer, segment))

	// Failing any main rule fails the whole segment.
	customer.Country = "FR"
	assert.False(t, matcher.MatchesTargetSegment(customer, segment))

	// Failing a group fails the segment even when the main rules pass.
	customer.Country = "DE"
	customer.Tags = nil
	assert.False(t, matcher.MatchesTargetSegment(customer, segment))
}

func Test_ValidateTargetSegment(t *testing.T) {
	matcher := matcherWith(&fakeEventService{})

	valid := model.TargetSegment{
		Rules: []model.RuleEnvelope{
			{
				RuleType:  constants.RuleTypeBehavior,
				EventName: "product_viewed",
				TimeFrame: &model.TimeFrame{Period: constants.PeriodCustom, Days: 14},
			},
		},
		RuleGroups: []model.RuleGroup{
			{
				Operator: constants.LogicalOr,
				Rules:    []model.RuleEnvelope{{RuleType: constants.RuleTypeInterest, Interest: "sale"}},
			},
		},
	}
	require.NoError(t, matcher.ValidateTargetSegment(valid))

	t.Run("invalid envelope is reported", func(t *testing.T) {
		segment := model.TargetSegment{
			Rules: []model.RuleEnvelope{{Id: "r1", RuleType: constants.RuleTypeBehavior}},
		}
		require.Error(t, matcher.ValidateTargetSegment(segment))
	})

	t.Run("invalid condition inside a group is reported", func(t *testing.T) {
		segment := model.TargetSegment{
			RuleGroups: []model.RuleGroup{{
				Rules: []model.RuleEnvelope{{
					RuleType: constants.RuleTypeProperty,
					Conditions: []conditionmodel.Condition{
						{Field: "country", Operator: "regex", Value: ".*"}},
				}},
			}},
		}
		require.Error(t, matcher.ValidateTargetSegment(segment))
	})
}
