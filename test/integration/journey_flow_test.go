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
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
	customerservice "github.com/reachline/journey-automation-service/internal/customers/service"
	enrollmentmodel "github.com/reachline/journey-automation-service/internal/enrollments/model"
	enrollmentservice "github.com/reachline/journey-automation-service/internal/enrollments/service"
	enrollmentstore "github.com/reachline/journey-automation-service/internal/enrollments/store"
	eventmodel "github.com/reachline/journey-automation-service/internal/events/model"
	journeymodel "github.com/reachline/journey-automation-service/internal/journeys/model"
	journeyservice "github.com/reachline/journey-automation-service/internal/journeys/service"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

func welcomeJourney() journeymodel.Journey {
	return journeymodel.Journey{
		Name: "Welcome flow",
		Entry: journeymodel.EntrySettings{
			AllowReentry: false,
		},
		Nodes: []journeymodel.Node{
			{NodeId: "t1", Type: constants.NodeTypeTrigger, Name: "Entry"},
			{
				NodeId: "a1",
				Type:   constants.NodeTypeAction,
				Name:   "Welcome message",
				Action: &journeymodel.ActionConfig{
					TemplateId: "welcome-v1",
					ExitPaths: journeymodel.ExitPathsConfig{
						Paths: map[string]journeymodel.ExitPath{
							constants.DeliveryRead: {
								Enabled:           true,
								Action:            journeymodel.ExitAction{Type: constants.ExitActionContinue},
								TrackingEventName: "welcome_read",
							},
							constants.DeliveryFailed: {
								Enabled: true,
								Action:  journeymodel.ExitAction{Type: constants.ExitActionExit},
							},
						},
					},
				},
			},
			{
				NodeId: "g1",
				Type:   constants.NodeTypeGoal,
				Name:   "First purchase",
				Goal: &journeymodel.GoalConfig{
					EventName:         "purchase_completed",
					AttributionWindow: journeymodel.AttributionWindow{Value: 7, Unit: "days"},
					AttributionModel:  constants.AttributionLastTouch,
					ExitAfterGoal:     true,
					MarkAsCompleted:   true,
				},
			},
		},
		Edges: []journeymodel.Edge{
			{From: "t1", To: "a1"},
			{From: "a1", To: "g1"},
		},
	}
}

func Test_JourneyEnrollmentFlow(t *testing.T) {
	customerSvc := customerservice.GetCustomerService()
	journeySvc := journeyservice.GetJourneyService()
	enrollmentSvc := enrollmentservice.GetEnrollmentService()

	now := time.Now().UTC()
	customer := customermodel.Customer{
		CustomerId: "cust-" + uuid.New().String(),
		Email:      "dana@example.com",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, customerSvc.UpsertCustomer(customer))

	created, err := journeySvc.CreateJourney(welcomeJourney())
	require.NoError(t, err)
	require.Equal(t, journeymodel.JourneyDraft, created.Status)

	t.Run("Enroll_rejected_while_draft", func(t *testing.T) {
		_, err := enrollmentSvc.Enroll(customer.CustomerId, created.JourneyId)
		require.Error(t, err)
	})

	require.NoError(t, journeySvc.ActivateJourney(created.JourneyId))

	var enrollmentId string
	t.Run("Enroll_advances_to_action_node", func(t *testing.T) {
		enrollment, err := enrollmentSvc.Enroll(customer.CustomerId, created.JourneyId)
		require.NoError(t, err)
		enrollmentId = enrollment.EnrollmentId

		require.Equal(t, constants.EnrollmentActive, enrollment.Status)
		require.Equal(t, "a1", enrollment.CurrentNodeId)
		require.Len(t, enrollment.History, 2, "trigger then action")
		require.NotEmpty(t, enrollment.Actions, "message send recorded")
		require.Equal(t, "message_sent", enrollment.Actions[0].Type)
	})

	t.Run("Duplicate_enroll_rejected", func(t *testing.T) {
		_, err := enrollmentSvc.Enroll(customer.CustomerId, created.JourneyId)
		require.Error(t, err)
	})

	readEventId := uuid.New().String()
	t.Run("Read_event_moves_to_goal", func(t *testing.T) {
		enrollmentSvc.HandleDeliveryEvent(eventmodel.DeliveryEvent{
			EventId:      readEventId,
			EnrollmentId: enrollmentId,
			NodeId:       "a1",
			EventType:    constants.DeliveryRead,
			Timestamp:    time.Now().UTC(),
		})

		enrollment, err := enrollmentSvc.GetEnrollment(enrollmentId)
		require.NoError(t, err)
		require.Equal(t, constants.EnrollmentActive, enrollment.Status)
		require.Equal(t, "g1", enrollment.CurrentNodeId)

		// Every visited node's history entry is closed; only the current
		// node's entry stays open.
		require.Len(t, enrollment.History, 3)
		for i, entry := range enrollment.History {
			if i < len(enrollment.History)-1 {
				require.NotNil(t, entry.ExitedAt, "entry %d (%s) must be closed", i, entry.NodeId)
			}
		}
		last := enrollment.History[len(enrollment.History)-1]
		require.Equal(t, "g1", last.NodeId)
		require.Nil(t, last.ExitedAt, "the current node's entry stays open")

		var sawTracking bool
		for _, action := range enrollment.Actions {
			if action.Type == "tracking_event" {
				sawTracking = true
			}
		}
		require.True(t, sawTracking, "tracking event recorded on the enrollment")
	})

	t.Run("Replayed_delivery_event_is_noop", func(t *testing.T) {
		enrollmentSvc.HandleDeliveryEvent(eventmodel.DeliveryEvent{
			EventId:      readEventId,
			EnrollmentId: enrollmentId,
			NodeId:       "a1",
			EventType:    constants.DeliveryRead,
			Timestamp:    time.Now().UTC(),
		})

		enrollment, err := enrollmentSvc.GetEnrollment(enrollmentId)
		require.NoError(t, err)
		require.Equal(t, "g1", enrollment.CurrentNodeId)
	})

	conversionId := uuid.New().String()
	t.Run("Conversion_completes_enrollment", func(t *testing.T) {
		enrollmentSvc.HandleConversionEvent(eventmodel.ConversionEvent{
			EventId:    conversionId,
			CustomerId: customer.CustomerId,
			EventName:  "purchase_completed",
			Timestamp:  time.Now().UTC(),
		})

		enrollment, err := enrollmentSvc.GetEnrollment(enrollmentId)
		require.NoError(t, err)
		require.Equal(t, constants.EnrollmentCompleted, enrollment.Status)
		require.Len(t, enrollment.Conversions, 1)
		require.Equal(t, conversionId, enrollment.Conversions[0].EventId)
	})

	t.Run("Replayed_conversion_is_noop", func(t *testing.T) {
		enrollmentSvc.HandleConversionEvent(eventmodel.ConversionEvent{
			EventId:    conversionId,
			CustomerId: customer.CustomerId,
			EventName:  "purchase_completed",
			Timestamp:  time.Now().UTC(),
		})

		enrollment, err := enrollmentSvc.GetEnrollment(enrollmentId)
		require.NoError(t, err)
		require.Len(t, enrollment.Conversions, 1)
	})

	t.Run("Reentry_blocked_after_completion", func(t *testing.T) {
		_, err := enrollmentSvc.Enroll(customer.CustomerId, created.JourneyId)
		require.Error(t, err, "allow_reentry is false")
	})
}

func Test_ActiveEnrollmentUniqueness(t *testing.T) {
	customerId := "cust-" + uuid.New().String()
	journeyId := "jrn-" + uuid.New().String()

	now := time.Now().UTC()
	first := enrollmentmodel.Enrollment{
		EnrollmentId:  uuid.New().String(),
		JourneyId:     journeyId,
		CustomerId:    customerId,
		Status:        constants.EnrollmentActive,
		CurrentNodeId: "t1",
		History:       []enrollmentmodel.HistoryEntry{{NodeId: "t1", EnteredAt: now}},
		EnrolledAt:    now,
		UpdatedAt:     now,
	}
	require.NoError(t, enrollmentstore.InsertEnrollment(first))

	// Writing a second ACTIVE document directly, bypassing the service's
	// entry-frequency read, still fails: one ACTIVE enrollment per customer
	// and journey is a storage invariant.
	second := first
	second.EnrollmentId = uuid.New().String()
	require.Error(t, enrollmentstore.InsertEnrollment(second))

	// Terminal records do not hold the slot.
	second.Status = constants.EnrollmentCompleted
	require.NoError(t, enrollmentstore.InsertEnrollment(second))
}

func Test_DelayedTransitionResume(t *testing.T) {
	customerSvc := customerservice.GetCustomerService()
	journeySvc := journeyservice.GetJourneyService()
	enrollmentSvc := enrollmentservice.GetEnrollmentService()

	now := time.Now().UTC()
	customer := customermodel.Customer{
		CustomerId: "cust-" + uuid.New().String(),
		Email:      "eli@example.com",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, customerSvc.UpsertCustomer(customer))

	journey := journeymodel.Journey{
		Name: "Delayed nudge",
		Nodes: []journeymodel.Node{
			{NodeId: "t1", Type: constants.NodeTypeTrigger},
			{NodeId: "d1", Type: constants.NodeTypeDelay, Delay: &journeymodel.DelayConfig{DurationMinutes: 60}},
			{NodeId: "x1", Type: constants.NodeTypeExit},
		},
		Edges: []journeymodel.Edge{
			{From: "t1", To: "d1"},
			{From: "d1", To: "x1"},
		},
	}
	created, err := journeySvc.CreateJourney(journey)
	require.NoError(t, err)
	require.NoError(t, journeySvc.ActivateJourney(created.JourneyId))

	enrollment, err := enrollmentSvc.Enroll(customer.CustomerId, created.JourneyId)
	require.NoError(t, err)
	require.Equal(t, "d1", enrollment.CurrentNodeId, "suspended on the delay node")

	// The timer is due an hour out; poll past it.
	due, err := enrollmentstore.GetDueTransitions(time.Now().UTC().Add(2 * time.Hour))
	require.NoError(t, err)

	var resumed bool
	for _, transition := range due {
		if transition.EnrollmentId == enrollment.EnrollmentId {
			enrollmentSvc.ResumePendingTransition(transition)
			resumed = true
		}
	}
	require.True(t, resumed, "delay transition was persisted")

	final, err := enrollmentSvc.GetEnrollment(enrollment.EnrollmentId)
	require.NoError(t, err)
	require.Equal(t, constants.EnrollmentExited, final.Status, "exit node ends the journey")

	stale, err := enrollmentstore.GetDueTransitions(time.Now().UTC().Add(2 * time.Hour))
	require.NoError(t, err)
	for _, transition := range stale {
		require.NotEqual(t, enrollment.EnrollmentId, transition.EnrollmentId,
			"consumed timers are deleted")
	}
}
