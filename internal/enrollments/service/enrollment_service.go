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
	"time"

	"github.com/google/uuid"
	conditionservice "github.com/reachline/journey-automation-service/internal/conditions/service"
	customerprovider "github.com/reachline/journey-automation-service/internal/customers/provider"
	"github.com/reachline/journey-automation-service/internal/enrollments/model"
	"github.com/reachline/journey-automation-service/internal/enrollments/store"
	eventmodel "github.com/reachline/journey-automation-service/internal/events/model"
	eventprovider "github.com/reachline/journey-automation-service/internal/events/provider"
	journeymodel "github.com/reachline/journey-automation-service/internal/journeys/model"
	journeyprovider "github.com/reachline/journey-automation-service/internal/journeys/provider"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

// EnrollmentServiceInterface is the journey enrollment state machine. The
// event-driven methods (HandleDeliveryEvent, HandleConversionEvent,
// ResumePendingTransition) must run on the enrollment worker shard for their
// enrollment id, which gives each enrollment a single writer.
type EnrollmentServiceInterface interface {
	Enroll(customerId, journeyId string) (*model.Enrollment, error)
	GetEnrollment(enrollmentId string) (*model.Enrollment, error)
	ListEnrollments(journeyId, customerId string) ([]model.Enrollment, error)
	HandleDeliveryEvent(event eventmodel.DeliveryEvent)
	HandleConversionEvent(event eventmodel.ConversionEvent)
	ResumePendingTransition(transition model.PendingTransition)
}

// EnrollmentService is the default implementation of the
// EnrollmentServiceInterface.
type EnrollmentService struct {
	evaluator conditionservice.ConditionEvaluatorInterface
	goals     *GoalAttributionEvaluator
}

// GetEnrollmentService creates a new instance of EnrollmentService.
func GetEnrollmentService() EnrollmentServiceInterface {

	return &EnrollmentService{
		evaluator: conditionservice.GetConditionEvaluator(),
		goals:     GetGoalAttributionEvaluator(),
	}
}

// Enroll creates a new ACTIVE enrollment at the journey's trigger node,
// subject to the journey's entry-frequency settings, and advances it until
// the first suspension point.
func (es *EnrollmentService) Enroll(customerId, journeyId string) (*model.Enrollment, error) {

	journeyService := journeyprovider.NewJourneysProvider().GetJourneyService()
	journey, err := journeyService.GetJourney(journeyId)
	if err != nil {
		return nil, err
	}
	if journey.Status != journeymodel.JourneyActive {
		return nil, rejection(fmt.Sprintf("Journey %s is not active.", journeyId))
	}

	customerService := customerprovider.NewCustomersProvider().GetCustomerService()
	if _, err := customerService.GetCustomer(customerId); err != nil {
		return nil, err
	}

	if err := es.checkEntryFrequency(customerId, journey); err != nil {
		return nil, err
	}

	graph := journeymodel.NewGraph(journey)
	entryNodeId := graph.EntryNodeId()
	if entryNodeId == "" {
		return nil, rejection(fmt.Sprintf("Journey %s has no trigger node.", journeyId))
	}

	now := time.Now().UTC()
	enrollment := model.Enrollment{
		EnrollmentId:  uuid.New().String(),
		JourneyId:     journeyId,
		CustomerId:    customerId,
		Status:        constants.EnrollmentActive,
		CurrentNodeId: entryNodeId,
		History:       []model.HistoryEntry{{NodeId: entryNodeId, EnteredAt: now}},
		EnrolledAt:    now,
		UpdatedAt:     now,
	}
	if err := store.InsertEnrollment(enrollment); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   customerId,
		InitiatorType: "customer",
		TargetID:      enrollment.EnrollmentId,
		TargetType:    "enrollment",
		ActionID:      log.ActionEnrollCustomer,
	})
	journeyService.RecordNodeMetric(journeyId, entryNodeId, "entered")

	es.advance(enrollment.EnrollmentId, "enroll:"+enrollment.EnrollmentId)
	return store.GetEnrollment(enrollment.EnrollmentId)
}

// checkEntryFrequency rejects an enrollment while a non-terminal enrollment
// exists, when re-entry is disabled or capped, or while the cooldown window
// since the last enrollment is still open.
func (es *EnrollmentService) checkEntryFrequency(customerId string, journey *journeymodel.Journey) error {

	existing, err := store.GetEnrollmentsByCustomerAndJourney(customerId, journey.JourneyId)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	for _, enrollment := range existing {
		if !enrollment.IsTerminal() {
			return rejection(fmt.Sprintf(
				"Customer %s already has an active enrollment in journey %s.", customerId, journey.JourneyId))
		}
	}
	if !journey.Entry.AllowReentry {
		return rejection(fmt.Sprintf(
			"Journey %s does not allow re-entry.", journey.JourneyId))
	}
	if journey.Entry.MaxEntries > 0 && len(existing) >= journey.Entry.MaxEntries {
		return rejection(fmt.Sprintf(
			"Customer %s reached the entry cap of journey %s.", customerId, journey.JourneyId))
	}
	if journey.Entry.CooldownDays > 0 {
		cooldown := time.Duration(journey.Entry.CooldownDays) * 24 * time.Hour
		latest := existing[0].EnrolledAt
		for _, enrollment := range existing {
			if enrollment.EnrolledAt.After(latest) {
				latest = enrollment.EnrolledAt
			}
		}
		if time.Since(latest) < cooldown {
			return rejection(fmt.Sprintf(
				"Customer %s is inside the re-entry cooldown of journey %s.", customerId, journey.JourneyId))
		}
	}
	return nil
}

func (es *EnrollmentService) GetEnrollment(enrollmentId string) (*model.Enrollment, error) {

	enrollment, err := store.GetEnrollment(enrollmentId)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ENROLLMENT_NOT_FOUND.Code,
			Message:     errors2.ENROLLMENT_NOT_FOUND.Message,
			Description: fmt.Sprintf("Enrollment with id %s not found.", enrollmentId),
		}, http.StatusNotFound)
	}
	return enrollment, nil
}

func (es *EnrollmentService) ListEnrollments(journeyId, customerId string) ([]model.Enrollment, error) {

	return store.ListEnrollments(journeyId, customerId)
}

// HandleDeliveryEvent routes a delivery/interaction event through the exit
// paths of the enrollment's current action node. Events for unknown,
// finished or moved-on enrollments are logged and ignored; replays are
// no-ops through the transition idempotency key.
func (es *EnrollmentService) HandleDeliveryEvent(event eventmodel.DeliveryEvent) {

	logger := log.GetLogger()
	enrollment, journey, graph := es.loadContext(event.EnrollmentId)
	if enrollment == nil {
		return
	}
	if enrollment.Status != constants.EnrollmentActive || enrollment.CurrentNodeId != event.NodeId {
		logger.Debug(fmt.Sprintf(
			"Ignoring %s event for enrollment %s: node %s is no longer current",
			event.EventType, event.EnrollmentId, event.NodeId))
		return
	}

	node, ok := graph.Node(enrollment.CurrentNodeId)
	if !ok || node.Type != constants.NodeTypeAction || node.Action == nil {
		logger.Debug(fmt.Sprintf(
			"Ignoring %s event for enrollment %s: current node %s is not an action node",
			event.EventType, event.EnrollmentId, enrollment.CurrentNodeId))
		return
	}

	eventId := event.EventId
	if eventId == "" {
		eventId = uuid.New().String()
	}

	resolution := ResolveExitPath(node.Action.ExitPaths, event.EventType, event.ButtonId)
	if resolution.TrackingEventName != "" && resolution.Kind != ResolveNone {
		es.recordTrackingEvent(enrollment, resolution.TrackingEventName, eventId)
	}

	switch resolution.Kind {
	case ResolveNone:
		return

	case ResolveContinue:
		next, ok := graph.DefaultNext(node.NodeId)
		if !ok {
			es.finish(enrollment, journey, node.NodeId, constants.EnrollmentCompleted, eventId)
			return
		}
		es.moveAndContinue(enrollment, journey, node.NodeId, next, eventId)

	case ResolveBranch:
		next, ok := graph.NextByLabel(node.NodeId, resolution.BranchId)
		if !ok {
			logger.Warn(fmt.Sprintf(
				"Branch '%s' of node %s has no edge in journey %s; enrollment %s stays put",
				resolution.BranchId, node.NodeId, journey.JourneyId, enrollment.EnrollmentId))
			return
		}
		es.moveAndContinue(enrollment, journey, node.NodeId, next, eventId)

	case ResolveExit:
		es.finish(enrollment, journey, node.NodeId, constants.EnrollmentExited, eventId)

	case ResolveWait:
		transition := model.PendingTransition{
			TransitionId: uuid.New().String(),
			EnrollmentId: enrollment.EnrollmentId,
			NodeId:       node.NodeId,
			Kind:         model.TransitionWait,
			DueAt:        time.Now().UTC().Add(resolution.WaitDuration),
			TimeoutPath:  resolution.TimeoutPath,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.InsertPendingTransition(transition); err != nil {
			logger.Error(fmt.Sprintf("Failed to arm wait timer for enrollment %s",
				enrollment.EnrollmentId), log.Error(err))
		}
	}
}

// HandleConversionEvent fans a conversion event out over the customer's
// active enrollments that currently sit on a goal node and applies goal
// attribution per enrollment.
func (es *EnrollmentService) HandleConversionEvent(event eventmodel.ConversionEvent) {

	logger := log.GetLogger()
	active, err := store.GetActiveEnrollmentsByCustomer(event.CustomerId)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to fetch active enrollments for conversion of customer %s",
			event.CustomerId), log.Error(err))
		return
	}

	for _, enrollment := range active {
		es.applyConversion(enrollment.EnrollmentId, event)
	}
}

func (es *EnrollmentService) applyConversion(enrollmentId string, event eventmodel.ConversionEvent) {

	logger := log.GetLogger()
	enrollment, journey, graph := es.loadContext(enrollmentId)
	if enrollment == nil || enrollment.Status != constants.EnrollmentActive {
		return
	}

	node, ok := graph.Node(enrollment.CurrentNodeId)
	if !ok || node.Type != constants.NodeTypeGoal || node.Goal == nil {
		return
	}

	conversion, counted := es.goals.Attribute(*node.Goal, es.touchTimestamps(enrollment, graph),
		event, len(enrollment.Conversions))
	if !counted {
		return
	}

	key := model.TransitionKey(enrollment.EnrollmentId, node.NodeId, "conversion:"+event.EventId)
	applied, err := store.AppendConversion(enrollment.EnrollmentId, conversion, key)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to record conversion for enrollment %s",
			enrollment.EnrollmentId), log.Error(err))
		return
	}
	if !applied {
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   enrollment.CustomerId,
		InitiatorType: "customer",
		TargetID:      enrollment.EnrollmentId,
		TargetType:    "enrollment",
		ActionID:      log.ActionRecordConversion,
		Data:          map[string]interface{}{"event_name": event.EventName, "credit": conversion.Credit},
	})

	if node.Goal.ExitAfterGoal {
		// MarkAsCompleted changes the reported terminal status, not the
		// routing decision.
		status := constants.EnrollmentExited
		if node.Goal.MarkAsCompleted {
			status = constants.EnrollmentCompleted
		}
		es.finish(enrollment, journey, node.NodeId, status, "goal:"+event.EventId)
		return
	}

	next, ok := graph.DefaultNext(node.NodeId)
	if !ok {
		es.finish(enrollment, journey, node.NodeId, constants.EnrollmentCompleted, "goal:"+event.EventId)
		return
	}
	es.moveAndContinue(enrollment, journey, node.NodeId, next, "goal:"+event.EventId)
}

// ResumePendingTransition resumes a due delay or wait timer. If the
// enrollment has already advanced past the suspended node, the timer lost
// the race to a qualifying event and resuming is a no-op; either way the
// record is consumed.
func (es *EnrollmentService) ResumePendingTransition(transition model.PendingTransition) {

	logger := log.GetLogger()
	defer func() {
		if err := store.DeletePendingTransition(transition.TransitionId); err != nil {
			logger.Error(fmt.Sprintf("Failed to delete pending transition %s",
				transition.TransitionId), log.Error(err))
		}
	}()

	enrollment, journey, graph := es.loadContext(transition.EnrollmentId)
	if enrollment == nil {
		return
	}
	if enrollment.Status != constants.EnrollmentActive || enrollment.CurrentNodeId != transition.NodeId {
		logger.Debug(fmt.Sprintf(
			"Pending transition %s is stale: enrollment %s moved off node %s",
			transition.TransitionId, transition.EnrollmentId, transition.NodeId))
		return
	}

	var next string
	var ok bool
	if transition.Kind == model.TransitionWait && transition.TimeoutPath != "" {
		next, ok = graph.NextByLabel(transition.NodeId, transition.TimeoutPath)
	} else {
		next, ok = graph.DefaultNext(transition.NodeId)
	}
	if !ok {
		es.finish(enrollment, journey, transition.NodeId, constants.EnrollmentCompleted,
			"timer:"+transition.TransitionId)
		return
	}
	es.moveAndContinue(enrollment, journey, transition.NodeId, next, "timer:"+transition.TransitionId)
}

// advance walks the node graph from the enrollment's current node until it
// reaches a suspension point (delay, action, goal) or a terminal state.
func (es *EnrollmentService) advance(enrollmentId, eventId string) {

	logger := log.GetLogger()
	for {
		enrollment, journey, graph := es.loadContext(enrollmentId)
		if enrollment == nil || enrollment.Status != constants.EnrollmentActive {
			return
		}

		node, ok := graph.Node(enrollment.CurrentNodeId)
		if !ok {
			logger.Error(fmt.Sprintf("Enrollment %s sits on unknown node %s of journey %s",
				enrollmentId, enrollment.CurrentNodeId, journey.JourneyId))
			return
		}

		switch node.Type {
		case constants.NodeTypeTrigger:
			next, ok := graph.DefaultNext(node.NodeId)
			if !ok {
				es.finish(enrollment, journey, node.NodeId, constants.EnrollmentCompleted, eventId)
				return
			}
			if !es.move(enrollment, journey, node.NodeId, next, eventId) {
				return
			}

		case constants.NodeTypeDelay:
			transition := model.PendingTransition{
				TransitionId: uuid.New().String(),
				EnrollmentId: enrollment.EnrollmentId,
				NodeId:       node.NodeId,
				Kind:         model.TransitionDelay,
				DueAt:        time.Now().UTC().Add(time.Duration(node.Delay.DurationMinutes) * time.Minute),
				CreatedAt:    time.Now().UTC(),
			}
			if err := store.InsertPendingTransition(transition); err != nil {
				logger.Error(fmt.Sprintf("Failed to schedule delay for enrollment %s",
					enrollment.EnrollmentId), log.Error(err))
			}
			return

		case constants.NodeTypeCondition:
			branch := constants.BranchFalse
			if es.evaluateConditionNode(enrollment, node) {
				branch = constants.BranchTrue
			}
			next, ok := graph.NextByLabel(node.NodeId, branch)
			if !ok {
				es.finish(enrollment, journey, node.NodeId, constants.EnrollmentCompleted, eventId)
				return
			}
			if !es.move(enrollment, journey, node.NodeId, next, eventId) {
				return
			}

		case constants.NodeTypeAction:
			es.enterActionNode(enrollment, node)
			return

		case constants.NodeTypeGoal:
			// Suspend awaiting the conversion feed.
			return

		case constants.NodeTypeExit:
			es.finish(enrollment, journey, node.NodeId, constants.EnrollmentExited, eventId)
			return

		default:
			logger.Error(fmt.Sprintf("Enrollment %s hit node %s with unsupported type %s",
				enrollmentId, node.NodeId, node.Type))
			return
		}

		// Subsequent hops of the same traversal need distinct keys.
		eventId = uuid.New().String()
	}
}

// evaluateConditionNode checks the node's condition tree against a fresh
// customer snapshot. Missing customers fail closed to the false branch.
func (es *EnrollmentService) evaluateConditionNode(enrollment *model.Enrollment, node journeymodel.Node) bool {

	if node.Condition == nil {
		return true
	}

	customerService := customerprovider.NewCustomersProvider().GetCustomerService()
	customer, err := customerService.GetCustomer(enrollment.CustomerId)
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf(
			"Failed to load customer %s for condition node %s; taking the false branch",
			enrollment.CustomerId, node.NodeId), log.Error(err))
		return false
	}
	return es.evaluator.EvaluateGroup(customer.Snapshot(), *node.Condition)
}

// enterActionNode records the message send and arms the node's own timeout
// when a timeout exit path is configured.
func (es *EnrollmentService) enterActionNode(enrollment *model.Enrollment, node journeymodel.Node) {

	logger := log.GetLogger()
	action := model.EnrollmentAction{
		Type: "message_sent",
		At:   time.Now().UTC(),
		Metadata: map[string]interface{}{
			"node_id":     node.NodeId,
			"template_id": node.Action.TemplateId,
		},
	}
	if err := store.AppendAction(enrollment.EnrollmentId, action); err != nil {
		logger.Error(fmt.Sprintf("Failed to record message send for enrollment %s",
			enrollment.EnrollmentId), log.Error(err))
	}

	timeoutPath, ok := node.Action.ExitPaths.Paths[constants.DeliveryTimeout]
	if !ok || !timeoutPath.Enabled || timeoutPath.Action.WaitDurationMinutes <= 0 {
		return
	}
	transition := model.PendingTransition{
		TransitionId: uuid.New().String(),
		EnrollmentId: enrollment.EnrollmentId,
		NodeId:       node.NodeId,
		Kind:         model.TransitionWait,
		DueAt:        time.Now().UTC().Add(time.Duration(timeoutPath.Action.WaitDurationMinutes) * time.Minute),
		TimeoutPath:  timeoutPath.Action.TimeoutPath,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.InsertPendingTransition(transition); err != nil {
		logger.Error(fmt.Sprintf("Failed to arm timeout for enrollment %s on node %s",
			enrollment.EnrollmentId, node.NodeId), log.Error(err))
	}
}

// move applies one node-to-node transition and reports whether it was
// actually applied. Losing the atomic update (stale node or replayed key)
// is a clean no-op.
func (es *EnrollmentService) move(enrollment *model.Enrollment, journey *journeymodel.Journey,
	fromNodeId, toNodeId, eventId string) bool {

	key := model.TransitionKey(enrollment.EnrollmentId, fromNodeId, eventId)
	applied, err := store.ApplyTransition(enrollment.EnrollmentId, fromNodeId, toNodeId,
		constants.EnrollmentActive, key, nil)
	if err != nil {
		log.GetLogger().Error(fmt.Sprintf("Failed to move enrollment %s from %s to %s",
			enrollment.EnrollmentId, fromNodeId, toNodeId), log.Error(err))
		return false
	}
	if !applied {
		log.GetLogger().Debug(fmt.Sprintf(
			"Transition %s not applied for enrollment %s: already processed or node moved", key,
			enrollment.EnrollmentId))
		return false
	}

	if err := store.DeleteTransitionsForNode(enrollment.EnrollmentId, fromNodeId); err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Failed to cancel timers for enrollment %s node %s",
			enrollment.EnrollmentId, fromNodeId), log.Error(err))
	}

	journeyService := journeyprovider.NewJourneysProvider().GetJourneyService()
	journeyService.RecordNodeMetric(journey.JourneyId, fromNodeId, "completed")
	journeyService.RecordNodeMetric(journey.JourneyId, toNodeId, "entered")
	return true
}

// moveAndContinue applies one transition and keeps walking the graph.
func (es *EnrollmentService) moveAndContinue(enrollment *model.Enrollment, journey *journeymodel.Journey,
	fromNodeId, toNodeId, eventId string) {

	if es.move(enrollment, journey, fromNodeId, toNodeId, eventId) {
		es.advance(enrollment.EnrollmentId, uuid.New().String())
	}
}

// finish applies a terminal transition.
func (es *EnrollmentService) finish(enrollment *model.Enrollment, journey *journeymodel.Journey,
	fromNodeId, status, eventId string) {

	key := model.TransitionKey(enrollment.EnrollmentId, fromNodeId, eventId)
	applied, err := store.ApplyTransition(enrollment.EnrollmentId, fromNodeId, "", status, key, nil)
	if err != nil {
		log.GetLogger().Error(fmt.Sprintf("Failed to finish enrollment %s with status %s",
			enrollment.EnrollmentId, status), log.Error(err))
		return
	}
	if !applied {
		return
	}

	if err := store.DeleteTransitionsForNode(enrollment.EnrollmentId, fromNodeId); err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Failed to cancel timers for enrollment %s node %s",
			enrollment.EnrollmentId, fromNodeId), log.Error(err))
	}

	journeyService := journeyprovider.NewJourneysProvider().GetJourneyService()
	counter := "completed"
	actionId := log.ActionExitEnrollment
	if status == constants.EnrollmentExited {
		counter = "exited"
	}
	if status == constants.EnrollmentDropped {
		actionId = log.ActionDropEnrollment
	}
	journeyService.RecordNodeMetric(journey.JourneyId, fromNodeId, counter)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   enrollment.CustomerId,
		InitiatorType: "customer",
		TargetID:      enrollment.EnrollmentId,
		TargetType:    "enrollment",
		ActionID:      actionId,
		Data:          map[string]interface{}{"status": status},
	})
}

// recordTrackingEvent emits the exit path's tracking event into the
// behavioral event stream and mirrors it on the enrollment.
func (es *EnrollmentService) recordTrackingEvent(enrollment *model.Enrollment, eventName, sourceEventId string) {

	eventService := eventprovider.NewEventsProvider().GetEventService()
	if _, err := eventService.TrackEvent(eventmodel.Event{
		CustomerId: enrollment.CustomerId,
		EventName:  eventName,
		Properties: map[string]interface{}{
			"enrollment_id": enrollment.EnrollmentId,
			"journey_id":    enrollment.JourneyId,
		},
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Failed to emit tracking event %s for enrollment %s",
			eventName, enrollment.EnrollmentId), log.Error(err))
	}

	action := model.EnrollmentAction{
		Type: "tracking_event",
		At:   time.Now().UTC(),
		Metadata: map[string]interface{}{
			"event_name":      eventName,
			"source_event_id": sourceEventId,
		},
	}
	if err := store.AppendAction(enrollment.EnrollmentId, action); err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Failed to mirror tracking event on enrollment %s",
			enrollment.EnrollmentId), log.Error(err))
	}
}

// touchTimestamps collects the attribution touches of an enrollment: entry
// plus each visit to an action node.
func (es *EnrollmentService) touchTimestamps(enrollment *model.Enrollment,
	graph *journeymodel.Graph) []time.Time {

	touches := []time.Time{enrollment.EnrolledAt}
	for _, entry := range enrollment.History {
		node, ok := graph.Node(entry.NodeId)
		if ok && node.Type == constants.NodeTypeAction {
			touches = append(touches, entry.EnteredAt)
		}
	}
	return touches
}

// loadContext loads an enrollment with its journey and adjacency index.
// Unknown enrollments and journeys are logged and swallowed, per the
// push-feed contract.
func (es *EnrollmentService) loadContext(enrollmentId string) (*model.Enrollment,
	*journeymodel.Journey, *journeymodel.Graph) {

	logger := log.GetLogger()
	enrollment, err := store.GetEnrollment(enrollmentId)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load enrollment %s", enrollmentId), log.Error(err))
		return nil, nil, nil
	}
	if enrollment == nil {
		logger.Debug(fmt.Sprintf("Ignoring event for unknown enrollment %s", enrollmentId))
		return nil, nil, nil
	}

	journeyService := journeyprovider.NewJourneysProvider().GetJourneyService()
	journey, err := journeyService.GetJourney(enrollment.JourneyId)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load journey %s for enrollment %s",
			enrollment.JourneyId, enrollmentId), log.Error(err))
		return nil, nil, nil
	}
	return enrollment, journey, journeymodel.NewGraph(journey)
}

func rejection(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ENROLLMENT_REJECTED.Code,
		Message:     errors2.ENROLLMENT_REJECTED.Message,
		Description: description,
	}, http.StatusConflict)
}
