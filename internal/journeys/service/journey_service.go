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
	"github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/journeys/store"
	"github.com/reachline/journey-automation-service/internal/system/cache"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
	triggerservice "github.com/reachline/journey-automation-service/internal/triggers/service"
)

// definitionCache keeps recently fetched journey definitions off the database
// for the enrollment hot path, which re-reads the definition on every node
// transition. Every mutation of a journey evicts its entry, so a process
// never serves its own stale write.
var definitionCache = cache.NewCache(time.Minute)

// JourneyServiceInterface owns journey definitions: CRUD, the activation
// validation gate and per-node metrics.
type JourneyServiceInterface interface {
	CreateJourney(journey model.Journey) (*model.Journey, error)
	GetJourney(journeyId string) (*model.Journey, error)
	ListJourneys(status string) ([]model.Journey, error)
	UpdateJourney(journey model.Journey) (*model.Journey, error)
	DeleteJourney(journeyId string) error
	ActivateJourney(journeyId string) error
	PauseJourney(journeyId string) error
	ValidateJourney(journey model.Journey) error
	RecordNodeMetric(journeyId, nodeId, counter string)
}

// JourneyService is the default implementation of the JourneyServiceInterface.
type JourneyService struct {
	matcher triggerservice.TriggerMatcherInterface
}

// GetJourneyService creates a new instance of JourneyService.
func GetJourneyService() JourneyServiceInterface {

	return &JourneyService{matcher: triggerservice.GetTriggerMatcher()}
}

// CreateJourney stores a new journey in DRAFT status. Only activation runs
// the full validation gate, so drafts may be saved half-built.
func (js *JourneyService) CreateJourney(journey model.Journey) (*model.Journey, error) {

	if journey.Name == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: "Journey name is required.",
		}, http.StatusBadRequest)
	}

	if journey.JourneyId == "" {
		journey.JourneyId = uuid.New().String()
	}
	journey.Status = model.JourneyDraft
	now := time.Now().UTC()
	journey.CreatedAt = now
	journey.UpdatedAt = now

	if err := store.AddJourney(journey); err != nil {
		return nil, err
	}
	return &journey, nil
}

func (js *JourneyService) GetJourney(journeyId string) (*model.Journey, error) {

	if cached, found := definitionCache.Get(journeyId); found {
		journey := cached.(model.Journey)
		return &journey, nil
	}

	journey, err := store.GetJourney(journeyId)
	if err != nil {
		return nil, err
	}
	if journey == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.JOURNEY_NOT_FOUND.Code,
			Message:     errors2.JOURNEY_NOT_FOUND.Message,
			Description: fmt.Sprintf("Journey with id %s not found.", journeyId),
		}, http.StatusNotFound)
	}

	definitionCache.Set(journeyId, *journey)
	return journey, nil
}

func (js *JourneyService) ListJourneys(status string) ([]model.Journey, error) {

	return store.ListJourneys(status)
}

// UpdateJourney replaces a journey definition, keeping its current status
// and creation time.
func (js *JourneyService) UpdateJourney(journey model.Journey) (*model.Journey, error) {

	existing, err := js.GetJourney(journey.JourneyId)
	if err != nil {
		return nil, err
	}

	journey.Status = existing.Status
	journey.CreatedAt = existing.CreatedAt
	journey.UpdatedAt = time.Now().UTC()

	if err := store.AddJourney(journey); err != nil {
		return nil, err
	}
	definitionCache.Delete(journey.JourneyId)
	return &journey, nil
}

func (js *JourneyService) DeleteJourney(journeyId string) error {

	if err := store.DeleteJourney(journeyId); err != nil {
		return err
	}
	definitionCache.Delete(journeyId)
	return nil
}

// ActivateJourney runs the validation gate and flips the journey to ACTIVE.
// Invalid journeys never activate; the caller gets the first problem found.
func (js *JourneyService) ActivateJourney(journeyId string) error {

	journey, err := js.GetJourney(journeyId)
	if err != nil {
		return err
	}
	if err := js.ValidateJourney(*journey); err != nil {
		return err
	}

	log.GetLogger().Info(fmt.Sprintf("Activating journey: %s", journeyId),
		log.String("journey_id", journeyId))
	if err := store.UpdateJourneyStatus(journeyId, model.JourneyActive); err != nil {
		return err
	}
	definitionCache.Delete(journeyId)
	return nil
}

// PauseJourney flips an active journey to PAUSED. Existing enrollments keep
// advancing; only new entries stop.
func (js *JourneyService) PauseJourney(journeyId string) error {

	if _, err := js.GetJourney(journeyId); err != nil {
		return err
	}
	if err := store.UpdateJourneyStatus(journeyId, model.JourneyPaused); err != nil {
		return err
	}
	definitionCache.Delete(journeyId)
	return nil
}

// ValidateJourney checks the trigger rules, the node graph and every node
// config. A failure reports the first problem and leaves the journey
// untouched; it never aborts validation of other journeys.
func (js *JourneyService) ValidateJourney(journey model.Journey) error {

	if err := js.matcher.ValidateTargetSegment(journey.Trigger); err != nil {
		return err
	}

	if len(journey.Nodes) == 0 {
		return graphError("A journey must have at least one node.")
	}

	graph := model.NewGraph(&journey)
	if graph.EntryNodeId() == "" {
		return graphError("A journey must have a trigger node.")
	}

	nodeIds := make(map[string]bool, len(journey.Nodes))
	for _, node := range journey.Nodes {
		if node.NodeId == "" {
			return graphError("Every node must carry a non-empty id.")
		}
		if nodeIds[node.NodeId] {
			return graphError(fmt.Sprintf("Duplicate node id: %s", node.NodeId))
		}
		nodeIds[node.NodeId] = true
		if !constants.AllowedNodeTypes[node.Type] {
			return graphError(fmt.Sprintf("Node %s has unsupported type '%s'.", node.NodeId, node.Type))
		}
	}
	for _, edge := range journey.Edges {
		if !nodeIds[edge.From] || !nodeIds[edge.To] {
			return graphError(fmt.Sprintf("Edge %s -> %s references an unknown node.", edge.From, edge.To))
		}
	}

	if nodeId := findInstantCycle(graph, journey); nodeId != "" {
		return graphError(fmt.Sprintf(
			"Node %s sits on a cycle with no delay, action, goal or exit node.", nodeId))
	}

	for _, node := range journey.Nodes {
		if err := validateNode(graph, node); err != nil {
			return err
		}
	}
	return nil
}

// findInstantCycle reports a node on a cycle made only of trigger and
// condition nodes. Those hops apply immediately, so a cycle without a
// suspension point (delay, action, goal) or an exit would keep an enrollment
// hopping forever.
func findInstantCycle(graph *model.Graph, journey model.Journey) string {

	instant := make(map[string]bool, len(journey.Nodes))
	for _, node := range journey.Nodes {
		if node.Type == constants.NodeTypeTrigger || node.Type == constants.NodeTypeCondition {
			instant[node.NodeId] = true
		}
	}

	const (
		unvisited = iota
		visiting
		finished
	)
	state := make(map[string]int, len(instant))

	var visit func(nodeId string) string
	visit = func(nodeId string) string {
		state[nodeId] = visiting
		for _, edge := range graph.Outgoing(nodeId) {
			if !instant[edge.To] {
				continue
			}
			switch state[edge.To] {
			case visiting:
				return edge.To
			case unvisited:
				if onCycle := visit(edge.To); onCycle != "" {
					return onCycle
				}
			}
		}
		state[nodeId] = finished
		return ""
	}

	for _, node := range journey.Nodes {
		if instant[node.NodeId] && state[node.NodeId] == unvisited {
			if onCycle := visit(node.NodeId); onCycle != "" {
				return onCycle
			}
		}
	}
	return ""
}

// RecordNodeMetric bumps a per-node transition counter. Metric failures are
// logged and swallowed; counters never block a transition.
func (js *JourneyService) RecordNodeMetric(journeyId, nodeId, counter string) {

	if err := store.IncrementNodeMetric(journeyId, nodeId, counter); err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Failed to record %s metric for node %s of journey %s",
			counter, nodeId, journeyId), log.Error(err))
	}
}

func validateNode(graph *model.Graph, node model.Node) error {

	switch node.Type {
	case constants.NodeTypeDelay:
		if node.Delay == nil || node.Delay.DurationMinutes <= 0 {
			return graphError(fmt.Sprintf("Delay node %s must carry a positive duration.", node.NodeId))
		}

	case constants.NodeTypeCondition:
		if _, ok := graph.NextByLabel(node.NodeId, constants.BranchTrue); !ok {
			return graphError(fmt.Sprintf("Condition node %s has no 'true' edge.", node.NodeId))
		}
		if _, ok := graph.NextByLabel(node.NodeId, constants.BranchFalse); !ok {
			return graphError(fmt.Sprintf("Condition node %s has no 'false' edge.", node.NodeId))
		}

	case constants.NodeTypeAction:
		if node.Action == nil {
			return graphError(fmt.Sprintf("Action node %s has no action configuration.", node.NodeId))
		}
		if err := validateExitPaths(graph, node.NodeId, node.Action.ExitPaths); err != nil {
			return err
		}

	case constants.NodeTypeGoal:
		if node.Goal == nil {
			return goalError(fmt.Sprintf("Goal node %s has no goal configuration.", node.NodeId))
		}
		if node.Goal.EventName == "" {
			return goalError(fmt.Sprintf("Goal node %s must name its conversion event.", node.NodeId))
		}
		if node.Goal.AttributionWindow.Value <= 0 {
			return goalError(fmt.Sprintf("Goal node %s must carry a positive attribution window.", node.NodeId))
		}
		if !constants.AllowedWindowUnits[node.Goal.AttributionWindow.Unit] {
			return goalError(fmt.Sprintf("Goal node %s has unsupported window unit '%s'.",
				node.NodeId, node.Goal.AttributionWindow.Unit))
		}
		if !constants.AllowedAttributionModels[node.Goal.AttributionModel] {
			return goalError(fmt.Sprintf("Goal node %s has unsupported attribution model '%s'.",
				node.NodeId, node.Goal.AttributionModel))
		}
	}
	return nil
}

func validateExitPaths(graph *model.Graph, nodeId string, config model.ExitPathsConfig) error {

	check := func(eventType string, path model.ExitPath) error {
		if !path.Enabled {
			return nil
		}
		if !constants.AllowedExitPathActions[path.Action.Type] {
			return exitPathError(fmt.Sprintf(
				"Exit path '%s' of node %s has unsupported action '%s'.", eventType, nodeId, path.Action.Type))
		}
		switch path.Action.Type {
		case constants.ExitActionBranch:
			if path.Action.BranchId == "" {
				return exitPathError(fmt.Sprintf(
					"Branch exit path '%s' of node %s must carry a non-empty branch id.", eventType, nodeId))
			}
			if _, ok := graph.NextByLabel(nodeId, path.Action.BranchId); !ok {
				return exitPathError(fmt.Sprintf(
					"Branch exit path '%s' of node %s references missing edge label '%s'.",
					eventType, nodeId, path.Action.BranchId))
			}
		case constants.ExitActionWait:
			if path.Action.WaitDurationMinutes <= 0 {
				return exitPathError(fmt.Sprintf(
					"Wait exit path '%s' of node %s must carry a positive wait duration.", eventType, nodeId))
			}
		}
		return nil
	}

	for eventType, path := range config.Paths {
		if !constants.AllowedDeliveryEventTypes[eventType] {
			return exitPathError(fmt.Sprintf(
				"Node %s configures unsupported delivery event type '%s'.", nodeId, eventType))
		}
		if err := check(eventType, path); err != nil {
			return err
		}
	}
	for buttonId, path := range config.ButtonPaths {
		if err := check("button:"+buttonId, path); err != nil {
			return err
		}
	}
	return nil
}

func graphError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_JOURNEY_GRAPH.Code,
		Message:     errors2.INVALID_JOURNEY_GRAPH.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func goalError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_GOAL_CONFIG.Code,
		Message:     errors2.INVALID_GOAL_CONFIG.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func exitPathError(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_EXIT_PATH.Code,
		Message:     errors2.INVALID_EXIT_PATH.Message,
		Description: description,
	}, http.StatusBadRequest)
}
