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
	"sync"
	"time"

	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	conditionservice "github.com/reachline/journey-automation-service/internal/conditions/service"
	customermodel "github.com/reachline/journey-automation-service/internal/customers/model"
	customerprovider "github.com/reachline/journey-automation-service/internal/customers/provider"
	"github.com/reachline/journey-automation-service/internal/segments/cache"
	"github.com/reachline/journey-automation-service/internal/segments/model"
	"github.com/reachline/journey-automation-service/internal/segments/store"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

// evaluationParallelism bounds the fan-out of a full-base segment evaluation.
const evaluationParallelism = 8

// SegmentServiceInterface defines segment CRUD, evaluation and RFM scoring.
type SegmentServiceInterface interface {
	CreateSegment(segment model.Segment) (*model.Segment, error)
	GetSegment(segmentId string) (*model.Segment, error)
	ListSegments() ([]model.Segment, error)
	DeleteSegment(segmentId string) error
	EvaluateConditions(group conditionmodel.ConditionGroup, customers []customermodel.Customer) []string
	EvaluateSegment(segmentId string) ([]string, error)
	ScoreCustomer(customerId string) (*model.RFMScore, error)
}

// SegmentService is the default implementation of the SegmentServiceInterface.
type SegmentService struct {
	evaluator  conditionservice.ConditionEvaluatorInterface
	scorer     RFMScorerInterface
	membership *cache.MembershipCache
}

// GetSegmentService creates a segment service bound to the shared membership
// cache.
func GetSegmentService() SegmentServiceInterface {

	return &SegmentService{
		evaluator:  conditionservice.GetConditionEvaluator(),
		scorer:     GetRFMScorer(),
		membership: cache.GetSharedCache(),
	}
}

// GetSegmentServiceWithCache creates a segment service with an injected
// membership cache.
func GetSegmentServiceWithCache(membership *cache.MembershipCache) SegmentServiceInterface {

	return &SegmentService{
		evaluator:  conditionservice.GetConditionEvaluator(),
		scorer:     GetRFMScorer(),
		membership: membership,
	}
}

// CreateSegment validates and persists a segment definition. Validation
// failures never abort other segments; they are reported to the caller.
func (ss *SegmentService) CreateSegment(segment model.Segment) (*model.Segment, error) {

	if segment.SegmentId == "" || segment.Name == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: "Segment id and name are required.",
		}, http.StatusBadRequest)
	}
	if err := validateGroup(ss.evaluator, segment.Conditions); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if segment.CreatedAt.IsZero() {
		segment.CreatedAt = now
	}
	segment.UpdatedAt = now

	if err := store.AddSegment(segment); err != nil {
		return nil, err
	}

	ss.membership.Invalidate(segment.SegmentId)
	return &segment, nil
}

func (ss *SegmentService) GetSegment(segmentId string) (*model.Segment, error) {

	segment, err := store.GetSegment(segmentId)
	if err != nil {
		return nil, err
	}
	if segment == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.SEGMENT_NOT_FOUND.Code,
			Message:     errors2.SEGMENT_NOT_FOUND.Message,
			Description: fmt.Sprintf("Segment with id %s not found.", segmentId),
		}, http.StatusNotFound)
	}
	return segment, nil
}

func (ss *SegmentService) ListSegments() ([]model.Segment, error) {

	return store.ListSegments()
}

func (ss *SegmentService) DeleteSegment(segmentId string) error {

	if err := store.DeleteSegment(segmentId); err != nil {
		return err
	}
	ss.membership.Invalidate(segmentId)
	return nil
}

// EvaluateConditions matches a set of customers against a condition tree.
// Evaluation is read-only per customer, so the fan-out runs in parallel with
// each goroutine writing only its own slot.
func (ss *SegmentService) EvaluateConditions(group conditionmodel.ConditionGroup,
	customers []customermodel.Customer) []string {

	matched := make([]bool, len(customers))
	semaphore := make(chan struct{}, evaluationParallelism)
	var wg sync.WaitGroup

	for i := range customers {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			matched[idx] = ss.evaluator.EvaluateGroup(customers[idx].Snapshot(), group)
		}(i)
	}
	wg.Wait()

	memberIds := make([]string, 0, len(customers))
	for i, customer := range customers {
		if matched[i] {
			memberIds = append(memberIds, customer.CustomerId)
		}
	}
	return memberIds
}

// EvaluateSegment resolves the member ids of a stored segment, serving from
// the membership cache when fresh and recomputing over the full customer base
// otherwise.
func (ss *SegmentService) EvaluateSegment(segmentId string) ([]string, error) {

	if cached := ss.membership.Get(segmentId); cached != nil {
		return cached, nil
	}

	segment, err := ss.GetSegment(segmentId)
	if err != nil {
		return nil, err
	}

	customerService := customerprovider.NewCustomersProvider().GetCustomerService()
	customers, err := customerService.ListCustomers()
	if err != nil {
		return nil, err
	}

	memberIds := ss.EvaluateConditions(segment.Conditions, customers)
	ss.membership.Put(segmentId, memberIds)
	log.GetLogger().Debug(fmt.Sprintf("Evaluated segment %s: %d of %d customers matched",
		segmentId, len(memberIds), len(customers)))
	return memberIds, nil
}

// ScoreCustomer computes the RFM score of one customer from their order
// history.
func (ss *SegmentService) ScoreCustomer(customerId string) (*model.RFMScore, error) {

	customerService := customerprovider.NewCustomersProvider().GetCustomerService()
	customer, err := customerService.GetCustomer(customerId)
	if err != nil {
		return nil, err
	}
	orders, err := customerService.GetOrders(customerId)
	if err != nil {
		return nil, err
	}

	score := ss.scorer.Score(*customer, orders)
	return &score, nil
}

// validateGroup walks a condition tree and rejects conditions with unknown
// operators or missing fields before the segment can be stored.
func validateGroup(evaluator conditionservice.ConditionEvaluatorInterface,
	group conditionmodel.ConditionGroup) error {

	for _, condition := range group.Conditions {
		if err := evaluator.ValidateCondition(condition); err != nil {
			return err
		}
	}
	for _, nested := range group.NestedGroups {
		if err := validateGroup(evaluator, nested); err != nil {
			return err
		}
	}
	return nil
}
