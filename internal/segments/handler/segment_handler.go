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

package handler

import (
	"encoding/json"
	"net/http"

	customerprovider "github.com/reachline/journey-automation-service/internal/customers/provider"
	"github.com/reachline/journey-automation-service/internal/segments/model"
	"github.com/reachline/journey-automation-service/internal/segments/provider"
	"github.com/reachline/journey-automation-service/internal/system/authn"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/utils"
)

type SegmentHandler struct{}

func NewSegmentHandler() *SegmentHandler {

	return &SegmentHandler{}
}

// CreateSegment validates and stores a segment definition.
func (sh *SegmentHandler) CreateSegment(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var segment model.Segment
	if err := json.NewDecoder(r.Body).Decode(&segment); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "segment"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	created, err := segmentService.CreateSegment(segment)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetSegments lists all segment definitions.
func (sh *SegmentHandler) GetSegments(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	segments, err := segmentService.ListSegments()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, segments)
}

// GetSegment fetches one segment definition by id.
func (sh *SegmentHandler) GetSegment(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	segmentId := r.PathValue("segmentId")
	if segmentId == "" {
		http.Error(w, "Missing segmentId parameter", http.StatusBadRequest)
		return
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	segment, err := segmentService.GetSegment(segmentId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, segment)
}

// DeleteSegment removes a segment definition and evicts its cached members.
func (sh *SegmentHandler) DeleteSegment(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	segmentId := r.PathValue("segmentId")
	if segmentId == "" {
		http.Error(w, "Missing segmentId parameter", http.StatusBadRequest)
		return
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	if err := segmentService.DeleteSegment(segmentId); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSegmentMembers resolves the member ids of a stored segment, serving
// from the membership cache when fresh.
func (sh *SegmentHandler) GetSegmentMembers(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	segmentId := r.PathValue("segmentId")
	if segmentId == "" {
		http.Error(w, "Missing segmentId parameter", http.StatusBadRequest)
		return
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	memberIds, err := segmentService.EvaluateSegment(segmentId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, model.EvaluationResult{
		CustomerIds: memberIds,
		Matched:     len(memberIds),
	})
}

// EvaluateSegment matches an ad-hoc condition tree against a customer scope.
func (sh *SegmentHandler) EvaluateSegment(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST_FORMAT.Code,
			Message:     errors2.INVALID_REQUEST_FORMAT.Message,
			Description: utils.HandleDecodeError(err, "segment evaluation"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	customerService := customerprovider.NewCustomersProvider().GetCustomerService()
	customers, err := customerService.ListCustomers()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if len(request.CustomerIds) > 0 {
		scope := make(map[string]bool, len(request.CustomerIds))
		for _, id := range request.CustomerIds {
			scope[id] = true
		}
		filtered := customers[:0]
		for _, customer := range customers {
			if scope[customer.CustomerId] {
				filtered = append(filtered, customer)
			}
		}
		customers = filtered
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	memberIds := segmentService.EvaluateConditions(request.Conditions, customers)

	utils.WriteJSONResponse(w, http.StatusOK, model.EvaluationResult{
		CustomerIds: memberIds,
		Total:       len(customers),
		Matched:     len(memberIds),
	})
}

// GetRFM computes the RFM score of one customer.
func (sh *SegmentHandler) GetRFM(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.ValidateAuthenticationAndReturnClaims(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	customerId := r.PathValue("customerId")
	if customerId == "" {
		http.Error(w, "Missing customerId parameter", http.StatusBadRequest)
		return
	}

	segmentService := provider.NewSegmentsProvider().GetSegmentService()
	score, err := segmentService.ScoreCustomer(customerId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, score)
}
