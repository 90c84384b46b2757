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

package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/reachline/journey-automation-service/internal/enrollments/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
	sysmongo "github.com/reachline/journey-automation-service/internal/system/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const storeTimeout = 10 * time.Second

func storageError(base errors2.ErrorMessage, description string, cause error) error {
	log.GetLogger().Debug(description, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        base.Code,
		Message:     base.Message,
		Description: description,
	}, cause)
}

func enrollments() *mongo.Collection {
	return sysmongo.GetInstance().Collection(constants.EnrollmentCollection)
}

// EnsureIndexes creates the enrollment collection's indexes. The partial
// unique index over ACTIVE documents makes one ACTIVE enrollment per
// customer and journey a storage invariant, so two concurrent enrolls that
// both pass the entry-frequency read cannot both insert.
func EnsureIndexes() error {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	_, err := enrollments().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "journey_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": constants.EnrollmentActive}),
	})
	if err != nil {
		return storageError(errors2.ADD_ENROLLMENT, "Failed to create enrollment indexes.", err)
	}
	return nil
}

// InsertEnrollment stores a freshly created enrollment document. A unique
// index violation means another writer enrolled the customer first and maps
// to the same rejection the entry-frequency check produces.
func InsertEnrollment(enrollment model.Enrollment) error {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := enrollments().InsertOne(ctx, enrollment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:    errors2.ENROLLMENT_REJECTED.Code,
				Message: errors2.ENROLLMENT_REJECTED.Message,
				Description: fmt.Sprintf(
					"Customer %s already has an active enrollment in journey %s.",
					enrollment.CustomerId, enrollment.JourneyId),
			}, http.StatusConflict)
		}
		return storageError(errors2.ADD_ENROLLMENT,
			fmt.Sprintf("Failed to persist enrollment with id: %s", enrollment.EnrollmentId), err)
	}
	return nil
}

// GetEnrollment fetches one enrollment, or nil when absent.
func GetEnrollment(enrollmentId string) (*model.Enrollment, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var enrollment model.Enrollment
	err := enrollments().FindOne(ctx, bson.M{"enrollment_id": enrollmentId}).Decode(&enrollment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS,
			fmt.Sprintf("Failed to fetch enrollment with id: %s", enrollmentId), err)
	}
	return &enrollment, nil
}

// GetEnrollmentsByCustomerAndJourney fetches every enrollment of one
// customer in one journey, newest first. Entry-frequency checks read these.
func GetEnrollmentsByCustomerAndJourney(customerId, journeyId string) ([]model.Enrollment, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	filter := bson.M{"customer_id": customerId, "journey_id": journeyId}
	opts := options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}})
	cursor, err := enrollments().Find(ctx, filter, opts)
	if err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS,
			fmt.Sprintf("Failed to fetch enrollments of customer %s in journey %s", customerId, journeyId), err)
	}
	defer cursor.Close(ctx)

	var results []model.Enrollment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS,
			fmt.Sprintf("Failed to decode enrollments of customer %s in journey %s", customerId, journeyId), err)
	}
	return results, nil
}

// GetActiveEnrollmentsByCustomer fetches a customer's ACTIVE enrollments
// across all journeys. The conversion feed fans a conversion event out over
// these.
func GetActiveEnrollmentsByCustomer(customerId string) ([]model.Enrollment, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	filter := bson.M{"customer_id": customerId, "status": constants.EnrollmentActive}
	cursor, err := enrollments().Find(ctx, filter)
	if err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS,
			fmt.Sprintf("Failed to fetch active enrollments of customer: %s", customerId), err)
	}
	defer cursor.Close(ctx)

	var results []model.Enrollment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS,
			fmt.Sprintf("Failed to decode active enrollments of customer: %s", customerId), err)
	}
	return results, nil
}

// ListEnrollments fetches enrollments filtered by journey and/or customer.
func ListEnrollments(journeyId, customerId string) ([]model.Enrollment, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	filter := bson.M{}
	if journeyId != "" {
		filter["journey_id"] = journeyId
	}
	if customerId != "" {
		filter["customer_id"] = customerId
	}

	opts := options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}})
	cursor, err := enrollments().Find(ctx, filter, opts)
	if err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS, "Failed to fetch enrollments.", err)
	}
	defer cursor.Close(ctx)

	var results []model.Enrollment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, storageError(errors2.FETCH_ENROLLMENTS, "Failed to decode enrollments.", err)
	}
	return results, nil
}

// ApplyTransition atomically moves an ACTIVE enrollment off fromNodeId:
// stamps the open history entry's exited_at, appends a history entry for
// toNodeId (when the enrollment stays active), updates current_node_id and
// status, and records the idempotency key. The filter requires the
// enrollment to still sit on fromNodeId without having processed the key, so
// a concurrent or replayed event loses cleanly: the update matches nothing
// and the caller treats it as a no-op.
func ApplyTransition(enrollmentId, fromNodeId, toNodeId, newStatus, idempotencyKey string,
	action *model.EnrollmentAction) (bool, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{
		"enrollment_id":   enrollmentId,
		"status":          constants.EnrollmentActive,
		"current_node_id": fromNodeId,
		"processed_keys":  bson.M{"$ne": idempotencyKey},
	}

	set := bson.M{
		"status":                    newStatus,
		"updated_at":                now,
		"history.$[open].exited_at": now,
	}
	push := bson.M{
		"processed_keys": idempotencyKey,
	}
	if newStatus == constants.EnrollmentActive {
		set["current_node_id"] = toNodeId
		push["history"] = model.HistoryEntry{NodeId: toNodeId, EnteredAt: now}
	}
	if action != nil {
		push["actions"] = *action
	}

	update := bson.M{"$set": set, "$push": push}
	opts := options.FindOneAndUpdate().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"open.node_id":   fromNodeId,
			"open.exited_at": bson.M{"$exists": false},
		}},
	})

	err := enrollments().FindOneAndUpdate(ctx, filter, update, opts).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, storageError(errors2.UPDATE_ENROLLMENT,
			fmt.Sprintf("Failed to apply transition %s for enrollment: %s", idempotencyKey, enrollmentId), err)
	}
	return true, nil
}

// AppendAction appends a side-effect record without moving the enrollment.
func AppendAction(enrollmentId string, action model.EnrollmentAction) error {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"actions": action},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if _, err := enrollments().UpdateOne(ctx, bson.M{"enrollment_id": enrollmentId}, update); err != nil {
		return storageError(errors2.UPDATE_ENROLLMENT,
			fmt.Sprintf("Failed to append action to enrollment: %s", enrollmentId), err)
	}
	return nil
}

// AppendConversion records a counted goal conversion exactly once per event.
func AppendConversion(enrollmentId string, conversion model.AttributedConversion,
	idempotencyKey string) (bool, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	filter := bson.M{
		"enrollment_id":  enrollmentId,
		"processed_keys": bson.M{"$ne": idempotencyKey},
	}
	update := bson.M{
		"$push": bson.M{
			"conversions":    conversion,
			"processed_keys": idempotencyKey,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	err := enrollments().FindOneAndUpdate(ctx, filter, update).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, storageError(errors2.UPDATE_ENROLLMENT,
			fmt.Sprintf("Failed to record conversion for enrollment: %s", enrollmentId), err)
	}
	return true, nil
}
