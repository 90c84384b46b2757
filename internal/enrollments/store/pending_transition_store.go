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
	"time"

	"github.com/reachline/journey-automation-service/internal/enrollments/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	sysmongo "github.com/reachline/journey-automation-service/internal/system/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func pendingTransitions() *mongo.Collection {
	return sysmongo.GetInstance().Collection(constants.PendingTransitionCollection)
}

// InsertPendingTransition persists a suspension point so delay and wait
// timers survive process restarts.
func InsertPendingTransition(transition model.PendingTransition) error {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := pendingTransitions().InsertOne(ctx, transition); err != nil {
		return storageError(errors2.ADD_PENDING_TRANSITION,
			fmt.Sprintf("Failed to persist pending transition for enrollment: %s", transition.EnrollmentId), err)
	}
	return nil
}

// GetDueTransitions fetches every pending transition whose due time has
// passed.
func GetDueTransitions(now time.Time) ([]model.PendingTransition, error) {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	cursor, err := pendingTransitions().Find(ctx, bson.M{"due_at": bson.M{"$lte": now}})
	if err != nil {
		return nil, storageError(errors2.FETCH_PENDING_TRANSITIONS,
			"Failed to fetch due pending transitions.", err)
	}
	defer cursor.Close(ctx)

	var results []model.PendingTransition
	if err := cursor.All(ctx, &results); err != nil {
		return nil, storageError(errors2.FETCH_PENDING_TRANSITIONS,
			"Failed to decode due pending transitions.", err)
	}
	return results, nil
}

// DeletePendingTransition removes one pending transition after it has been
// resumed or found stale.
func DeletePendingTransition(transitionId string) error {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := pendingTransitions().DeleteOne(ctx, bson.M{"transition_id": transitionId}); err != nil {
		return storageError(errors2.FETCH_PENDING_TRANSITIONS,
			fmt.Sprintf("Failed to delete pending transition: %s", transitionId), err)
	}
	return nil
}

// DeleteTransitionsForNode cancels pending timers for an enrollment's node.
// A qualifying event that advances the node calls this so the armed timeout
// cannot fire later.
func DeleteTransitionsForNode(enrollmentId, nodeId string) error {

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	filter := bson.M{"enrollment_id": enrollmentId, "node_id": nodeId}
	if _, err := pendingTransitions().DeleteMany(ctx, filter); err != nil {
		return storageError(errors2.FETCH_PENDING_TRANSITIONS,
			fmt.Sprintf("Failed to delete pending transitions for enrollment %s node %s", enrollmentId, nodeId), err)
	}
	return nil
}
