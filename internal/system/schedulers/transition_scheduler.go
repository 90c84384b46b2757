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

package schedulers

import (
	"time"

	"github.com/reachline/journey-automation-service/internal/enrollments/provider"
	"github.com/reachline/journey-automation-service/internal/enrollments/store"
	"github.com/reachline/journey-automation-service/internal/system/log"
	"github.com/reachline/journey-automation-service/internal/system/workers"
)

// StartTransitionScheduler starts the periodic poll for due delay and wait
// transitions. Due transitions are handed to the owning enrollment's worker
// shard, so a timer and a concurrent delivery event for the same enrollment
// never race.
func StartTransitionScheduler(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	resumeDueTransitions()

	for {
		select {
		case <-ticker.C:
			resumeDueTransitions()
		case <-stop:
			return
		}
	}
}

// resumeDueTransitions fetches every pending transition whose due time has
// passed and enqueues its resumption.
func resumeDueTransitions() {
	logger := log.GetLogger()

	due, err := store.GetDueTransitions(time.Now().UTC())
	if err != nil {
		logger.Error("Failed to fetch due pending transitions", log.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	enrollmentService := provider.NewEnrollmentsProvider().GetEnrollmentService()
	for _, transition := range due {
		t := transition
		workers.EnqueueEnrollmentTask(t.EnrollmentId, func() {
			enrollmentService.ResumePendingTransition(t)
		})
	}
}
