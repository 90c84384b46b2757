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

package workers

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

// enrollmentTask is one unit of state-machine work bound to an enrollment id.
type enrollmentTask struct {
	enrollmentId string
	run          func()
}

var (
	workerMu         sync.RWMutex
	enrollmentQueues []chan enrollmentTask
	workerWg         sync.WaitGroup
)

// StartEnrollmentWorkers starts the sharded single-writer queues. Every task
// for a given enrollment id is hashed onto the same queue, so two events for
// one enrollment can never apply transitions concurrently; events for
// different enrollments proceed in parallel across shards.
func StartEnrollmentWorkers() {

	workerMu.Lock()
	defer workerMu.Unlock()
	if enrollmentQueues != nil {
		return
	}

	queues := make([]chan enrollmentTask, constants.EnrollmentWorkerShards)
	for i := range queues {
		queue := make(chan enrollmentTask, constants.DefaultQueueSize)
		queues[i] = queue

		workerWg.Add(1)
		go func(shard int, queue chan enrollmentTask) {
			defer workerWg.Done()
			for task := range queue {
				runTask(shard, task)
			}
		}(i, queue)
	}
	enrollmentQueues = queues
}

// StopEnrollmentWorkers detaches the queues, closes them and waits for
// in-flight tasks. The queues are detached under the write lock first, so a
// sender still holding the read lock finishes its send before the close.
func StopEnrollmentWorkers() {

	workerMu.Lock()
	queues := enrollmentQueues
	enrollmentQueues = nil
	workerMu.Unlock()

	for _, queue := range queues {
		close(queue)
	}
	workerWg.Wait()
}

// EnqueueEnrollmentTask submits work for an enrollment. Tasks submitted
// before StartEnrollmentWorkers or after StopEnrollmentWorkers run inline,
// which keeps unit tests synchronous and shutdown panic-free.
func EnqueueEnrollmentTask(enrollmentId string, run func()) {

	workerMu.RLock()
	queues := enrollmentQueues
	if queues == nil {
		workerMu.RUnlock()
		run()
		return
	}
	queues[shardFor(enrollmentId, len(queues))] <- enrollmentTask{enrollmentId: enrollmentId, run: run}
	workerMu.RUnlock()
}

// EnrollmentTaskQueue implements the task queue handed to services that need
// to defer work onto the worker shards.
type EnrollmentTaskQueue struct{}

func (q *EnrollmentTaskQueue) Enqueue(enrollmentId string, run func()) {
	EnqueueEnrollmentTask(enrollmentId, run)
}

func runTask(shard int, task enrollmentTask) {

	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().Error(fmt.Sprintf(
				"Enrollment worker %d recovered from panic while processing enrollment %s: %v",
				shard, task.enrollmentId, r))
		}
	}()
	task.run()
}

func shardFor(enrollmentId string, shards int) int {

	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(enrollmentId))
	return int(hasher.Sum32() % uint32(shards))
}
