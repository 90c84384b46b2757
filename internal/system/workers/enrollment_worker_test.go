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
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func Test_Enqueue_RunsInlineBeforeStart(t *testing.T) {
	ran := false
	EnqueueEnrollmentTask("enr-1", func() { ran = true })
	assert.True(t, ran, "tasks run inline until the workers start")
}

func Test_Enqueue_PreservesPerEnrollmentOrder(t *testing.T) {
	StartEnrollmentWorkers()

	// All tasks for one enrollment land on the same shard, so the slice
	// append needs no locking.
	var order []int
	for i := 0; i < 100; i++ {
		i := i
		EnqueueEnrollmentTask("enr-1", func() { order = append(order, i) })
	}
	StopEnrollmentWorkers()

	assert.Len(t, order, 100)
	for i, got := range order {
		assert.Equal(t, i, got, "tasks apply in submission order")
	}
}

func Test_Enqueue_ParallelEnrollmentsAllRun(t *testing.T) {
	StartEnrollmentWorkers()

	var mu sync.Mutex
	seen := make(map[string]int)
	for i := 0; i < 50; i++ {
		id := string(rune('a' + i%10))
		EnqueueEnrollmentTask(id, func() {
			mu.Lock()
			seen[id]++
			mu.Unlock()
		})
	}
	StopEnrollmentWorkers()

	total := 0
	for _, count := range seen {
		total += count
	}
	assert.Equal(t, 50, total)
}

func Test_Enqueue_AfterStopRunsInline(t *testing.T) {
	StartEnrollmentWorkers()
	StopEnrollmentWorkers()

	ran := false
	EnqueueEnrollmentTask("enr-1", func() { ran = true })
	assert.True(t, ran, "tasks fall back to inline execution after shutdown")
}

func Test_Enqueue_DuringShutdownNeverPanics(t *testing.T) {
	StartEnrollmentWorkers()

	var done sync.WaitGroup
	var executed sync.WaitGroup
	for i := 0; i < 8; i++ {
		done.Add(1)
		go func(n int) {
			defer done.Done()
			for j := 0; j < 200; j++ {
				executed.Add(1)
				EnqueueEnrollmentTask(string(rune('a'+n)), func() { executed.Done() })
			}
		}(i)
	}

	// Shut down while producers are still submitting; late tasks run inline.
	StopEnrollmentWorkers()
	done.Wait()
	executed.Wait()
}

func Test_Worker_RecoversFromPanic(t *testing.T) {
	StartEnrollmentWorkers()

	ran := false
	EnqueueEnrollmentTask("enr-1", func() { panic("boom") })
	EnqueueEnrollmentTask("enr-1", func() { ran = true })
	StopEnrollmentWorkers()

	assert.True(t, ran, "a panicking task never takes down its shard")
}
