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

package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func Test_MembershipCache_GetPut(t *testing.T) {
	current := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	cache := NewMembershipCacheWithClock(5*time.Minute, func() time.Time { return current })

	assert.Nil(t, cache.Get("s1"), "miss before put")

	cache.Put("s1", []string{"c1", "c2"})
	assert.Equal(t, []string{"c1", "c2"}, cache.Get("s1"))
}

func Test_MembershipCache_TTLExpiry(t *testing.T) {
	current := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	cache := NewMembershipCacheWithClock(5*time.Minute, func() time.Time { return current })

	cache.Put("s1", []string{"c1"})

	current = current.Add(4 * time.Minute)
	assert.NotNil(t, cache.Get("s1"), "still fresh")

	current = current.Add(time.Minute)
	assert.Nil(t, cache.Get("s1"), "entry expires at exactly the TTL boundary")
	assert.Nil(t, cache.Get("s1"), "expired entry stays evicted")
}

func Test_MembershipCache_Invalidate(t *testing.T) {
	cache := NewMembershipCache(5 * time.Minute)

	cache.Put("s1", []string{"c1"})
	cache.Put("s2", []string{"c2"})

	cache.Invalidate("s1")
	assert.Nil(t, cache.Get("s1"))
	assert.NotNil(t, cache.Get("s2"))

	cache.InvalidateAll()
	assert.Nil(t, cache.Get("s2"))
}

func Test_MembershipCache_CopiesOnReadAndWrite(t *testing.T) {
	cache := NewMembershipCache(5 * time.Minute)

	members := []string{"c1", "c2"}
	cache.Put("s1", members)
	members[0] = "mutated"

	got := cache.Get("s1")
	assert.Equal(t, []string{"c1", "c2"}, got, "writes are defensive copies")

	got[1] = "mutated"
	assert.Equal(t, []string{"c1", "c2"}, cache.Get("s1"), "reads are defensive copies")
}
