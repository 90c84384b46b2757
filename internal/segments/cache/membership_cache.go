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
	"sync"
	"time"

	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

type entry struct {
	memberIds []string
	cachedAt  time.Time
	expiresAt time.Time
}

// MembershipCache is a time-bounded cache of segment membership. It is an
// explicitly owned, constructor-injected component: callers hold their own
// instance, and the clock is injectable so tests can drive TTL expiry
// without wall-clock sleeps.
//
// Any customer create/update/delete must call InvalidateAll. The cache does
// not track segment-to-customer dependencies, so invalidating everything is
// the only always-safe response to a customer mutation. That is a documented
// performance limitation, not a correctness bug.
type MembershipCache struct {
	entries    map[string]entry
	mutex      sync.Mutex
	defaultTTL time.Duration
	now        func() time.Time
}

// NewMembershipCache creates a cache with the given default TTL.
func NewMembershipCache(defaultTTL time.Duration) *MembershipCache {
	return NewMembershipCacheWithClock(defaultTTL, time.Now)
}

// NewMembershipCacheWithClock creates a cache that reads time through the
// given clock.
func NewMembershipCacheWithClock(defaultTTL time.Duration, now func() time.Time) *MembershipCache {
	if defaultTTL <= 0 {
		defaultTTL = constants.DefaultSegmentCacheTTL
	}
	return &MembershipCache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// Get returns the cached member ids for a segment, or nil when the entry is
// absent or has expired. Expired entries are evicted on read.
func (mc *MembershipCache) Get(segmentId string) []string {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	cached, found := mc.entries[segmentId]
	if !found {
		return nil
	}
	if !mc.now().Before(cached.expiresAt) {
		delete(mc.entries, segmentId)
		return nil
	}

	members := make([]string, len(cached.memberIds))
	copy(members, cached.memberIds)
	return members
}

// Put stores the member list of a segment with the default TTL.
func (mc *MembershipCache) Put(segmentId string, memberIds []string) {
	mc.PutWithTTL(segmentId, memberIds, mc.defaultTTL)
}

// PutWithTTL stores the member list of a segment with an explicit TTL.
// Writes serialize on the cache mutex, one segment entry at a time.
func (mc *MembershipCache) PutWithTTL(segmentId string, memberIds []string, ttl time.Duration) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	members := make([]string, len(memberIds))
	copy(members, memberIds)

	now := mc.now()
	mc.entries[segmentId] = entry{
		memberIds: members,
		cachedAt:  now,
		expiresAt: now.Add(ttl),
	}
}

// Invalidate evicts one segment's entry.
func (mc *MembershipCache) Invalidate(segmentId string) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	delete(mc.entries, segmentId)
}

// InvalidateAll evicts every entry.
func (mc *MembershipCache) InvalidateAll() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if len(mc.entries) > 0 {
		log.GetLogger().Debug("Invalidating all cached segment memberships")
	}
	mc.entries = make(map[string]entry)
}

var (
	sharedCache *MembershipCache
	sharedOnce  sync.Once
)

// GetSharedCache returns the process-wide membership cache used by the HTTP
// surface. Tests construct their own instances instead.
func GetSharedCache() *MembershipCache {
	sharedOnce.Do(func() {
		sharedCache = NewMembershipCache(constants.DefaultSegmentCacheTTL)
	})
	return sharedCache
}
