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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cache_SetGet(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("k1")
	assert.False(t, found)

	c.Set("k1", "v1")
	value, found := c.Get("k1")
	require.True(t, found)
	assert.Equal(t, "v1", value)
}

func Test_Cache_Expiry(t *testing.T) {
	current := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	c := NewCacheWithClock(time.Minute, func() time.Time { return current })

	c.Set("k1", "v1")
	c.SetWithTTL("k2", "v2", time.Hour)

	current = current.Add(time.Minute)
	_, found := c.Get("k1")
	assert.False(t, found, "entry expires at exactly its TTL")

	_, found = c.Get("k2")
	assert.True(t, found, "per-entry TTL overrides the default")
}

func Test_Cache_DeleteAndClear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("k1", "v1")
	c.Set("k2", "v2")

	c.Delete("k1")
	_, found := c.Get("k1")
	assert.False(t, found)

	c.Clear()
	_, found = c.Get("k2")
	assert.False(t, found)
}
