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

package config

import "sync"

// JASRuntime holds the runtime configuration for the journey automation server.
type JASRuntime struct {
	ServiceHome string `yaml:"service_home"`
	Config      Config `yaml:"config"`
}

var (
	runtimeConfig *JASRuntime
	once          sync.Once
)

// InitializeJASRuntime initializes the JASRuntime configuration.
func InitializeJASRuntime(serviceHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &JASRuntime{
			ServiceHome: serviceHome,
			Config:      *config,
		}
	})

	return nil
}

// OverrideJASRuntime replaces the runtime configuration. Test setup uses
// this to point the service at containerized backing stores.
func OverrideJASRuntime(config Config) {

	runtimeConfig = &JASRuntime{
		Config: config,
	}
}

// GetJASRuntime returns the JASRuntime configuration.
func GetJASRuntime() *JASRuntime {

	if runtimeConfig == nil {
		panic("JASRuntime is not initialized")
	}
	return runtimeConfig
}
