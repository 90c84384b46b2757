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

package service

import (
	"time"

	journeymodel "github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

// Resolution kinds produced by the exit path resolver.
const (
	ResolveNone     = "none"
	ResolveContinue = "continue"
	ResolveBranch   = "branch"
	ResolveExit     = "exit"
	ResolveWait     = "wait"
)

// Resolution is the outcome of mapping a delivery/interaction event onto an
// action node's exit path configuration. Kind "none" means the enrollment
// stays suspended on the node awaiting another event or its timeout.
type Resolution struct {
	Kind              string
	BranchId          string
	WaitDuration      time.Duration
	TimeoutPath       string
	TrackingEventName string
}

// ResolveExitPath looks up the path for a delivery event. Button clicks are
// matched by button id first and fall back to no transition when the button
// has no configured path. A disabled path also resolves to no transition.
func ResolveExitPath(config journeymodel.ExitPathsConfig, eventType, buttonId string) Resolution {

	var path journeymodel.ExitPath
	var found bool

	if eventType == constants.DeliveryButtonClicked {
		path, found = config.ButtonPaths[buttonId]
	} else {
		path, found = config.Paths[eventType]
	}
	if !found || !path.Enabled {
		return Resolution{Kind: ResolveNone}
	}

	resolution := Resolution{TrackingEventName: path.TrackingEventName}
	switch path.Action.Type {
	case constants.ExitActionContinue:
		resolution.Kind = ResolveContinue
	case constants.ExitActionBranch:
		resolution.Kind = ResolveBranch
		resolution.BranchId = path.Action.BranchId
	case constants.ExitActionExit:
		resolution.Kind = ResolveExit
	case constants.ExitActionWait:
		resolution.Kind = ResolveWait
		resolution.WaitDuration = time.Duration(path.Action.WaitDurationMinutes) * time.Minute
		resolution.TimeoutPath = path.Action.TimeoutPath
	default:
		resolution.Kind = ResolveNone
	}
	return resolution
}
