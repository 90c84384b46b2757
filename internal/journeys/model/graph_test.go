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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

func branchingJourney() Journey {
	return Journey{
		JourneyId: "j1",
		Nodes: []Node{
			{NodeId: "t1", Type: constants.NodeTypeTrigger},
			{NodeId: "c1", Type: constants.NodeTypeCondition},
			{NodeId: "a1", Type: constants.NodeTypeAction},
			{NodeId: "x1", Type: constants.NodeTypeExit},
		},
		Edges: []Edge{
			{From: "t1", To: "c1"},
			{From: "c1", To: "a1", Label: constants.BranchTrue},
			{From: "c1", To: "x1", Label: constants.BranchFalse},
			{From: "a1", To: "x1"},
		},
	}
}

func Test_NewGraph_Entry(t *testing.T) {
	journey := branchingJourney()
	graph := NewGraph(&journey)
	assert.Equal(t, "t1", graph.EntryNodeId())

	// The first trigger node wins when several exist.
	journey.Nodes = append([]Node{{NodeId: "t0", Type: constants.NodeTypeTrigger}}, journey.Nodes...)
	assert.Equal(t, "t0", NewGraph(&journey).EntryNodeId())

	noTrigger := Journey{Nodes: []Node{{NodeId: "a1", Type: constants.NodeTypeAction}}}
	assert.Empty(t, NewGraph(&noTrigger).EntryNodeId())
}

func Test_Graph_Node(t *testing.T) {
	journey := branchingJourney()
	graph := NewGraph(&journey)

	node, ok := graph.Node("c1")
	require.True(t, ok)
	assert.Equal(t, constants.NodeTypeCondition, node.Type)

	_, ok = graph.Node("missing")
	assert.False(t, ok)
}

func Test_Graph_DefaultNext(t *testing.T) {
	journey := branchingJourney()
	graph := NewGraph(&journey)

	next, ok := graph.DefaultNext("t1")
	require.True(t, ok)
	assert.Equal(t, "c1", next)

	// Only labeled edges leave c1; the first edge is the fallback.
	next, ok = graph.DefaultNext("c1")
	require.True(t, ok)
	assert.Equal(t, "a1", next)

	_, ok = graph.DefaultNext("x1")
	assert.False(t, ok, "exit node has no outgoing edge")
}

func Test_Graph_NextByLabel(t *testing.T) {
	journey := branchingJourney()
	graph := NewGraph(&journey)

	next, ok := graph.NextByLabel("c1", constants.BranchFalse)
	require.True(t, ok)
	assert.Equal(t, "x1", next)

	_, ok = graph.NextByLabel("c1", "maybe")
	assert.False(t, ok)
}

func Test_Graph_Outgoing(t *testing.T) {
	journey := branchingJourney()
	graph := NewGraph(&journey)

	assert.Len(t, graph.Outgoing("c1"), 2)
	assert.Empty(t, graph.Outgoing("x1"))
}
