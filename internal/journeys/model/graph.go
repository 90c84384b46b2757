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
	"github.com/reachline/journey-automation-service/internal/system/constants"
)

// Edge connects two nodes. The label is empty for the default edge and
// carries a branch id ("true"/"false" on condition nodes, exit-path branch
// ids on action nodes) otherwise.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// Graph is the adjacency index over a journey's flat node/edge collections,
// built once at load time.
type Graph struct {
	nodes    map[string]Node
	outgoing map[string][]Edge
	entry    string
}

// NewGraph indexes the journey's nodes and edges.
func NewGraph(journey *Journey) *Graph {

	graph := &Graph{
		nodes:    make(map[string]Node, len(journey.Nodes)),
		outgoing: make(map[string][]Edge),
	}
	for _, node := range journey.Nodes {
		graph.nodes[node.NodeId] = node
		if node.Type == constants.NodeTypeTrigger && graph.entry == "" {
			graph.entry = node.NodeId
		}
	}
	for _, edge := range journey.Edges {
		graph.outgoing[edge.From] = append(graph.outgoing[edge.From], edge)
	}
	return graph
}

// Node returns the node with the given id.
func (g *Graph) Node(nodeId string) (Node, bool) {
	node, ok := g.nodes[nodeId]
	return node, ok
}

// EntryNodeId returns the id of the journey's trigger node.
func (g *Graph) EntryNodeId() string {
	return g.entry
}

// DefaultNext returns the target of the unlabeled edge out of a node. When
// only labeled edges exist, the first edge is the fallback.
func (g *Graph) DefaultNext(nodeId string) (string, bool) {

	edges := g.outgoing[nodeId]
	for _, edge := range edges {
		if edge.Label == "" {
			return edge.To, true
		}
	}
	if len(edges) > 0 {
		return edges[0].To, true
	}
	return "", false
}

// NextByLabel returns the target of the edge out of a node carrying the
// given branch label.
func (g *Graph) NextByLabel(nodeId, label string) (string, bool) {

	for _, edge := range g.outgoing[nodeId] {
		if edge.Label == label {
			return edge.To, true
		}
	}
	return "", false
}

// Outgoing returns all edges leaving a node.
func (g *Graph) Outgoing(nodeId string) []Edge {
	return g.outgoing[nodeId]
}
