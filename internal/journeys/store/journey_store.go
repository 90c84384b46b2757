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

package store

import (
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/reachline/journey-automation-service/internal/journeys/model"
	"github.com/reachline/journey-automation-service/internal/system/constants"
	"github.com/reachline/journey-automation-service/internal/system/database/provider"
	errors2 "github.com/reachline/journey-automation-service/internal/system/errors"
	"github.com/reachline/journey-automation-service/internal/system/log"
)

func storageError(base errors2.ErrorMessage, description string, cause error) error {
	log.GetLogger().Debug(description, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        base.Code,
		Message:     base.Message,
		Description: description,
	}, cause)
}

// AddJourney inserts or replaces a journey definition. The definition is the
// serialized journey; id, name, status and timestamps are promoted to
// columns for querying.
func AddJourney(journey model.Journey) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.ADD_JOURNEY,
			fmt.Sprintf("Failed to get database client for adding journey with id: %s", journey.JourneyId), err)
	}
	defer dbClient.Close()

	definitionJson, err := json.Marshal(journey)
	if err != nil {
		return storageError(errors2.MARSHAL_JSON,
			fmt.Sprintf("Failed to marshal definition of journey with id: %s", journey.JourneyId), err)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (journey_id, name, status, definition, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (journey_id) DO UPDATE SET
            name = EXCLUDED.name, status = EXCLUDED.status,
            definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`, constants.JourneyTable)

	_, err = dbClient.Execute(query, journey.JourneyId, journey.Name, journey.Status,
		string(definitionJson), journey.CreatedAt, journey.UpdatedAt)
	if err != nil {
		return storageError(errors2.ADD_JOURNEY,
			fmt.Sprintf("Failed to persist journey with id: %s", journey.JourneyId), err)
	}
	return nil
}

// GetJourney fetches a journey definition, or nil when absent.
func GetJourney(journeyId string) (*model.Journey, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_JOURNEYS,
			fmt.Sprintf("Failed to get database client for fetching journey with id: %s", journeyId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("SELECT * FROM %s WHERE journey_id = $1", constants.JourneyTable)
	rows, err := dbClient.ExecuteQuery(query, journeyId)
	if err != nil {
		return nil, storageError(errors2.FETCH_JOURNEYS,
			fmt.Sprintf("Failed to fetch journey with id: %s", journeyId), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToJourney(rows[0])
}

// ListJourneys fetches all journey definitions, optionally filtered by status.
func ListJourneys(status string) ([]model.Journey, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_JOURNEYS,
			"Failed to get database client for listing journeys.", err)
	}
	defer dbClient.Close()

	var rows []map[string]interface{}
	if status != "" {
		query := fmt.Sprintf("SELECT * FROM %s WHERE status = $1 ORDER BY name", constants.JourneyTable)
		rows, err = dbClient.ExecuteQuery(query, status)
	} else {
		query := fmt.Sprintf("SELECT * FROM %s ORDER BY name", constants.JourneyTable)
		rows, err = dbClient.ExecuteQuery(query)
	}
	if err != nil {
		return nil, storageError(errors2.FETCH_JOURNEYS, "Failed to fetch journeys.", err)
	}

	journeys := make([]model.Journey, 0, len(rows))
	for _, row := range rows {
		journey, err := rowToJourney(row)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, *journey)
	}
	return journeys, nil
}

// UpdateJourneyStatus flips a journey's status column and the status field
// inside the stored definition.
func UpdateJourneyStatus(journeyId, status string) error {

	journey, err := GetJourney(journeyId)
	if err != nil {
		return err
	}
	if journey == nil {
		return nil
	}
	journey.Status = status
	journey.UpdatedAt = time.Now().UTC()
	return AddJourney(*journey)
}

// DeleteJourney removes a journey definition.
func DeleteJourney(journeyId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.FETCH_JOURNEYS,
			fmt.Sprintf("Failed to get database client for deleting journey with id: %s", journeyId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("DELETE FROM %s WHERE journey_id = $1", constants.JourneyTable)
	if _, err := dbClient.Execute(query, journeyId); err != nil {
		return storageError(errors2.FETCH_JOURNEYS,
			fmt.Sprintf("Failed to delete journey with id: %s", journeyId), err)
	}
	return nil
}

// IncrementNodeMetric bumps one per-node counter inside the journey
// definition. Counter names are "entered", "completed" and "exited".
func IncrementNodeMetric(journeyId, nodeId, counter string) error {

	journey, err := GetJourney(journeyId)
	if err != nil {
		return err
	}
	if journey == nil {
		return nil
	}

	if journey.Metrics == nil {
		journey.Metrics = make(map[string]model.NodeMetrics)
	}
	metrics := journey.Metrics[nodeId]
	switch counter {
	case "entered":
		metrics.Entered++
	case "completed":
		metrics.Completed++
	case "exited":
		metrics.Exited++
	}
	journey.Metrics[nodeId] = metrics

	return AddJourney(*journey)
}

func rowToJourney(row map[string]interface{}) (*model.Journey, error) {

	raw := asString(row["definition"])
	var journey model.Journey
	if err := json.Unmarshal([]byte(raw), &journey); err != nil {
		return nil, storageError(errors2.UNMARSHAL_JSON,
			fmt.Sprintf("Failed to unmarshal definition of journey with id: %s", asString(row["journey_id"])), err)
	}
	return &journey, nil
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}
