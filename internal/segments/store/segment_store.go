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
	conditionmodel "github.com/reachline/journey-automation-service/internal/conditions/model"
	"github.com/reachline/journey-automation-service/internal/segments/model"
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

// AddSegment inserts or replaces a segment definition.
func AddSegment(segment model.Segment) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.ADD_SEGMENT,
			fmt.Sprintf("Failed to get database client for adding segment with id: %s", segment.SegmentId), err)
	}
	defer dbClient.Close()

	conditionsJson, err := json.Marshal(segment.Conditions)
	if err != nil {
		return storageError(errors2.MARSHAL_JSON,
			fmt.Sprintf("Failed to marshal condition tree for segment with id: %s", segment.SegmentId), err)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (segment_id, name, description, conditions, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (segment_id) DO UPDATE SET
            name = EXCLUDED.name, description = EXCLUDED.description,
            conditions = EXCLUDED.conditions, updated_at = EXCLUDED.updated_at`, constants.SegmentTable)

	_, err = dbClient.Execute(query, segment.SegmentId, segment.Name, segment.Description,
		string(conditionsJson), segment.CreatedAt, segment.UpdatedAt)
	if err != nil {
		return storageError(errors2.ADD_SEGMENT,
			fmt.Sprintf("Failed to persist segment with id: %s", segment.SegmentId), err)
	}
	return nil
}

// GetSegment fetches a single segment definition, or nil when absent.
func GetSegment(segmentId string) (*model.Segment, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_SEGMENTS,
			fmt.Sprintf("Failed to get database client for fetching segment with id: %s", segmentId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("SELECT * FROM %s WHERE segment_id = $1", constants.SegmentTable)
	rows, err := dbClient.ExecuteQuery(query, segmentId)
	if err != nil {
		return nil, storageError(errors2.FETCH_SEGMENTS,
			fmt.Sprintf("Failed to fetch segment with id: %s", segmentId), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	segment := rowToSegment(rows[0])
	return &segment, nil
}

// ListSegments fetches all segment definitions.
func ListSegments() ([]model.Segment, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_SEGMENTS,
			"Failed to get database client for listing segments.", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("SELECT * FROM %s ORDER BY name", constants.SegmentTable)
	rows, err := dbClient.ExecuteQuery(query)
	if err != nil {
		return nil, storageError(errors2.FETCH_SEGMENTS, "Failed to fetch segments.", err)
	}

	segments := make([]model.Segment, 0, len(rows))
	for _, row := range rows {
		segments = append(segments, rowToSegment(row))
	}
	return segments, nil
}

// DeleteSegment removes a segment definition.
func DeleteSegment(segmentId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.FETCH_SEGMENTS,
			fmt.Sprintf("Failed to get database client for deleting segment with id: %s", segmentId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("DELETE FROM %s WHERE segment_id = $1", constants.SegmentTable)
	if _, err := dbClient.Execute(query, segmentId); err != nil {
		return storageError(errors2.FETCH_SEGMENTS,
			fmt.Sprintf("Failed to delete segment with id: %s", segmentId), err)
	}
	return nil
}

func rowToSegment(row map[string]interface{}) model.Segment {

	segment := model.Segment{
		SegmentId:   asString(row["segment_id"]),
		Name:        asString(row["name"]),
		Description: asString(row["description"]),
		CreatedAt:   asTime(row["created_at"]),
		UpdatedAt:   asTime(row["updated_at"]),
	}

	if raw := asString(row["conditions"]); raw != "" {
		var group conditionmodel.ConditionGroup
		if err := json.Unmarshal([]byte(raw), &group); err == nil {
			segment.Conditions = group
		} else {
			log.GetLogger().Debug(
				fmt.Sprintf("Failed to unmarshal condition tree of segment: %s", segment.SegmentId),
				log.Error(err))
		}
	}
	return segment
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

func asTime(v interface{}) time.Time {
	if ts, ok := v.(time.Time); ok {
		return ts
	}
	return time.Time{}
}
