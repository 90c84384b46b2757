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
	"github.com/reachline/journey-automation-service/internal/events/model"
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

// AddEvent inserts a tracked behavioral event. Replayed event ids are
// silently ignored.
func AddEvent(event model.Event) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return storageError(errors2.ADD_EVENT,
			fmt.Sprintf("Failed to get database client for adding event with id: %s", event.EventId), err)
	}
	defer dbClient.Close()

	propertiesJson, err := json.Marshal(event.Properties)
	if err != nil {
		return storageError(errors2.MARSHAL_JSON,
			fmt.Sprintf("Failed to marshal properties of event with id: %s", event.EventId), err)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (event_id, customer_id, event_name, properties, event_timestamp)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (event_id) DO NOTHING`, constants.EventTable)

	_, err = dbClient.Execute(query, event.EventId, event.CustomerId, event.EventName,
		string(propertiesJson), event.Timestamp)
	if err != nil {
		return storageError(errors2.ADD_EVENT,
			fmt.Sprintf("Failed to persist event with id: %s", event.EventId), err)
	}
	return nil
}

// GetEventsSince fetches a customer's occurrences of one event name at or
// after the given cutoff, oldest first. This is the qualifying-occurrence
// query behind behavior trigger rules.
func GetEventsSince(customerId, eventName string, since time.Time) ([]model.Event, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_EVENTS,
			fmt.Sprintf("Failed to get database client for fetching events of customer: %s", customerId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`
        SELECT * FROM %s
        WHERE customer_id = $1 AND event_name = $2 AND event_timestamp >= $3
        ORDER BY event_timestamp ASC`, constants.EventTable)

	rows, err := dbClient.ExecuteQuery(query, customerId, eventName, since)
	if err != nil {
		return nil, storageError(errors2.FETCH_EVENTS,
			fmt.Sprintf("Failed to fetch events named %s for customer: %s", eventName, customerId), err)
	}

	events := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, rowToEvent(row))
	}
	return events, nil
}

// GetEventsByCustomer fetches all tracked events of a customer, newest first.
func GetEventsByCustomer(customerId string) ([]model.Event, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, storageError(errors2.FETCH_EVENTS,
			fmt.Sprintf("Failed to get database client for fetching events of customer: %s", customerId), err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE customer_id = $1 ORDER BY event_timestamp DESC", constants.EventTable)
	rows, err := dbClient.ExecuteQuery(query, customerId)
	if err != nil {
		return nil, storageError(errors2.FETCH_EVENTS,
			fmt.Sprintf("Failed to fetch events for customer: %s", customerId), err)
	}

	events := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, rowToEvent(row))
	}
	return events, nil
}

func rowToEvent(row map[string]interface{}) model.Event {

	event := model.Event{
		EventId:    asString(row["event_id"]),
		CustomerId: asString(row["customer_id"]),
		EventName:  asString(row["event_name"]),
		Timestamp:  asTime(row["event_timestamp"]),
	}
	if raw := asString(row["properties"]); raw != "" {
		var properties map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &properties); err == nil {
			event.Properties = properties
		}
	}
	return event
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
