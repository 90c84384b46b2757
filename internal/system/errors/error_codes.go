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

package errors

const errorPrefix = "JAS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while un-marshalling JSON.",
	}

	INVALID_TYPE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Invalid type.",
	}

	ADD_EVENT = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while storing event.",
	}

	FETCH_EVENTS = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching events.",
	}

	ADD_CUSTOMER = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while storing customer.",
	}

	FETCH_CUSTOMERS = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while fetching customer(s).",
	}

	FETCH_ORDERS = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while fetching orders.",
	}

	ADD_SEGMENT = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while storing segment.",
	}

	FETCH_SEGMENTS = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while fetching segment(s).",
	}

	ADD_JOURNEY = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while storing journey.",
	}

	FETCH_JOURNEYS = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while fetching journey(s).",
	}

	UPDATE_JOURNEY = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while updating journey.",
	}

	ADD_ENROLLMENT = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while creating enrollment.",
	}

	FETCH_ENROLLMENTS = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while fetching enrollment(s).",
	}

	UPDATE_ENROLLMENT = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while updating enrollment.",
	}

	ADD_PENDING_TRANSITION = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while scheduling pending transition.",
	}

	FETCH_PENDING_TRANSITIONS = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while fetching pending transitions.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Error while parsing token.",
	}

	// Client error codes

	INVALID_EVENT = ErrorMessage{
		Code:    errorPrefix + "16001",
		Message: "Invalid event payload.",
	}

	EVENT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16002",
		Message: "Event not found.",
	}

	CUSTOMER_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16003",
		Message: "Customer not found.",
	}

	SEGMENT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16004",
		Message: "Segment not found.",
	}

	JOURNEY_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16005",
		Message: "Journey not found.",
	}

	ENROLLMENT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "16006",
		Message: "Enrollment not found.",
	}

	INVALID_TRIGGER_RULE = ErrorMessage{
		Code:    errorPrefix + "16007",
		Message: "Invalid trigger rule.",
	}

	INVALID_JOURNEY_GRAPH = ErrorMessage{
		Code:    errorPrefix + "16008",
		Message: "Invalid journey node graph.",
	}

	INVALID_GOAL_CONFIG = ErrorMessage{
		Code:    errorPrefix + "16009",
		Message: "Invalid goal configuration.",
	}

	INVALID_EXIT_PATH = ErrorMessage{
		Code:    errorPrefix + "16010",
		Message: "Invalid exit path configuration.",
	}

	ENROLLMENT_REJECTED = ErrorMessage{
		Code:    errorPrefix + "16011",
		Message: "Enrollment rejected by entry frequency settings.",
	}

	INVALID_CONDITION = ErrorMessage{
		Code:    errorPrefix + "16012",
		Message: "Invalid condition.",
	}

	ErrUnAuthorizedRequest = ErrorMessage{
		Code:        errorPrefix + "16013",
		Message:     "Unauthorized request.",
		Description: "The request could not be authenticated.",
	}

	INVALID_REQUEST_FORMAT = ErrorMessage{
		Code:    errorPrefix + "16014",
		Message: "Invalid request format.",
	}
)
