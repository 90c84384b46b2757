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

package utils

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HandleDecodeError(t *testing.T) {

	type payload struct {
		Name string `json:"name"`
	}

	decode := func(body string) error {
		decoder := json.NewDecoder(strings.NewReader(body))
		var p payload
		return decoder.Decode(&p)
	}

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, HandleDecodeError(nil, "journey"))
	})

	t.Run("empty body", func(t *testing.T) {
		assert.Equal(t, "Request body for journey is empty.",
			HandleDecodeError(decode(""), "journey"))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		assert.Equal(t, "Malformed JSON in journey request body.",
			HandleDecodeError(decode(`{invalid`), "journey"))
	})

	t.Run("wrong field type", func(t *testing.T) {
		assert.Equal(t, "Invalid type for field 'name' in event request body.",
			HandleDecodeError(decode(`{"name": 5}`), "event"))
	})

	t.Run("unknown field", func(t *testing.T) {
		decoder := json.NewDecoder(strings.NewReader(`{"surname": "x"}`))
		decoder.DisallowUnknownFields()
		var p payload
		err := decoder.Decode(&p)
		assert.Equal(t, `Unknown field "surname" in enrollment request body.`,
			HandleDecodeError(err, "enrollment"))
	})

	t.Run("generic fallback", func(t *testing.T) {
		assert.Equal(t, "Invalid JSON payload for segment.",
			HandleDecodeError(io.ErrUnexpectedEOF, "segment"))
	})
}
