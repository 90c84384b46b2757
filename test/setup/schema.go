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

package setup

// Schema is the relational schema of the service. The document-store
// collections (enrollments, pending transitions) need no schema.
const Schema = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id       TEXT PRIMARY KEY,
    email             TEXT,
    phone             TEXT,
    first_name        TEXT,
    last_name         TEXT,
    orders_count      INTEGER NOT NULL DEFAULT 0,
    total_spent       DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_activity_at  TIMESTAMPTZ,
    city              TEXT,
    country           TEXT,
    tags              JSONB,
    accepts_marketing BOOLEAN NOT NULL DEFAULT FALSE,
    attributes        JSONB,
    created_at        TIMESTAMPTZ NOT NULL,
    updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    order_id    TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    total       DOUBLE PRECISION NOT NULL DEFAULT 0,
    status      TEXT,
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id, created_at DESC);

CREATE TABLE IF NOT EXISTS events (
    event_id        TEXT PRIMARY KEY,
    customer_id     TEXT NOT NULL,
    event_name      TEXT NOT NULL,
    properties      JSONB,
    event_timestamp TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_customer_name_time
    ON events (customer_id, event_name, event_timestamp);

CREATE TABLE IF NOT EXISTS segments (
    segment_id  TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    conditions  JSONB,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS journeys (
    journey_id TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    status     TEXT NOT NULL,
    definition JSONB,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
`
