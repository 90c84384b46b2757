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

package mongo

import (
	"context"
	"sync"
	"time"

	"github.com/reachline/journey-automation-service/internal/system/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB holds the client and database handle for the enrollment stores.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	once          sync.Once
)

// Connect initializes the shared MongoDB connection.
func Connect(uri, dbName string) *MongoDB {
	once.Do(func() {
		logger := log.GetLogger()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(uri)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			logger.Fatal("MongoDB connection failed", log.Error(err))
		}

		// Ping to ensure connection is live.
		if err := client.Ping(ctx, nil); err != nil {
			logger.Fatal("MongoDB ping failed", log.Error(err))
		}

		mongoInstance = &MongoDB{
			Client:   client,
			Database: client.Database(dbName),
		}
	})
	return mongoInstance
}

// GetInstance returns the shared MongoDB connection.
func GetInstance() *MongoDB {
	if mongoInstance == nil {
		panic("MongoDB connection is not initialized")
	}
	return mongoInstance
}

// Collection returns a handle to the named collection.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}
