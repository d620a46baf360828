package dao

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-rest-client/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 5 * time.Second

var client *mongo.Client
var mtx sync.Mutex

func getMongoClient(mongoDBURL string) *mongo.Client {
	mtx.Lock()
	defer mtx.Unlock()

	if client != nil {
		return client
	}

	ctx := context.Background()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	c, err := mongo.Connect(ctx, clientOptions)

	// Assume the caller of this func would handle the error
	if err != nil {
		log.Error(fmt.Errorf("failed to connect to mongodb: [%w]", err))
		return nil
	}

	pingContext, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err = c.Ping(pingContext, nil)
	if err != nil {
		log.Error(errors.New("ping to mongodb timed out. please check the connection to mongodb and that it is running"))
		return nil
	}

	log.Info("connected to mongodb successfully")

	client = c
	return client
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	c := getMongoClient(mongoDBURL)
	if c == nil {
		return nil
	}
	return c.Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB as the
// backend driver.
type MongoService struct {
	db             MongoDatabaseInterface
	CollectionName string
}

// GetToken gets a cached token from the DB.
// If no token is stored under key, return nil
func (m *MongoService) GetToken(ctx context.Context, key string) (*models.Token, error) {
	if m.db == nil {
		return nil, errors.New("mongodb is not connected")
	}

	var token models.Token
	collection := m.db.Collection(m.CollectionName)
	err := collection.FindOne(ctx, bson.M{"_id": key}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &token, nil
}

// PutToken writes a token to the DB, replacing any token already stored
// under the same key
func (m *MongoService) PutToken(ctx context.Context, token *models.Token) error {
	if m.db == nil {
		return errors.New("mongodb is not connected")
	}

	collection := m.db.Collection(m.CollectionName)
	_, err := collection.ReplaceOne(ctx, bson.M{"_id": token.Key}, token, options.Replace().SetUpsert(true))
	return err
}

// DeleteToken removes the token stored under key, but only if it is still
// the given access token. Another process may already have replaced it.
func (m *MongoService) DeleteToken(ctx context.Context, key string, accessToken string) error {
	if m.db == nil {
		return errors.New("mongodb is not connected")
	}

	collection := m.db.Collection(m.CollectionName)
	_, err := collection.DeleteOne(ctx, bson.M{"_id": key, "access_token": accessToken})
	return err
}
