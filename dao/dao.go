// Package dao provides a shared store for PayPal access tokens so that
// several processes using the same credentials can reuse one token.
package dao

import (
	"context"

	"github.com/companieshouse/paypal-rest-client/config"
	"github.com/companieshouse/paypal-rest-client/models"
)

//go:generate mockgen -destination mock_dao.go -package dao github.com/companieshouse/paypal-rest-client/dao DAO

// DAO is an interface for accessing cached tokens from a backend store
type DAO interface {
	GetToken(ctx context.Context, key string) (*models.Token, error)
	PutToken(ctx context.Context, token *models.Token) error
	DeleteToken(ctx context.Context, key string, accessToken string) error
}

// NewDAO will create a new instance of the DAO interface. All details about
// its implementation and the database driver will be hidden from outside of
// this package.
func NewDAO(cfg *config.Config) DAO {
	database := getMongoDatabase(cfg.MongoDBURL, cfg.Database)
	return &MongoService{
		db:             database,
		CollectionName: cfg.TokenCollection,
	}
}
