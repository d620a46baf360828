package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-rest-client/dao"
	"github.com/companieshouse/paypal-rest-client/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const tokenPath = "/v1/oauth2/token"

//go:generate mockgen -destination mock_token_exchanger.go -package service github.com/companieshouse/paypal-rest-client/service TokenExchanger

// TokenExchanger obtains a fresh access token from PayPal
type TokenExchanger interface {
	Exchange(ctx context.Context) (*models.Token, error)
}

// TokenProvider hands out bearer tokens to the request dispatcher
type TokenProvider interface {
	GetToken(ctx context.Context) (*models.Token, error)
	Invalidate(ctx context.Context, accessToken string)
}

// ClientCredentialsExchanger performs the OAuth2 client-credentials grant
// against PayPal's token endpoint.
type ClientCredentialsExchanger struct {
	config     clientcredentials.Config
	httpClient *http.Client
}

// NewClientCredentialsExchanger returns an exchanger for the app identified by
// clientID and secret. httpClient may be nil to use the default client.
func NewClientCredentialsExchanger(apiBase, clientID, secret string, httpClient *http.Client) *ClientCredentialsExchanger {
	return &ClientCredentialsExchanger{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			TokenURL:     apiBase + tokenPath,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
	}
}

// Exchange trades the client credentials for a bearer token
func (e *ClientCredentialsExchanger) Exchange(ctx context.Context) (*models.Token, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	tok, err := e.config.Token(ctx)
	if err != nil {
		return nil, exchangeError(err)
	}

	scope, _ := tok.Extra("scope").(string)

	return &models.Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Scope:       scope,
		ExpiresAt:   tok.Expiry,
	}, nil
}

func exchangeError(err error) error {
	err = fmt.Errorf("error getting access token: [%w]", err)

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		status := retrieveErr.Response.StatusCode
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &RequestError{Type: Unauthorized, StatusCode: status, Body: retrieveErr.Body, Err: err}
		}
		return &RequestError{Type: Error, StatusCode: status, Body: retrieveErr.Body, Err: err}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &RequestError{Type: BadNetwork, Err: err}
	}

	return &RequestError{Type: Error, Err: err}
}

// TokenManager caches the bearer token used for every call and refreshes it
// shortly before it expires. Concurrent callers share a single refresh.
type TokenManager struct {
	Exchanger TokenExchanger
	// Store is optional. When set, tokens are shared with other processes
	// using the same Key.
	Store dao.DAO
	Key   string
	Skew  time.Duration

	now   func() time.Time
	mtx   sync.RWMutex
	token *models.Token

	// rejected is the last token PayPal refused. A stored copy of it is
	// never reused.
	rejected string
	group    singleflight.Group
}

// NewTokenManager creates a token manager. store may be nil.
func NewTokenManager(exchanger TokenExchanger, store dao.DAO, key string, skew time.Duration) *TokenManager {
	return &TokenManager{
		Exchanger: exchanger,
		Store:     store,
		Key:       key,
		Skew:      skew,
		now:       time.Now,
	}
}

// GetToken returns the cached token, refreshing it first if it is missing or
// about to expire. The shared refresh does not stop when one caller's ctx is
// done; each caller only stops waiting for it.
func (tm *TokenManager) GetToken(ctx context.Context) (*models.Token, error) {
	if tok := tm.cached(); tok != nil {
		return tok, nil
	}

	ch := tm.group.DoChan(tm.Key, func() (interface{}, error) {
		if tok := tm.cached(); tok != nil {
			return tok, nil
		}
		return tm.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, &RequestError{Type: BadNetwork, Err: fmt.Errorf("error getting access token: [%w]", ctx.Err())}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Token), nil
	}
}

// Invalidate discards accessToken if it is still the cached token, so the
// next call obtains a new one.
func (tm *TokenManager) Invalidate(ctx context.Context, accessToken string) {
	tm.mtx.Lock()
	if tm.token != nil && tm.token.AccessToken == accessToken {
		tm.token = nil
	}
	tm.rejected = accessToken
	tm.mtx.Unlock()

	if tm.Store == nil {
		return
	}
	if err := tm.Store.DeleteToken(ctx, tm.Key, accessToken); err != nil {
		log.Error(fmt.Errorf("error removing paypal token from store: [%w]", err))
	}
}

func (tm *TokenManager) cached() *models.Token {
	tm.mtx.RLock()
	defer tm.mtx.RUnlock()

	if tm.token.ValidAt(tm.clock(), tm.Skew) {
		return tm.token
	}
	return nil
}

func (tm *TokenManager) refresh(ctx context.Context) (*models.Token, error) {
	if tm.Store != nil {
		stored, err := tm.Store.GetToken(ctx, tm.Key)
		if err != nil {
			log.Error(fmt.Errorf("error reading paypal token from store: [%w]", err))
		} else if stored.ValidAt(tm.clock(), tm.Skew) && !tm.isRejected(stored) {
			tm.set(stored)
			return stored, nil
		}
	}

	tok, err := tm.Exchanger.Exchange(ctx)
	if err != nil {
		log.Error(err, log.Data{"response_type": TypeOf(err).String()})
		return nil, err
	}
	tok.Key = tm.Key

	tm.set(tok)
	log.Info("obtained paypal access token", log.Data{"scope": tok.Scope, "expires_at": tok.ExpiresAt})

	if tm.Store != nil {
		if err := tm.Store.PutToken(ctx, tok); err != nil {
			log.Error(fmt.Errorf("error saving paypal token to store: [%w]", err))
		}
	}

	return tok, nil
}

func (tm *TokenManager) isRejected(tok *models.Token) bool {
	tm.mtx.RLock()
	defer tm.mtx.RUnlock()
	return tm.rejected != "" && tok.AccessToken == tm.rejected
}

func (tm *TokenManager) set(tok *models.Token) {
	tm.mtx.Lock()
	defer tm.mtx.Unlock()
	tm.token = tok
}

func (tm *TokenManager) clock() time.Time {
	if tm.now == nil {
		return time.Now()
	}
	return tm.now()
}
