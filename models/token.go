package models

import "time"

// Token is a PayPal OAuth2 bearer token together with the scope it was issued
// for and the time it stops being accepted.
type Token struct {
	Key         string    `json:"-"            bson:"_id"`
	AccessToken string    `json:"access_token" bson:"access_token"`
	TokenType   string    `json:"token_type"   bson:"token_type"`
	Scope       string    `json:"scope"        bson:"scope"`
	ExpiresAt   time.Time `json:"expires_at"   bson:"expires_at"`
}

// ValidAt reports whether the token can still be used at now, treating it as
// expired skew early. A token without an expiry never goes stale on its own.
func (t *Token) ValidAt(now time.Time, skew time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(t.ExpiresAt.Add(-skew))
}

// AuthorizationHeader is the value sent in the Authorization header.
func (t *Token) AuthorizationHeader() string {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + t.AccessToken
}
