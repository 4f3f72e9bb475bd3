package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT used to authenticate operators of the coordinator API.
//
// It embeds [jwt.Token] for low-level signing and claim inspection and
// [jwt.RegisteredClaims] for the standard claim set. SignedString holds the
// compact serialized form ready to travel in an Authorization header.
type Token struct {
	// Token is the underlying JWT. Excluded from JSON serialization; only
	// the compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard RFC 7519 claim set
	// (sub, exp, iat, nbf, iss, aud, jti).
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID caches the "sub" claim parsed to int64 so handlers do not
	// re-parse it per request.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting user ID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token. It implements
// the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
