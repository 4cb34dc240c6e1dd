package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCodec converts between a user id and the session token value.
// Decode failures wrap common.ErrInvalidSession.
type SessionCodec interface {
	Encode(userID int64) (string, error)
	Decode(token string) (int64, error)
}

// NewSessionCodec returns the codec for the configured session mode.
func NewSessionCodec(mode string, secretKey string, validity time.Duration) (SessionCodec, error) {
	switch mode {
	case config.SessionModePlain:
		return PlainCodec{}, nil
	case config.SessionModeSigned:
		return NewJWTCodec([]byte(secretKey), validity), nil
	default:
		return nil, fmt.Errorf("unknown session mode %q", mode)
	}
}

// PlainCodec uses the decimal user id itself as the token. Anyone who can
// guess an id can present it; see JWTCodec for a tamper-proof alternative.
type PlainCodec struct{}

func (PlainCodec) Encode(userID int64) (string, error) {
	return strconv.FormatInt(userID, 10), nil
}

func (PlainCodec) Decode(token string) (int64, error) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidSession, err)
	}
	return id, nil
}

// Claims carries the user id inside a signed session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// JWTCodec issues HS256 tokens. A zero validity produces tokens without expiry.
type JWTCodec struct {
	secretKey []byte
	validity  time.Duration
}

func NewJWTCodec(secretKey []byte, validity time.Duration) *JWTCodec {
	return &JWTCodec{secretKey: secretKey, validity: validity}
}

func (c *JWTCodec) Encode(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if c.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (c *JWTCodec) Decode(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidSession, err)
	}

	if !token.Valid {
		return 0, common.ErrInvalidSession
	}

	return claims.UserID, nil
}
