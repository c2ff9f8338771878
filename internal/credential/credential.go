// Package credential mints the signed tourist-ID credential handed out
// when an application is finalized. The token carries only derived,
// non-sensitive identity data: the public id, the holder name, the
// hashed document number and the date of birth.
package credential

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSigningKey = errors.New("credential: signing key not configured")

type Claims struct {
	PublicID     string `json:"publicId"`
	FullName     string `json:"fullName"`
	IDNumberHash string `json:"idNumberHash"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs tourist-ID credentials with HMAC-SHA256.
type Issuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

func NewIssuer(key []byte, issuer string, ttl time.Duration) *Issuer {
	if issuer == "" {
		issuer = "safara"
	}
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &Issuer{key: key, issuer: issuer, ttl: ttl}
}

func (i *Issuer) Issue(publicID, fullName, idNumberHash, dateOfBirth string) (string, error) {
	if len(i.key) == 0 {
		return "", ErrNoSigningKey
	}
	now := time.Now().UTC()
	claims := Claims{
		PublicID:     publicID,
		FullName:     fullName,
		IDNumberHash: idNumberHash,
		DateOfBirth:  dateOfBirth,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   publicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.key)
}

// Verify parses and validates a credential issued by Issue.
func (i *Issuer) Verify(token string) (*Claims, error) {
	if len(i.key) == 0 {
		return nil, ErrNoSigningKey
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.key, nil
	}, jwt.WithIssuer(i.issuer))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}
