package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtAlgorithm is the only algorithm JWTCodec signs with or accepts.
const jwtAlgorithm = "HS256"

type jwtClaims struct {
	Email *string `json:"email"`
	jwt.RegisteredClaims
}

// JWTCodec is the JWT profile: HS256 only, exp required.
type JWTCodec struct {
	secret []byte
	issuer string
}

// NewJWTCodec returns a JWT codec. When issuer is non-empty it is stamped on
// issued tokens and required on verified ones.
func NewJWTCodec(secret []byte, issuer string) (*JWTCodec, error) {
	if len(secret) == 0 {
		return nil, ErrSecretMissing
	}
	return &JWTCodec{secret: append([]byte(nil), secret...), issuer: issuer}, nil
}

// Issue implements Codec.
func (c *JWTCodec) Issue(subjectID, email string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := jwt.NewNumericDate(now.Add(ttl))
	claims := jwtClaims{
		Email: &email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, exp.UTC(), nil
}

// Verify implements Codec.
func (c *JWTCodec) Verify(token string, now time.Time) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwtAlgorithm}),
		jwt.WithExpirationRequired(),
		// Live through the exp second, matching the compact profile.
		jwt.WithLeeway(time.Second),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims jwtClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, classifyJWT(err)
	}

	if claims.Subject == "" || claims.Email == nil {
		return Claims{}, ErrMissingClaims
	}
	return Claims{SubjectID: claims.Subject, Email: *claims.Email}, nil
}

func classifyJWT(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrMissingClaims
	default:
		return ErrMalformedPayload
	}
}
