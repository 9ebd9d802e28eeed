package auth

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bookcatalog/internal/httpx"
)

// ErrMissingUserID is returned for tokens without a parsable userid claim.
var ErrMissingUserID = errors.New("token has no valid userid claim")

// Flag is a boolean claim that also accepts the string forms "true"/"false".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(string(data))
	if err != nil {
		return err
	}
	*f = Flag(v)
	return nil
}

type Claims struct {
	UserID    string `json:"userid"`
	Email     string `json:"email,omitempty"`
	Admin     Flag   `json:"admin,omitempty"`
	Librarian Flag   `json:"librarian,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens issued for this API.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewVerifier(secret, issuer, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

func (v *Verifier) ParseToken(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// Authenticate turns a bearer token into the request principal.
func (v *Verifier) Authenticate(tokenStr string) (httpx.Principal, error) {
	claims, err := v.ParseToken(tokenStr)
	if err != nil {
		return httpx.Principal{}, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return httpx.Principal{}, ErrMissingUserID
	}
	return httpx.Principal{
		UserID:    userID,
		Email:     claims.Email,
		Admin:     bool(claims.Admin),
		Librarian: bool(claims.Librarian),
	}, nil
}

// TokenRequest is the payload of the development token endpoint.
type TokenRequest struct {
	UserID       uuid.UUID      `json:"userId" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	CustomClaims map[string]any `json:"customClaims"`
}

// Issuer signs tokens for local development and tests.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewIssuer(secret, issuer, audience string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl, now: time.Now}
}

var reservedClaims = map[string]bool{
	"jti": true, "sub": true, "email": true, "userid": true,
	"iss": true, "aud": true, "exp": true, "iat": true, "nbf": true,
}

// Issue signs a token. Custom claims are copied as-is except for the
// registered ones above, which the issuer always controls.
func (i *Issuer) Issue(req TokenRequest) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{}
	for k, v := range req.CustomClaims {
		if !reservedClaims[k] {
			claims[k] = v
		}
	}
	claims["jti"] = uuid.NewString()
	claims["sub"] = req.Email
	claims["email"] = req.Email
	claims["userid"] = req.UserID.String()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["nbf"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(i.ttl))
	if i.issuer != "" {
		claims["iss"] = i.issuer
	}
	if i.audience != "" {
		claims["aud"] = i.audience
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}
