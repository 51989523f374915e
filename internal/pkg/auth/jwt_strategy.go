package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

const jwtIssuer = "carwash"

type jwtClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTStrategy issues HS256 signed JWTs with the user id as subject.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	return &JWTStrategy{
		secret: []byte(secret),
		ttl:    opts.ttl(),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (s *JWTStrategy) IssueToken(identity model.Identity) (string, error) {
	if !identity.Role.Valid() {
		return "", ErrInvalidToken
	}
	now := jwt.TimeFunc()
	claims := jwtClaims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTStrategy) ParseToken(token string) (model.Identity, error) {
	var claims jwtClaims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	if claims.Issuer != jwtIssuer || !claims.Role.Valid() || claims.ExpiresAt == nil {
		return model.Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{UserID: userID, Role: claims.Role}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
