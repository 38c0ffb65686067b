package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/middleware"
	"github.com/landlordpro/backend/internal/models"
)

type JWTService interface {
	GenerateAccessToken(subjectID uuid.UUID, role models.RoleType, tokenExpiry time.Duration) (string, error)
}

type jwtService struct {
	privateKey *rsa.PrivateKey
}

func NewJWTService(privateKey *rsa.PrivateKey) JWTService {
	return &jwtService{privateKey: privateKey}
}

func (j *jwtService) GenerateAccessToken(
	subjectID uuid.UUID,
	role models.RoleType,
	tokenExpiry time.Duration,
) (string, error) {
	claims := jwt.MapClaims{
		"iss":  middleware.TokenIssuer,
		"sub":  subjectID.String(),
		"role": string(role),
		"exp":  time.Now().Add(tokenExpiry).Unix(),
		"iat":  time.Now().Unix(),
		"jti":  uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}
