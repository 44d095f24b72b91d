package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// JWTManager issues and verifies HS256 session tokens.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// NewJWTManager constructs a JWTManager from InternalConfig.JWT.
// - Secret: required, loaded once at startup
// - TTL: JWT.ExpTimeInHour, seven days when unset
func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}

	ttl := time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// CreateToken signs claims with iat set to now and exp to now + ttl.
func (j *JWTManager) CreateToken(ctx context.Context, claims *models.SessionClaims) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if claims == nil || strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("user id is required")
	}
	if !claims.Role.IsValid() {
		return "", fmt.Errorf("unsupported role: %q", claims.Role)
	}

	now := j.now().UTC()
	payload := sessionClaims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		UserType: claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		j.log.Error("JWTManager.CreateToken error signing token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	claims.IssuedAt = now
	claims.ExpiresAt = now.Add(j.ttl)
	return signed, nil
}

// VerifyToken returns the claims of a valid token and nil for anything else:
// bad signature, malformed input, other algorithms, expiry, unknown role.
func (j *JWTManager) VerifyToken(ctx context.Context, token string) *models.SessionClaims {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(token) == "" {
		return nil
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		j.log.Debug("JWTManager.VerifyToken rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.UserID == "" || claims.ExpiresAt == nil {
		return nil
	}

	role, err := models.ParseRole(claims.UserType)
	if err != nil {
		return nil
	}

	result := &models.SessionClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result
}
