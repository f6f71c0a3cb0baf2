package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventtick/eventtick-go/internal/domain"
)

// Claims carried by an access token.
type Claims struct {
	UserID   string
	Username string
	Role     domain.UserRole
}

func (s *Service) issueToken(user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      now.Add(s.cfg.TokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return t.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken parses and validates an HS256 token and returns its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	const op = "service.auth.VerifyToken"

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	sub, _ := mc["sub"].(string)
	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return &Claims{
		UserID:   sub,
		Username: username,
		Role:     domain.UserRole(role),
	}, nil
}
