package services

import (
	"errors"
	"fmt"
	"time"

	"notekeep/model"
	"notekeep/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "notekeep"

// GenerateSessionToken wraps a session in a signed JWT. The token is the
// value of the session cookie; it expires together with the session row.
func GenerateSessionToken(session *model.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": session.ID,
		"user_id":    session.UserID,
		"pseudo":     session.Pseudo,
		"iss":        tokenIssuer,
		"iat":        time.Now().Unix(),
		"exp":        session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseSessionToken validates a session cookie token and returns the
// session id it carries.
func ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	if iss, ok := claims["iss"].(string); !ok || iss != tokenIssuer {
		return "", errors.New("invalid token issuer")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("missing session id in token")
	}

	return sessionID, nil
}
