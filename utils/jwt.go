package utils

import (
	"log"
	"os"
	"time"
)

// JWTSecretKey signs the session cookie tokens.
var JWTSecretKey string

// SessionDuration is how long a session (and its cookie token) lives.
var SessionDuration time.Duration

func InitJWT() {
	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		if os.Getenv("GO_ENV") == "test" {
			JWTSecretKey = "test-secret-key"
		} else {
			log.Fatal("JWT_SECRET_KEY is not set")
		}
	}

	SessionDuration = GetEnvAsDuration("SESSION_DURATION", 24*time.Hour)
}
