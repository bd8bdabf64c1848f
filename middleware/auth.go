package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"notekeep/model"
	"notekeep/repository"
	"notekeep/services"
	"notekeep/utils"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session_token"

// MaxActiveSessions caps concurrent sessions per user; the least recently
// active one is ended when the cap is hit.
const MaxActiveSessions = 5

// Sessions idle longer than this are ended even before their expiry.
const inactivityTimeout = 48 * time.Hour

// RequireSession resolves the session cookie to a user. Requests without a
// valid, active session are rejected with 401 before any handler runs.
func RequireSession(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if services.IsTokenBlacklisted(tokenString) {
			utils.Unauthorized(c, "Session has been invalidated")
			c.Abort()
			return
		}

		sessionID, err := services.ParseSessionToken(tokenString)
		if err != nil {
			utils.TrackError("auth", "invalid_session_token")
			utils.Unauthorized(c, "Invalid session")
			c.Abort()
			return
		}

		session, err := sessionRepo.GetSession(sessionID)
		if err != nil || session == nil || !session.IsActive {
			clearSessionCookie(c)
			utils.Unauthorized(c, "Invalid session")
			c.Abort()
			return
		}

		if time.Now().After(session.ExpiresAt) {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
			clearSessionCookie(c)
			utils.Unauthorized(c, "Session expired")
			c.Abort()
			return
		}

		if time.Since(session.LastActivityAt) > inactivityTimeout {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
			clearSessionCookie(c)
			utils.Unauthorized(c, "Session expired due to inactivity")
			c.Abort()
			return
		}

		session.LastActivityAt = time.Now()
		sessionRepo.UpdateSession(session)

		c.Set("user_id", session.UserID)
		c.Set("pseudo", session.Pseudo)
		c.Set("session", session)
		c.Set("session_token", tokenString)

		c.Next()
	}
}

// CurrentUserID returns the acting user's id set by RequireSession.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// CurrentPseudo returns the acting user's display name.
func CurrentPseudo(c *gin.Context) string {
	return c.GetString("pseudo")
}

// AuthorizeOwner is the single ownership check every data endpoint runs
// before touching a resource: the session's user id must equal the
// resource's owning user id. On failure it writes the response (401 or 403)
// and returns false; the caller must not apply the mutation.
func AuthorizeOwner(c *gin.Context, ownerID uint) (uint, bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return 0, false
	}
	if userID != ownerID {
		utils.TrackError("auth", "ownership_mismatch")
		utils.Forbidden(c, "You are not allowed to access this resource")
		return 0, false
	}
	return userID, true
}

// CreateSession opens a session for a freshly authenticated user and sets
// the session cookie. Called by the login handler.
func CreateSession(c *gin.Context, user *model.User, sessionRepo *repository.SessionRepo) error {
	active, err := sessionRepo.CountActiveSessions(user.ID)
	if err != nil {
		return err
	}
	if active >= MaxActiveSessions {
		if err := sessionRepo.EndLeastActiveSession(user.ID); err != nil {
			return err
		}
	}

	ua := useragent.Parse(c.Request.UserAgent())
	deviceInfo := fmt.Sprintf("%s on %s", ua.Name, ua.OS)
	if ua.Name == "" {
		deviceInfo = "Unknown device"
	}

	now := time.Now()
	session := &model.Session{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Pseudo:         user.Pseudo,
		DeviceInfo:     deviceInfo,
		IPAddress:      c.ClientIP(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(utils.SessionDuration),
		LastActivityAt: now,
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(session); err != nil {
		return err
	}

	token, err := services.GenerateSessionToken(session)
	if err != nil {
		return err
	}

	c.SetCookie(
		SessionCookieName,
		token,
		int(utils.SessionDuration.Seconds()),
		"/",
		"",
		false,
		true,
	)

	return nil
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
