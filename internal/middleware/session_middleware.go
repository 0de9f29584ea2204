package middleware

import (
	"time"

	"github.com/fadilmartias/resume-ats-scanner/internal/repository"
	"github.com/fadilmartias/resume-ats-scanner/internal/session"
	"github.com/fadilmartias/resume-ats-scanner/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookie = "ats_session"
	sessionLocal  = "session"
)

// Session attaches the browser's session state to the request, creating
// one and setting the cookie when the browser has none or it expired.
func Session(repo *repository.SessionRepository, ttl time.Duration, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, created, err := repo.FindOrCreate(c.Cookies(SessionCookie))
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "failed to start session",
			}, err)
		}
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    state.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionLocal, state)
		return c.Next()
	}
}

// SessionState returns the state attached by Session, or nil.
func SessionState(c *fiber.Ctx) *session.State {
	state, _ := c.Locals(sessionLocal).(*session.State)
	return state
}
