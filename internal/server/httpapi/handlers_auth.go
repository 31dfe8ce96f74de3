package httpapi

import (
	"time"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

// userView is a user with the household inlined, as returned by login.
type userView struct {
	*models.User
	Household *models.Household `json:"household"`
}

// bind parses the JSON body into v and runs its validation rules. Clients
// only ever see the generic validation error; the field detail is logged.
func (s *Server) bind(c *fiber.Ctx, v interface{ Validate() error }) error {
	err := c.BodyParser(v)
	if err == nil {
		err = v.Validate()
	}
	if err != nil {
		s.logger.Debug(c.UserContext(), "invalid request body",
			"path", c.Path(), "error", err)
		return common.ErrorValidation
	}
	return nil
}

func (s *Server) sessionCookie(value string, expires time.Time, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   s.opts.Production,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	u, err := s.deps.Users.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    u,
		"message": "Registration successful. Please check your email to verify your account.",
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	sess, err := s.deps.Users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	c.Cookie(s.sessionCookie(sess.Token, sess.ExpiresAt, int(common.SessionTTL.Seconds())))
	return c.JSON(fiber.Map{
		"user":    userView{User: sess.User, Household: sess.Household},
		"message": "Login successful",
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	c.Cookie(s.sessionCookie("", time.Unix(0, 0), 0))
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (s *Server) me(c *fiber.Ctx) error {
	cl, err := claimsFrom(c)
	if err != nil {
		return err
	}
	p, err := s.deps.Users.GetProfile(c.UserContext(), cl.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": p.User, "household": p.Household})
}

func (s *Server) verifyEmail(c *fiber.Ctx) error {
	if _, err := s.deps.Users.VerifyEmail(c.UserContext(), c.Query("token")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Email verified successfully. You can now log in."})
}

func (s *Server) createHousehold(c *fiber.Ctx) error {
	cl, err := claimsFrom(c)
	if err != nil {
		return err
	}
	var req householdRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	h, err := s.deps.Households.Create(c.UserContext(), cl.UserID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"household": h})
}
