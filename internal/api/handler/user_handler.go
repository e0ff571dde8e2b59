package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Vince489/Auth/internal/api/metrics"
	"github.com/Vince489/Auth/internal/api/middleware"
	"github.com/Vince489/Auth/internal/core/domain"
	"github.com/Vince489/Auth/internal/core/ports"
)

// CookieProfile carries the deployment-dependent session cookie attributes.
// HttpOnly is not part of the profile: the cookie always sets it.
type CookieProfile struct {
	// Secure also implies SameSite=None; browsers reject SameSite=None
	// cookies that are not Secure.
	Secure bool
}

type UserHandler struct {
	svc    ports.AccountService
	cookie CookieProfile
}

func NewUserHandler(svc ports.AccountService, cookie CookieProfile) *UserHandler {
	return &UserHandler{svc: svc, cookie: cookie}
}

// List returns the public projection of every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.PublicUser
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Register creates a new account and returns its generated codeName.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	codeName, err := h.svc.Register(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		if err == domain.ErrUserExists {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message:  "User created successfully",
		CodeName: codeName,
	})
}

// Login authenticates the submitted credentials, issues a session token and
// delivers it both in the response body and as the session cookie.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.sessionCookie(token, h.svc.TokenTTL()))

	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful",
		Token:    token,
		UserID:   user.ID,
		UserName: user.UserName,
	})
}

// GetUser returns the identity resolved from the session cookie. The session
// middleware has already validated the token and loaded the record.
func (h *UserHandler) GetUser(c echo.Context) error {
	user := middleware.SessionUser(c)
	if user == nil {
		return domain.ErrInvalidToken
	}
	return c.JSON(http.StatusOK, sessionUserResponse{User: user.Public()})
}

// Logout instructs the caller to discard the session cookie. No server-side
// invalidation happens: a token already issued stays valid until its expiry.
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(h.expiredSessionCookie())
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}

// GetByID returns a single account by its identifier, public projection only.
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.svc.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}

func (h *UserHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
	}
	if h.cookie.Secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func (h *UserHandler) expiredSessionCookie() *http.Cookie {
	cookie := h.sessionCookie("", 0)
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	return cookie
}
