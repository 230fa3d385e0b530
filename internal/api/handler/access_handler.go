package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradewell/backoffice/internal/api/metrics"
	"github.com/tradewell/backoffice/internal/api/middleware"
	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

// AccessHandler serves registration, login, logout and the landing routes.
// View rendering lives outside this service: forms are answered as JSON
// models, validation failures as a 400 envelope of field errors, and
// navigation as HTTP redirects.
type AccessHandler struct {
	registration ports.RegistrationService
	access       ports.AccessService
	accounts     ports.AccountManagementService
}

func NewAccessHandler(registration ports.RegistrationService, access ports.AccessService, accounts ports.AccountManagementService) *AccessHandler {
	return &AccessHandler{registration: registration, access: access, accounts: accounts}
}

// validationResponse is the envelope a rejected form comes back in.
type validationResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

// RegisterForm returns the empty registration form model.
func (h *AccessHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, ports.RegisterInput{})
}

// Register creates a self-registered account.
//
// @Summary      Register a new account
// @Tags         access
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        fullName         formData  string  true   "Display name"
// @Param        username         formData  string  true   "Unique username"
// @Param        password         formData  string  true   "Password"
// @Param        confirmPassword  formData  string  true   "Password confirmation"
// @Success      302
// @Failure      400  {object}  validationResponse
// @Router       /register [post]
func (h *AccessHandler) Register(c echo.Context) error {
	var input ports.RegisterInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	outcome, err := h.registration.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}
	if outcome.HasErrors() {
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, validationResponse{Errors: outcome.Errors})
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm returns the empty login form model.
func (h *AccessHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, ports.LoginInput{})
}

// Login authenticates the submitted credentials and establishes the session.
//
// @Summary      Login
// @Tags         access
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /login [post]
func (h *AccessHandler) Login(c echo.Context) error {
	var input ports.LoginInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, _, err := h.access.Login(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyLogins):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

// Logout invalidates the current session and clears the cookie.
func (h *AccessHandler) Logout(c echo.Context) error {
	h.access.Logout(c.Request().Context(), middleware.Principal(c))

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/login?logout=1")
}

// Home is the default landing target after login: admins land on the account
// list, everyone else on their own profile.
func (h *AccessHandler) Home(c echo.Context) error {
	if middleware.Principal(c).IsAdmin() {
		return c.Redirect(http.StatusFound, "/admin/accounts")
	}
	return c.Redirect(http.StatusFound, "/profile")
}

// Profile returns the caller's own account view.
func (h *AccessHandler) Profile(c echo.Context) error {
	principal := middleware.Principal(c)
	view, err := h.accounts.FindForEdit(c.Request().Context(), principal.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
