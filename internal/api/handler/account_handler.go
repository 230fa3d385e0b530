package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradewell/backoffice/internal/api/metrics"
	"github.com/tradewell/backoffice/internal/api/middleware"
	"github.com/tradewell/backoffice/internal/core/domain"
	"github.com/tradewell/backoffice/internal/core/ports"
)

// AccountHandler serves the admin account-management routes. All of them sit
// behind the ADMIN route class.
type AccountHandler struct {
	accounts ports.AccountManagementService
}

func NewAccountHandler(accounts ports.AccountManagementService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountListResponse struct {
	Accounts []domain.AccountView `json:"accounts"`
}

// List returns all accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  accountListResponse
// @Router       /admin/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	views, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountListResponse{Accounts: views})
}

// Create adds an account with an admin-supplied role.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        fullName  formData  string  true  "Display name"
// @Param        username  formData  string  true  "Unique username"
// @Param        password  formData  string  true  "Password"
// @Param        role      formData  string  true  "USER or ADMIN"
// @Success      302
// @Failure      400  {object}  validationResponse
// @Router       /admin/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var input ports.AccountInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	outcome, err := h.accounts.Create(c.Request().Context(), input)
	if err != nil {
		metrics.AccountWritesTotal.WithLabelValues("create", "error").Inc()
		return err
	}
	if outcome.HasErrors() {
		metrics.AccountWritesTotal.WithLabelValues("create", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, validationResponse{Errors: outcome.Errors})
	}

	metrics.AccountWritesTotal.WithLabelValues("create", "ok").Inc()
	return c.Redirect(http.StatusFound, "/admin/accounts")
}

// EditForm returns the account shaped for an edit form, password blanked.
func (h *AccountHandler) EditForm(c echo.Context) error {
	view, err := h.accounts.FindForEdit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update overwrites an existing account.
func (h *AccountHandler) Update(c echo.Context) error {
	var input ports.AccountInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	outcome, err := h.accounts.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		metrics.AccountWritesTotal.WithLabelValues("update", "error").Inc()
		return err
	}
	if outcome.HasErrors() {
		metrics.AccountWritesTotal.WithLabelValues("update", "rejected").Inc()
		return c.JSON(http.StatusBadRequest, validationResponse{Errors: outcome.Errors})
	}

	metrics.AccountWritesTotal.WithLabelValues("update", "ok").Inc()
	return c.Redirect(http.StatusFound, "/admin/accounts")
}

// Delete removes an account. The caller's own id comes from the session, and
// deleting it is refused.
func (h *AccountHandler) Delete(c echo.Context) error {
	callerID := middleware.Principal(c).AccountID

	if err := h.accounts.Delete(c.Request().Context(), c.Param("id"), callerID); err != nil {
		metrics.AccountWritesTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.AccountWritesTotal.WithLabelValues("delete", "ok").Inc()
	return c.Redirect(http.StatusFound, "/admin/accounts")
}
