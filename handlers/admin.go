package handlers

import (
	"net/http"

	"freelancehub/services/account"
	"freelancehub/services/profile"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Accounts account.AccountService
	Profiles profile.ProfileService
}

func NewAdminHandler(accounts account.AccountService, profiles profile.ProfileService) *AdminHandler {
	return &AdminHandler{Accounts: accounts, Profiles: profiles}
}

// ListAccountsHandler returns all accounts (with sensitive fields excluded).
func (h *AdminHandler) ListAccountsHandler(c *gin.Context) {
	accounts, err := h.Accounts.ListAccounts(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// ListFreelancersHandler returns every profile including hire history.
func (h *AdminHandler) ListFreelancersHandler(c *gin.Context) {
	admin, ok := requireIdentity(c)
	if !ok {
		return
	}
	views, err := h.Profiles.SearchFreelancers(c.Request.Context(), profile.SearchQuery{}, admin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
