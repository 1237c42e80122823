package handlers

import (
	"net/http"

	"freelancehub/models"
	"freelancehub/services/account"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler serves signup, login and logout.
type AccountHandler struct {
	Accounts account.AccountService
}

func NewAccountHandler(accounts account.AccountService) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req models.AccountRegistration
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Accounts.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Account registered", zap.String("accountId", resp.Account.ID))
	c.JSON(http.StatusCreated, resp)
}

func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	if err := h.Accounts.Logout(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler returns the caller's account.
func (h *AccountHandler) MeHandler(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	acct, err := h.Accounts.GetAccount(c.Request.Context(), id.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acct)
}
