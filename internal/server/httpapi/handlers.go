package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/dmitrijs2005/txledger/internal/server/models"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTransactionRequest struct {
	FromAccount string   `json:"from_account" binding:"required"`
	ToAccount   string   `json:"to_account" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required"`
	Status      string   `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type listTransactionsQuery struct {
	Skip       int    `form:"skip"`
	Limit      *int   `form:"limit"`
	SortBy     string `form:"sort_by"`
	Order      string `form:"order"`
	Contractor string `form:"contractor"`
	Date       string `form:"date"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn(ctx, "health check failed", "error", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, "username and password are required")
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.UserName, "user_id", user.ID)
	c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, "username and password are required")
		return
	}

	_, token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.setSessionCookie(c, token, 0)
	c.JSON(http.StatusOK, messageResponse{Message: "Login successful"})
}

func (s *HTTPServer) handleLogout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}

// setSessionCookie writes the session cookie. maxAge 0 leaves the lifetime to
// the browser; a negative maxAge deletes the cookie.
func (s *HTTPServer) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, value, maxAge, "/", "", s.cookieSecure, true)
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxKeyUser).(*models.User)
}

func transactionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) handleCreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, "from_account, to_account and amount are required")
		return
	}

	user := currentUser(c)
	tx, err := s.transactions.Create(c.Request.Context(), user.ID, req.FromAccount, req.ToAccount, *req.Amount, req.Status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// parseDay accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func parseDay(raw string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (s *HTTPServer) handleListTransactions(c *gin.Context) {
	var req listTransactionsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		s.abortWithValidation(c, "skip and limit must be integers")
		return
	}

	q := models.ListQuery{
		Contractor: req.Contractor,
		SortBy:     models.SortKey(req.SortBy),
		Order:      models.SortOrder(req.Order),
		Skip:       req.Skip,
	}
	if req.Limit != nil {
		if *req.Limit < 1 {
			s.abortWithValidation(c, "limit must be between 1 and 100")
			return
		}
		q.Limit = *req.Limit
	}
	if req.Date != "" {
		d, err := parseDay(req.Date)
		if err != nil {
			s.abortWithValidation(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		q.Date = &d
	}

	items, err := s.transactions.List(c.Request.Context(), currentUser(c).ID, q)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (s *HTTPServer) handleGetTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		s.abortWithValidation(c, "transaction id must be an integer")
		return
	}

	tx, err := s.transactions.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (s *HTTPServer) handleUpdateTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		s.abortWithValidation(c, "transaction id must be an integer")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithValidation(c, "status is required")
		return
	}

	tx, err := s.transactions.UpdateStatus(c.Request.Context(), currentUser(c).ID, id, req.Status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}
