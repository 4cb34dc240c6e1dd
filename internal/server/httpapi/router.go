package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxKeyUser      = "user"
	ctxKeyRequestID = "request_id"
)

func (s *HTTPServer) newRouter() *gin.Engine {
	router := gin.New()

	router.Use(s.requestLogger())
	router.Use(gin.CustomRecovery(s.recoverPanic))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.allowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.RequestIDHeaderName}
	corsConfig.ExposeHeaders = []string{common.RequestIDHeaderName}
	router.Use(cors.New(corsConfig))

	router.GET("/health", s.handleHealth)

	router.POST("/users/", s.handleRegister)
	router.POST("/login/", s.handleLogin)
	router.POST("/logout/", s.handleLogout)

	protected := router.Group("/transactions")
	protected.Use(s.requireSession())
	{
		protected.POST("/", s.handleCreateTransaction)
		protected.GET("/", s.handleListTransactions)
		protected.GET("/:id", s.handleGetTransaction)
		protected.PUT("/:id", s.handleUpdateTransaction)
	}

	return router
}

// requestLogger tags every request with an id (taken from X-Request-ID when
// the client sent one) and logs it once the handler chain has finished.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(common.RequestIDHeaderName, id)

		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request served",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *HTTPServer) recoverPanic(c *gin.Context, rec any) {
	s.logger.Error(c.Request.Context(), "panic in handler",
		"request_id", c.GetString(ctxKeyRequestID), "panic", rec)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Detail: detailInternal})
}

// requireSession resolves the session cookie to a user and stores it in the
// gin context. Requests without a valid session are answered with 401.
func (s *HTTPServer) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil {
			token = ""
		}

		user, err := s.users.Resolve(c.Request.Context(), token)
		if err != nil {
			s.abortWithError(c, err)
			return
		}

		c.Set(ctxKeyUser, user)
		c.Next()
	}
}
