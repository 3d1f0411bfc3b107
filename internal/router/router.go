// Package router wires the HTTP API: gin routes, handlers and the
// translation between transport DTOs and domain types.
package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mverma16/splitbill/internal/auth"
	"github.com/mverma16/splitbill/internal/config"
	"github.com/mverma16/splitbill/internal/middleware"
	"github.com/mverma16/splitbill/internal/service"
)

// Handler bundles the services the HTTP layer dispatches to.
type Handler struct {
	cfg      *config.Config
	auth     *service.AuthService
	contacts *service.ContactService
	bills    *service.BillService
}

// New builds the gin engine with all routes registered.
func New(cfg *config.Config, authSvc *service.AuthService, contactSvc *service.ContactService, billSvc *service.BillService, jwtManager *auth.JWTManager) *gin.Engine {
	h := &Handler{cfg: cfg, auth: authSvc, contacts: contactSvc, bills: billSvc}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.MaxMultipartMemory = cfg.MaxUploadSize

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authed := r.Group("/", middleware.RequireAuth(jwtManager))
	{
		authed.GET("/dashboard", h.Dashboard)

		authed.GET("/contacts", h.ListContacts)
		authed.POST("/contacts", h.CreateContact)
		authed.DELETE("/contacts/:id", h.DeleteContact)

		authed.GET("/bills", h.ListBills)
		authed.POST("/bills", h.CreateBill)
		authed.GET("/bills/:id", h.GetBill)
		authed.DELETE("/bills/:id", h.DeleteBill)

		authed.POST("/bills/upload", h.UploadReceipt)
		authed.POST("/bills/ocr", h.CreateBillFromOCR)

		authed.POST("/bills/:id/split", h.SplitBill)
		authed.GET("/bills/:id/export", h.ExportCSV)
		authed.GET("/bills/:id/message", h.GroupMessage)
		authed.GET("/bills/:id/message/:contactID", h.IndividualMessage)
	}

	return r
}

// writeError maps service errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecognition):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		slog.Error("Request handling failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
