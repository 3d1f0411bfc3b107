package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mverma16/splitbill/internal/middleware"
	"github.com/mverma16/splitbill/internal/models"
)

type contactResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CountryCode    string `json:"country_code"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Avatar         string `json:"avatar"`
	CreatedAt      int64  `json:"created_at"`
}

func toContactResponse(c *models.Contact) contactResponse {
	return contactResponse{
		ID:             c.ID,
		Name:           c.Name,
		CountryCode:    c.CountryCode,
		WhatsAppNumber: c.WhatsAppNumber,
		Avatar:         c.Avatar,
		CreatedAt:      c.CreatedAt,
	}
}

// CreateContact saves a new payee for the authenticated user.
func (h *Handler) CreateContact(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"required"`
		CountryCode    string `json:"country_code"`
		WhatsAppNumber string `json:"whatsapp_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), middleware.GetUserID(c), req.Name, req.CountryCode, req.WhatsAppNumber)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toContactResponse(contact))
}

// ListContacts returns the user's contacts, newest first.
func (h *Handler) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]contactResponse, len(contacts))
	for i, contact := range contacts {
		out[i] = toContactResponse(contact)
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

// DeleteContact removes a contact and its bill shares.
func (h *Handler) DeleteContact(c *gin.Context) {
	err := h.contacts.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
