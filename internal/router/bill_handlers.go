package router

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mverma16/splitbill/internal/export"
	"github.com/mverma16/splitbill/internal/middleware"
	"github.com/mverma16/splitbill/internal/models"
	"github.com/mverma16/splitbill/internal/service"
)

type billRequest struct {
	RestaurantName string  `json:"restaurant_name" binding:"required"`
	VisitDate      string  `json:"visit_date" binding:"required"`
	BaseAmount     float64 `json:"base_amount" binding:"required,gt=0"`
	DiscountAmount float64 `json:"discount_amount"`
	ServiceCharge  float64 `json:"service_charge"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
	BillImage      string  `json:"bill_image"`
}

func (r billRequest) toInput() service.BillInput {
	return service.BillInput{
		RestaurantName: r.RestaurantName,
		VisitDate:      r.VisitDate,
		BaseAmount:     r.BaseAmount,
		DiscountAmount: r.DiscountAmount,
		ServiceCharge:  r.ServiceCharge,
		TaxAmount:      r.TaxAmount,
		TotalAmount:    r.TotalAmount,
		BillImage:      r.BillImage,
	}
}

type billResponse struct {
	ID             string  `json:"id"`
	RestaurantName string  `json:"restaurant_name"`
	VisitDate      string  `json:"visit_date"`
	BaseAmount     float64 `json:"base_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	ServiceCharge  float64 `json:"service_charge"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
	BillImage      string  `json:"bill_image,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}

func toBillResponse(b *models.Bill) billResponse {
	return billResponse{
		ID:             b.ID,
		RestaurantName: b.RestaurantName,
		VisitDate:      b.VisitDate,
		BaseAmount:     b.BaseAmount,
		DiscountAmount: b.DiscountAmount,
		ServiceCharge:  b.ServiceCharge,
		TaxAmount:      b.TaxAmount,
		TotalAmount:    b.TotalAmount,
		BillImage:      b.BillImage,
		CreatedAt:      b.CreatedAt,
	}
}

// CreateBill records a manually entered bill. The total is derived from the
// components server-side.
func (h *Handler) CreateBill(c *gin.Context) {
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := h.bills.Create(c.Request.Context(), middleware.GetUserID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBillResponse(bill))
}

// CreateBillFromOCR records a bill whose amounts were extracted from a
// receipt image and reviewed by the user.
func (h *Handler) CreateBillFromOCR(c *gin.Context) {
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := h.bills.CreateFromExtracted(c.Request.Context(), middleware.GetUserID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBillResponse(bill))
}

// ListBills returns the user's bills, most recent visit first.
func (h *Handler) ListBills(c *gin.Context) {
	bills, err := h.bills.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]billResponse, len(bills))
	for i, bill := range bills {
		out[i] = toBillResponse(bill)
	}
	c.JSON(http.StatusOK, gin.H{"bills": out})
}

// GetBill returns one bill.
func (h *Handler) GetBill(c *gin.Context) {
	bill, err := h.bills.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBillResponse(bill))
}

// DeleteBill removes a bill and its shares.
func (h *Handler) DeleteBill(c *gin.Context) {
	if err := h.bills.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Dashboard returns the user's aggregate stats and recent bills.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, recent, err := h.bills.DashboardStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]billResponse, len(recent))
	for i, bill := range recent {
		out[i] = toBillResponse(bill)
	}
	c.JSON(http.StatusOK, gin.H{
		"total_contacts": stats.ContactCount,
		"total_bills":    stats.BillCount,
		"total_spending": stats.TotalSpending,
		"recent_bills":   out,
	})
}

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadReceipt accepts a receipt photo, stores it, runs text recognition
// and returns the extracted amounts for review.
func (h *Handler) UploadReceipt(c *gin.Context) {
	file, err := c.FormFile("bill_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type; upload PNG, JPG, JPEG or GIF"})
		return
	}
	if file.Size > h.cfg.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	// Never trust the client filename on disk.
	storedName := uuid.New().String() + ext
	dst := filepath.Join(h.cfg.UploadDir, storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		writeError(c, fmt.Errorf("failed to store upload: %w", err))
		return
	}

	text, amounts, err := h.bills.ProcessReceipt(c.Request.Context(), dst)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"image_filename": storedName,
		"extracted_text": text,
		"amounts":        amounts,
	}
	if amounts.Empty() {
		resp["warning"] = "no amounts detected automatically; please enter them manually"
	}
	c.JSON(http.StatusOK, resp)
}

type shareDetailResponse struct {
	ContactName        string  `json:"contact_name"`
	WhatsAppNumber     string  `json:"whatsapp_number"`
	FoodItem           string  `json:"food_item"`
	FoodAmount         float64 `json:"food_amount"`
	TaxShare           float64 `json:"tax_share"`
	ServiceChargeShare float64 `json:"service_charge_share"`
	TotalShare         float64 `json:"total_share"`
}

func toShareResponses(details []export.ShareDetail) []shareDetailResponse {
	out := make([]shareDetailResponse, len(details))
	for i, d := range details {
		out[i] = shareDetailResponse{
			ContactName:        d.ContactName,
			WhatsAppNumber:     d.WhatsAppNumber,
			FoodItem:           d.FoodItem,
			FoodAmount:         d.FoodAmount,
			TaxShare:           d.TaxShare,
			ServiceChargeShare: d.ServiceChargeShare,
			TotalShare:         d.TotalShare,
		}
	}
	return out
}

// SplitBill prorates the bill across the submitted assignments, persists
// the shares and returns them with the CSV report.
func (h *Handler) SplitBill(c *gin.Context) {
	var req struct {
		Assignments []struct {
			ContactID  string  `json:"contact_id" binding:"required"`
			FoodItem   string  `json:"food_item" binding:"required"`
			FoodAmount float64 `json:"food_amount" binding:"required,gt=0"`
		} `json:"assignments" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	assignments := make([]models.ShareAssignment, len(req.Assignments))
	for i, a := range req.Assignments {
		assignments[i] = models.ShareAssignment{
			ContactID:  a.ContactID,
			FoodItem:   a.FoodItem,
			FoodAmount: a.FoodAmount,
		}
	}

	userID := middleware.GetUserID(c)
	billID := c.Param("id")
	details, err := h.bills.Split(c.Request.Context(), userID, billID, assignments)
	if err != nil {
		writeError(c, err)
		return
	}

	bill, err := h.bills.Get(c.Request.Context(), userID, billID)
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now()
	csvText, err := export.CSV(bill, details, now)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shares":       toShareResponses(details),
		"csv":          csvText,
		"csv_filename": export.Filename(bill, now),
	})
}

// ExportCSV downloads the bill's share report as a CSV attachment.
func (h *Handler) ExportCSV(c *gin.Context) {
	bill, details, err := h.bills.ShareDetails(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now()
	csvText, err := export.CSV(bill, details, now)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(bill, now)))
	c.Data(http.StatusOK, "text/csv", []byte(csvText))
}

// GroupMessage returns the all-shares WhatsApp message for a bill.
func (h *Handler) GroupMessage(c *gin.Context) {
	bill, details, err := h.bills.ShareDetails(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": export.GroupMessage(bill, details),
		"shares":  toShareResponses(details),
	})
}

// IndividualMessage returns one contact's share message and the wa.me link
// that opens the chat with it pre-filled.
func (h *Handler) IndividualMessage(c *gin.Context) {
	bill, contact, share, err := h.bills.IndividualShare(
		c.Request.Context(), middleware.GetUserID(c), c.Param("id"), c.Param("contactID"))
	if err != nil {
		writeError(c, err)
		return
	}

	message := export.IndividualMessage(bill, contact, share)
	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"whatsapp_url": export.WhatsAppLink(contact.WhatsAppNumber, message),
	})
}
