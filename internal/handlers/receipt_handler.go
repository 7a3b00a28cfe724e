package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/logger"
	"spendly/internal/services"
)

// MaxReceiptSize bounds the size of an uploaded receipt image.
const MaxReceiptSize = 10 << 20

// ReceiptHandler handles receipt uploads
type ReceiptHandler struct {
	receiptService services.ReceiptServicer
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService services.ReceiptServicer) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// UploadReceipt stores a receipt image for later parsing
// @Summary     Upload a receipt
// @Tags        receipts
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       image formData file true "Receipt image"
// @Success     201 {object} map[string]string "Receipt stored"
// @Failure     400 {object} map[string][]string "Invalid image"
// @Router      /transactions/upload-receipt/ [post]
func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxReceiptSize)
	header, err := c.FormFile("image")
	if err != nil {
		respondWithError(c, apperrors.WithFields(apperrors.ErrValidation,
			apperrors.Field("image", "No file was submitted."),
		))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Get().Warnw("Failed to close uploaded receipt", "error", cerr)
		}
	}()

	if _, err := h.receiptService.SaveReceipt(userID, header.Filename, file); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Receipt uploaded successfully."})
}
