package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spendly/internal/models"
	"spendly/internal/pagination"
	"spendly/internal/services"
)

// SpendingHandler handles spending-related requests
type SpendingHandler struct {
	spendingService services.SpendingServicer
}

// NewSpendingHandler creates a new SpendingHandler
func NewSpendingHandler(spendingService services.SpendingServicer) *SpendingHandler {
	return &SpendingHandler{spendingService: spendingService}
}

// ListSpendings returns the user's spendings, newest first
// @Summary     List spendings
// @Description Get the authenticated user's spendings ordered by date, newest first. The response is always a bare array; the total is in X-Total-Count.
// @Tags        spendings
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (1-based)"
// @Param       page_size query int false "Items per page"
// @Success     200 {array} models.Spending "Spendings"
// @Failure     400 {object} map[string][]string "Invalid paging parameters"
// @Router      /transactions/spendings/ [get]
func (h *SpendingHandler) ListSpendings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query pagination.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	spendings, total, err := h.spendingService.ListSpendings(userID, query.Request())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if spendings == nil {
		spendings = []models.Spending{}
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, spendings)
}

// GetSpending handles the retrieval of a specific spending
// @Summary     Get spending by ID
// @Tags        spendings
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Spending ID"
// @Success     200 {object} models.Spending "Spending details"
// @Failure     404 {object} map[string]string "Spending not found"
// @Router      /transactions/spendings/{id}/ [get]
func (h *SpendingHandler) GetSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	spendingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.spendingService.GetSpending(userID, spendingID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, spending)
}

// CreateSpending records a new spending
// @Summary     Create a spending
// @Description Record a spending; a blank description defaults to the name
// @Tags        spendings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body models.SpendingInput true "Spending details"
// @Success     201 {object} models.Spending "Spending created"
// @Failure     400 {object} map[string][]string "Field errors"
// @Router      /transactions/spendings/ [post]
func (h *SpendingHandler) CreateSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req models.SpendingInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.spendingService.CreateSpending(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, spending)
}

// UpdateSpending applies a partial update to a spending
// @Summary     Update spending
// @Tags        spendings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Spending ID"
// @Param       request body models.SpendingPatch true "Fields to change"
// @Success     200 {object} models.Spending "Updated spending"
// @Failure     400 {object} map[string][]string "Field errors"
// @Failure     404 {object} map[string]string "Spending not found"
// @Router      /transactions/spendings/{id}/ [patch]
func (h *SpendingHandler) UpdateSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	spendingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req models.SpendingPatch
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.spendingService.UpdateSpending(userID, spendingID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, spending)
}

// DeleteSpending deletes a spending
// @Summary     Delete spending
// @Tags        spendings
// @Security    BearerAuth
// @Param       id path int true "Spending ID"
// @Success     204 "Spending deleted"
// @Failure     404 {object} map[string]string "Spending not found"
// @Router      /transactions/spendings/{id}/ [delete]
func (h *SpendingHandler) DeleteSpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	spendingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.spendingService.DeleteSpending(userID, spendingID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
