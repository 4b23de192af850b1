package api

import (
	"errors"
	"net/http"
	"strconv"

	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler serves the expense CRUD endpoints. Every operation is scoped
// to the authenticated caller: lookups filter by (id, user_id) jointly, so a
// record owned by someone else is indistinguishable from a missing one.
type ExpenseHandler struct{}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// ExpenseRequest is the create/update body. Amount is a pointer so that zero
// and negative values pass the required check: the sign of an amount is
// deliberately not validated, matching the flexibility of the category field
// (free-form server-side, constrained only by the client menu).
type ExpenseRequest struct {
	Amount   *float64 `json:"amount" binding:"required" example:"42.5"`
	Category string   `json:"category" binding:"required" example:"Food"`
	Note     string   `json:"note" example:"lunch"`
}

// Create adds an expense for the authenticated user.
// @Summary Add an expense
// @Description Creates an expense owned by the caller. Any owner field in the body is ignored.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "expense"
// @Success 201 {object} models.Expense
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/addexpenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Amount and category are required")
		return
	}

	// owner always comes from the verified token, never from the body
	expense := models.Expense{
		UserID:   userID,
		Amount:   *req.Amount,
		Category: req.Category,
		Note:     req.Note,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// List returns all of the caller's expenses, most recent first.
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Expense
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	expenses := make([]models.Expense, 0)
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// Update overwrites amount, category and note of one of the caller's
// expenses. Category must be resupplied; id, owner and creation time are
// immutable.
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Param request body ExpenseRequest true "expense"
// @Success 200 {object} models.Expense
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// an unparsable id can never match a record, so it reads as not found
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Expense not found")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Expense not found")
			return
		}
		ServerError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Amount and category are required")
		return
	}

	updates := map[string]interface{}{
		"amount":   *req.Amount,
		"category": req.Category,
		"note":     req.Note,
	}
	if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
		ServerError(c, err)
		return
	}

	database.DB.First(&expense, expense.ID)
	c.JSON(http.StatusOK, expense)
}

// Delete permanently removes one of the caller's expenses.
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		NotFound(c, "Expense not found")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "Expense not found")
			return
		}
		ServerError(c, err)
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		ServerError(c, err)
		return
	}

	Message(c, http.StatusOK, "Expense deleted")
}

// GetCategories returns the category menu offered by the client UI.
// @Summary List categories
// @Tags expenses
// @Produce json
// @Success 200 {array} string
// @Router /api/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.GetCategories())
}

// CategoryStat is one row of the per-category aggregation.
type CategoryStat struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// GetStatistics returns the caller's total spend and a per-category
// breakdown, the server-side counterpart of the client dashboard chart.
// @Summary Expense statistics
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/expenses/statistics [get]
func (h *ExpenseHandler) GetStatistics(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var totalAmount float64
	if err := database.DB.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAmount).Error; err != nil {
		ServerError(c, err)
		return
	}

	categoryStats := make([]CategoryStat, 0)
	if err := database.DB.Model(&models.Expense{}).
		Select("category, SUM(amount) as total, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&categoryStats).Error; err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_amount":   totalAmount,
		"category_stats": categoryStats,
	})
}
