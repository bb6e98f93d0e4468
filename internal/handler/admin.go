package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nasmaklabs/chauffeur-sub000/internal/domain"
	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// AdminHandler handles the authenticated admin endpoints: booking
// management, stats and admin user accounts.
type AdminHandler struct {
	bookingService *service.BookingService
	adminService   *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookingService *service.BookingService, adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		bookingService: bookingService,
		adminService:   adminService,
	}
}

// ListBookingsResponse is one page of bookings.
type ListBookingsResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// ListBookings handles GET /v1/admin/bookings?status=&limit=&cursor=
func (h *AdminHandler) ListBookings(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), service.ListBookingsRequest{
		Status: c.Query("status"),
		Limit:  limit,
		Cursor: c.Query("cursor"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := ListBookingsResponse{
		Bookings:   make([]BookingResponse, 0, len(result.Bookings)),
		NextCursor: result.NextCursor,
	}
	for _, b := range result.Bookings {
		response.Bookings = append(response.Bookings, bookingResponse(b))
	}
	respondJSON(c, http.StatusOK, response)
}

// GetBooking handles GET /v1/admin/bookings/:id
func (h *AdminHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, bookingResponse(booking))
}

// UpdateStatusRequest is the HTTP request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/bookings/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, bookingResponse(booking))
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id
func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	if err := h.bookingService.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StatsResponse holds per-status booking counts.
type StatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// GetStats handles GET /v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.bookingService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, StatsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Confirmed: stats.Confirmed,
		Completed: stats.Completed,
		Cancelled: stats.Cancelled,
	})
}

// CreateAdminUserRequest is the HTTP request body for creating an admin user.
type CreateAdminUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AdminUserResponse is the HTTP representation of an admin user. The
// password hash is never serialized.
type AdminUserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAdminUser handles POST /v1/admin/users
func (h *AdminHandler) CreateAdminUser(c *gin.Context) {
	var req CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.adminService.CreateAdminUser(c.Request.Context(), service.CreateAdminUserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, adminUserResponse(user))
}

// ListAdminUsers handles GET /v1/admin/users
func (h *AdminHandler) ListAdminUsers(c *gin.Context) {
	users, err := h.adminService.ListAdminUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, adminUserResponse(u))
	}
	respondJSON(c, http.StatusOK, response)
}

// DeleteAdminUser handles DELETE /v1/admin/users/:id
func (h *AdminHandler) DeleteAdminUser(c *gin.Context) {
	if err := h.adminService.DeleteAdminUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func adminUserResponse(u *domain.AdminUser) AdminUserResponse {
	return AdminUserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
