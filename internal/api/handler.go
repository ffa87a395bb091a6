package api

import (
	"errors"
	"net/http"
	"time"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	bookings     *service.BookingService
	appointments *service.AppointmentService
	catalog      *service.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(bookings *service.BookingService, appointments *service.AppointmentService, catalog *service.CatalogService) *Handler {
	return &Handler{
		bookings:     bookings,
		appointments: appointments,
		catalog:      catalog,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/bookings", h.createBooking)
		v1.PATCH("/bookings/:id", h.updateBookingStatus)
		v1.GET("/bookings/seller/:sellerId", h.listSellerBookings)

		v1.POST("/servicebookings", h.createAppointment)
		v1.PUT("/servicebookings/:id", h.updateAppointment)
		v1.DELETE("/servicebookings/:id", h.deleteAppointment)
		v1.GET("/servicebookings/vet-appointments/:vetId", h.listVetAppointments)
		v1.GET("/servicebookings/buyer-appointments/:buyerId", h.listBuyerAppointments)
		v1.GET("/servicebookings/seller-appointments/:sellerId", h.listSellerAppointments)

		v1.POST("/pets", h.createPet)
		v1.GET("/pets", h.listAvailablePets)
		v1.GET("/pets/:id", h.getPet)
		v1.GET("/sellers/:sellerId/pets", h.listSellerPets)
		v1.GET("/vets/:vetId/services", h.listVetServices)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// createBooking handles a buyer's adoption request for a pet
func (h *Handler) createBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking requested",
		"booking": booking,
	})
}

type updateBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateBookingStatus handles the seller's accept/decline/complete decision
func (h *Handler) updateBookingStatus(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.bookings.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking " + booking.Status,
		"booking": booking,
	})
}

func (h *Handler) listSellerBookings(c *gin.Context) {
	details, err := h.bookings.ListSellerBookings(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) createAppointment(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	sb, err := h.appointments.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sb)
}

func (h *Handler) updateAppointment(c *gin.Context) {
	var req service.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	sb, err := h.appointments.UpdateAppointmentStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sb)
}

func (h *Handler) deleteAppointment(c *gin.Context) {
	if err := h.appointments.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service booking deleted"})
}

func (h *Handler) listVetAppointments(c *gin.Context) {
	details, err := h.appointments.ListVetAppointments(c.Request.Context(), c.Param("vetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) listBuyerAppointments(c *gin.Context) {
	details, err := h.appointments.ListBuyerAppointments(c.Request.Context(), c.Param("buyerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) listSellerAppointments(c *gin.Context) {
	details, err := h.appointments.ListSellerAppointments(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) createPet(c *gin.Context) {
	var req service.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	pet, err := h.catalog.CreatePet(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func (h *Handler) getPet(c *gin.Context) {
	pet, err := h.catalog.GetPet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

func (h *Handler) listSellerPets(c *gin.Context) {
	pets, err := h.catalog.ListSellerPets(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

func (h *Handler) listAvailablePets(c *gin.Context) {
	pets, err := h.catalog.ListAvailablePets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

func (h *Handler) listVetServices(c *gin.Context) {
	services, err := h.catalog.ListVetServices(c.Request.Context(), c.Param("vetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
