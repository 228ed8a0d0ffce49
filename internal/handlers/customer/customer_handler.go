// internal/handlers/customer/customer_handler.go
package customer

import (
	"context"
	"net/http"
	"strconv"

	"tourdesk-service/internal/domain/customer"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Service is the customer use case set the handler serves.
type Service interface {
	CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*customer.Customer, error)
	GetCustomerByNumber(ctx context.Context, number string) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context, filters *customer.CustomerListFilters) (*customer.CustomerListResponse, error)
}

type CustomerHandler struct {
	customerService Service
}

func NewCustomerHandler(customerService Service) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// ========== Write Endpoints ==========

// CreateCustomer creates a customer; the number is allocated unless given.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created successfully", result)
}

// UpdateCustomer updates a customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, &req)
	if err != nil {
		response.FromError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated successfully", result)
}

// DeleteCustomer deletes a customer and its bookings
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		response.FromError(c, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted successfully", nil)
}

// ========== Read Endpoints ==========

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// GetCustomerByNumber retrieves a customer by its customer number
func (h *CustomerHandler) GetCustomerByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		response.Error(c, http.StatusBadRequest, "customer number is required", nil)
		return
	}

	result, err := h.customerService.GetCustomerByNumber(c.Request.Context(), number)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// ListCustomers retrieves customers with filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}
