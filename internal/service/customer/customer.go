// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk-service/internal/domain/customer"
	"tourdesk-service/internal/pkg/metrics"
	"tourdesk-service/internal/pkg/validation"

	"go.uber.org/zap"
)

// Repository is the customer storage the service needs.
type Repository interface {
	Create(ctx context.Context, c *customer.Customer) error
	CreateNumbered(ctx context.Context, c *customer.Customer, period customer.Period, loc *time.Location) error
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
	FindByNumber(ctx context.Context, number string) (*customer.Customer, error)
	Update(ctx context.Context, c *customer.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.Customer, int64, error)
}

type CustomerService struct {
	customerRepo Repository
	loc          *time.Location
	now          func() time.Time
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewCustomerService(customerRepo Repository, loc *time.Location, m *metrics.Metrics, logger *zap.Logger) *CustomerService {
	if loc == nil {
		loc = time.UTC
	}
	return &CustomerService{
		customerRepo: customerRepo,
		loc:          loc,
		now:          time.Now,
		metrics:      m,
		logger:       logger,
	}
}

// CreateCustomer validates and stores a customer. Without an explicit
// customer number one is allocated for the current month.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	c := &customer.Customer{
		CustomerNumber: strings.TrimSpace(req.CustomerNumber),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		PassportNumber: req.PassportNumber,
		IdentityNumber: req.IdentityNumber,
		BirthDate:      req.BirthDate,
		BirthPlace:     req.BirthPlace,
		Address:        req.Address,
		Country:        strings.TrimSpace(req.Country),
		City:           strings.TrimSpace(req.City),
		Nationality:    req.Nationality,
		Age:            req.Age,
		Gender:         req.Gender,
		CreatedAt:      s.now().In(s.loc),
	}

	if err := validation.Struct(c); err != nil {
		return nil, err
	}

	var err error
	if c.CustomerNumber != "" {
		err = s.customerRepo.Create(ctx, c)
	} else {
		err = s.customerRepo.CreateNumbered(ctx, c, customer.PeriodOf(c.CreatedAt), s.loc)
	}
	if err != nil {
		s.logger.Error("failed to create customer", zap.String("email", c.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.metrics.CustomersCreated.Inc()
	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("customer_number", c.CustomerNumber),
	)

	return c, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// GetCustomerByNumber retrieves a customer by customer number
func (s *CustomerService) GetCustomerByNumber(ctx context.Context, number string) (*customer.Customer, error) {
	return s.customerRepo.FindByNumber(ctx, number)
}

// UpdateCustomer applies the provided fields. The customer number never changes.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		c.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.PassportNumber != nil {
		c.PassportNumber = *req.PassportNumber
	}
	if req.IdentityNumber != nil {
		c.IdentityNumber = *req.IdentityNumber
	}
	if req.BirthDate != nil {
		c.BirthDate = req.BirthDate
	}
	if req.BirthPlace != nil {
		c.BirthPlace = *req.BirthPlace
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Country != nil {
		c.Country = strings.TrimSpace(*req.Country)
	}
	if req.City != nil {
		c.City = strings.TrimSpace(*req.City)
	}
	if req.Nationality != nil {
		c.Nationality = *req.Nationality
	}
	if req.ClearAge {
		c.Age = nil
	} else if req.Age != nil {
		c.Age = req.Age
	}
	if req.Gender != nil {
		c.Gender = *req.Gender
	}

	if err := validation.Struct(c); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update customer", zap.Int64("customer_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", id))
	return c, nil
}

// DeleteCustomer removes a customer together with its bookings
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}

// ListCustomers lists customers with filters and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, filters *customer.CustomerListFilters) (*customer.CustomerListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}
	filters.Search = strings.TrimSpace(filters.Search)

	customers, total, err := s.customerRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &customer.CustomerListResponse{
		Customers:  customers,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}
