package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type CustomerServiceInterface interface {
	GetCustomers(ctx context.Context, filter types.Filter) ([]dto.CustomerDTO, uint64, error)
	FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error)
	CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error)
	UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error)
	DeleteCustomer(ctx context.Context, id uint64) error
}

type CustomerService struct {
	customerRepository repositories.CustomerRepositoryInterface
	logger             *zap.Logger
}

func NewCustomerService(customerRepository repositories.CustomerRepositoryInterface, logger *zap.Logger) CustomerServiceInterface {
	return &CustomerService{
		customerRepository: customerRepository,
		logger:             logger,
	}
}

func (s *CustomerService) GetCustomers(ctx context.Context, filter types.Filter) ([]dto.CustomerDTO, uint64, error) {
	return s.customerRepository.GetCustomers(ctx, filter)
}

func (s *CustomerService) FindCustomer(ctx context.Context, id uint64) (*dto.CustomerDTO, error) {
	return s.customerRepository.FindCustomer(ctx, id)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, payload dto.CreateCustomerDTO) (*dto.CustomerDTO, error) {
	created, err := s.customerRepository.CreateCustomer(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create customer", zap.Error(err), zap.String("code", payload.CustomerCode))
		return nil, err
	}
	s.logger.Info("customer created", zap.Uint64("id", created.ID), zap.String("code", created.CustomerCode))
	return created, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint64, payload dto.UpdateCustomerDTO) (*dto.CustomerDTO, error) {
	updated, err := s.customerRepository.UpdateCustomer(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update customer", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint64) error {
	if err := s.customerRepository.DeleteCustomer(ctx, id); err != nil {
		s.logger.Error("failed to delete customer", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("customer deleted", zap.Uint64("id", id))
	return nil
}
