package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portsrepo "github.com/finportal/invoice_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finportal/invoice_finance_app/internal/core/ports/services"
	"github.com/finportal/invoice_finance_app/internal/dto"
)

// partyServiceImpl implements the PartySvcFacade interface
type partyServiceImpl struct {
	BaseService
	supplierRepo portsrepo.SupplierRepository
	clientRepo   portsrepo.ClientRepository
}

// NewPartyService creates a new party registration service
func NewPartyService(supplierRepo portsrepo.SupplierRepository, clientRepo portsrepo.ClientRepository) portssvc.PartySvcFacade {
	return &partyServiceImpl{
		supplierRepo: supplierRepo,
		clientRepo:   clientRepo,
	}
}

// Ensure partyServiceImpl implements the PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyServiceImpl)(nil)

func (s *partyServiceImpl) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorIdentity string) (*dto.SupplierResponse, error) {
	seq, err := s.supplierRepo.NextSupplierNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate supplier number")
		return nil, err
	}

	now := time.Now()
	supplier := domain.Supplier{
		SupplierID: fmt.Sprintf("SP_%05d", seq),
		UserID:     req.UserID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorIdentity,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorIdentity,
		},
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		s.LogError(ctx, err, "Failed to save supplier", slog.String("supplier_id", supplier.SupplierID))
		return nil, err
	}

	s.LogInfo(ctx, "Supplier registered", slog.String("supplier_id", supplier.SupplierID))
	resp := dto.ToSupplierResponse(&supplier)
	return &resp, nil
}

func (s *partyServiceImpl) GetSupplierByID(ctx context.Context, supplierID string) (*dto.SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSupplierResponse(supplier)
	return &resp, nil
}

func (s *partyServiceImpl) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorIdentity string) (*dto.ClientResponse, error) {
	seq, err := s.clientRepo.NextClientNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate client number")
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID: fmt.Sprintf("CL_%05d", seq),
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorIdentity,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorIdentity,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Client registered", slog.String("client_id", client.ClientID))
	resp := dto.ToClientResponse(&client)
	return &resp, nil
}

func (s *partyServiceImpl) GetClientByID(ctx context.Context, clientID string) (*dto.ClientResponse, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToClientResponse(client)
	return &resp, nil
}
