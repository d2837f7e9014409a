package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finportal/invoice_finance_app/internal/apperrors"
	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portsrepo "github.com/finportal/invoice_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finportal/invoice_finance_app/internal/core/ports/services"
	"github.com/finportal/invoice_finance_app/internal/dto"
)

// defaultExpiryDays is the fallback expiry threshold when none is configured.
// An invoice older than this many days can no longer change status.
const defaultExpiryDays = 30

const defaultPageSize = 20

// invoiceServiceImpl implements the InvoiceSvcFacade interface
type invoiceServiceImpl struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepository
	supplierRepo portsrepo.SupplierRepository
	clientRepo   portsrepo.ClientRepository
	expiryDays   int
	locks        keyedLock
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceServiceImpl)

// WithExpiryDays overrides the invoice expiry threshold in days.
func WithExpiryDays(days int) InvoiceServiceOption {
	return func(s *invoiceServiceImpl) {
		if days > 0 {
			s.expiryDays = days
		}
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepository, supplierRepo portsrepo.SupplierRepository, clientRepo portsrepo.ClientRepository, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceServiceImpl{
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		clientRepo:   clientRepo,
		expiryDays:   defaultExpiryDays,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure invoiceServiceImpl implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceServiceImpl)(nil)

// findSupplier maps a missing supplier to the fixed business message.
func (s *invoiceServiceImpl) findSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "This SUPPLIER is not exist.")
		}
		return nil, err
	}
	return supplier, nil
}

// findInvoice maps a missing invoice to the fixed business message.
func (s *invoiceServiceImpl) findInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "This invoice is not exist.")
		}
		return nil, err
	}
	return invoice, nil
}

// checkUniqueNumber fails when another invoice shares supplier+number.
func (s *invoiceServiceImpl) checkUniqueNumber(ctx context.Context, supplierID, invoiceNumber string, excludeInvoiceID int64) error {
	exists, err := s.invoiceRepo.ExistsByNumber(ctx, supplierID, invoiceNumber, excludeInvoiceID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewAppError(apperrors.ErrDuplicate, "An invoice number already exists for this supplier.")
	}
	return nil
}

func (s *invoiceServiceImpl) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, callerIdentity string) (*dto.ClientInvoiceResponse, error) {
	now := time.Now()

	// Existence before uniqueness before date: the first failing rule wins.
	supplier, err := s.findSupplier(ctx, req.SupplierID)
	if err != nil {
		s.LogError(ctx, err, "Supplier check failed for invoice create",
			slog.String("supplier_id", req.SupplierID))
		return nil, err
	}
	if err := s.checkUniqueNumber(ctx, req.SupplierID, req.InvoiceNumber, 0); err != nil {
		s.LogError(ctx, err, "Invoice number uniqueness check failed",
			slog.String("supplier_id", req.SupplierID),
			slog.String("invoice_number", req.InvoiceNumber))
		return nil, err
	}
	if err := checkDateNotInPast(req.InvoiceDate, now); err != nil {
		s.LogError(ctx, err, "Invoice date check failed",
			slog.Time("invoice_date", req.InvoiceDate))
		return nil, err
	}

	// Link the caller's client party record when one exists. A caller with no
	// registered client record still owns the invoice by identity; the client
	// link stays null until registration.
	var clientID *string
	callerClient, err := s.clientRepo.FindClientByUserID(ctx, callerIdentity)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve client record for caller",
				slog.String("caller", callerIdentity))
			return nil, err
		}
	} else {
		clientID = &callerClient.ClientID
	}

	invoice := domain.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		SupplierID:    req.SupplierID,
		ClientID:      clientID,
		OwnerID:       callerIdentity,
		InvoiceDate:   req.InvoiceDate,
		Amount:        req.Amount,
		CurrencyType:  req.CurrencyType,
		Status:        domain.StatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     callerIdentity,
			LastUpdatedAt: now,
			LastUpdatedBy: callerIdentity,
		},
	}

	saved, err := s.invoiceRepo.SaveInvoice(ctx, invoice)
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice",
			slog.String("supplier_id", req.SupplierID),
			slog.String("invoice_number", req.InvoiceNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created successfully",
		slog.Int64("invoice_id", saved.InvoiceID),
		slog.String("supplier_id", saved.SupplierID))
	resp := dto.ToClientInvoiceResponse(*saved, supplier, now)
	return &resp, nil
}

func (s *invoiceServiceImpl) UpdateInvoice(ctx context.Context, req dto.UpdateInvoiceRequest, callerIdentity string) (*dto.ClientInvoiceResponse, error) {
	unlock := s.locks.lock(req.InvoiceID)
	defer unlock()

	now := time.Now()

	invoice, err := s.findInvoice(ctx, req.InvoiceID)
	if err != nil {
		s.LogError(ctx, err, "Invoice not found for update", slog.Int64("invoice_id", req.InvoiceID))
		return nil, err
	}
	if err := checkOwnedBy(*invoice, callerIdentity, actionUpdate); err != nil {
		s.LogError(ctx, err, "Caller does not own invoice",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.String("caller", callerIdentity))
		return nil, err
	}
	if err := checkEditable(*invoice, actionUpdate); err != nil {
		s.LogError(ctx, err, "Invoice not editable",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.String("status", string(invoice.Status)))
		return nil, err
	}

	targetSupplierID := invoice.SupplierID
	if req.SupplierID != nil {
		targetSupplierID = *req.SupplierID
	}
	supplier, err := s.findSupplier(ctx, targetSupplierID)
	if err != nil {
		s.LogError(ctx, err, "Supplier check failed for invoice update",
			slog.String("supplier_id", targetSupplierID))
		return nil, err
	}

	if req.InvoiceDate != nil {
		if err := checkDateNotInPast(*req.InvoiceDate, now); err != nil {
			s.LogError(ctx, err, "Invoice date check failed",
				slog.Time("invoice_date", *req.InvoiceDate))
			return nil, err
		}
	}

	targetNumber := invoice.InvoiceNumber
	if req.InvoiceNumber != nil {
		targetNumber = *req.InvoiceNumber
	}
	if err := s.checkUniqueNumber(ctx, targetSupplierID, targetNumber, invoice.InvoiceID); err != nil {
		s.LogError(ctx, err, "Invoice number uniqueness check failed",
			slog.String("supplier_id", targetSupplierID),
			slog.String("invoice_number", targetNumber))
		return nil, err
	}

	invoice.SupplierID = targetSupplierID
	invoice.InvoiceNumber = targetNumber
	if req.InvoiceDate != nil {
		invoice.InvoiceDate = *req.InvoiceDate
	}
	if req.Amount != nil {
		invoice.Amount = *req.Amount
	}
	if req.CurrencyType != nil {
		invoice.CurrencyType = *req.CurrencyType
	}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = callerIdentity

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.Int64("invoice_id", invoice.InvoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice updated successfully", slog.Int64("invoice_id", invoice.InvoiceID))
	resp := dto.ToClientInvoiceResponse(*invoice, supplier, now)
	return &resp, nil
}

func (s *invoiceServiceImpl) UpdateInvoiceStatus(ctx context.Context, req dto.UpdateInvoiceStatusRequest, callerRole domain.Role) (*dto.BankInvoiceResponse, error) {
	unlock := s.locks.lock(req.InvoiceID)
	defer unlock()

	now := time.Now()

	invoice, err := s.findInvoice(ctx, req.InvoiceID)
	if err != nil {
		s.LogError(ctx, err, "Invoice not found for status update", slog.Int64("invoice_id", req.InvoiceID))
		return nil, err
	}
	if err := checkRoleIsBank(callerRole); err != nil {
		s.LogError(ctx, err, "Caller role not permitted to update status",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.String("role", string(callerRole)))
		return nil, err
	}
	if err := checkNotExpired(*invoice, now, s.expiryDays); err != nil {
		s.LogError(ctx, err, "Invoice expired",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.Int("ageing", invoice.Ageing(now)))
		return nil, err
	}
	if err := checkTransitionAllowed(*invoice); err != nil {
		s.LogError(ctx, err, "Invoice in terminal state",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.String("status", string(invoice.Status)))
		return nil, err
	}

	invoice.Status = req.Status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = string(callerRole)

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to persist status update", slog.Int64("invoice_id", invoice.InvoiceID))
		return nil, err
	}

	// A party missing from the registry renders as null in the view, but an
	// infrastructure failure after the persist is still a failure of the call.
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, invoice.SupplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load supplier for status update view",
				slog.String("supplier_id", invoice.SupplierID))
			return nil, err
		}
		supplier = nil
	}
	var client *domain.Client
	if invoice.ClientID != nil {
		client, err = s.clientRepo.FindClientByID(ctx, *invoice.ClientID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to load client for status update view",
					slog.String("client_id", *invoice.ClientID))
				return nil, err
			}
			client = nil
		}
	}

	s.LogInfo(ctx, "Invoice status updated",
		slog.Int64("invoice_id", invoice.InvoiceID),
		slog.String("status", string(invoice.Status)))
	resp := dto.ToBankInvoiceResponse(*invoice, supplier, client, now)
	return &resp, nil
}

func (s *invoiceServiceImpl) DeleteInvoice(ctx context.Context, invoiceID int64, callerIdentity string) (int64, error) {
	unlock := s.locks.lock(invoiceID)
	defer unlock()

	invoice, err := s.findInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Invoice not found for delete", slog.Int64("invoice_id", invoiceID))
		return 0, err
	}
	if err := checkOwnedBy(*invoice, callerIdentity, actionDelete); err != nil {
		s.LogError(ctx, err, "Caller does not own invoice",
			slog.Int64("invoice_id", invoiceID),
			slog.String("caller", callerIdentity))
		return 0, err
	}
	if err := checkEditable(*invoice, actionDelete); err != nil {
		s.LogError(ctx, err, "Invoice not deletable",
			slog.Int64("invoice_id", invoiceID),
			slog.String("status", string(invoice.Status)))
		return 0, err
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.Int64("invoice_id", invoiceID))
		return 0, err
	}

	s.LogInfo(ctx, "Invoice deleted successfully", slog.Int64("invoice_id", invoiceID))
	return invoiceID, nil
}

// buildFilter copies the sparse search criteria into a repository filter.
// Role scoping is layered on top by the individual query paths.
func buildFilter(criteria dto.InvoiceSearchCriteria, today time.Time) portsrepo.InvoiceFilter {
	return portsrepo.InvoiceFilter{
		ClientID:      criteria.ClientID,
		SupplierID:    criteria.SupplierID,
		InvoiceNumber: criteria.InvoiceNumber,
		DateFrom:      criteria.DateFrom,
		DateTo:        criteria.DateTo,
		Ageing:        criteria.Ageing,
		Statuses:      criteria.Status,
		Currencies:    criteria.CurrencyType,
		Today:         today,
	}
}

func normalizePage(criteria dto.InvoiceSearchCriteria) (int, int) {
	page := criteria.Page
	if page < 0 {
		page = 0
	}
	size := criteria.Size
	if size <= 0 {
		size = defaultPageSize
	}
	return page, size
}

// suppliersFor batch-loads the supplier records referenced by a result page.
func (s *invoiceServiceImpl) suppliersFor(ctx context.Context, invoices []domain.Invoice) (map[string]domain.Supplier, error) {
	ids := make([]string, 0, len(invoices))
	seen := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		if _, ok := seen[inv.SupplierID]; !ok {
			seen[inv.SupplierID] = struct{}{}
			ids = append(ids, inv.SupplierID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Supplier{}, nil
	}
	return s.supplierRepo.FindSuppliersByIDs(ctx, ids)
}

// clientsFor batch-loads the client records referenced by a result page.
// Invoices without a linked client are skipped.
func (s *invoiceServiceImpl) clientsFor(ctx context.Context, invoices []domain.Invoice) (map[string]domain.Client, error) {
	ids := make([]string, 0, len(invoices))
	seen := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		if inv.ClientID == nil {
			continue
		}
		if _, ok := seen[*inv.ClientID]; !ok {
			seen[*inv.ClientID] = struct{}{}
			ids = append(ids, *inv.ClientID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Client{}, nil
	}
	return s.clientRepo.FindClientsByIDs(ctx, ids)
}

func (s *invoiceServiceImpl) GetBankInvoices(ctx context.Context, criteria dto.InvoiceSearchCriteria) (*dto.InvoicePage[dto.BankInvoiceResponse], error) {
	now := time.Now()
	page, size := normalizePage(criteria)

	invoices, total, err := s.invoiceRepo.QueryInvoices(ctx, buildFilter(criteria, now), page, size)
	if err != nil {
		s.LogError(ctx, err, "Failed to query invoices for bank")
		return nil, err
	}

	suppliers, err := s.suppliersFor(ctx, invoices)
	if err != nil {
		s.LogError(ctx, err, "Failed to load suppliers for invoice page")
		return nil, err
	}
	clients, err := s.clientsFor(ctx, invoices)
	if err != nil {
		s.LogError(ctx, err, "Failed to load clients for invoice page")
		return nil, err
	}

	content := make([]dto.BankInvoiceResponse, len(invoices))
	for i, inv := range invoices {
		var supplier *domain.Supplier
		if sp, ok := suppliers[inv.SupplierID]; ok {
			supplier = &sp
		}
		var client *domain.Client
		if inv.ClientID != nil {
			if cl, ok := clients[*inv.ClientID]; ok {
				client = &cl
			}
		}
		content[i] = dto.ToBankInvoiceResponse(inv, supplier, client, now)
	}

	s.LogDebug(ctx, "Bank invoice query completed",
		slog.Int("count", len(content)),
		slog.Int64("total", total))
	return &dto.InvoicePage[dto.BankInvoiceResponse]{
		Content:          content,
		Page:             page,
		Size:             size,
		TotalElements:    total,
		NumberOfElements: len(content),
	}, nil
}

func (s *invoiceServiceImpl) GetClientInvoices(ctx context.Context, criteria dto.InvoiceSearchCriteria, callerIdentity string) (*dto.InvoicePage[dto.ClientInvoiceResponse], error) {
	now := time.Now()
	page, size := normalizePage(criteria)

	// A client only ever sees invoices it created, whatever criteria it sends.
	filter := buildFilter(criteria, now)
	filter.OwnerID = &callerIdentity

	invoices, total, err := s.invoiceRepo.QueryInvoices(ctx, filter, page, size)
	if err != nil {
		s.LogError(ctx, err, "Failed to query invoices for client", slog.String("caller", callerIdentity))
		return nil, err
	}

	suppliers, err := s.suppliersFor(ctx, invoices)
	if err != nil {
		s.LogError(ctx, err, "Failed to load suppliers for invoice page")
		return nil, err
	}

	content := make([]dto.ClientInvoiceResponse, len(invoices))
	for i, inv := range invoices {
		var supplier *domain.Supplier
		if sp, ok := suppliers[inv.SupplierID]; ok {
			supplier = &sp
		}
		content[i] = dto.ToClientInvoiceResponse(inv, supplier, now)
	}

	return &dto.InvoicePage[dto.ClientInvoiceResponse]{
		Content:          content,
		Page:             page,
		Size:             size,
		TotalElements:    total,
		NumberOfElements: len(content),
	}, nil
}

func (s *invoiceServiceImpl) GetSupplierInvoices(ctx context.Context, criteria dto.InvoiceSearchCriteria, callerIdentity string) (*dto.InvoicePage[dto.SupplierInvoiceResponse], error) {
	now := time.Now()
	page, size := normalizePage(criteria)

	supplier, err := s.supplierRepo.FindSupplierByUserID(ctx, callerIdentity)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.NewAppError(apperrors.ErrNotFound, "This SUPPLIER is not exist.")
		}
		s.LogError(ctx, err, "Failed to resolve supplier for caller", slog.String("caller", callerIdentity))
		return nil, err
	}

	// A supplier only ever sees invoices addressed to it.
	filter := buildFilter(criteria, now)
	filter.SupplierID = &supplier.SupplierID

	invoices, total, err := s.invoiceRepo.QueryInvoices(ctx, filter, page, size)
	if err != nil {
		s.LogError(ctx, err, "Failed to query invoices for supplier", slog.String("supplier_id", supplier.SupplierID))
		return nil, err
	}

	clients, err := s.clientsFor(ctx, invoices)
	if err != nil {
		s.LogError(ctx, err, "Failed to load clients for invoice page")
		return nil, err
	}

	content := make([]dto.SupplierInvoiceResponse, len(invoices))
	for i, inv := range invoices {
		var client *domain.Client
		if inv.ClientID != nil {
			if cl, ok := clients[*inv.ClientID]; ok {
				client = &cl
			}
		}
		content[i] = dto.ToSupplierInvoiceResponse(inv, client, now)
	}

	return &dto.InvoicePage[dto.SupplierInvoiceResponse]{
		Content:          content,
		Page:             page,
		Size:             size,
		TotalElements:    total,
		NumberOfElements: len(content),
	}, nil
}
