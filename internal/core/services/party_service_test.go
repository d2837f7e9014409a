package services_test

import (
	"context"
	"testing"

	"github.com/finportal/invoice_finance_app/internal/apperrors"
	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portssvc "github.com/finportal/invoice_finance_app/internal/core/ports/services"
	"github.com/finportal/invoice_finance_app/internal/core/services"
	"github.com/finportal/invoice_finance_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type PartyServiceTestSuite struct {
	suite.Suite
	mockSupplierRepo *MockSupplierRepository
	mockClientRepo   *MockClientRepository
	service          portssvc.PartySvcFacade
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewPartyService(suite.mockSupplierRepo, suite.mockClientRepo)
}

func (suite *PartyServiceTestSuite) TestCreateSupplier_Success() {
	ctx := context.Background()
	creator := "admin-1"
	req := dto.CreateSupplierRequest{
		UserID: "supplier-user",
		Name:   "Acme Metals",
		Email:  "sales@acme.test",
		Phone:  "555-0100",
	}

	suite.mockSupplierRepo.On("NextSupplierNumber", ctx).Return(int64(1), nil).Once()
	suite.mockSupplierRepo.On("SaveSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.SupplierID == "SP_00001" &&
			s.UserID == req.UserID &&
			s.Name == req.Name &&
			s.CreatedBy == creator
	})).Return(nil).Once()

	resp, err := suite.service.CreateSupplier(ctx, req, creator)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("SP_00001", resp.SupplierID)
	suite.Equal(req.Name, resp.Name)
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateSupplier_CodeIsZeroPadded() {
	ctx := context.Background()
	req := dto.CreateSupplierRequest{UserID: "u", Name: "N", Email: "e@x.test"}

	suite.mockSupplierRepo.On("NextSupplierNumber", ctx).Return(int64(1234), nil).Once()
	suite.mockSupplierRepo.On("SaveSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.SupplierID == "SP_01234"
	})).Return(nil).Once()

	resp, err := suite.service.CreateSupplier(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("SP_01234", resp.SupplierID)
}

func (suite *PartyServiceTestSuite) TestCreateSupplier_SequenceError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockSupplierRepo.On("NextSupplierNumber", ctx).Return(int64(0), expectedErr).Once()

	resp, err := suite.service.CreateSupplier(ctx, dto.CreateSupplierRequest{}, "admin-1")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
	suite.mockSupplierRepo.AssertNotCalled(suite.T(), "SaveSupplier", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		UserID: "client-user",
		Name:   "Initech",
		Email:  "ap@initech.test",
	}

	suite.mockClientRepo.On("NextClientNumber", ctx).Return(int64(7), nil).Once()
	suite.mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.ClientID == "CL_00007" && c.UserID == req.UserID
	})).Return(nil).Once()

	resp, err := suite.service.CreateClient(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("CL_00007", resp.ClientID)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateClient_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockClientRepo.On("NextClientNumber", ctx).Return(int64(8), nil).Once()
	suite.mockClientRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).Return(expectedErr).Once()

	resp, err := suite.service.CreateClient(ctx, dto.CreateClientRequest{Name: "X"}, "admin-1")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
}

func (suite *PartyServiceTestSuite) TestGetSupplierByID_Success() {
	ctx := context.Background()
	supplier := &domain.Supplier{SupplierID: "SP_00001", Name: "Acme Metals"}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, "SP_00001").Return(supplier, nil).Once()

	resp, err := suite.service.GetSupplierByID(ctx, "SP_00001")

	suite.Require().NoError(err)
	suite.Equal("SP_00001", resp.SupplierID)
	suite.Equal("Acme Metals", resp.Name)
}

func (suite *PartyServiceTestSuite) TestGetClientByID_NotFound() {
	ctx := context.Background()

	suite.mockClientRepo.On("FindClientByID", ctx, "CL_99999").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetClientByID(ctx, "CL_99999")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
