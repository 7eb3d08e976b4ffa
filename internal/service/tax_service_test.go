package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recibo/internal/domain"
	"recibo/internal/service"
	"recibo/mocks"
)

func setupTax() (*mocks.MockTaxSettingRepo, service.TaxService) {
	taxRepo := new(mocks.MockTaxSettingRepo)
	return taxRepo, service.NewTaxService(taxRepo)
}

func TestTaxCreate_DefaultsApplicableToBoth(t *testing.T) {
	taxRepo, svc := setupTax()

	taxRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxSetting")).Return(nil)

	setting, err := svc.Create(context.Background(), service.CreateTaxSettingInput{
		Name:    "Standard VAT",
		Region:  "DE",
		TaxType: domain.TaxTypeVAT,
		Rate:    19,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ApplicableToBoth, setting.ApplicableTo)
	assert.True(t, setting.IsActive)
	assert.False(t, setting.IsDefault)
}

func TestTaxCreate_RateOutOfRange(t *testing.T) {
	taxRepo, svc := setupTax()

	_, err := svc.Create(context.Background(), service.CreateTaxSettingInput{
		Name:    "Broken",
		Region:  "DE",
		TaxType: domain.TaxTypeVAT,
		Rate:    120,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
	taxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaxCreate_DefaultPromotesViaSetDefault(t *testing.T) {
	taxRepo, svc := setupTax()

	id := uuid.New()
	taxRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxSetting")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.TaxSetting).ID = id
		}).Return(nil)
	taxRepo.On("SetDefault", mock.Anything, id).Return(nil)

	setting, err := svc.Create(context.Background(), service.CreateTaxSettingInput{
		Name:      "GST",
		Region:    "IN",
		TaxType:   domain.TaxTypeGST,
		Rate:      18,
		IsDefault: true,
	})

	assert.NoError(t, err)
	assert.True(t, setting.IsDefault)
	taxRepo.AssertExpectations(t)
}

func TestTaxUpdate_RejectsBadRate(t *testing.T) {
	taxRepo, svc := setupTax()

	id := uuid.New()
	taxRepo.On("GetByID", mock.Anything, id).Return(&domain.TaxSetting{
		ID:      id,
		Name:    "Standard VAT",
		Region:  "DE",
		TaxType: domain.TaxTypeVAT,
		Rate:    19,
	}, nil)

	bad := -1.0
	_, err := svc.Update(context.Background(), id, service.UpdateTaxSettingInput{Rate: &bad})

	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
	taxRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaxUpdate_RegionMoveDemotesDefault(t *testing.T) {
	taxRepo, svc := setupTax()

	id := uuid.New()
	taxRepo.On("GetByID", mock.Anything, id).Return(&domain.TaxSetting{
		ID:        id,
		Name:      "GST",
		Region:    "IN",
		TaxType:   domain.TaxTypeGST,
		Rate:      18,
		IsDefault: true,
	}, nil)

	var updated *domain.TaxSetting
	taxRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.TaxSetting")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.TaxSetting)
		}).Return(nil)

	region := "SG"
	setting, err := svc.Update(context.Background(), id, service.UpdateTaxSettingInput{Region: &region})

	assert.NoError(t, err)
	assert.Equal(t, "SG", setting.Region)
	assert.False(t, setting.IsDefault)
	assert.False(t, updated.IsDefault)
	taxRepo.AssertExpectations(t)
}

func TestTaxUpdate_SameRegionKeepsDefault(t *testing.T) {
	taxRepo, svc := setupTax()

	id := uuid.New()
	taxRepo.On("GetByID", mock.Anything, id).Return(&domain.TaxSetting{
		ID:        id,
		Name:      "GST",
		Region:    "IN",
		TaxType:   domain.TaxTypeGST,
		Rate:      18,
		IsDefault: true,
	}, nil)
	taxRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.TaxSetting")).Return(nil)

	region := "IN"
	setting, err := svc.Update(context.Background(), id, service.UpdateTaxSettingInput{Region: &region})

	assert.NoError(t, err)
	assert.True(t, setting.IsDefault)
	taxRepo.AssertExpectations(t)
}

func TestTaxList_Delegates(t *testing.T) {
	taxRepo, svc := setupTax()

	taxRepo.On("List", mock.Anything, "DE", true).Return([]domain.TaxSetting{{Name: "Standard VAT"}}, nil)

	settings, err := svc.List(context.Background(), "DE", true)

	assert.NoError(t, err)
	assert.Len(t, settings, 1)
	taxRepo.AssertExpectations(t)
}
