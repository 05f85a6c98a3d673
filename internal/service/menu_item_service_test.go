package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vatledger/internal/domain"
	"vatledger/internal/service"
	"vatledger/mocks"
)

func TestMenuItemService_Create_Simple(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	tenantID := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil)

	item, err := svc.Create(context.Background(), tenantID, service.MenuItemInput{
		Name:    "  Chicken Tikka  ",
		Price:   dec("9.50"),
		VATRate: rate("20"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Chicken Tikka", item.Name)
	assert.Equal(t, tenantID, item.TenantID)
	assert.Equal(t, domain.VATTypeSimple, item.VATType)
	repo.AssertExpectations(t)
}

func TestMenuItemService_Create_ZeroRateIsAChoice(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil)

	item, err := svc.Create(context.Background(), uuid.New(), service.MenuItemInput{
		Name:    "Bottled Water",
		Price:   dec("1.20"),
		VATRate: rate("0"),
	})

	require.NoError(t, err)
	assert.True(t, item.VATRate.Valid)
}

func TestMenuItemService_Create_Mixed(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).Return(nil)

	item, err := svc.Create(context.Background(), uuid.New(), service.MenuItemInput{
		Name:    "Biryani Meal",
		Price:   dec("20.00"),
		VATType: domain.VATTypeMixed,
		Components: []domain.Component{
			{Label: "Hot Food", GrossAmount: dec("15.00"), VATRate: rate("20")},
			{Label: "Raita", GrossAmount: dec("5.00"), VATRate: rate("0")},
		},
	})

	require.NoError(t, err)
	assert.Len(t, item.Components, 2)
}

func TestMenuItemService_Create_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		input   service.MenuItemInput
		wantErr error
	}{
		{
			name:    "blank name",
			input:   service.MenuItemInput{Name: "   ", Price: dec("3.00"), VATRate: rate("20")},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "rate never chosen",
			input:   service.MenuItemInput{Name: "Naan", Price: dec("3.00")},
			wantErr: domain.ErrVATRateUnset,
		},
		{
			name:    "negative price",
			input:   service.MenuItemInput{Name: "Naan", Price: dec("-1"), VATRate: rate("20")},
			wantErr: domain.ErrInvalidPrice,
		},
		{
			name:    "unknown vat type",
			input:   service.MenuItemInput{Name: "Naan", Price: dec("3.00"), VATRate: rate("20"), VATType: "reduced"},
			wantErr: domain.ErrInvalidVATType,
		},
		{
			name:    "mixed without components",
			input:   service.MenuItemInput{Name: "Thali", Price: dec("12.00"), VATType: domain.VATTypeMixed},
			wantErr: domain.ErrMixedItemNoComponents,
		},
		{
			name: "mixed components do not add up",
			input: service.MenuItemInput{
				Name:    "Thali",
				Price:   dec("12.00"),
				VATType: domain.VATTypeMixed,
				Components: []domain.Component{
					{Label: "Hot Food", GrossAmount: dec("8.00"), VATRate: rate("20")},
					{Label: "Dessert", GrossAmount: dec("3.00"), VATRate: rate("0")},
				},
			},
			wantErr: domain.ErrMixedItemUnreconciled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockMenuItemRepo)
			svc := service.NewMenuItemService(repo)

			item, err := svc.Create(context.Background(), uuid.New(), tt.input)

			assert.Nil(t, item)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestMenuItemService_Create_Duplicate(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateItem)

	item, err := svc.Create(context.Background(), uuid.New(), service.MenuItemInput{
		Name: "Naan", Price: dec("3.00"), VATRate: rate("20"),
	})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)
}

func TestMenuItemService_Update_ChangesRate(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	tenantID, itemID := uuid.New(), uuid.New()
	existing := &domain.MenuItem{ID: itemID, TenantID: tenantID, Name: "Naan", Price: dec("3.00"), VATRate: rate("20"), VATType: domain.VATTypeSimple}
	repo.On("GetByID", mock.Anything, tenantID, itemID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	zero := rate("0")
	item, err := svc.Update(context.Background(), tenantID, itemID, service.UpdateMenuItemInput{VATRate: &zero})

	require.NoError(t, err)
	assert.True(t, item.VATRate.Decimal.IsZero())
	repo.AssertExpectations(t)
}

func TestMenuItemService_Update_ClearingRateRejected(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	tenantID, itemID := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, itemID).
		Return(&domain.MenuItem{ID: itemID, TenantID: tenantID, Name: "Naan", Price: dec("3.00"), VATRate: rate("20")}, nil)

	unset := decimal.NullDecimal{}
	item, err := svc.Update(context.Background(), tenantID, itemID, service.UpdateMenuItemInput{VATRate: &unset})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrVATRateUnset)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMenuItemService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	tenantID, itemID := uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, itemID).Return(nil, domain.ErrItemNotFound)

	name := "Garlic Naan"
	item, err := svc.Update(context.Background(), tenantID, itemID, service.UpdateMenuItemInput{Name: &name})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestMenuItemService_List(t *testing.T) {
	repo := new(mocks.MockMenuItemRepo)
	svc := service.NewMenuItemService(repo)

	tenantID := uuid.New()
	items := []domain.MenuItem{{Name: "Naan"}, {Name: "Dal"}}
	repo.On("List", mock.Anything, tenantID, 0, 20).Return(items, 2, nil)

	got, total, err := svc.List(context.Background(), tenantID, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)
}
