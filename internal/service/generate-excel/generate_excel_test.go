package generate_excel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"joyvision-web/internal/storage"
)

type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) Order(ctx context.Context, orderID int) (*storage.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Order), args.Error(1)
}

func TestGenerateSystems(t *testing.T) {
	source := new(MockOrderSource)
	source.On("Order", mock.Anything, 3).Return(&storage.Order{
		ID:           3,
		CustomerName: "Сидоров",
		Status:       storage.StatusConfirmed,
		TotalPrice:   decimal.NewFromInt(90000),
		Systems: []storage.System{
			{Position: 1, SystemType: "Слайдинг", Width: 1200, Height: 1500, Panels: decimal.NewFromInt(2), Opening: "влево", Price: decimal.NewFromInt(40000)},
			{Position: 2, SystemType: "Гармошка", Width: 2400, Height: 2100, Panels: decimal.NewFromInt(4), Opening: "вправо", Price: decimal.NewFromInt(50000)},
		},
	}, nil)

	data, err := NewGenerateService(source).GenerateSystems(context.Background(), 3)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(name string) string {
		v, err := f.GetCellValue(sheet, name)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "№", cell("A1"))
	assert.Equal(t, "Система", cell("B1"))
	assert.Equal(t, "1", cell("A2"))
	assert.Equal(t, "Слайдинг", cell("B2"))
	assert.Equal(t, "1200", cell("C2"))
	assert.Equal(t, "Гармошка", cell("B3"))
	assert.Equal(t, "50000", cell("G3"))
	assert.Equal(t, "Итого:", cell("F5"))
	assert.Equal(t, "90000", cell("G5"))
	assert.Contains(t, cell("A6"), "Подтверждён")

	source.AssertExpectations(t)
}

func TestGenerateSystems_OrderError(t *testing.T) {
	source := new(MockOrderSource)
	source.On("Order", mock.Anything, 3).Return(nil, errors.New("backend down"))

	_, err := NewGenerateService(source).GenerateSystems(context.Background(), 3)
	assert.ErrorContains(t, err, "backend down")
}

func TestBuildSystemsSheet_Empty(t *testing.T) {
	data, err := BuildSystemsSheet(&storage.Order{ID: 1})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "Итого:", v)
}
