package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"joyvision-web/internal/format"
	"joyvision-web/internal/storage"
)

const sheet = "Системы"

type OrderSource interface {
	Order(ctx context.Context, orderID int) (*storage.Order, error)
}

type GenerateExcelService struct {
	orders OrderSource
}

func NewGenerateService(orders OrderSource) *GenerateExcelService {
	return &GenerateExcelService{orders: orders}
}

// GenerateSystems выгружает позиции заказа в xlsx.
func (g *GenerateExcelService) GenerateSystems(ctx context.Context, orderID int) ([]byte, error) {
	const op = "service.generate_excel.GenerateSystems"

	order, err := g.orders.Order(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch order: %w", op, err)
	}

	data, err := BuildSystemsSheet(order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

// BuildSystemsSheet собирает книгу из одного листа: шапка, позиции, итог.
func BuildSystemsSheet(order *storage.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	headers := []string{"№", "Система", "Ширина, мм", "Высота, мм", "Створок", "Открывание", "Стоимость, ₽"}
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	for i, s := range order.Systems {
		row := i + 2

		f.SetCellValue(sheet, cellName(1, row), s.Position)
		f.SetCellValue(sheet, cellName(2, row), s.SystemType)
		f.SetCellValue(sheet, cellName(3, row), s.Width)
		f.SetCellValue(sheet, cellName(4, row), s.Height)
		f.SetCellValue(sheet, cellName(5, row), s.Panels.InexactFloat64())
		f.SetCellValue(sheet, cellName(6, row), s.Opening)
		f.SetCellValue(sheet, cellName(7, row), s.Price.Round(0).IntPart())
	}

	// итог заказа со скидкой, как его посчитал бэкенд
	totalRow := len(order.Systems) + 3
	f.SetCellValue(sheet, cellName(6, totalRow), "Итого:")
	f.SetCellValue(sheet, cellName(7, totalRow), order.TotalPrice.Round(0).IntPart())
	f.SetCellValue(sheet, cellName(1, totalRow+1), fmt.Sprintf("Заказ #%d, %s, статус: %s", order.ID, order.CustomerName, format.Status(order.Status)))

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
