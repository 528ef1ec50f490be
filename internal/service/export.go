package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/site-inventory/internal/domain/inventory"
)

// BuildInventoryXLSX renders a construction's inventory as an XLSX workbook,
// one row per storage item.
func BuildInventoryXLSX(constructionName string, rows []inventory.MaterialRow) ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"construction_id",
		"material_id",
		"material_name",
		"category",
		"description",
		"unit",
		"quantity",
		"created_at",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", err
	}

	row := 2
	for _, it := range rows {
		excelRow := []interface{}{
			it.ConstructionID.String(),
			it.MaterialID.String(),
			it.Name,
			it.Category,
			it.Description,
			it.Unit,
			it.Quantity.String(),
			it.CreatedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, "", err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("inventory_%s_%s.xlsx",
		constructionName,
		time.Now().Format("20060102_150405"),
	)
	return buf.Bytes(), fileName, nil
}
