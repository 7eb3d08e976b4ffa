package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"recibo/internal/domain"
)

// ReceiptsXLSX builds an xlsx workbook with one sheet of decrypted receipt
// rows. The caller owns the returned file and is responsible for closing it.
func ReceiptsXLSX(views []domain.ReceiptView) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, name := range receiptColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.ReceiptsXLSX: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("export.ReceiptsXLSX: %w", err)
		}
	}

	for i := range views {
		if err := writeSheetRow(f, sheet, i+2, receiptToRow(&views[i])); err != nil {
			return nil, fmt.Errorf("export.ReceiptsXLSX: %w", err)
		}
	}
	return f, nil
}

// InvoicesXLSX builds an xlsx workbook with one sheet of decrypted invoice
// rows.
func InvoicesXLSX(views []domain.InvoiceView) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, name := range invoiceColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.InvoicesXLSX: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("export.InvoicesXLSX: %w", err)
		}
	}

	for i := range views {
		if err := writeSheetRow(f, sheet, i+2, invoiceToRow(&views[i])); err != nil {
			return nil, fmt.Errorf("export.InvoicesXLSX: %w", err)
		}
	}
	return f, nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
