// Package xlsx renders reports as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	summarySheet = "Özet"
	detailSheet  = "Hareketler"
)

var typeLabels = map[domain.TransactionType]string{
	domain.TransactionTypeSale:    "Satış",
	domain.TransactionTypePayment: "Tahsilat",
	domain.TransactionTypeExpense: "Masraf",
	domain.TransactionTypeReturn:  "İade",
}

var reportTypes = []domain.TransactionType{
	domain.TransactionTypeSale,
	domain.TransactionTypePayment,
	domain.TransactionTypeExpense,
	domain.TransactionTypeReturn,
}

// WriteDailyReport renders r as a two-sheet workbook into w.
func WriteDailyReport(w io.Writer, r domain.DailyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("xlsx: new sheet: %w", err)
	}

	if err := writeSummary(f, r); err != nil {
		return err
	}
	if err := writeDetail(f, r); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r domain.DailyReport) error {
	rows := [][]any{
		{"Tarih", r.Day.Format("2006-01-02")},
		{},
		{"Tür", "Adet", "Toplam"},
	}
	for _, t := range reportTypes {
		total, _ := r.Totals[t].Float64()
		rows = append(rows, []any{typeLabels[t], r.Counts[t], total})
	}
	net, _ := r.Net.Float64()
	rows = append(rows, []any{}, []any{"Net", "", net})

	return setRows(f, summarySheet, rows)
}

func writeDetail(f *excelize.File, r domain.DailyReport) error {
	rows := [][]any{{"Sıra", "Seri", "Saat", "Tür", "Cari", "Tutar", "Açıklama"}}
	for _, t := range r.Transactions {
		amount, _ := t.Amount.Float64()
		rows = append(rows, []any{
			t.Sequence,
			t.Series,
			t.Date.Format("15:04"),
			typeLabels[t.Type],
			t.CustomerCode,
			amount,
			t.Description,
		})
	}
	return setRows(f, detailSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
