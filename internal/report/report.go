// Package report собирает выгрузки в xlsx.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StockWorkbook - склад с пометкой низкого остатка в каждой строке.
func StockWorkbook(items []stock.Item) ([]byte, error) {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		low := "no"
		if it.Low() {
			low = "yes"
		}
		rows = append(rows, []any{it.ID, it.Name, it.Quantity, it.DangerLevel, low})
	}
	return build("Stock", []any{"id", "item_name", "quantity", "danger_level", "low"}, rows)
}

// EmployeesWorkbook - все сотрудники с выданными им комплектами.
func EmployeesWorkbook(list []employees.Employee) ([]byte, error) {
	header := []any{"employee_id", "first_name", "last_name", "emergency_no", "blood_group", "department_name"}
	for _, it := range employees.Items {
		header = append(header, it.Field())
	}
	header = append(header, "created_at")

	rows := make([][]any, 0, len(list))
	for _, e := range list {
		row := []any{e.EmployeeID, e.FirstName, e.LastName, e.EmergencyNo, e.BloodGroup, e.DepartmentName}
		for _, it := range employees.Items {
			row = append(row, e.Issued(it))
		}
		row = append(row, e.CreatedAt.Format("2006-01-02 15:04:05"))
		rows = append(rows, row)
	}
	return build("Employees", header, rows)
}

func build(sheet string, header []any, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
