package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/kit-inventory/internal/domain/employees"
	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

func open(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestStockWorkbook(t *testing.T) {
	data, err := StockWorkbook([]stock.Item{
		{ID: 1, Name: "bag", Quantity: 20, DangerLevel: 30},
		{ID: 2, Name: "pen", Quantity: 90, DangerLevel: 30},
	})
	require.NoError(t, err)

	rows := open(t, data, "Stock")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "item_name", "quantity", "danger_level", "low"}, rows[0])
	assert.Equal(t, []string{"1", "bag", "20", "30", "yes"}, rows[1])
	assert.Equal(t, []string{"2", "pen", "90", "30", "no"}, rows[2])
}

func TestEmployeesWorkbook(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	data, err := EmployeesWorkbook([]employees.Employee{{
		EmployeeID: "E1", FirstName: "Ann", LastName: "Lee", EmergencyNo: "555",
		BloodGroup: "O+", DepartmentName: "Ops", BagQuantity: 2, TshirtXXXLQuantity: 1, CreatedAt: created,
	}})
	require.NoError(t, err)

	rows := open(t, data, "Employees")
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 17)
	assert.Equal(t, "bag_quantity", rows[0][6])
	assert.Equal(t, "tshirt_xxxl_quantity", rows[0][15])
	assert.Equal(t, "E1", rows[1][0])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "1", rows[1][15])
	assert.Equal(t, "2024-03-01 09:00:00", rows[1][16])
}

func TestEmptyWorkbookHasHeader(t *testing.T) {
	data, err := EmployeesWorkbook(nil)
	require.NoError(t, err)
	assert.Len(t, open(t, data, "Employees"), 1)
}
