package employees

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
)

func raw(t *testing.T, body string) Raw {
	t.Helper()
	var r Raw
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func problemsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Problems
}

func TestParseNewCollectsEveryProblem(t *testing.T) {
	_, err := ParseNew(raw(t, `{
		"employee_id": "E1",
		"emergency_no": "555-0101",
		"blood_group": "O+",
		"department_name": "Ops",
		"pen_quantity": -3
	}`))

	assert.ElementsMatch(t, []string{
		"first_name is required",
		"last_name is required",
		"pen_quantity cannot be negative",
	}, problemsOf(t, err))
}

func TestParseNewTypes(t *testing.T) {
	_, err := ParseNew(raw(t, `{
		"employee_id": 7,
		"first_name": "Ann",
		"last_name": "Lee",
		"emergency_no": "1",
		"blood_group": "Q",
		"department_name": "Ops",
		"bag_quantity": "two"
	}`))

	assert.ElementsMatch(t, []string{
		"employee_id must be a string",
		bloodGroupProblem,
		"bag_quantity must be an integer",
	}, problemsOf(t, err))
}

func TestParseNewRespectsColumnLimits(t *testing.T) {
	_, err := ParseNew(raw(t, `{
		"employee_id": "`+strings.Repeat("x", 51)+`",
		"first_name": "Ann",
		"last_name": "`+strings.Repeat("л", 100)+`",
		"emergency_no": "+1 (555) 0101-0101-0101",
		"blood_group": "O+",
		"department_name": "Ops",
		"bag_quantity": 9223372036854775807,
		"pen_quantity": 2147483647
	}`))

	assert.ElementsMatch(t, []string{
		"employee_id must be at most 50 characters",
		"emergency_no must be at most 20 characters",
		"bag_quantity cannot exceed 2147483647",
	}, problemsOf(t, err))
}

func TestValidateNewMatchesParseNew(t *testing.T) {
	e := Employee{EmployeeID: "E1", FirstName: " ", LastName: "Lee", EmergencyNo: "1", BloodGroup: "", DepartmentName: "Ops", DiaryQuantity: -1}
	assert.ElementsMatch(t, []string{
		"first_name is required",
		"blood_group is required",
		"diary_quantity cannot be negative",
	}, problemsOf(t, ValidateNew(e)))

	e.FirstName, e.BloodGroup, e.DiaryQuantity = "Ann", "B-", 0
	require.NoError(t, ValidateNew(e))
}

func TestParseNewDefaultsQuantities(t *testing.T) {
	e, err := ParseNew(raw(t, `{
		"employee_id": "E1", "first_name": "Ann", "last_name": "Lee",
		"emergency_no": "1", "blood_group": "AB-", "department_name": "Ops",
		"bag_quantity": 2, "tshirt_m_quantity": null
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2, e.BagQuantity)
	assert.Zero(t, e.TshirtMQuantity)
	assert.Equal(t, map[string]int{
		"bag": 2, "pen": 0, "diary": 0, "bottle": 0,
		"tshirt_s": 0, "tshirt_m": 0, "tshirt_l": 0, "tshirt_xl": 0, "tshirt_xxl": 0, "tshirt_xxxl": 0,
	}, e.Issuance())
}

func TestParseUpdate(t *testing.T) {
	u, err := ParseUpdate(raw(t, `{"first_name": "Bo", "bag_quantity": 1}`))
	require.NoError(t, err)
	require.NotNil(t, u.FirstName)
	assert.Nil(t, u.LastName)
	assert.Nil(t, u.Quantities[Pen])

	_, err = ParseUpdate(raw(t, `{}`))
	assert.Equal(t, []string{"no fields to update"}, problemsOf(t, err))

	_, err = ParseUpdate(raw(t, `{"first_name": " ", "blood_group": "Z", "diary_quantity": -1}`))
	assert.ElementsMatch(t, []string{
		"first_name cannot be empty",
		bloodGroupProblem,
		"diary_quantity cannot be negative",
	}, problemsOf(t, err))
	_, err = ParseUpdate(raw(t, `{"department_name": "`+strings.Repeat("d", 101)+`", "bag_quantity": 2147483648, "pen_quantity": "x"}`))
	assert.ElementsMatch(t, []string{
		"department_name must be at most 100 characters",
		"bag_quantity cannot exceed 2147483647",
		"pen_quantity must be an integer",
	}, problemsOf(t, err))
}

func TestUpdateApplyDeltas(t *testing.T) {
	e := Employee{EmployeeID: "E1", FirstName: "Ann", BagQuantity: 3, PenQuantity: 5}

	var u Update
	name := "Anna"
	u.FirstName = &name
	u.SetQuantity(Bag, 1)
	u.SetQuantity(Diary, 2)

	deltas := u.Apply(&e)
	assert.Equal(t, map[string]int{"bag": -2, "diary": 2}, deltas)
	assert.Equal(t, "Anna", e.FirstName)
	assert.Equal(t, 1, e.BagQuantity)
	assert.Equal(t, 5, e.PenQuantity, "fields missing from the update stay as they were")
	assert.Equal(t, 2, e.DiaryQuantity)
}

func TestReturns(t *testing.T) {
	e := Employee{BagQuantity: 80, TshirtXLQuantity: 1}
	r := e.Returns()
	assert.Equal(t, -80, r["bag"])
	assert.Equal(t, -1, r["tshirt_xl"])
	assert.Equal(t, 0, r["pen"])
}

func TestTally(t *testing.T) {
	st := Tally([]Employee{
		{BagQuantity: 1, PenQuantity: 2, TshirtSQuantity: 1, TshirtXXXLQuantity: 2},
		{BagQuantity: 1, DiaryQuantity: 4, BottleQuantity: 1, TshirtSQuantity: 3},
	})
	assert.Equal(t, 2, st.TotalEmployees)
	assert.Equal(t, 2, st.BagsDistributed)
	assert.Equal(t, 2, st.PensDistributed)
	assert.Equal(t, 4, st.DiariesDistributed)
	assert.Equal(t, 1, st.BottlesDistributed)
	assert.Equal(t, 6, st.TshirtsDistributed)
	assert.Equal(t, map[string]int{"S": 4, "M": 0, "L": 0, "XL": 0, "XXL": 0, "XXXL": 2}, st.TshirtSizesDistributed)

	empty := Tally(nil)
	assert.Zero(t, empty.TotalEmployees)
	assert.Len(t, empty.TshirtSizesDistributed, 6)
}
