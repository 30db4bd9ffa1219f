package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/extract"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

const smallTable = `{"version":1,"fields":[
	{"name":"PE Number","selection":"first_match","patterns":{"standard":["PE No\\. (\\d+)"],"alternate":["PE No\\. (\\d+)"]}},
	{"name":"Commissions","kind":"amount","selection":"last_match","patterns":{"standard":["Commissions ([\\d.]+)"],"alternate":["Commission ([\\d.]+)"]}},
	{"name":"Net","kind":"amount","selection":"last_match","patterns":{"standard":["Net ([\\d.]+)"],"alternate":["Net Value ([\\d.]+)"]}}
]}`

func str(s string) *string { return &s }

func loadTable(t *testing.T) *patterns.Table {
	t.Helper()
	table, err := patterns.Parse([]byte(smallTable))
	require.NoError(t, err)
	return table
}

func TestAssembleKeepsTableOrderAndNulls(t *testing.T) {
	table := loadTable(t)
	res := extract.FieldsResult{Values: map[string]*string{"Net": str("10.00"), "PE Number": str("42")}}

	r := Assemble(table, "a.pdf", constants.Standard, res)
	assert.Equal(t, []string{"PE Number", "Commissions", "Net"}, r.Names())
	assert.Equal(t, []string{"42", "", "10.00"}, r.Strings())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"PE Number":"42","Commissions":null,"Net":"10.00"}`, string(data))

	v, ok := r.Get("Commissions")
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = r.Get("Gross")
	assert.False(t, ok)
}

func TestKeySetIdenticalAcrossFormats(t *testing.T) {
	table, err := patterns.Default()
	require.NoError(t, err)
	engine := extract.NewEngine(table, nil)

	std, err := engine.ExtractFields(t.Context(), "PE No. 1\nNet 5.00", constants.Standard, nil)
	require.NoError(t, err)
	alt, err := engine.ExtractFields(t.Context(), "Employee Name\nGross Pay 7.00", constants.AlternateLayout, nil)
	require.NoError(t, err)

	a := Assemble(table, "a.pdf", constants.Standard, std)
	b := Assemble(table, "b.pdf", constants.AlternateLayout, alt)
	assert.Equal(t, a.Names(), b.Names())
	assert.Equal(t, table.FieldNames(), a.Names())
}

func TestMarshalIsDeterministic(t *testing.T) {
	table := loadTable(t)
	res := extract.FieldsResult{Values: map[string]*string{"PE Number": str("7"), "Commissions": str("1.50")}}

	first, err := json.MarshalIndent(Assemble(table, "x.pdf", constants.Standard, res), "", "    ")
	require.NoError(t, err)
	second, err := json.MarshalIndent(Assemble(table, "x.pdf", constants.Standard, res), "", "    ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarshalDoesNotEscapeSymbols(t *testing.T) {
	r := &Record{Fields: []Field{{Name: "Tax On Overtime @ 15%", Value: str("A&B <c>")}}}
	data, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"Tax On Overtime @ 15%":"A&B <c>"}`, string(data))
}

func TestSchemaValidator(t *testing.T) {
	table := loadTable(t)
	v, err := NewSchemaValidator(table)
	require.NoError(t, err)

	ok := Assemble(table, "a.pdf", constants.Standard, extract.FieldsResult{Values: map[string]*string{"Net": str("-3.25")}})
	assert.NoError(t, v.Validate(ok))

	badAmount := Assemble(table, "a.pdf", constants.Standard, extract.FieldsResult{Values: map[string]*string{"Net": str("1,000")}})
	err = v.Validate(badAmount)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))

	missingKey := &Record{Fields: []Field{{Name: "PE Number", Value: str("1")}}}
	assert.Error(t, v.Validate(missingKey))

	extraKey := Assemble(table, "a.pdf", constants.Standard, extract.FieldsResult{})
	extraKey.Fields = append(extraKey.Fields, Field{Name: "Bonus"})
	assert.Error(t, v.Validate(extraKey))

	emptyText := Assemble(table, "a.pdf", constants.Standard, extract.FieldsResult{Values: map[string]*string{"PE Number": str("")}})
	assert.Error(t, v.Validate(emptyText))
}

func TestDefaultTableRecordsValidate(t *testing.T) {
	table, err := patterns.Default()
	require.NoError(t, err)
	v, err := NewSchemaValidator(table)
	require.NoError(t, err)

	engine := extract.NewEngine(table, nil)
	res, err := engine.ExtractFields(t.Context(), "PE No. 12\nFrom: 01-Aug-25 To: 31-Aug-25\nNet 1,234.50\nOvertime 1.5 @ 15% 9.00", constants.Standard, nil)
	require.NoError(t, err)
	assert.NoError(t, v.Validate(Assemble(table, "a.pdf", constants.Standard, res)))
}
