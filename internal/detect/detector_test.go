package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

func TestDetect(t *testing.T) {
	table, err := patterns.Default()
	require.NoError(t, err)
	d := NewDetector(table)

	tests := []struct {
		name string
		text string
		path string
		want constants.Format
	}{
		{"standard text", "PE No. 123\nNet: 1,000.00", "in/jane payslip.pdf", constants.Standard},
		{"employee name marker", "EMPLOYEE NAME\nJohn Smith", "in/a.pdf", constants.AlternateLayout},
		{"gross pay marker mixed case", "Gross Pay 1,200.00", "in/a.pdf", constants.AlternateLayout},
		{"path marker", "PE No. 1", "in/4C's Ltd/jane payslip.pdf", constants.AlternateLayout},
		{"empty text", "", "", constants.Standard},
		{"partial marker", "Employee Nam", "in/a.pdf", constants.Standard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.text, tt.path))
		})
	}
}

func TestDetectWithoutMarkers(t *testing.T) {
	doc := `{"version":1,"fields":[{"name":"A","selection":"first_match","patterns":{"standard":["a"],"alternate":["a"]}}]}`
	table, err := patterns.Parse([]byte(doc))
	require.NoError(t, err)

	d := NewDetector(table)
	assert.Equal(t, constants.Standard, d.Detect("Employee Name Gross Pay", "4c's"))
}
