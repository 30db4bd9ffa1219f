package constants

// Format is the payslip layout variant a document was recognised as.
type Format string

const (
	Standard        Format = "standard"
	AlternateLayout Format = "alternate"
)

var allFormats = []Format{
	Standard,
	AlternateLayout,
}

// Formats returns every supported layout variant, Standard first.
func Formats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// AsStringSlice returns the supported formats as plain strings.
func AsStringSlice() []string {
	result := make([]string, len(allFormats))
	for i, f := range allFormats {
		result[i] = string(f)
	}
	return result
}
