package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatsIsACopy(t *testing.T) {
	fs := Formats()
	fs[0] = "mutated"
	assert.Equal(t, Standard, Formats()[0])
	assert.Equal(t, []string{"standard", "alternate"}, AsStringSlice())
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeExt(".Pdf"))
	assert.Equal(t, "pdf", NormalizeExt("PDF"))
}
