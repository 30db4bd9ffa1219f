package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("bad xref")
	err := NewDocumentReadError("in/a.pdf", cause)

	assert.Equal(t, CodeDocumentRead, err.Code)
	assert.ErrorIs(t, err, ErrDocumentRead)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsDocumentReadError(fmt.Errorf("process: %w", err)))
	assert.False(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "in/a.pdf")
}

func TestNewConfigErrorWithoutCause(t *testing.T) {
	err := NewConfigError("pattern table", nil)
	assert.True(t, IsConfigError(err))
	assert.Equal(t, "CONFIG_ERROR: pattern table: configuration error", err.Error())
}

func TestContextHelpers(t *testing.T) {
	ctx := WithDocument(WithRunID(context.Background(), "run-1"), "in/a.pdf")
	assert.Equal(t, "run-1", RunIDFromContext(ctx))
	assert.Equal(t, "in/a.pdf", DocumentFromContext(ctx))
	assert.Empty(t, RunIDFromContext(context.Background()))
	assert.NotNil(t, LoggerFrom(ctx, nil))
}
