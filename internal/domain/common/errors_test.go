// internal/domain/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatchesSentinelAndKind(t *testing.T) {
	sentinel := Kind(ErrNotFound, "widget: not found")

	assert.True(t, errors.Is(sentinel, sentinel))
	assert.True(t, errors.Is(sentinel, ErrNotFound))
	assert.False(t, errors.Is(sentinel, ErrConflict))
	assert.Equal(t, "widget: not found", sentinel.Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	sentinel := Kind(ErrInvalidInput, "widget: invalid name")
	wrapped := fmt.Errorf("saving widget: %w", sentinel)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
}
