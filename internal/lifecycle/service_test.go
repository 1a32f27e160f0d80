package lifecycle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
)

func TestDuplicateOr(t *testing.T) {
	err := duplicateOr(gorm.ErrDuplicatedKey, "already there")
	e, isTaxonomy := apperr.As(err)
	require.True(t, isTaxonomy)
	assert.Equal(t, apperr.KindConflict, e.Kind)
	assert.Equal(t, "already there", e.Message)

	// wrapped unique violations still map
	wrapped := fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)
	_, isTaxonomy = apperr.As(duplicateOr(wrapped, "already there"))
	assert.True(t, isTaxonomy)

	// anything else passes through untouched
	plain := errors.New("connection reset")
	assert.Equal(t, plain, duplicateOr(plain, "already there"))
}

func TestNotFoundOr(t *testing.T) {
	e, isTaxonomy := apperr.As(notFoundOr(gorm.ErrRecordNotFound, "post"))
	require.True(t, isTaxonomy)
	assert.Equal(t, apperr.KindNotFound, e.Kind)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, notFoundOr(plain, "post"))
}
