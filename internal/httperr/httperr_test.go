package httperr

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("slot_taken"))

	assert.True(t, IsBusiness(err, "slot_taken"))
	assert.False(t, IsBusiness(err, "past_time"))

	code, ok := BusinessCode(err)
	assert.True(t, ok)
	assert.Equal(t, "slot_taken", code)

	_, ok = BusinessCode(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestConstraintClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	exclusion := &pgconn.PgError{Code: "23P01"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsExclusionConflict(unique))
	assert.True(t, IsExclusionConflict(exclusion))
	assert.False(t, IsUniqueViolation(exclusion))
	assert.False(t, IsExclusionConflict(fk))
	assert.False(t, IsExclusionConflict(fmt.Errorf("boom")))
}
