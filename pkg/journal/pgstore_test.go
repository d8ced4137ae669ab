package journal

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	hash string
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.hash
	return nil
}

func TestChainHead(t *testing.T) {
	hash, err := chainHead(fakeRow{hash: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", hash)

	hash, err = chainHead(fakeRow{err: pgx.ErrNoRows})
	require.NoError(t, err, "an empty journal starts a new chain")
	assert.Empty(t, hash)

	lost := errors.New("conn closed")
	_, err = chainHead(fakeRow{err: lost})
	assert.ErrorIs(t, err, lost, "other failures must not restart the chain")
}

func TestSQLLimit(t *testing.T) {
	assert.Equal(t, 5, sqlLimit(5))
	assert.Nil(t, sqlLimit(0))
	assert.Nil(t, sqlLimit(-1))
}
