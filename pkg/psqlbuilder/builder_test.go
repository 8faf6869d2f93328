package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("staff_availabilities").
		Where(squirrel.Eq{"staff_id": "s1"}).
		Where(squirrel.NotEq{"id": "a1"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM staff_availabilities WHERE staff_id = $1 AND id <> $2", query)
	assert.Equal(t, []interface{}{"s1", "a1"}, args)
}

func TestDelete_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Delete("staff_availabilities").Where(squirrel.Eq{"staff_id": "s1"}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM staff_availabilities WHERE staff_id = $1", query)
}
