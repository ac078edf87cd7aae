// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/postgres/pgtest"
	"github.com/taibuivan/hms/pkg/pointer"
	"github.com/taibuivan/hms/pkg/uuid"
)

/*
TestPostgresRepository runs the account store against a migrated database.
*/
func TestPostgresRepository(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	repo := NewPostgresRepository(pool)

	id := uuid.New()
	_, err := pool.Exec(ctx, `INSERT INTO users.account (id, email, passwordhash) VALUES ($1, 'tai@example.com', 'old')`, id)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO inventory.item (id, userid, name) VALUES ($1, $2, 'Rice')`, uuid.New(), id)
	require.NoError(t, err)

	user, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, user.Name)

	user.Name = pointer.To("Tai")
	before := user.UpdatedAt
	require.NoError(t, repo.UpdateName(ctx, user))
	assert.False(t, user.UpdatedAt.Before(before))

	require.NoError(t, repo.UpdatePassword(ctx, id, "new"))
	user, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tai", pointer.Val(user.Name))
	assert.Equal(t, "new", user.PasswordHash)

	require.NoError(t, repo.Delete(ctx, id))
	assert.True(t, dberr.IsNotFound(repo.Delete(ctx, id)))
	assert.True(t, dberr.IsNotFound(repo.UpdatePassword(ctx, id, "x")))

	var items int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM inventory.item WHERE userid = $1`, id).Scan(&items))
	assert.Zero(t, items)
}
