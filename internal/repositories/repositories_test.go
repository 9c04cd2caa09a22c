package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-manager/internal/models"
	"go-task-manager/internal/repositories"
	"go-task-manager/testutil"
)

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "hash"}))

	err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "hash2"})
	require.ErrorIs(t, err, repositories.ErrDuplicateUsername)
}

func TestUserRepository_Find(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", byID.Username)

	exists, err := repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_DeleteCascadesTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repositories.NewUserRepository(db)
	tasks := repositories.NewTaskRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "owner", PasswordHash: "hash"}
	keeper := &models.User{Username: "keeper", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, keeper))

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, tasks.Create(ctx, &models.Task{Title: title, UserID: owner.ID}))
	}
	keptTask := &models.Task{Title: "kept", UserID: keeper.ID}
	require.NoError(t, tasks.Create(ctx, keptTask))

	require.NoError(t, users.Delete(ctx, owner.ID))

	owned, err := tasks.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	var remaining int64
	require.NoError(t, db.Model(&models.Task{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	_, err = tasks.FindByID(ctx, keptTask.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, users.Delete(ctx, owner.ID), repositories.ErrUserNotFound)
}

func TestUserDelete_ForeignKeyCascade(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repositories.NewUserRepository(db)
	tasks := repositories.NewTaskRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "fk_owner", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, tasks.Create(ctx, &models.Task{Title: "t", UserID: owner.ID}))

	// リポジトリを通さずに削除しても外部キー制約でタスクが消える
	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", owner.ID).Error)

	owned, err := tasks.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestTaskRepository_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repositories.NewUserRepository(db)
	repo := repositories.NewTaskRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "carol", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, u))

	desc := "buy milk"
	task := &models.Task{Title: "Shopping", Description: &desc, UserID: u.ID}
	require.NoError(t, repo.Create(ctx, task))
	assert.NotZero(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", found.Title)
	require.NotNil(t, found.Description)
	assert.Equal(t, "buy milk", *found.Description)
	assert.False(t, found.Completed)

	require.NoError(t, repo.UpdateCompleted(ctx, task.ID, true))
	found, err = repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, found.Completed)

	// 同じ値での更新もエラーにならない
	require.NoError(t, repo.UpdateCompleted(ctx, task.ID, true))
	assert.ErrorIs(t, repo.UpdateCompleted(ctx, 9999, true), repositories.ErrTaskNotFound)

	require.NoError(t, repo.Delete(ctx, task.ID))
	_, err = repo.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), repositories.ErrTaskNotFound)
}

func TestTaskRepository_FindByUserIDFiltersAndOrders(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repositories.NewUserRepository(db)
	repo := repositories.NewTaskRepository(db)
	ctx := context.Background()

	a := &models.User{Username: "a", PasswordHash: "hash"}
	b := &models.User{Username: "b", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	require.NoError(t, repo.Create(ctx, &models.Task{Title: "a1", UserID: a.ID}))
	require.NoError(t, repo.Create(ctx, &models.Task{Title: "b1", UserID: b.ID}))
	require.NoError(t, repo.Create(ctx, &models.Task{Title: "a2", UserID: a.ID}))

	list, err := repo.FindByUserID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].Title)
	assert.Equal(t, "a2", list[1].Title)

	empty, err := repo.FindByUserID(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
