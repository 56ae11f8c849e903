package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
	"github.com/taskapp/apiserver/types"
)

func newTask() types.Task {
	return types.Task{
		Name:            "entregar informe",
		Description:     "borrador final",
		TimeUntilFinish: "2026-09-15",
		Category:        types.CategoryStudy,
		Status:          types.StatusInProgress,
	}
}

func TestListTasksEmpty(t *testing.T) {
	svc := services.NewTaskService(newFakeTaskRepo())

	tasks, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCreateTaskSetsIDAndTimestamp(t *testing.T) {
	svc := services.NewTaskService(newFakeTaskRepo())

	task, err := svc.Create(context.Background(), "u1", newTask())
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	tasks, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestUpdateMissingTask(t *testing.T) {
	svc := services.NewTaskService(newFakeTaskRepo())

	err := svc.Update(context.Background(), "u1", "missing", newTask())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteMissingTaskLeavesCollectionUnchanged(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := services.NewTaskService(repo)

	task, err := svc.Create(context.Background(), "u1", newTask())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	tasks, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestDeleteTask(t *testing.T) {
	svc := services.NewTaskService(newFakeTaskRepo())

	task, err := svc.Create(context.Background(), "u1", newTask())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "u1", task.ID))

	tasks, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
