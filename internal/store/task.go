package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/taskapp/apiserver/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const tasksCollection = "TASKS"

// TaskRepository handles persistence for per-user tasks. Tasks are
// stored in a sub-collection under the owning user's document.
type TaskRepository struct {
	client *firestore.Client
}

func NewTaskRepository(client *firestore.Client) *TaskRepository {
	return &TaskRepository{client: client}
}

func (r *TaskRepository) tasks(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(tasksCollection)
}

// ListByUser returns all tasks of a user. A user with no tasks yields
// an empty list, not an error.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]types.Task, error) {
	iter := r.tasks(userID).Documents(ctx)
	defer iter.Stop()

	tasks := []types.Task{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var task types.Task
		if err := snap.DataTo(&task); err != nil {
			return nil, err
		}
		task.ID = snap.Ref.ID
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, userID string, task types.Task) (types.Task, error) {
	task.ID = uuid.New().String()
	task.CreatedAt = time.Now()
	if _, err := r.tasks(userID).Doc(task.ID).Set(ctx, task); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, task types.Task) error {
	ref := r.tasks(userID).Doc(taskID)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}

	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "name", Value: task.Name},
		{Path: "description", Value: task.Description},
		{Path: "timeUntilFinish", Value: task.TimeUntilFinish},
		{Path: "category", Value: task.Category},
		{Path: "status", Value: task.Status},
	})
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	ref := r.tasks(userID).Doc(taskID)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}

	_, err := ref.Delete(ctx)
	return err
}
