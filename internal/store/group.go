package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/taskapp/apiserver/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	groupsCollection     = "groups"
	groupTasksCollection = "tasks"
)

// GroupRepository handles persistence for shared groups and the tasks
// nested under them.
type GroupRepository struct {
	client *firestore.Client
}

func NewGroupRepository(client *firestore.Client) *GroupRepository {
	return &GroupRepository{client: client}
}

func (r *GroupRepository) groups() *firestore.CollectionRef {
	return r.client.Collection(groupsCollection)
}

func (r *GroupRepository) List(ctx context.Context) ([]types.Group, error) {
	iter := r.groups().Documents(ctx)
	defer iter.Stop()

	var groups []types.Group
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var group types.Group
		if err := snap.DataTo(&group); err != nil {
			return nil, err
		}
		group.ID = snap.Ref.ID
		groups = append(groups, group)
	}
	return groups, nil
}

func (r *GroupRepository) Get(ctx context.Context, id string) (types.Group, error) {
	snap, err := r.groups().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Group{}, ErrNotFound
		}
		return types.Group{}, err
	}

	var group types.Group
	if err := snap.DataTo(&group); err != nil {
		return types.Group{}, err
	}
	group.ID = snap.Ref.ID
	return group, nil
}

func (r *GroupRepository) Create(ctx context.Context, group types.Group) (types.Group, error) {
	group.ID = uuid.New().String()
	if _, err := r.groups().Doc(group.ID).Set(ctx, group); err != nil {
		return types.Group{}, err
	}
	return group, nil
}

// UpdateTaskStatus updates the status of a task nested under a group.
// The update fails if the nested document does not exist.
func (r *GroupRepository) UpdateTaskStatus(ctx context.Context, groupID, taskID, newStatus string) error {
	ref := r.groups().Doc(groupID).Collection(groupTasksCollection).Doc(taskID)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}
