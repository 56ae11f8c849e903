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

// Collection names are inherited from the deployed database layout.
const usersCollection = "USERS"

// UserRepository handles persistence for users.
type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) users() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	snap, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}

	var user types.User
	if err := snap.DataTo(&user); err != nil {
		return types.User{}, err
	}
	user.ID = snap.Ref.ID
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	iter := r.users().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return types.User{}, ErrNotFound
	}
	if err != nil {
		return types.User{}, err
	}

	var user types.User
	if err := snap.DataTo(&user); err != nil {
		return types.User{}, err
	}
	user.ID = snap.Ref.ID
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	iter := r.users().Documents(ctx)
	defer iter.Stop()

	var users []types.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user types.User
		if err := snap.DataTo(&user); err != nil {
			return nil, err
		}
		user.ID = snap.Ref.ID
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = uuid.New().String()
	if _, err := r.users().Doc(user.ID).Set(ctx, user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// UpdateRole changes a user's role. The admin count check and the role
// write run in a single transaction so concurrent promotions cannot
// both pass the check: at most one user holds the admin role.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.users().Doc(id)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var user types.User
		if err := snap.DataTo(&user); err != nil {
			return err
		}

		if role == types.RoleAdmin && user.Role != types.RoleAdmin {
			admins := tx.Documents(r.users().Where("role", "==", types.RoleAdmin))
			defer admins.Stop()
			if _, err := admins.Next(); err != iterator.Done {
				if err != nil {
					return err
				}
				return ErrConflict
			}
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "role", Value: role},
		})
	})
}
