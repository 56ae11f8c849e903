package services

import (
	"context"

	"github.com/taskapp/apiserver/types"
)

// Placeholder display names used when a referenced user cannot be
// resolved. Part of the wire format.
const (
	unknownMemberName  = "Usuario no encontrado"
	unknownCreatorName = "Creador desconocido"
)

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	List(ctx context.Context) ([]types.Group, error)
	Get(ctx context.Context, id string) (types.Group, error)
	Create(ctx context.Context, group types.Group) (types.Group, error)
	UpdateTaskStatus(ctx context.Context, groupID, taskID, newStatus string) error
}

// GroupService encapsulates group use-cases. It resolves member and
// creator display names against the user repository.
type GroupService struct {
	repo  GroupRepository
	users UserRepository
}

func NewGroupService(repo GroupRepository, users UserRepository) *GroupService {
	return &GroupService{repo: repo, users: users}
}

// List returns all groups with each creator's current display name.
// Every group costs one extra user lookup; fine at this scale.
func (s *GroupService) List(ctx context.Context) ([]types.Group, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range groups {
		groups[i].CreatedByUsername = s.resolveUsername(ctx, groups[i].CreatedBy, unknownCreatorName)
	}
	return groups, nil
}

func (s *GroupService) Get(ctx context.Context, id string) (types.Group, error) {
	return s.repo.Get(ctx, id)
}

// Create snapshots the display name of every member and of the creator
// into the stored group. The snapshots are captured once and never
// refreshed.
func (s *GroupService) Create(ctx context.Context, name, description string, memberIDs []string, createdBy, status string) (types.Group, error) {
	members := make([]types.GroupMember, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		members = append(members, types.GroupMember{
			ID:       memberID,
			Username: s.resolveUsername(ctx, memberID, unknownMemberName),
		})
	}

	group := types.Group{
		Name:              name,
		Description:       description,
		Members:           members,
		CreatedBy:         createdBy,
		CreatedByUsername: s.resolveUsername(ctx, createdBy, unknownCreatorName),
		Status:            status,
	}
	return s.repo.Create(ctx, group)
}

func (s *GroupService) UpdateTaskStatus(ctx context.Context, groupID, taskID, newStatus string) error {
	return s.repo.UpdateTaskStatus(ctx, groupID, taskID, newStatus)
}

func (s *GroupService) resolveUsername(ctx context.Context, userID, fallback string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fallback
	}
	return user.Username
}
