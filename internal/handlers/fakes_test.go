package handlers_test

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskapp/apiserver/internal/auth"
	"github.com/taskapp/apiserver/internal/handlers"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
	"github.com/taskapp/apiserver/types"
)

// In-memory repositories mirroring the store's semantics, shared by
// the handler tests.

type fakeUserRepo struct {
	users  map[string]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]types.User{}}
}

func (f *fakeUserRepo) add(user types.User) types.User {
	if user.ID == "" {
		f.nextID++
		user.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	var users []types.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	return f.add(user), nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if role == types.RoleAdmin && user.Role != types.RoleAdmin {
		for _, other := range f.users {
			if other.Role == types.RoleAdmin {
				return store.ErrConflict
			}
		}
	}
	user.Role = role
	f.users[id] = user
	return nil
}

type fakeTaskRepo struct {
	tasks  map[string]map[string]types.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]map[string]types.Task{}}
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID string) ([]types.Task, error) {
	tasks := []types.Task{}
	for _, task := range f.tasks[userID] {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (f *fakeTaskRepo) Create(ctx context.Context, userID string, task types.Task) (types.Task, error) {
	f.nextID++
	task.ID = fmt.Sprintf("task-%d", f.nextID)
	task.CreatedAt = time.Now()
	if f.tasks[userID] == nil {
		f.tasks[userID] = map[string]types.Task{}
	}
	f.tasks[userID][task.ID] = task
	return task, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, userID, taskID string, task types.Task) error {
	existing, ok := f.tasks[userID][taskID]
	if !ok {
		return store.ErrNotFound
	}
	existing.Name = task.Name
	existing.Description = task.Description
	existing.TimeUntilFinish = task.TimeUntilFinish
	existing.Category = task.Category
	existing.Status = task.Status
	f.tasks[userID][taskID] = existing
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	if _, ok := f.tasks[userID][taskID]; !ok {
		return store.ErrNotFound
	}
	delete(f.tasks[userID], taskID)
	return nil
}

type fakeGroupRepo struct {
	groups     map[string]types.Group
	groupTasks map[string]map[string]string
	nextID     int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:     map[string]types.Group{},
		groupTasks: map[string]map[string]string{},
	}
}

func (f *fakeGroupRepo) List(ctx context.Context) ([]types.Group, error) {
	var groups []types.Group
	for _, group := range f.groups {
		groups = append(groups, group)
	}
	return groups, nil
}

func (f *fakeGroupRepo) Get(ctx context.Context, id string) (types.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return types.Group{}, store.ErrNotFound
	}
	return group, nil
}

func (f *fakeGroupRepo) Create(ctx context.Context, group types.Group) (types.Group, error) {
	f.nextID++
	group.ID = fmt.Sprintf("group-%d", f.nextID)
	f.groups[group.ID] = group
	return group, nil
}

func (f *fakeGroupRepo) UpdateTaskStatus(ctx context.Context, groupID, taskID, newStatus string) error {
	if _, ok := f.groupTasks[groupID][taskID]; !ok {
		return store.ErrNotFound
	}
	f.groupTasks[groupID][taskID] = newStatus
	return nil
}

// testAPI bundles a fully wired router with its backing fakes.
type testAPI struct {
	router    *chi.Mux
	userRepo  *fakeUserRepo
	taskRepo  *fakeTaskRepo
	groupRepo *fakeGroupRepo
	issuer    *auth.Issuer
}

func newTestAPI() *testAPI {
	userRepo := newFakeUserRepo()
	taskRepo := newFakeTaskRepo()
	groupRepo := newFakeGroupRepo()

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)

	issuer := auth.NewIssuer("test_secret", 10*time.Minute)

	router := chi.NewRouter()
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, issuer)
	})
	router.Route("/api/tasks", func(r chi.Router) {
		handlers.TaskRouter(r, taskService, authService)
	})
	router.Route("/api/groups", func(r chi.Router) {
		handlers.GroupRouter(r, groupService, authService)
	})
	router.Route("/api/users", func(r chi.Router) {
		handlers.UserRouter(r, authService)
	})

	return &testAPI{
		router:    router,
		userRepo:  userRepo,
		taskRepo:  taskRepo,
		groupRepo: groupRepo,
		issuer:    issuer,
	}
}
