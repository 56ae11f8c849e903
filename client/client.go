// Package client is a typed Go client for the taskapp HTTP API. It is
// the programmatic counterpart of the web client and is what the e2e
// tests drive the server with.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taskapp/apiserver/types"
)

// Client calls the taskapp API at a base URL. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New constructs a Client for the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response decoded from the `{"msg": ...}`
// payload.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Msg)
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Msg    string `json:"msg"`
}

// TaskInput is the task payload for create and update calls.
type TaskInput struct {
	UserID          string `json:"userId,omitempty"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	TimeUntilFinish string `json:"timeUntilFinish"`
	Category        string `json:"category"`
	Status          string `json:"status"`
}

// GroupInput is the group creation payload. Members are user ids.
type GroupInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	CreatedBy   string   `json:"createdBy"`
	Status      string   `json:"estatus"`
}

// UserSummary is a user entry from the group member picker endpoint.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	body := map[string]string{"email": email, "username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

// Login verifies credentials, stores the returned token on the client,
// and returns the login payload.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	c.token = result.Token
	return result, nil
}

// Admin probes the admin-only endpoint with the stored token.
func (c *Client) Admin(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/auth/admin", nil, nil)
}

// CreateTask creates a task for input.UserID and returns the new task id.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (string, error) {
	var result struct {
		TaskID string `json:"taskId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", input, &result); err != nil {
		return "", err
	}
	return result.TaskID, nil
}

// Tasks lists a user's tasks.
func (c *Client) Tasks(ctx context.Context, userID string) ([]types.Task, error) {
	var result struct {
		Tasks []types.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+userID, nil, &result); err != nil {
		return nil, err
	}
	return result.Tasks, nil
}

// UpdateTask replaces the mutable fields of a task.
func (c *Client) UpdateTask(ctx context.Context, userID, taskID string, input TaskInput) error {
	return c.do(ctx, http.MethodPut, "/api/tasks/"+userID+"/"+taskID, input, nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, userID, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+userID+"/"+taskID, nil, nil)
}

// Groups lists all groups.
func (c *Client) Groups(ctx context.Context) ([]types.Group, error) {
	var groups []types.Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Group fetches a single group by id.
func (c *Client) Group(ctx context.Context, groupID string) (types.Group, error) {
	var group types.Group
	if err := c.do(ctx, http.MethodGet, "/api/groups/"+groupID, nil, &group); err != nil {
		return types.Group{}, err
	}
	return group, nil
}

// CreateGroup creates a group and returns it with its generated id and
// the member username snapshots.
func (c *Client) CreateGroup(ctx context.Context, input GroupInput) (types.Group, error) {
	var group types.Group
	if err := c.do(ctx, http.MethodPost, "/api/groups", input, &group); err != nil {
		return types.Group{}, err
	}
	return group, nil
}

// GroupUsers lists users for the group member picker.
func (c *Client) GroupUsers(ctx context.Context) ([]UserSummary, error) {
	var users []UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/groups/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateGroupTask changes the status of a task nested under a group.
func (c *Client) UpdateGroupTask(ctx context.Context, groupID, taskID, newStatus string) error {
	body := map[string]string{"groupId": groupID, "taskId": taskID, "newStatus": newStatus}
	return c.do(ctx, http.MethodPut, "/api/groups/update-task", body, nil)
}

// Users lists all registered users.
func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	var users []types.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserRole assigns a role to a user.
func (c *Client) SetUserRole(ctx context.Context, userID, role string) error {
	body := map[string]string{"role": role}
	return c.do(ctx, http.MethodPatch, "/api/users/"+userID, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(data, &msg); err == nil {
			apiErr.Msg = msg.Msg
		}
		return apiErr
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
