// Package client is a typed Go client for the Akademus API with a query
// cache and retry policy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	cache      *Cache
	retry      RetryPolicy
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// New returns a client for baseURL (e.g. "http://localhost:3000"). Without
// options the token lives in memory and the cache uses the default times.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     &MemoryTokenStore{},
		cache:      NewCache(DefaultStaleTime, DefaultGCTime),
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Cache() *Cache { return c.cache }

// response is what survives a single attempt.
type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.tokens.Load()
	if err != nil {
		return response{}, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return response{}, decodeError(resp.StatusCode, raw)
	}
	return response{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

func decodeError(status int, raw []byte) *APIError {
	ae := &APIError{Status: status}
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		ae.Code = env.Error.Code
		ae.Message = env.Error.Message
		ae.Fields = env.Error.Fields
		return ae
	}
	ae.Message = strings.TrimSpace(string(raw))
	if ae.Message == "" {
		ae.Message = http.StatusText(status)
	}
	return ae
}

// do sends one logical request with retries and decodes the body into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}
	resp, err := retry(ctx, c.retry, method, func() (response, error) {
		return c.send(ctx, method, path, payload)
	})
	if err != nil {
		return nil, err
	}
	if out != nil && resp.status != http.StatusNoContent && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.header, nil
}

// query serves key from the cache while fresh and fetches otherwise.
func query[T any](ctx context.Context, c *Client, key, path string) (T, error) {
	if v, fresh := c.cache.Get(key); fresh {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	var out T
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return out, err
	}
	c.cache.Set(key, out)
	return out, nil
}

// Auth

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	var tok TokenResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", in, &tok); err != nil {
		return err
	}
	return c.tokens.Save(tok.AccessToken)
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	var tok TokenResponse
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", body, &tok); err != nil {
		return err
	}
	c.cache.Clear()
	return c.tokens.Save(tok.AccessToken)
}

// Logout forgets the token and everything cached under it.
func (c *Client) Logout() error {
	c.cache.Clear()
	return c.tokens.Clear()
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var u User
	if _, err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var users []User
	header, err := c.do(ctx, http.MethodGet, path, nil, &users)
	if err != nil {
		return nil, err
	}
	total, _ := strconv.Atoi(header.Get("X-Total-Count"))
	return &UserPage{Users: users, Total: total}, nil
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if _, err := c.do(ctx, http.MethodGet, "/users/"+id.String(), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Courses

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	return query[[]Course](ctx, c, coursesKey, "/courses")
}

func (c *Client) GetCourse(ctx context.Context, id uuid.UUID) (*Course, error) {
	course, err := query[Course](ctx, c, courseKey(id.String()), "/courses/"+id.String())
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateCourse(ctx context.Context, in CreateCourseInput) (*Course, error) {
	var course Course
	if _, err := c.do(ctx, http.MethodPost, "/courses", in, &course); err != nil {
		return nil, err
	}
	c.cache.Invalidate(coursesKey)
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (*Course, error) {
	var course Course
	if _, err := c.do(ctx, http.MethodPatch, "/courses/"+id.String(), in, &course); err != nil {
		return nil, err
	}
	c.cache.Invalidate(courseKey(id.String()))
	c.cache.Invalidate(coursesKey)
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if _, err := c.do(ctx, http.MethodDelete, "/courses/"+id.String(), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(coursesKey)
	return nil
}

// Nodes

func (c *Client) ListNodes(ctx context.Context, courseID uuid.UUID) ([]Node, error) {
	return query[[]Node](ctx, c, courseNodesKey(courseID.String()), "/nodes/course/"+courseID.String())
}

func (c *Client) GetNode(ctx context.Context, id uuid.UUID) (*Node, error) {
	node, err := query[Node](ctx, c, nodeKey(id.String()), "/nodes/"+id.String())
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (c *Client) CreateNode(ctx context.Context, in CreateNodeInput) (*Node, error) {
	var node Node
	if _, err := c.do(ctx, http.MethodPost, "/nodes", in, &node); err != nil {
		return nil, err
	}
	c.cache.Invalidate(courseNodesKey(in.CourseID.String()))
	return &node, nil
}

func (c *Client) UpdateNode(ctx context.Context, id uuid.UUID, in UpdateNodeInput) (*Node, error) {
	var node Node
	if _, err := c.do(ctx, http.MethodPut, "/nodes/"+id.String(), in, &node); err != nil {
		return nil, err
	}
	c.cache.Invalidate(nodeKey(id.String()))
	c.cache.Invalidate(courseNodesKey(node.CourseID.String()))
	return &node, nil
}

func (c *Client) DeleteNode(ctx context.Context, id uuid.UUID) error {
	if _, err := c.do(ctx, http.MethodDelete, "/nodes/"+id.String(), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(nodesKey)
	return nil
}
