// Package remote is the console's client for the storefront REST backend.
//
// Every reply is an envelope {success, message, data}. The backend is not strict about field
// names or types, so decoding goes through loosely typed maps and never trusts the shape: a
// missing or malformed data field is a NetworkFailure, success=false is a RemoteRejection.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/pkg/logger"
)

const DefaultTimeout = 10 * time.Second

// Store is the set of backend operations the console consumes.
type Store interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, p model.CreateCategoryPayload) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, p model.UpdateCategoryPayload) error
	DeleteCategory(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	SetProductStock(ctx context.Context, productID string, quantity int) error

	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) error

	Login(ctx context.Context, email, password string) (*model.SessionData, error)
	CheckHealth(ctx context.Context) bool
}

// TokenSource supplies the bearer token for each request; *session.Session satisfies it.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	timeout time.Duration
	tokens  TokenSource
	log     *zap.Logger
}

var _ Store = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		tokens:  tokens,
		log:     logger.OrNop(log).Named("remote"),
	}
}

func (c *Client) url(path string, segments ...string) string {
	u := c.baseURL + path
	for _, s := range segments {
		u += "/" + url.PathEscape(s)
	}
	return u
}

// call sends one request and returns the envelope's data, which may be empty.
func (c *Client) call(ctx context.Context, op string, agent *fiber.Agent, body interface{}) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, apperr.Network(op, err)
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		fiber.ReleaseAgent(agent)
		return nil, apperr.Network(op, context.DeadlineExceeded)
	}

	agent.Timeout(timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	if body != nil {
		agent.JSON(body)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, apperr.Network(op, errors.Wrap(err, "error while building request"))
	}

	started := time.Now()
	code, raw, errs := agent.Bytes()
	log := c.log.With(zap.String("op", op), zap.Int("status", code), zap.Duration("took", time.Since(started)))
	if len(errs) > 0 {
		log.Warn("backend unreachable", zap.Error(errs[0]))
		return nil, apperr.Network(op, errs[0])
	}

	data, err := decodeEnvelope(op, code, raw)
	if err != nil {
		log.Debug("backend call failed", zap.Error(err))
		return nil, err
	}
	log.Debug("backend call ok")
	return data, nil
}

type envelope struct {
	Success interface{}     `json:"success"`
	Message interface{}     `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(op string, code int, raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperr.Network(op, errors.Wrapf(err, "malformed response (status %d)", code))
	}
	if !cast.ToBool(env.Success) || code >= fiber.StatusBadRequest {
		msg := cast.ToString(env.Message)
		if msg == "" {
			msg = "Failed to " + op
		}
		return nil, apperr.Rejected(code, msg)
	}
	return env.Data, nil
}

func hasData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeObject(op string, raw json.RawMessage) (map[string]interface{}, error) {
	if !hasData(raw) {
		return nil, apperr.Network(op, errors.New("response carried no data"))
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, apperr.Network(op, errors.Wrap(err, "unexpected data shape"))
	}
	return m, nil
}

func decodeList(op string, raw json.RawMessage) ([]map[string]interface{}, error) {
	if !hasData(raw) {
		return nil, apperr.Network(op, errors.New("response carried no data"))
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, apperr.Network(op, errors.Wrap(err, "unexpected data shape"))
	}
	return list, nil
}

// first returns the first present, non-nil value among keys.
func first(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := cast.ToString(v)
	if s == "" {
		return nil
	}
	return &s
}

// Login exchanges credentials for a backend token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.SessionData, error) {
	const op = "log in"
	data, err := c.call(ctx, op, fiber.Post(c.url("/api/auth/login")), model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	m, err := decodeObject(op, data)
	if err != nil {
		return nil, err
	}
	token := cast.ToString(first(m, "token", "access_token", "accessToken"))
	if token == "" {
		return nil, apperr.Network(op, errors.New("response carried no token"))
	}
	session := &model.SessionData{Token: token}
	if u, ok := m["user"].(map[string]interface{}); ok {
		session.User = model.AdminUser{
			ID:    cast.ToString(first(u, "id", "user_id")),
			Email: cast.ToString(u["email"]),
			Name:  cast.ToString(first(u, "name", "full_name")),
			Role:  cast.ToString(u["role"]),
		}
	}
	if session.User.Email == "" {
		session.User.Email = email
	}
	return session, nil
}

// CheckHealth reports whether the backend answers a cheap product query. Only the status code
// matters here.
func (c *Client) CheckHealth(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	agent := fiber.Get(c.url("/api/products") + "?limit=1")
	agent.Timeout(c.timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return false
	}
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		c.log.Debug("health check failed", zap.Error(errs[0]))
		return false
	}
	return code >= fiber.StatusOK && code < fiber.StatusMultipleChoices
}
