package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://airbnbnew.cybersoft.edu.vn/api"

// Envelope es la forma comun de todas las respuestas del backend.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Content    json.RawMessage `json:"content"`
	DateTime   string          `json:"dateTime"`
	Message    string          `json:"message,omitempty"`
}

// Page es el content de los endpoints paginados.
type Page[T any] struct {
	PageIndex  int    `json:"pageIndex"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	TotalRow   int    `json:"totalRow"`
	Keyword    string `json:"keyword"`
	Data       []T    `json:"data"`
}

// TokenSource entrega el access token actual, o "" si no hay sesion.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// Config agrupa los parametros del cliente.
type Config struct {
	BaseURL        string
	TokenCybersoft string
	Timeout        time.Duration
	// RateLimit en requests por segundo; 0 desactiva el limite.
	RateLimit float64
	Burst     int
}

// Client habla JSON sobre HTTP con el backend de alquileres.
type Client struct {
	baseURL        string
	tokenCybersoft string
	client         *http.Client
	logger         *zap.Logger
	limiter        *rate.Limiter
	now            func() time.Time

	mu        sync.RWMutex
	tokens    TokenSource
	onSuccess func()
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		tokenCybersoft: cfg.TokenCybersoft,
		client:         &http.Client{Timeout: cfg.Timeout},
		logger:         logger,
		limiter:        limiter,
		now:            time.Now,
	}
}

// SetTokenSource configura de donde sale el header token.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	c.tokens = ts
	c.mu.Unlock()
}

// OnSuccess registra un callback que corre tras cada respuesta 2xx,
// usado para extender la sesion.
func (c *Client) OnSuccess(fn func()) {
	c.mu.Lock()
	c.onSuccess = fn
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values, out any) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, query, nil, out)
}

// Do ejecuta la request, decodifica el envelope y, si out no es nil, su content.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) (*Envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.transportError(err)
		}
	}

	params := url.Values{}
	for k, v := range query {
		params[k] = append([]string(nil), v...)
	}
	if method == http.MethodGet {
		params.Set("_ts", strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(ctx, req, body != nil)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("api error", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err)
	}

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		c.logger.Warn("api error status", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: bodyMessage(resp.StatusCode, respBody),
			Err:     fmt.Errorf("api http error: status=%d", resp.StatusCode),
		}
	}

	var env Envelope
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
	}
	if out != nil && len(env.Content) > 0 {
		if err := json.Unmarshal(env.Content, out); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
	}

	c.mu.RLock()
	onSuccess := c.onSuccess
	c.mu.RUnlock()
	if onSuccess != nil {
		onSuccess()
	}
	return &env, nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokenCybersoft != "" {
		req.Header.Set("tokenCybersoft", c.tokenCybersoft)
	}

	c.mu.RLock()
	ts := c.tokens
	c.mu.RUnlock()
	if ts != nil {
		if token := ts.AccessToken(ctx); token != "" {
			req.Header.Set("token", token)
		}
	}
}

func (c *Client) transportError(err error) *APIError {
	msg := MsgNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		msg = MsgTimeout
	}
	return &APIError{Status: 0, Message: msg, Err: err}
}
