// Package api talks to the shop backend REST API. Every method issues exactly
// one request and returns the decoded body or an *Error.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const defaultTimeout = 15 * time.Second

type access int

const (
	public access = iota
	authed
)

type Client struct {
	base    string
	token   string
	timeout time.Duration
	hc      *fiber.Client
}

// New builds an unauthenticated client for the backend rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:    strings.TrimRight(baseURL, "/") + "/",
		timeout: timeout,
		hc:      &fiber.Client{UserAgent: "shopadmin"},
	}
}

// WithToken returns a copy that sends tok as a bearer credential on authorized calls.
func (c *Client) WithToken(tok string) *Client {
	cp := *c
	cp.token = tok
	return &cp
}

func (c *Client) Token() string { return c.token }

func (c *Client) BaseURL() string { return c.base }

type request struct {
	method string
	path   string
	access access
	query  url.Values
	json   any
	form   *Form
}

func (c *Client) agent(r request) *fiber.Agent {
	u := c.base + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	var a *fiber.Agent
	switch r.method {
	case fiber.MethodPost:
		a = c.hc.Post(u)
	case fiber.MethodPut:
		a = c.hc.Put(u)
	case fiber.MethodPatch:
		a = c.hc.Patch(u)
	case fiber.MethodDelete:
		a = c.hc.Delete(u)
	default:
		a = c.hc.Get(u)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if r.access == authed && c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	switch {
	case r.form != nil:
		r.form.apply(a)
	case r.json != nil:
		a.JSON(r.json)
	}
	return a
}

// do sends r and decodes a 2xx body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	op := r.method + " " + r.path
	if err := ctx.Err(); err != nil {
		return &Error{Op: op, Message: "request cancelled", Err: err}
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	a := c.agent(r)
	a.Timeout(timeout)
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return &Error{Op: op, Message: "backend unreachable", Err: errs[0]}
	}
	if code < 200 || code > 299 {
		return &Error{Op: op, Status: code, Message: messageOf(code, body)}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func messageOf(code int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return utils.StatusMessage(code)
}

// Message is the {message} acknowledgement most delete endpoints answer with.
type Message struct {
	Message string `json:"message"`
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

// pageQuery adds page/limit/search when set.
func pageQuery(q url.Values, page, limit int, search string) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	return q
}
