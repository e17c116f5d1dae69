package buddylib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Client is a thin JSON client for the Study Buddy REST API.
// All methods honor the passed context; none of them retry. Callers decide
// whether a failure degrades or surfaces.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// NewClient builds a Client for the given API base URL. An optional session
// token is sent as a bearer credential on every request; session cookies set
// by the server are retained in an in-memory jar.
func NewClient(baseURL, token string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url: %q", baseURL)
	}
	if hc == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, err
		}
		hc = &http.Client{Jar: jar}
	}
	return &Client{base: u, token: token, http: hc}, nil
}

// SetToken replaces the bearer credential used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
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
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CurrentUser fetches the authenticated account behind the session token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserActivities fetches the user's incomplete personal activities.
func (c *Client) UserActivities(ctx context.Context, userID string) ([]Activity, error) {
	var out []Activity
	path := "/api/activities/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserGroups fetches the user's active group memberships.
func (c *Client) UserGroups(ctx context.Context, userID string) ([]GroupMembership, error) {
	var out []GroupMembership
	path := "/api/groups/user/" + url.PathEscape(userID) + "?status=active"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Group fetches one group's schedule detail.
func (c *Client) Group(ctx context.Context, groupID string) (*Group, error) {
	var g Group
	path := "/api/groups/" + url.PathEscape(groupID)
	if err := c.do(ctx, http.MethodGet, path, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SendReminder asks the server to deliver a reminder email.
// Any non-2xx response is an error; the caller owns rollback semantics.
func (c *Client) SendReminder(ctx context.Context, p *ReminderPayload) error {
	return c.do(ctx, http.MethodPost, "/api/reminders/send", p, nil)
}
