package network

import (
	"errors"
	"math/rand"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

const DefaultTimeout = 30 * time.Second

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Client is a browser-profiled HTTP client with optional proxy rotation.
type Client struct {
	http       tls_client.HttpClient
	rotator    *Rotator
	userAgents []string
	rand       *rand.Rand
}

func NewClient(rotator *Rotator, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:       client,
		rotator:    rotator,
		userAgents: append([]string{}, userAgents...),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, err := c.rotateProxy()
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}
	if err := c.http.SetProxy(proxy.String()); err != nil {
		return nil, err
	}
	return proxy, nil
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
