// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"resty.dev/v3"

	"github.com/gaucho-cli/gaucho"
	apimodel "github.com/gaucho-cli/gaucho/internal/api/model"
)

const (
	servicesPath = "/services/"
	projectsPath = "/projects/"
)

type Config struct {
	Host               string
	AccessKey          string
	SecretKey          string
	InsecureSkipVerify bool
	RootCAs            *x509.CertPool
	RequestID          string
}

// Client talks to a Rancher v1 API. It never retries: waiting for state
// changes is the poller's job.
type Client struct {
	host      string
	tlsConfig *tls.Config
	resty     *resty.Client
}

func NewClient(cfg Config, net *http.Client) *Client {
	client := resty.New()

	if net != nil {
		client = resty.NewWithClient(net)
	}

	client.SetBasicAuth(cfg.AccessKey, cfg.SecretKey)
	client.SetHeader("Accept", "application/json")

	if cfg.RequestID != "" {
		client.SetHeader("X-Request-Id", cfg.RequestID)
	}

	tlsConfig := clientTLSConfig(cfg)
	if tlsConfig != nil {
		client.SetTLSClientConfig(tlsConfig)
	}

	return &Client{
		host:      NormalizeHost(cfg.Host),
		tlsConfig: tlsConfig,
		resty:     client,
	}
}

// clientTLSConfig is shared by the REST client and the relay dialer. It is
// nil when the defaults apply.
func clientTLSConfig(cfg Config) *tls.Config {
	if !cfg.InsecureSkipVerify && cfg.RootCAs == nil {
		return nil
	}
	return &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
		RootCAs:            cfg.RootCAs,
		MinVersion:         tls.VersionTLS12,
	}
}

// NormalizeHost falls back to the default host and makes sure the API version
// suffix is present.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return gaucho.DefaultHost
	}

	host = strings.TrimRight(host, "/")
	if !strings.HasSuffix(host, gaucho.APIVersionSuffix) {
		host += gaucho.APIVersionSuffix
	}

	return host
}

func (c *Client) Host() string {
	return c.host
}

func (c *Client) ServiceURL(id string) string {
	return c.host + servicesPath + id
}

func (c *Client) ProjectURL(id string) string {
	return c.host + projectsPath + id
}

// Get fetches url and decodes the JSON body into out. Any failure is a
// *FetchError.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	body, err := c.Raw(ctx, url)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// Raw fetches url and returns the body unchanged.
func (c *Client) Raw(ctx context.Context, url string) ([]byte, error) {
	slog.Debug("GET", "url", url)

	resp, err := c.resty.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	//nolint:errcheck
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode(), Err: parseErrorResponse(resp.Status(), body)}
	}

	return body, nil
}

// Post invokes an action. A nil body sends an empty payload.
func (c *Client) Post(ctx context.Context, url string, body any, out any) error {
	return c.send(ctx, http.MethodPost, url, body, out)
}

func (c *Client) Delete(ctx context.Context, url string, body any, out any) error {
	return c.send(ctx, http.MethodDelete, url, body, out)
}

func (c *Client) send(ctx context.Context, method, url string, body any, out any) error {
	slog.Debug(method, "url", url)

	req := c.resty.R().
		SetContext(ctx).
		SetContentType("application/json")

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ActionError{Method: method, URL: url, Err: fmt.Errorf("failed to marshal payload: %w", err)}
		}
		req.SetBody(payload)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return &ActionError{Method: method, URL: url, Err: err}
	}

	//nolint:errcheck
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ActionError{Method: method, URL: url, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return &ActionError{Method: method, URL: url, StatusCode: resp.StatusCode(), Err: parseErrorResponse(resp.Status(), respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &ActionError{Method: method, URL: url, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// parseErrorResponse prefers the API's own error body and falls back to the
// HTTP status line.
func parseErrorResponse(status string, body []byte) error {
	var errResp apimodel.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Code != "" || errResp.Message != "") {
		return errResp
	}

	return fmt.Errorf("unexpected response: %s", status)
}
