// Package client talks to the dashboard backend.
package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/adapter"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/patchfinder"
	"github.com/vulnboard/vulnboard/pkg/types"
)

const (
	packagesPath        = "/api/packages"
	vulnerabilitiesPath = "/api/vulnerabilities"
	assessmentsPath     = "/api/assessments"
	patchFinderPath     = "/api/patch-finder/scan"
	documentsPath       = "/api/documents"
)

var ErrStatus = xerrors.New("unexpected status code")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Packages(ctx context.Context) ([]types.Package, error) {
	body, err := c.get(ctx, packagesPath, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return adapter.DecodePackages(body)
}

func (c *Client) Vulnerabilities(ctx context.Context) ([]types.Vulnerability, error) {
	body, err := c.get(ctx, vulnerabilitiesPath, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return adapter.DecodeVulnerabilities(body)
}

// Assessments returns the decodable assessments. Entries rejected because of
// a broken effort estimate are logged.
func (c *Client) Assessments(ctx context.Context) ([]types.Assessment, error) {
	body, err := c.get(ctx, assessmentsPath, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	assessments, errs, err := adapter.DecodeAssessments(body)
	if err != nil {
		return nil, err
	}
	for _, e := range errs {
		log.Warn("Rejected assessment", log.Err(e))
	}
	return assessments, nil
}

// PatchFinder returns the normalized result of the backend's patch finder
// scan.
func (c *Client) PatchFinder(ctx context.Context) (types.PackageVulnerabilities, error) {
	body, err := c.get(ctx, patchFinderPath, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return patchfinder.Decode(body)
}

// Document streams a stored document. The caller closes the returned reader.
func (c *Client) Document(ctx context.Context, name string) (io.ReadCloser, error) {
	return c.get(ctx, documentsPath, url.Values{"name": {name}})
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (io.ReadCloser, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, xerrors.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Requesting backend", log.String("url", u))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("request to %s failed: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, xerrors.Errorf("%s returned %d: %w", path, resp.StatusCode, ErrStatus)
	}
	return resp.Body, nil
}
