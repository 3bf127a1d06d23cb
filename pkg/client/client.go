package client

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/braunma/netbox-baseline/pkg/utils"
)

var (
	// ErrAmbiguous is returned by Find when more than one object matches
	ErrAmbiguous = errors.New("lookup matched more than one object")
)

// APIError is returned for any response with status >= 400
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// Object represents a generic NetBox object
type Object map[string]interface{}

// ID returns the object's identifier, 0 when it has none
func (o Object) ID() int {
	return utils.GetIDFromObject(map[string]interface{}(o))
}

// NetBoxClient handles all NetBox API operations
type NetBoxClient struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	cache        *CreatedCache
	tagManager   *TagManager
	logger       *utils.Logger
	dryRun       bool
	managedTag   string
	managedTagID int
}

// Option configures a NetBoxClient
type Option func(*NetBoxClient)

// WithLogger replaces the default stdout logger
func WithLogger(logger *utils.Logger) Option {
	return func(c *NetBoxClient) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *NetBoxClient) {
		c.httpClient = hc
	}
}

// WithInsecureSkipVerify disables TLS certificate verification
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *NetBoxClient) {
		if !skip {
			return
		}

		base, ok := c.httpClient.Transport.(*http.Transport)
		if !ok || base == nil {
			base = http.DefaultTransport.(*http.Transport)
		}
		transport := base.Clone()
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in via credentials

		// Copy so a client passed through WithHTTPClient is left alone
		hc := *c.httpClient
		hc.Transport = transport
		c.httpClient = &hc
	}
}

// WithManagedTag tags every created object with the given tag slug
func WithManagedTag(slug string) Option {
	return func(c *NetBoxClient) {
		c.managedTag = slug
	}
}

// NewClient creates a new NetBox API client
func NewClient(baseURL, token string, dryRun bool, opts ...Option) (*NetBoxClient, error) {
	client := &NetBoxClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: utils.NewLogger(dryRun),
		dryRun: dryRun,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.cache = NewCreatedCache()
	client.tagManager = NewTagManager(client)

	if client.managedTag != "" {
		tagID, err := client.tagManager.Ensure(client.managedTag)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure managed tag: %w", err)
		}
		client.managedTagID = tagID
	}

	return client, nil
}

// Request makes an HTTP request to the NetBox API
func (c *NetBoxClient) Request(method, path string, body interface{}) (Object, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	respBody, err := c.do(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if len(respBody) == 0 {
		return nil, nil
	}

	var result Object
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return result, nil
}

// List makes a GET request and returns a list of objects
func (c *NetBoxClient) List(path string, filters map[string]interface{}) ([]Object, error) {
	if len(filters) > 0 {
		query := url.Values{}
		for k, v := range filters {
			query.Set(k, fmt.Sprintf("%v", v))
		}
		path += "?" + query.Encode()
	}

	respBody, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []Object `json:"results"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		// Try unmarshaling as direct array
		var directResults []Object
		if err2 := json.Unmarshal(respBody, &directResults); err2 == nil {
			return directResults, nil
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return result.Results, nil
}

// do sends the request and returns the raw body of a successful response
func (c *NetBoxClient) do(method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// Filter retrieves objects matching the given filters
func (c *NetBoxClient) Filter(endpoint string, filters map[string]interface{}) ([]Object, error) {
	path := fmt.Sprintf("/api/%s/", endpoint)
	return c.List(path, filters)
}

// Find returns the single object whose field equals value, or nil when
// there is none. An empty value never matches: NetBox ignores empty filters.
func (c *NetBoxClient) Find(endpoint, field, value string) (Object, error) {
	if value == "" {
		return nil, nil
	}

	if obj, ok := c.cache.Lookup(endpoint, field, value); ok {
		return obj, nil
	}

	objects, err := c.Filter(endpoint, map[string]interface{}{field: value})
	if err != nil {
		return nil, fmt.Errorf("failed to filter %s: %w", endpoint, err)
	}

	switch len(objects) {
	case 0:
		return nil, nil
	case 1:
		return objects[0], nil
	default:
		return nil, errors.Wrapf(ErrAmbiguous, "%s %s=%q matched %d objects", endpoint, field, value, len(objects))
	}
}

// Create creates a new object. In dry-run mode nothing is sent and the
// returned object carries a negative placeholder ID.
func (c *NetBoxClient) Create(endpoint string, data map[string]interface{}) (Object, error) {
	path := fmt.Sprintf("/api/%s/", endpoint)
	payload := c.tagManager.InjectTag(data, c.managedTagID)

	if c.dryRun {
		c.logger.DryRun(http.MethodPost, "%s %v", path, payload)
		obj := Object{}
		for k, v := range payload {
			obj[k] = v
		}
		obj["id"] = c.cache.NextPlaceholderID()
		c.cache.Record(endpoint, obj)
		return obj, nil
	}

	obj, err := c.Request(http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("empty response creating %s", endpoint)
	}

	c.cache.Record(endpoint, obj)
	return obj, nil
}

// IsDryRun returns the dry-run status
func (c *NetBoxClient) IsDryRun() bool {
	return c.dryRun
}

// ManagedTagID returns the managed tag ID, 0 when no tag is configured
func (c *NetBoxClient) ManagedTagID() int {
	return c.managedTagID
}
