package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"imagepuller/internal/services"
)

// DefaultBaseURL is the Microsoft Graph v1.0 endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

var (
	// ErrNotFound reports a people search that matched nobody.
	ErrNotFound = fmt.Errorf("person %w", services.ErrNotFound)
	// ErrNoPhoto reports a user whose photo metadata or binary could not be fetched.
	ErrNoPhoto = fmt.Errorf("photo %w", services.ErrNotFound)
	// ErrUnauthorized reports a token rejected by the API.
	ErrUnauthorized = errors.New("graph credential rejected")
)

// Person is the subset of a people search entry needed to name a photo.
type Person struct {
	ID          string `json:"id"`
	GivenName   string `json:"givenName"`
	Surname     string `json:"surname"`
	DisplayName string `json:"displayName"`
}

// Match describes how a people search resolved. When several entries match,
// the first one returned by the API is used and Ambiguous is set.
type Match struct {
	Count     int
	Ambiguous bool
}

// PhotoMetadata models the /users/{id}/photo response.
type PhotoMetadata struct {
	MediaContentType string `json:"@odata.mediaContentType"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
}

type peopleResponse struct {
	Value []Person `json:"value"`
}

// Directory is the set of lookups the export pipeline performs per person.
type Directory interface {
	ResolvePerson(ctx context.Context, identifier string) (Person, Match, error)
	PhotoExtension(ctx context.Context, personID string) (string, error)
	PhotoBinary(ctx context.Context, personID, size string) (io.ReadCloser, error)
}

// Client talks to Microsoft Graph with a fixed bearer token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

var _ Directory = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client. Zero
// disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a Graph client. An empty baseURL selects DefaultBaseURL.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("graph token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the endpoint requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolvePerson searches the signed-in user's relevant people for identifier.
func (c *Client) ResolvePerson(ctx context.Context, identifier string) (Person, Match, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Person{}, Match{}, errors.New("identifier must not be empty")
	}
	query := "$search=" + url.QueryEscape(`"`+identifier+`"`)
	resp, latency, err := c.get(ctx, "/me/people", query)
	if err != nil {
		return Person{}, Match{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "people search", latency); err != nil {
		return Person{}, Match{}, err
	}

	var payload peopleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Person{}, Match{}, fmt.Errorf("decode people response: %w", err)
	}
	if len(payload.Value) == 0 {
		return Person{}, Match{}, fmt.Errorf("%w: no users matched %q", ErrNotFound, identifier)
	}
	match := Match{Count: len(payload.Value), Ambiguous: len(payload.Value) > 1}
	return payload.Value[0], match, nil
}

// Photo fetches the photo metadata of a user.
func (c *Client) Photo(ctx context.Context, personID string) (PhotoMetadata, error) {
	resp, latency, err := c.get(ctx, "/users/"+url.PathEscape(personID)+"/photo", "")
	if err != nil {
		return PhotoMetadata{}, fmt.Errorf("%w: %w", ErrNoPhoto, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "photo metadata", latency); err != nil {
		return PhotoMetadata{}, fmt.Errorf("%w: %w", ErrNoPhoto, err)
	}

	var meta PhotoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return PhotoMetadata{}, fmt.Errorf("%w: decode photo metadata: %w", ErrNoPhoto, err)
	}
	return meta, nil
}

// PhotoExtension returns the subtype of the photo's media type, for example
// "jpeg" for image/jpeg.
func (c *Client) PhotoExtension(ctx context.Context, personID string) (string, error) {
	meta, err := c.Photo(ctx, personID)
	if err != nil {
		return "", err
	}
	ext := Extension(meta.MediaContentType)
	if ext == "" {
		return "", fmt.Errorf("%w: no media content type for %s", ErrNoPhoto, personID)
	}
	return ext, nil
}

// PhotoBinary opens the square photo of the given size. The caller must close
// the returned body.
func (c *Client) PhotoBinary(ctx context.Context, personID, size string) (io.ReadCloser, error) {
	size = strings.TrimSpace(size)
	path := fmt.Sprintf("/users/%s/photos/%sx%s/$value", url.PathEscape(personID), url.PathEscape(size), url.PathEscape(size))
	resp, latency, err := c.get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPhoto, err)
	}
	if err := checkStatus(resp, "photo binary", latency); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %w", ErrNoPhoto, err)
	}
	return resp.Body, nil
}

// Me fetches the signed-in user, which verifies the token is accepted.
func (c *Client) Me(ctx context.Context) (Person, error) {
	resp, latency, err := c.get(ctx, "/me", "")
	if err != nil {
		return Person{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "me", latency); err != nil {
		return Person{}, err
	}
	var me Person
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return Person{}, fmt.Errorf("decode me response: %w", err)
	}
	return me, nil
}

// Extension extracts the subtype of a media type. Parameters are ignored.
func Extension(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = parsed
	}
	idx := strings.LastIndex(contentType, "/")
	return strings.TrimSpace(contentType[idx+1:])
}

func (c *Client) get(ctx context.Context, path, rawQuery string) (*http.Response, time.Duration, error) {
	endpoint := c.baseURL + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, latency, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	return resp, latency, nil
}

func checkStatus(resp *http.Response, operation string, latency time.Duration) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: graph %s returned %d (latency=%v)", ErrUnauthorized, operation, resp.StatusCode, latency)
	default:
		return fmt.Errorf("graph %s returned %d (latency=%v)", operation, resp.StatusCode, latency)
	}
}
