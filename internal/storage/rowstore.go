package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Sentinel kinds for remote failures. Classification happens here, at the
// client boundary, never by matching error message substrings upstream.
var (
	ErrNotConfigured     = errors.New("row store endpoint or api key not configured")
	ErrRemoteUnavailable = errors.New("row store unreachable")
	ErrRemoteRejected    = errors.New("row store rejected request")
)

// StoreError carries the failed operation, the resource it targeted, one of
// the sentinel kinds above and the underlying cause.
type StoreError struct {
	Op       string
	Resource string
	Kind     error
	Err      error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Resource, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == e.Kind }

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RowStore executes filtered reads and writes against the hosted REST row API
// (one resource per table: carts, shopping_sessions, products, session_items,
// orders, order_items, users). It owns no state; every call is an independent
// remote operation.
type RowStore struct {
	baseURL string
	apiKey  string
	client  HTTPClient
}

func NewRowStore(baseURL, apiKey string, client HTTPClient) *RowStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &RowStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (s *RowStore) configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

func (s *RowStore) resourceURL(resource string, filters map[string]string) string {
	params := url.Values{}
	params.Set("select", "*")
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params.Set(k, "eq."+filters[k])
	}
	return s.baseURL + "/rest/v1/" + resource + "?" + params.Encode()
}

func (s *RowStore) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}
}

func (s *RowStore) do(ctx context.Context, op, resource, method string, filters map[string]string, body interface{}, dest interface{}) error {
	if !s.configured() {
		return &StoreError{Op: op, Resource: resource, Kind: ErrNotConfigured}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &StoreError{Op: op, Resource: resource, Kind: ErrRemoteRejected, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.resourceURL(resource, filters), reader)
	if err != nil {
		return &StoreError{Op: op, Resource: resource, Kind: ErrRemoteRejected, Err: err}
	}
	s.setHeaders(req, body != nil)

	resp, err := s.client.Do(req)
	if err != nil {
		// Transport failures (DNS, refused connection, timeout) are all
		// retryable from the caller's point of view.
		return &StoreError{Op: op, Resource: resource, Kind: ErrRemoteUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StoreError{
			Op:       op,
			Resource: resource,
			Kind:     ErrRemoteRejected,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return &StoreError{Op: op, Resource: resource, Kind: ErrRemoteRejected, Err: err}
		}
	}
	return nil
}

// Query returns all rows matching an equality filter set, decoded into dest
// (a pointer to a slice). No match decodes into an empty slice, not an error.
func (s *RowStore) Query(ctx context.Context, resource string, filters map[string]string, dest interface{}) error {
	return s.do(ctx, "query", resource, http.MethodGet, filters, nil, dest)
}

func (s *RowStore) Insert(ctx context.Context, resource string, row interface{}) error {
	return s.do(ctx, "insert", resource, http.MethodPost, nil, row, nil)
}

func (s *RowStore) Patch(ctx context.Context, resource string, filters map[string]string, fields interface{}) error {
	return s.do(ctx, "patch", resource, http.MethodPatch, filters, fields, nil)
}

func (s *RowStore) Delete(ctx context.Context, resource string, filters map[string]string) error {
	return s.do(ctx, "delete", resource, http.MethodDelete, filters, nil, nil)
}
