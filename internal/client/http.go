package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/labelq/internal/model"
	"github.com/alfredjeanlab/labelq/internal/search"
)

// HTTPClient implements RecordsClient against the HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g.
// "http://localhost:6900"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) GetRecords(ctx context.Context, datasetID string, req *search.Request) (*RecordPage, error) {
	if req.IsAdvanced() {
		return c.searchRecords(ctx, datasetID, req)
	}
	return c.listRecords(ctx, datasetID, req)
}

func (c *HTTPClient) listRecords(ctx context.Context, datasetID string, req *search.Request) (*RecordPage, error) {
	path := "/v1/me/datasets/" + url.PathEscape(datasetID) + "/records?" + recordParams(req.Params).Encode()

	var resp struct {
		Items []*RecordData `json:"items"`
		Total int           `json:"total"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, tag(ErrFetchingRecords, err)
	}
	return &RecordPage{Items: resp.Items, Total: resp.Total}, nil
}

func (c *HTTPClient) searchRecords(ctx context.Context, datasetID string, req *search.Request) (*RecordPage, error) {
	path := "/v1/me/datasets/" + url.PathEscape(datasetID) + "/records/search?" + recordParams(req.Params).Encode()

	var resp struct {
		Items []struct {
			Record     *RecordData `json:"record"`
			QueryScore *float64    `json:"query_score"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, req.Body, &resp); err != nil {
		return nil, tag(ErrFetchingRecords, err)
	}

	page := &RecordPage{Total: resp.Total}
	for _, item := range resp.Items {
		record := item.Record
		record.QueryScore = item.QueryScore
		page.Items = append(page.Items, record)
	}
	return page, nil
}

func (c *HTTPClient) GetRecord(ctx context.Context, recordID string) (*RecordData, error) {
	var record RecordData
	if err := c.doJSON(ctx, http.MethodGet, "/v1/records/"+url.PathEscape(recordID), nil, &record); err != nil {
		return nil, tag(ErrFetchingRecordByID, err)
	}
	return &record, nil
}

func (c *HTTPClient) CreateResponse(ctx context.Context, recordID string, req *AnswerRequest) (*model.Answer, error) {
	var answer model.Answer
	path := "/v1/records/" + url.PathEscape(recordID) + "/responses"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &answer); err != nil {
		return nil, tag(ErrCreatingRecordResponse, err)
	}
	return &answer, nil
}

func (c *HTTPClient) UpdateResponse(ctx context.Context, responseID string, req *AnswerRequest) (*model.Answer, error) {
	var answer model.Answer
	path := "/v1/responses/" + url.PathEscape(responseID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &answer); err != nil {
		return nil, tag(ErrUpdatingRecordResponse, err)
	}
	return &answer, nil
}

func (c *HTTPClient) DeleteResponse(ctx context.Context, responseID string) error {
	path := "/v1/responses/" + url.PathEscape(responseID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return tag(ErrDeletingRecordResponse, err)
	}
	return nil
}

func (c *HTTPClient) BulkResponses(ctx context.Context, req *BulkRequest) (*BulkResult, error) {
	var result BulkResult
	if err := c.doJSON(ctx, http.MethodPost, "/v1/me/responses/bulk", req, &result); err != nil {
		return nil, tag(ErrCreatingRecordResponse, err)
	}
	return &result, nil
}

// recordParams builds the query parameters shared by the listing and
// advanced search endpoints. The includes are fixed: the engine always
// wants responses and suggestions hydrated.
func recordParams(p search.Params) url.Values {
	q := url.Values{}
	q.Add("include", "responses")
	q.Add("include", "suggestions")
	q.Set("offset", strconv.Itoa(p.Offset))
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("response_status", p.ResponseStatus)
	return q
}

// doJSON performs an HTTP request with optional JSON body and decodes the
// JSON response. If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Detail != "" {
			return &statusError{StatusCode: resp.StatusCode, Message: errResp.Detail}
		}
		return &statusError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
