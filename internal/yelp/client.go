// Package yelp is a thin client for the Yelp Fusion business endpoints the
// directory resolver consumes. It only classifies failures; turning them into
// API errors is the caller's job.
package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.yelp.com/v3"

	// Fixed search parameters for the nightlife category set: a 20-mile
	// radius, sorted by distance, with a 21st lookahead result used only to
	// detect whether another page exists.
	searchCategories = "bars,sportsbars"
	searchRadius     = 32187
	SearchLimit      = 21
	PageSize         = 20
)

// StatusError is returned for any transport failure or non-2xx provider
// response. Code is zero when the provider was never reached.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("yelp responded with status %d", e.Code)
	}
	return fmt.Sprintf("yelp request failed: %v", e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// SearchQuery carries the caller-supplied part of a venue search. Location
// and the coordinate pair are mutually exclusive; coordinates are forwarded
// verbatim as the client received them.
type SearchQuery struct {
	Location  string
	Latitude  string
	Longitude string
	Page      int
}

type Business struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	URL      string  `json:"url"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	Phone    string  `json:"display_phone"`
	IsClosed bool    `json:"is_closed"`
	Location struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
}

type SearchResult struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL exists for tests pointed at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Search polls the provider for up to SearchLimit open-or-closed businesses
// around the queried location, offset by the requested page.
func (c *Client) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	params := url.Values{}
	params.Set("categories", searchCategories)
	params.Set("radius", strconv.Itoa(searchRadius))
	params.Set("limit", strconv.Itoa(SearchLimit))
	params.Set("offset", strconv.Itoa(PageSize*query.Page))
	params.Set("sort_by", "distance")

	if query.Location != "" {
		params.Set("location", query.Location)
	} else {
		if query.Latitude != "" {
			params.Set("latitude", query.Latitude)
		}
		if query.Longitude != "" {
			params.Set("longitude", query.Longitude)
		}
	}

	var result SearchResult
	if err := c.get(ctx, "/businesses/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Business fetches the full detail record for one venue.
func (c *Client) Business(ctx context.Context, businessID string) (*Business, error) {
	var business Business
	if err := c.get(ctx, "/businesses/"+url.PathEscape(businessID), &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &StatusError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &StatusError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &StatusError{Err: fmt.Errorf("failed to decode yelp response: %v", err)}
	}
	return nil
}
