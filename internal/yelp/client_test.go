package yelp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchSendsFixedQueryParameters(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/businesses/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"businesses":[{"id":"b1","name":"The Spot","image_url":"img","is_closed":false}],"total":1}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	result, err := client.Search(context.Background(), SearchQuery{Location: "Boston", Page: 2})
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}

	expect := map[string]string{
		"categories": "bars,sportsbars",
		"radius":     "32187",
		"limit":      "21",
		"offset":     "40",
		"sort_by":    "distance",
		"location":   "Boston",
	}
	for key, want := range expect {
		if gotQuery[key] != want {
			t.Fatalf("query param %s: expected %q, got %q", key, want, gotQuery[key])
		}
	}

	if result.Total != 1 || len(result.Businesses) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Businesses[0].Name != "The Spot" {
		t.Fatalf("unexpected business %+v", result.Businesses[0])
	}
}

func TestSearchForwardsCoordinatesWhenNoLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("location") != "" {
			t.Fatal("location must not be set for coordinate queries")
		}
		if query.Get("latitude") != "42.35" || query.Get("longitude") != "-71.06" {
			t.Fatalf("unexpected coordinates %s,%s", query.Get("latitude"), query.Get("longitude"))
		}
		w.Write([]byte(`{"businesses":[],"total":0}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	if _, err := client.Search(context.Background(), SearchQuery{Latitude: "42.35", Longitude: "-71.06"}); err != nil {
		t.Fatalf("expected nil err got %v", err)
	}
}

func TestNon200ResponseYieldsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	_, err := client.Search(context.Background(), SearchQuery{Location: "Boston"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected code 429, got %d", statusErr.Code)
	}
}

func TestUnreachableProviderYieldsStatusErrorWithoutCode(t *testing.T) {
	client := NewClientWithBaseURL("test-key", "http://127.0.0.1:1")
	_, err := client.Business(context.Background(), "b1")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != 0 {
		t.Fatalf("expected zero code for transport failure, got %d", statusErr.Code)
	}
}

func TestBusinessDecodesDetailFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/businesses/b1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": "b1",
			"name": "The Spot",
			"image_url": "img",
			"url": "https://yelp/b1",
			"price": "$$",
			"rating": 4.5,
			"display_phone": "(617) 555-0100",
			"is_closed": true,
			"location": {"display_address": ["1 Main St", "Boston, MA"]}
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	business, err := client.Business(context.Background(), "b1")
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}

	if !business.IsClosed {
		t.Fatal("expected is_closed to decode")
	}
	if business.Rating != 4.5 || business.Price != "$$" {
		t.Fatalf("unexpected business %+v", business)
	}
	if len(business.Location.DisplayAddress) != 2 {
		t.Fatalf("expected two address lines, got %v", business.Location.DisplayAddress)
	}
}
