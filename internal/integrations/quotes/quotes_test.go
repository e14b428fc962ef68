package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="utf-8"?>
<quotes date="2026-08-28">
	<quote symbol="petr4"><price>38.42</price></quote>
	<quote symbol="VALE3"><price>61.07</price></quote>
	<quote symbol="HGLG11"><price>162.90</price></quote>
	<quote symbol=""><price>10.00</price></quote>
	<quote symbol="BAD1"><price>not-a-number</price></quote>
	<quote symbol="NEG1"><price>-5.00</price></quote>
	<quote symbol="PETR4"><price>38.55</price></quote>
</quotes>`

func TestParseQuoteFeed(t *testing.T) {
	prices, err := parseQuoteFeed([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("parseQuoteFeed() error = %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("parsed %d symbols, want 3: %v", len(prices), prices)
	}

	// Last entry wins for a repeated symbol, case-insensitively.
	if got := prices["PETR4"].String(); got != "38.55" {
		t.Errorf("PETR4 = %s, want 38.55", got)
	}
	if got := prices["VALE3"].String(); got != "61.07" {
		t.Errorf("VALE3 = %s, want 61.07", got)
	}
	if got := prices["HGLG11"].String(); got != "162.9" {
		t.Errorf("HGLG11 = %s, want 162.9", got)
	}
	if _, ok := prices["BAD1"]; ok {
		t.Error("malformed price should be skipped")
	}
	if _, ok := prices["NEG1"]; ok {
		t.Error("negative price should be skipped")
	}
}

func TestParseQuoteFeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed xml", `<quotes><quote`},
		{"no quotes", `<?xml version="1.0"?><quotes date="2026-08-28"></quotes>`},
		{"only unusable quotes", `<quotes><quote symbol="X1"><price>abc</price></quote></quotes>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseQuoteFeed([]byte(tt.body)); err == nil {
				t.Error("parseQuoteFeed() should fail")
			}
		})
	}
}

func TestClient_FetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	prices, err := client.FetchPrices(context.Background())
	if err != nil {
		t.Fatalf("FetchPrices() error = %v", err)
	}
	if got := prices["VALE3"].String(); got != "61.07" {
		t.Errorf("VALE3 = %s, want 61.07", got)
	}
}

func TestClient_FetchPrices_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchPrices(context.Background()); err == nil {
		t.Error("FetchPrices() should fail on server error")
	}
}
