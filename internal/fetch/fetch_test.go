package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchHTMLRejectsBadURLs(t *testing.T) {
	c := &Client{}
	for _, raw := range []string{"", "not a url", "ftp://example.com/x", "file:///etc/passwd", "http://"} {
		_, err := c.FetchHTML(context.Background(), raw)
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("FetchHTML(%q) = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestFetchHTMLReportsStatusAsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.FetchHTML(context.Background(), srv.URL)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if ne.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", ne.Status)
	}
}

func TestFetchHTMLEmptyBodyIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := &Client{}
	_, err := c.FetchHTML(context.Background(), srv.URL)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestFetchHTMLUndecodableBodyIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.FetchHTML(context.Background(), srv.URL)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestReadPageExtractsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><script>nope()</script></head><body><p>Hello &amp; welcome</p></body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "pagereader-test"}
	text, err := c.ReadPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello & welcome" {
		t.Fatalf("got %q", text)
	}
}

func TestReadPageEmptyExtractionIsParsingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><script>only();</script></body></html>"))
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.ReadPage(context.Background(), srv.URL)
	if !errors.Is(err, ErrParsing) {
		t.Fatalf("expected ErrParsing, got %v", err)
	}
}
