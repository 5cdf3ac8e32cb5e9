package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CultureSync/internal/config"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGzipResponseIsDecoded(t *testing.T) {
	var acceptEncoding string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding = r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"response":{}}`))
		_ = gz.Close()
	}))
	defer srv.Close()

	client := NewHTTPClient(&config.TourAPIConfig{}, quietLogger())
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"response":{}}` {
		t.Errorf("body = %q", body)
	}
	if acceptEncoding != "gzip" {
		t.Errorf("Accept-Encoding = %q", acceptEncoding)
	}
	if resp.Header.Get("Content-Encoding") != "" {
		t.Error("Content-Encoding should be removed after decoding")
	}
}

func TestPlainResponsePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(&config.TourAPIConfig{}, nil).Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "plain" {
		t.Errorf("body = %q", body)
	}
}

func TestTimeoutAndProxy(t *testing.T) {
	if c := NewHTTPClient(&config.TourAPIConfig{}, quietLogger()); c.Timeout != defaultTimeout {
		t.Errorf("default timeout = %v", c.Timeout)
	}
	if c := NewHTTPClient(&config.TourAPIConfig{Timeout: 3}, quietLogger()); c.Timeout != 3*time.Second {
		t.Errorf("timeout = %v", c.Timeout)
	}

	c := NewHTTPClient(&config.TourAPIConfig{Proxy: "http://127.0.0.1:7890"}, quietLogger())
	tr := c.Transport.(*compressedTransport).transport.(*http.Transport)
	req, _ := http.NewRequest(http.MethodGet, "https://apis.data.go.kr/", nil)
	proxy, err := tr.Proxy(req)
	if err != nil || proxy == nil || proxy.Host != "127.0.0.1:7890" {
		t.Errorf("proxy = %v (%v)", proxy, err)
	}
}
