package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const schedulePage = `<html><body><script>
initDataGrid(100, false, "[[\"1\",\"x\",\"Dual\",\"20251213\",\"1800\",\"\",\"\",\"\",\"\",\"\",\"\",\"\",\"H\",\"\",\"\",\"\",\"\",\"\",\"\",\"Cherokee\"]]", "cols");
</script></body></html>`

var testTarget = Target{TeamID: "768996150", SeasonID: "1560212138"}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(schedulePage))
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{BaseURL: server.URL, Target: testTarget})
	body, err := f.Fetch(context.Background(), PageSchedule)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if body != schedulePage {
		t.Errorf("Fetch() body mismatch")
	}
	if !strings.Contains(gotQuery, "pageName=TeamSchedule.jsp;teamId=768996150") {
		t.Errorf("query = %q, want pageName with teamId", gotQuery)
	}
	if gotAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotAgent, DefaultUserAgent)
	}
	if f.Name() != TransportHTTP {
		t.Errorf("Name() = %q, want %q", f.Name(), TransportHTTP)
	}
}

func TestHTTPFetcher_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{BaseURL: server.URL, Target: testTarget})
	_, err := f.Fetch(context.Background(), PageRoster)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Fetch() error = %v, want ErrUnexpectedStatus", err)
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{BaseURL: server.URL, Target: testTarget, Timeout: 20 * time.Millisecond})
	if _, err := f.Fetch(context.Background(), PageSchedule); err == nil {
		t.Error("Fetch() expected timeout error")
	}
}

func TestAJAXFetcher_Fetch(t *testing.T) {
	var function, session, tim string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tw/seasons/AjaxFunctions.jsp" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		function = q.Get("function")
		session = q.Get("twSessionId")
		tim = q.Get("TIM")
		w.Write([]byte(`"[[1,\"Smith\",\"Alex\"]]"`))
	}))
	defer server.Close()

	f := NewAJAXFetcher(Options{BaseURL: server.URL, Target: testTarget})
	f.now = func() time.Time { return time.UnixMilli(1700000000123) }

	body, err := f.Fetch(context.Background(), PageRoster)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if body != `"[[1,\"Smith\",\"Alex\"]]"` {
		t.Errorf("Fetch() body = %q", body)
	}
	if function != "getTeamRoster" {
		t.Errorf("function = %q, want getTeamRoster", function)
	}
	if session != DefaultSessionID {
		t.Errorf("twSessionId = %q, want %q", session, DefaultSessionID)
	}
	if tim != "1700000000123" {
		t.Errorf("TIM = %q, want 1700000000123", tim)
	}
}

func TestAJAXFetcher_ResultsUnsupported(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	f := NewAJAXFetcher(Options{BaseURL: server.URL, Target: testTarget})
	_, err := f.Fetch(context.Background(), PageResults)
	if !errors.Is(err, ErrUnsupportedPage) {
		t.Errorf("Fetch() error = %v, want ErrUnsupportedPage", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected no request, got %d", calls)
	}
}

func TestFrameFetcher_FollowsIframe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tw/seasons/LoadBalance.jsp", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tw/seasons/MainFrame.jsp", http.StatusFound)
	})
	mux.HandleFunc("/tw/seasons/MainFrame.jsp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><iframe src=""></iframe><iframe src="TeamSchedule.jsp?teamId=1"></iframe></body></html>`)
	})
	mux.HandleFunc("/tw/seasons/TeamSchedule.jsp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, schedulePage)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewFrameFetcher(Options{BaseURL: server.URL, Target: testTarget})
	body, err := f.Fetch(context.Background(), PageSchedule)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != schedulePage {
		t.Errorf("Fetch() did not return frame content: %q", body)
	}
}

func TestFrameFetcher_DataOnMainPage(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, schedulePage)
	}))
	defer server.Close()

	f := NewFrameFetcher(Options{BaseURL: server.URL, Target: testTarget})
	body, err := f.Fetch(context.Background(), PageSchedule)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != schedulePage {
		t.Error("Fetch() should return the main page")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 request, got %d", calls)
	}
}

func TestFindFrameSource(t *testing.T) {
	const pageURL = "https://www.trackwrestling.com/tw/seasons/MainFrame.jsp?x=1"

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "relative iframe",
			html: `<iframe src="TeamRoster.jsp"></iframe>`,
			want: "https://www.trackwrestling.com/tw/seasons/TeamRoster.jsp",
		},
		{
			name: "absolute iframe",
			html: `<iframe src="https://other.example.com/page"></iframe>`,
			want: "https://other.example.com/page",
		},
		{
			name: "frameset main frame",
			html: `<frameset><frame name="topFrame" src="/top.jsp"><frame name="mainFrame" src="/tw/content.jsp"></frameset>`,
			want: "https://www.trackwrestling.com/tw/content.jsp",
		},
		{
			name: "frameset content frame",
			html: `<frameset><frame name="PageContent" src="content.jsp"></frameset>`,
			want: "https://www.trackwrestling.com/tw/seasons/content.jsp",
		},
		{
			name: "frames without matching name",
			html: `<frameset><frame name="nav" src="/nav.jsp"></frameset>`,
			want: "",
		},
		{
			name: "no frames",
			html: `<html><body><p>nothing</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindFrameSource(tt.html, pageURL)
			if err != nil {
				t.Fatalf("FindFrameSource() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindFrameSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFetcher(t *testing.T) {
	tests := []struct {
		transport string
		want      string
		wantErr   bool
	}{
		{"", TransportHTTP, false},
		{"http", TransportHTTP, false},
		{"AJAX", TransportAJAX, false},
		{"frame", TransportFrame, false},
		{"browser", TransportBrowser, false},
		{"carrier-pigeon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.transport, func(t *testing.T) {
			f, err := NewFetcher(Options{Transport: tt.transport, Target: testTarget})
			if tt.wantErr {
				if err == nil {
					t.Error("NewFetcher() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFetcher() error = %v", err)
			}
			if f.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.want)
			}
		})
	}
}
