// Package crawlingtest serves a small imitation of the UN resolutions site for tests.
package crawlingtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/jonathan/unsc-scraper/internal/types"
)

// IndexPath is the path of the fixture index page. It ends in a slash like the live site.
const IndexPath = "/en/sc/documents/resolutions/"

// Index lists 1959, 2020 and 1964 with relative links.
var Index = Page(`<table>
<tr><td><a href="1959.shtml">1959</a></td><td><a href="2020.shtml">2020</a></td></tr>
<tr><td><a href="1964.shtml">1964</a></td></tr>
</table>`)

// Year1959 holds a single resolution with an absolute document link.
var Year1959 = Page(`<table>
<tr><th>Symbol</th><th>Date</th><th>Title</th></tr>
<tr><td><a href="http://www.un.org/ga/search/view_doc.asp?symbol=S/RES/132(1959)">S/RES/132 (1959)</a></td><td>7 September 1959</td><td>Laos</td></tr>
</table>`)

// Year2020 has a row without a document link between two valid rows.
var Year2020 = Page(`<table>
<tr><th>Symbol</th><th>Title</th></tr>
<tr><td><a href="/en/ga/search/view_doc.asp?symbol=S/RES/2510(2020)">S/RES/2510 (2020)</a></td><td>The situation in <em>Libya</em></td></tr>
<tr><td>S/RES/2511 (2020)</td><td>Central African Republic</td></tr>
<tr><td><a href="view_doc.asp?symbol=S/RES/2512(2020)">S/RES/2512 (2020)</a></td><td>Cyprus</td></tr>
</table>`)

// Year1964 repeats its whole content table, as the live page does.
var Year1964 = Page(year1964Table, year1964Table)

const year1964Table = `<table>
<tr><th>Symbol</th><th>Title</th></tr>
<tr><td><a href="../../../ga/search/view_doc.asp?symbol=S/RES/186(1964)">S/RES/186 (1964)</a></td><td>Cyprus</td></tr>
<tr><td><a href="../../../ga/search/view_doc.asp?symbol=S/RES/187(1964)">S/RES/187 (1964)</a></td><td>Cyprus</td></tr>
</table>`

// Page wraps tables in the site's layout, each a direct child of #content.
func Page(tables ...string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Security Council Resolutions</title></head>
<body>
<div id="header"><table><tr><td><a href="/">Home</a></td></tr></table></div>
<div id="content">
<h1>Resolutions</h1>
%s
</div>
</body></html>`, strings.Join(tables, "\n"))
}

// Site is a running fixture server.
type Site struct {
	Server *httptest.Server

	mu    sync.RWMutex
	pages map[string]string
	hits  []string
}

// NewSite starts a server with the default index and the 1959, 2020 and 1964 pages.
func NewSite() *Site {
	s := &Site{
		pages: map[string]string{
			IndexPath:                Index,
			IndexPath + "1959.shtml": Year1959,
			IndexPath + "2020.shtml": Year2020,
			IndexPath + "1964.shtml": Year1964,
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits = append(s.hits, r.URL.Path)
	page, ok := s.pages[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// Close shuts the server down.
func (s *Site) Close() {
	s.Server.Close()
}

// BaseURL is the absolute URL of the index page.
func (s *Site) BaseURL() string {
	return s.Server.URL + IndexPath
}

// URL returns the absolute URL for path.
func (s *Site) URL(path string) string {
	return s.Server.URL + path
}

// SetPage replaces or adds the page served at path.
func (s *Site) SetPage(path, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = html
}

// Hits returns the paths requested so far, robots.txt included.
func (s *Site) Hits() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.hits...)
}

// ExpectedYears is what discovery should return for the default index.
func (s *Site) ExpectedYears() []types.YearEntry {
	return []types.YearEntry{
		{Year: 1959, URL: s.BaseURL() + "1959.shtml"},
		{Year: 2020, URL: s.BaseURL() + "2020.shtml"},
		{Year: 1964, URL: s.BaseURL() + "1964.shtml"},
	}
}

// ExpectedRecords is what a full crawl of the default site should return.
func (s *Site) ExpectedRecords() types.ResolutionSet {
	return types.ResolutionSet{
		{Year: 1959, Symbol: "S/RES/132 (1959)", Title: "Laos", URL: "http://www.un.org/ga/search/view_doc.asp?symbol=S/RES/132(1959)"},
		{Year: 2020, Symbol: "S/RES/2510 (2020)", Title: "The situation in Libya", URL: s.URL("/en/ga/search/view_doc.asp?symbol=S/RES/2510(2020)")},
		{Year: 2020, Symbol: "S/RES/2512 (2020)", Title: "Cyprus", URL: s.BaseURL() + "view_doc.asp?symbol=S/RES/2512(2020)"},
		{Year: 1964, Symbol: "S/RES/186 (1964)", Title: "Cyprus", URL: s.URL("/en/ga/search/view_doc.asp?symbol=S/RES/186(1964)")},
		{Year: 1964, Symbol: "S/RES/187 (1964)", Title: "Cyprus", URL: s.URL("/en/ga/search/view_doc.asp?symbol=S/RES/187(1964)")},
	}
}
