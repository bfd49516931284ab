// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// newEutilsServer points eutilsBase at an httptest server for the duration
// of the test.
func newEutilsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := eutilsBase
	eutilsBase = ts.URL
	t.Cleanup(func() {
		eutilsBase = old
		ts.Close()
	})
	return ts
}

func testClient(cfg types.PubMedConfig) *Client {
	// An API key keeps the client-side rate limit at 10/s so multi-request
	// tests stay fast.
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	return NewClient(cfg, nil)
}

const esearchJSON = `{
  "esearchresult": {
    "count": "1436",
    "idlist": ["41000001", "41000002", "41000003"]
  }
}`

const esummaryJSON = `{
  "result": {
    "uids": ["41000001", "41000002"],
    "41000001": {
      "title": "Metformin and vitamin B12 deficiency in older adults.",
      "fulljournalname": "Journal of Internal Medicine",
      "pubdate": "2024 Mar 15",
      "authors": [{"name": "Smith J"}, {"name": "Jones K"}],
      "articleids": [
        {"idtype": "pubmed", "value": "41000001"},
        {"idtype": "doi", "value": "10.1000/jim.2024.001"}
      ]
    },
    "41000002": {
      "title": "Second article",
      "fulljournalname": "BMJ",
      "pubdate": "2023",
      "authors": [],
      "articleids": []
    }
  }
}`

func TestSearch(t *testing.T) {
	var gotParams url.Values
	newEutilsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/esearch.fcgi" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotParams = r.URL.Query()
		w.Write([]byte(esearchJSON))
	})

	c := testClient(types.PubMedConfig{})
	ids, count, err := c.Search(context.Background(), "(metformin b12)", SearchOptions{MaxResults: 3, Sort: "pub_date"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(ids) != 3 || ids[0] != "41000001" {
		t.Errorf("ids = %v", ids)
	}
	if count != 1436 {
		t.Errorf("count = %d, want 1436", count)
	}
	if gotParams.Get("db") != "pubmed" {
		t.Errorf("db = %q", gotParams.Get("db"))
	}
	if gotParams.Get("term") != "(metformin b12)" {
		t.Errorf("term = %q", gotParams.Get("term"))
	}
	if gotParams.Get("retmax") != "3" {
		t.Errorf("retmax = %q", gotParams.Get("retmax"))
	}
	if gotParams.Get("sort") != "date" {
		t.Errorf("sort = %q", gotParams.Get("sort"))
	}
	if gotParams.Get("api_key") != "test-key" {
		t.Errorf("api_key = %q", gotParams.Get("api_key"))
	}
}

func TestSearchRecentDays(t *testing.T) {
	var gotTerm string
	newEutilsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		w.Write([]byte(esearchJSON))
	})

	c := testClient(types.PubMedConfig{})
	if _, _, err := c.Search(context.Background(), "(statin)", SearchOptions{RecentDays: 30}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if !strings.Contains(gotTerm, "(statin) AND ") || !strings.Contains(gotTerm, ":3000[edat]") {
		t.Errorf("term = %q, want entry-date restriction appended", gotTerm)
	}
}

func TestSearchDefaultsAndUnknownSort(t *testing.T) {
	var gotParams url.Values
	newEutilsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		w.Write([]byte(esearchJSON))
	})

	c := testClient(types.PubMedConfig{})
	if _, _, err := c.Search(context.Background(), "x", SearchOptions{Sort: "bogus"}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotParams.Get("retmax") != "5" {
		t.Errorf("retmax = %q, want default 5", gotParams.Get("retmax"))
	}
	if gotParams.Get("sort") != "relevance" {
		t.Errorf("sort = %q, want relevance fallback", gotParams.Get("sort"))
	}
}

func TestSearchServerError(t *testing.T) {
	newEutilsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := testClient(types.PubMedConfig{})
	if _, _, err := c.Search(context.Background(), "x", SearchOptions{}); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestSummaries(t *testing.T) {
	newEutilsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/esummary.fcgi" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "41000001,41000002" {
			t.Errorf("id = %q", got)
		}
		w.Write([]byte(esummaryJSON))
	})

	c := testClient(types.PubMedConfig{})
	articles, err := c.Summaries(context.Background(), []string{"41000001", "41000002"})
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}

	a := articles[0]
	if a.Title != "Metformin and vitamin B12 deficiency in older adults." {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Journal != "Journal of Internal Medicine" {
		t.Errorf("Journal = %q", a.Journal)
	}
	if len(a.Authors) != 2 || a.Authors[0] != "Smith J" {
		t.Errorf("Authors = %v", a.Authors)
	}
	if a.DOI != "10.1000/jim.2024.001" {
		t.Errorf("DOI = %q", a.DOI)
	}
	if a.URL != "https://pubmed.ncbi.nlm.nih.gov/41000001/" {
		t.Errorf("URL = %q", a.URL)
	}
}

func TestSummariesEmptyIDs(t *testing.T) {
	c := testClient(types.PubMedConfig{})
	articles, err := c.Summaries(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if articles != nil {
		t.Errorf("articles = %v, want nil", articles)
	}
}

func TestFetchArticlesFillsAbstracts(t *testing.T) {
	newEutilsServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/esummary.fcgi":
			w.Write([]byte(esummaryJSON))
		case "/efetch.fcgi":
			w.Write([]byte("<PubmedArticle><abstract>Metformin reduces vitamin B12 absorption in long-term users.</abstract></PubmedArticle>"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	c := testClient(types.PubMedConfig{})
	var warnings strings.Builder
	articles, err := c.FetchArticles(context.Background(), []string{"41000001", "41000002"}, &warnings)
	if err != nil {
		t.Fatalf("FetchArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	want := "Metformin reduces vitamin B12 absorption in long-term users."
	if articles[0].Abstract != want {
		t.Errorf("Abstract = %q", articles[0].Abstract)
	}
}

func TestDB(t *testing.T) {
	if got := testClient(types.PubMedConfig{}).DB(); got != "pubmed" {
		t.Errorf("DB() = %q, want pubmed", got)
	}
	if got := testClient(types.PubMedConfig{UsePMC: true}).DB(); got != "pmc" {
		t.Errorf("DB() = %q, want pmc", got)
	}
}

func TestArticleURL(t *testing.T) {
	if got := articleURL("pubmed", "41000001"); got != "https://pubmed.ncbi.nlm.nih.gov/41000001/" {
		t.Errorf("articleURL = %q", got)
	}
	if got := articleURL("pmc", "PMC9000001"); got != "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC9000001/" {
		t.Errorf("articleURL = %q", got)
	}
}
