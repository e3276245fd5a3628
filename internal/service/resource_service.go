package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// Resource is one external wellbeing link
type Resource struct {
	Title string
	URL   string
}

// ResourceSearcher looks up external wellbeing resources by keyword.
// Failures surface as an empty result with a warning, never as an error the
// menu layer has to handle.
type ResourceSearcher interface {
	Search(keyword string) []Resource
}

type webResourceSearcher struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewResourceSearcher scrapes the configured resource page for links
func NewResourceSearcher(baseURL string, log *logrus.Logger) ResourceSearcher {
	return &webResourceSearcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (s *webResourceSearcher) Search(keyword string) []Resource {
	resp, err := s.client.Get(s.baseURL)
	if err != nil {
		s.log.Warnf("Resource search failed: %+v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warnf("Resource search returned status %d", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.log.Warnf("Resource page parse failed: %+v", err)
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(keyword))
	var results []Resource
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")
		if title == "" || !strings.HasPrefix(href, "http") {
			return
		}
		if needle == "" || strings.Contains(strings.ToLower(title), needle) {
			results = append(results, Resource{Title: title, URL: href})
		}
	})
	return results
}
