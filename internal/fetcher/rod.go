package fetcher

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
)

// fetchTimeout bounds one page load end to end. The pipeline runs on a
// user-facing request path and must not block past this.
const fetchTimeout = 30 * time.Second

// RodFetcher loads pages in a headless browser so that client-rendered sites
// still produce readable content, then extracts metadata and article text
// from the rendered HTML.
type RodFetcher struct {
	log logrus.FieldLogger
}

// NewRodFetcher creates a fetcher that launches a fresh browser per fetch.
func NewRodFetcher(logger logrus.FieldLogger) *RodFetcher {
	return &RodFetcher{
		log: logger.WithField("component", "fetcher"),
	}
}

// Fetch loads url, waits for the page to render, and returns its readable
// content and declared metadata.
func (f *RodFetcher) Fetch(ctx context.Context, url string) (content *Content, err error) {
	log := f.log.WithField("url", url)
	log.Info("Fetching page content")

	path, exists := launcher.LookPath()
	if !exists {
		return nil, errors.New("browser executable not found")
	}
	u := launcher.New().Bin(path).MustLaunch()
	browser := rod.New().ControlURL(u)
	if err = browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing browser")
			if err == nil {
				err = fmt.Errorf("close browser: %w", closeErr)
			}
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close page: %w", closeErr)
		}
	}()

	pageCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	page = page.Context(pageCtx)

	if err = page.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			log.Warn("Page load timed out")
			return nil, fmt.Errorf("fetch timed out after %s: %w", fetchTimeout, pageCtx.Err())
		}
		return nil, fmt.Errorf("wait for page load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}

	content, err = extract(url, html)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"title":      content.Title,
		"text_bytes": len(content.Text),
	}).Info("Page content fetched")
	return content, nil
}

// extract pulls title, thumbnail, and readable text out of rendered HTML.
func extract(pageURL, html string) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	content := &Content{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if og, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		content.ThumbnailURL = strings.TrimSpace(og)
	}

	// Readable article text via readability; fall back to the meta
	// description when extraction yields nothing (e.g. tool landing pages).
	parsed, _ := neturl.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err == nil {
		content.Text = strings.TrimSpace(article.TextContent)
	}
	if content.Text == "" {
		for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
			if desc, ok := doc.Find(sel).First().Attr("content"); ok {
				content.Text = strings.TrimSpace(desc)
				if content.Text != "" {
					break
				}
			}
		}
	}

	return content, nil
}
