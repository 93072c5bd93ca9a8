// Package scraper refreshes the draw history from the public 539 results site.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/samber/lo"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

var (
	// ErrHTTPStatus is returned when the results site answers with a non-200 status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	// ErrNoPages is returned when every requested page failed to download.
	ErrNoPages = errors.New("no result pages could be fetched")
)

// drawPattern matches a draw date, optionally prefixed with the "draw date"
// label and suffixed with a weekday, followed by a blank line and five
// comma-separated numbers.
var drawPattern = regexp.MustCompile(
	`(?:開獎日期:)?(\d{4}/\d{2}/\d{2})(?:\([一二三四五六日]\))?\s*\r?\n\s*\r?\n\s*` +
		`(\d{1,2},\s*\d{1,2},\s*\d{1,2},\s*\d{1,2},\s*\d{1,2})`)

const timestampLayout = "2006-01-02T15:04:05"

// Config holds scraper settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Delay is the pause between page requests.
	Delay time.Duration
	// Attempts bounds retries per page; zero means 3.
	Attempts   uint
	WebhookURL string
	HTTPClient *http.Client
}

// Scraper downloads and parses result pages.
type Scraper struct {
	cfg    Config
	client *http.Client
}

// New creates a scraper.
func New(cfg Config) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Scraper{cfg: cfg, client: client}
}

// PageURL returns the listing URL for a 1-based page, newest draws first.
func (s *Scraper) PageURL(page int) (string, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("indexpage", strconv.Itoa(page))
	q.Set("orderby", "new")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage downloads one listing page. Network errors and 5xx responses
// are retried.
func (s *Scraper) FetchPage(ctx context.Context, page int) ([]byte, error) {
	pageURL, err := s.PageURL(page)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if s.cfg.UserAgent != "" {
				req.Header.Set("User-Agent", s.cfg.UserAgent)
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
				if resp.StatusCode < http.StatusInternalServerError {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.Attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	return body, nil
}

// ParseDraws extracts draws from a listing page. Rows that do not carry
// exactly five numbers are ignored. The result keeps page order.
func ParseDraws(page []byte) []models.DrawRecord {
	text := pageText(page)
	// Numbers are sometimes separated by non-breaking spaces, which the
	// regexp \s class does not match.
	text = strings.ReplaceAll(text, "\u00a0", " ")

	var draws []models.DrawRecord
	for _, m := range drawPattern.FindAllStringSubmatch(text, -1) {
		date, numbersText := m[1], m[2]

		day, err := time.Parse("2006/01/02", date)
		if err != nil {
			logger.Debug("skipping draw with bad date", "date", date, "error", err)
			continue
		}

		numbers, err := parseNumbers(numbersText)
		if err != nil || len(numbers) != 5 {
			logger.Debug("skipping draw with bad numbers", "date", date, "numbers", numbersText)
			continue
		}

		draws = append(draws, models.DrawRecord{
			Date:      date,
			Numbers:   numbers,
			Timestamp: day.Format(timestampLayout),
		})
	}
	return draws
}

func parseNumbers(s string) ([]int, error) {
	parts := lo.Filter(strings.Split(strings.Join(strings.Fields(s), ""), ","),
		func(p string, _ int) bool { return p != "" })

	numbers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// pageText returns the concatenated text content of an HTML document,
// skipping script and style elements.
func pageText(page []byte) string {
	z := html.NewTokenizer(bytes.NewReader(page))
	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// ScrapeRecent fetches pages 1..pages and returns the parsed draws sorted
// newest-first. Pages that fail are logged and skipped; ErrNoPages is
// returned only when none succeeded.
func (s *Scraper) ScrapeRecent(ctx context.Context, pages int) ([]models.DrawRecord, error) {
	var all []models.DrawRecord
	fetched := 0

	for page := 1; page <= pages; page++ {
		if page > 1 && s.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.Delay):
			}
		}

		logger.Info("scraping page", "page", page, "pages", pages)
		body, err := s.FetchPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("failed to fetch page", "page", page, "error", err)
			continue
		}
		fetched++

		draws := ParseDraws(body)
		logger.Debug("parsed page", "page", page, "draws", len(draws))
		all = append(all, draws...)
	}

	if fetched == 0 && pages > 0 {
		return nil, ErrNoPages
	}

	sortNewestFirst(all)
	return all, nil
}

// Merge adds the fresh draws whose dates are not already in existing and
// returns the combined history newest-first with the number added.
// Existing records are never replaced.
func Merge(existing, fresh []models.DrawRecord) (merged []models.DrawRecord, added int) {
	known := lo.SliceToMap(existing, func(d models.DrawRecord) (string, struct{}) {
		return d.Date, struct{}{}
	})

	newDraws := lo.UniqBy(lo.Filter(fresh, func(d models.DrawRecord, _ int) bool {
		_, ok := known[d.Date]
		return !ok
	}), func(d models.DrawRecord) string { return d.Date })

	merged = make([]models.DrawRecord, 0, len(newDraws)+len(existing))
	merged = append(merged, newDraws...)
	merged = append(merged, existing...)
	sortNewestFirst(merged)

	return merged, len(newDraws)
}

func sortNewestFirst(draws []models.DrawRecord) {
	slices.SortStableFunc(draws, func(a, b models.DrawRecord) int {
		return strings.Compare(b.Timestamp, a.Timestamp)
	})
}
