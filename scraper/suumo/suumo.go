package suumo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/masarusaitou/fudousan/config"
	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/utils"
)

const baseURL = "https://suumo.jp/jj/chintai/ichiran/FR301FC001/"

// wardCodes maps ward names to SUUMO's sc search parameter.
var wardCodes = map[string]string{
	"千代田区": "13101",
	"中央区":  "13102",
	"港区":   "13103",
	"新宿区":  "13104",
	"文京区":  "13105",
	"渋谷区":  "13113",
}

// Scraper collects rental listing rows from SUUMO ward searches. Rows
// come back coordinate-less; the geocoder fills them in afterwards.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.StringSet
	retry   *utils.RetryConfig

	mu   sync.Mutex
	rows []models.RawRow
}

// New creates a ready-to-use SUUMO Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewStringSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		rows: make([]models.RawRow, 0),
	}
}

// Load scrapes the configured wards and returns the collected rows.
// Implements storage.RowSource.
func (s *Scraper) Load() ([]models.RawRow, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if s.cfg.ChromeBin != "" {
		opts = append(opts, chromedp.ExecPath(s.cfg.ChromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	for _, ward := range s.cfg.ScrapeWards {
		code, ok := wardCodes[ward]
		if !ok {
			s.logger.Warn("[suumo] Unknown ward %q — skipping", ward)
			continue
		}
		s.pool.Submit(func() {
			s.scrapeWard(allocCtx, ward, code)
		})
	}
	s.pool.Wait()

	s.logger.Info("[suumo] Scrape complete — %d rows from %d wards",
		len(s.rows), len(s.cfg.ScrapeWards))
	if len(s.rows) == 0 {
		return nil, fmt.Errorf("suumo: no rows scraped")
	}
	return s.rows, nil
}

// Close is a no-op; browser contexts are scoped to Load.
func (s *Scraper) Close() error { return nil }

func (s *Scraper) scrapeWard(allocCtx context.Context, ward, code string) {
	for page := 1; page <= s.cfg.PagesPerWard; page++ {
		pageURL := fmt.Sprintf("%s?ar=030&bs=040&ta=13&sc=%s&page=%d", baseURL, code, page)

		html, err := s.fetchPage(allocCtx, pageURL)
		if err != nil {
			s.logger.Error("[suumo] %s page %d failed: %v", ward, page, err)
			return
		}

		rows, err := s.parsePage(html, ward)
		if err != nil {
			s.logger.Error("[suumo] %s page %d parse failed: %v", ward, page, err)
			return
		}
		if len(rows) == 0 {
			s.logger.Warn("[suumo] %s page %d returned 0 rows — stopping", ward, page)
			return
		}

		s.mu.Lock()
		s.rows = append(s.rows, rows...)
		s.mu.Unlock()
		s.logger.Info("[suumo] %s page %d — %d rows", ward, page, len(rows))
	}
}

func (s *Scraper) fetchPage(allocCtx context.Context, pageURL string) (string, error) {
	var html string
	err := s.retry.Do(allocCtx, "suumo-fetch", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady(".cassetteitem", chromedp.ByQuery),
			chromedp.OuterHTML("html", &html),
		)
	})
	return html, err
}

// parsePage extracts one row per unit from the rendered listing page.
// A building card carries the name and address; each unit row under it
// has its own floor, rent, plan and detail link.
func (s *Scraper) parsePage(html, ward string) ([]models.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var rows []models.RawRow
	doc.Find(".cassetteitem").Each(func(_ int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find(".cassetteitem_content-title").Text())
		address := strings.TrimSpace(card.Find(".cassetteitem_detail-col1").Text())

		card.Find(".js-cassette_link").Each(func(_ int, unit *goquery.Selection) {
			href, _ := unit.Find("a.js-cassette_link_href").Attr("href")
			if href == "" {
				return
			}
			detailURL := "https://suumo.jp" + href
			if !s.visited.Add(detailURL) {
				return
			}

			rows = append(rows, models.RawRow{
				models.ColName:      name,
				models.ColAddress:   address,
				models.ColFloor:     strings.TrimSpace(unit.Find(".cassetteitem_detail-col3").Text()),
				models.ColRent:      parseRentCell(unit.Find(".cassetteitem_price--rent").Text()),
				models.ColArea:      ward,
				models.ColFloorPlan: strings.TrimSpace(unit.Find(".cassetteitem_madori").Text()),
				models.ColDetailURL: detailURL,
				models.ColLatitude:  "",
				models.ColLongitude: "",
			})
		})
	})
	return rows, nil
}

// parseRentCell turns "8.5万円" into "8.5". The numeric parse itself is
// the normalizer's job; this only strips the unit suffix.
func parseRentCell(text string) string {
	text = strings.TrimSpace(text)
	return strings.TrimSuffix(text, "万円")
}
