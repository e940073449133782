package suumo

import (
	"testing"

	"github.com/masarusaitou/fudousan/config"
	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/utils"
)

const samplePage = `
<html><body>
<div class="cassetteitem">
  <div class="cassetteitem_content-title">グランメゾン麻布</div>
  <div class="cassetteitem_detail-col1">東京都港区麻布十番１</div>
  <table>
    <tr class="js-cassette_link">
      <td class="cassetteitem_detail-col3">3階</td>
      <td><span class="cassetteitem_price--rent">12.5万円</span></td>
      <td><span class="cassetteitem_madori">1K</span></td>
      <td><a class="js-cassette_link_href" href="/chintai/jnc_000000001/"></a></td>
    </tr>
    <tr class="js-cassette_link">
      <td class="cassetteitem_detail-col3">5階</td>
      <td><span class="cassetteitem_price--rent">14万円</span></td>
      <td><span class="cassetteitem_madori">1LDK</span></td>
      <td><a class="js-cassette_link_href" href="/chintai/jnc_000000002/"></a></td>
    </tr>
  </table>
</div>
<div class="cassetteitem">
  <div class="cassetteitem_content-title">リバーサイド月島</div>
  <div class="cassetteitem_detail-col1">東京都中央区月島２</div>
  <table>
    <tr class="js-cassette_link">
      <td class="cassetteitem_detail-col3">2階</td>
      <td><span class="cassetteitem_price--rent">9.8万円</span></td>
      <td><span class="cassetteitem_madori">1DK</span></td>
      <td><a class="js-cassette_link_href" href="/chintai/jnc_000000003/"></a></td>
    </tr>
  </table>
</div>
</body></html>`

func newTestScraper() *Scraper {
	cfg := &config.Config{MaxConcurrency: 1, RateLimitMs: 0, MaxRetries: 1}
	return New(cfg, utils.NewLogger(false))
}

func TestParsePage(t *testing.T) {
	s := newTestScraper()

	rows, err := s.parsePage(samplePage, "港区")
	if err != nil {
		t.Fatalf("parsePage: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}

	first := rows[0]
	if first[models.ColName] != "グランメゾン麻布" {
		t.Errorf("name: got %q", first[models.ColName])
	}
	if first[models.ColRent] != "12.5" {
		t.Errorf("rent: got %q, want 12.5 (suffix stripped)", first[models.ColRent])
	}
	if first[models.ColFloorPlan] != "1K" {
		t.Errorf("plan: got %q", first[models.ColFloorPlan])
	}
	if first[models.ColArea] != "港区" {
		t.Errorf("area: got %q, want the searched ward", first[models.ColArea])
	}
	if first[models.ColDetailURL] != "https://suumo.jp/chintai/jnc_000000001/" {
		t.Errorf("detail URL: got %q", first[models.ColDetailURL])
	}
	if first[models.ColLatitude] != "" || first[models.ColLongitude] != "" {
		t.Error("scraped rows must come back coordinate-less")
	}
}

func TestParsePageDeduplicatesDetailURLs(t *testing.T) {
	s := newTestScraper()

	first, err := s.parsePage(samplePage, "港区")
	if err != nil {
		t.Fatalf("parsePage: %v", err)
	}
	second, err := s.parsePage(samplePage, "港区")
	if err != nil {
		t.Fatalf("parsePage: %v", err)
	}

	if len(first) != 3 || len(second) != 0 {
		t.Errorf("dedupe: got %d then %d rows, want 3 then 0", len(first), len(second))
	}
}

func TestParseRentCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"8.5万円", "8.5"},
		{" 12万円 ", "12"},
		{"", ""},
		{"相談", "相談"},
	}
	for _, tt := range tests {
		if got := parseRentCell(tt.in); got != tt.want {
			t.Errorf("parseRentCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
