package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// ErrUnsupported 表示来源页面没有提供该字段。
// 调用方按字段捕获此错误并把字段视为缺失，绝不作为请求失败向上传播。
var ErrUnsupported = errors.New("scrape: field not supported by source")

// Source exposes the optional fields of a scraped recipe page. Each accessor
// either returns a value or ErrUnsupported; accessors never depend on each
// other, so one missing field cannot block the rest.
type Source interface {
	Title() (string, error)
	TotalTime() (int, error)
	CookTime() (int, error)
	PrepTime() (int, error)
	Yields() (string, error)
	Description() (string, error)
	Instructions() (string, error)
	Image() (string, error)
	Ingredients() ([]string, error)
}

// Client fetches external recipe pages. One synchronous request per import,
// no internal retries.
type Client struct {
	http *resty.Client
}

// NewClient creates a scrape client with the given request timeout and
// User-Agent header.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	if ua := strings.TrimSpace(userAgent); ua != "" {
		httpClient.SetHeader("User-Agent", ua)
	}

	return &Client{http: httpClient}
}

// Fetch downloads the page at rawURL and returns a Source over its recipe
// markup. A network failure, a non-2xx response, or an unparseable body is
// returned as an error; a page with sparse markup still yields a Source whose
// accessors report ErrUnsupported per field.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Source, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, errors.New("scrape: empty url")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return nil, fmt.Errorf("scrape: unsupported url scheme: %s", trimmed)
	}

	resp, err := c.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(trimmed)
	if err != nil {
		return nil, fmt.Errorf("scrape: fetch %s: %w", trimmed, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("scrape: fetch %s: http %d", trimmed, resp.StatusCode())
	}

	return Parse(body, trimmed)
}

// Parse builds a Source from raw page HTML. Split out from Fetch so tests and
// offline callers can feed captured documents directly.
func Parse(r io.Reader, pageURL string) (Source, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("scrape: parse page: %w", err)
	}
	return newPageSource(doc, pageURL), nil
}
