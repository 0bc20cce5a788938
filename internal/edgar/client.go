// Package edgar fetches daily Form 4 filings from the SEC EDGAR archive
// and unpacks full-submission files into per-document folders.
package edgar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/jwangus/insider-trading/internal/httpclient"
	"github.com/jwangus/insider-trading/internal/logger"
)

const archiveBaseURL = "https://www.sec.gov/Archives/"

// Client talks to the EDGAR archive within the SEC fair-access limits:
// a shared rate limiter, a contact User-Agent and bounded exponential
// retries on transient failures.
type Client struct {
	http        *http.Client
	limiter     *rate.Limiter
	userAgent   string
	retries     uint64
	backoffBase time.Duration
	log         *logger.Entry
}

// New builds a client. userAgent must carry a contact email per the SEC
// fair-access policy.
func New(userAgent string) *Client {
	return &Client{
		http:        httpclient.Default,
		limiter:     rate.NewLimiter(rate.Limit(5), 1), // 5 req/s, well under the SEC's 10
		userAgent:   userAgent,
		retries:     4,
		backoffBase: 5 * time.Second,
		log:         logger.GetLogger().WithComponent("edgar"),
	}
}

// fetch gets one URL, retrying transient failures with exponential backoff.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusOK:
			body, err = io.ReadAll(resp.Body)
			return err
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("GET %s: status %d", url, resp.StatusCode))
		}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.backoffBase
	b.Multiplier = 2
	b.MaxElapsedTime = 0
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

// DailyIndex fetches and parses the master index for one report date.
func (c *Client) DailyIndex(ctx context.Context, date time.Time) ([]IndexEntry, error) {
	quarter := (int(date.Month())-1)/3 + 1
	url := fmt.Sprintf("%sedgar/daily-index/%d/QTR%d/master.%s.idx",
		archiveBaseURL, date.Year(), quarter, date.Format("20060102"))
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseMasterIndex(string(body))
}

// DownloadDaily pulls every Form 4 submission for the date into
// destDir/<cik>/<accession>.txt. Individual download failures are logged
// and skipped; the count of files written is returned.
func (c *Client) DownloadDaily(ctx context.Context, date time.Time, destDir string) (int, error) {
	entries, err := c.DailyIndex(ctx, date)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if strings.ToLower(e.FormType) != "4" {
			continue
		}
		if err := c.download(ctx, e, destDir); err != nil {
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			c.log.WithError(err).WithFields(logger.Fields{"file": e.FileName}).Warn("cannot download filing")
			continue
		}
		count++
	}
	return count, nil
}

func (c *Client) download(ctx context.Context, e IndexEntry, destDir string) error {
	body, err := c.fetch(ctx, archiveBaseURL+e.FileName)
	if err != nil {
		return err
	}
	dir := filepath.Join(destDir, e.CIK)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filepath.Base(e.FileName)), body, 0644)
}
