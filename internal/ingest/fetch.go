package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"hotel-availability/config"
)

// ErrSourceNotFound is returned when a data source does not exist.
var ErrSourceNotFound = errors.New("source does not exist")

// Fetcher opens data sources given as local paths, http(s) URLs or s3://bucket/key locations.
type Fetcher struct {
	cfg    config.DataConfig
	client *http.Client

	s3Once   sync.Once
	s3Client *minio.Client
	s3Err    error
}

// NewFetcher creates a Fetcher. An invalid proxy URL is logged and ignored.
func NewFetcher(cfg config.DataConfig) *Fetcher {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			slog.Warn("invalid proxy URL, fetching without a proxy", "proxy", cfg.HTTPProxy, "error", err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Open returns the content of location. The caller closes it.
func (f *Fetcher) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return f.openHTTP(ctx, location)
	case strings.HasPrefix(location, "s3://"):
		return f.openS3(ctx, location)
	default:
		return openFile(location)
	}
}

// Exists reports whether a local source is present. Remote sources are assumed present.
func Exists(location string) bool {
	if strings.Contains(location, "://") {
		return true
	}
	_, err := os.Stat(location)
	return err == nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

func (f *Fetcher) openHTTP(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, location)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}
}

func (f *Fetcher) openS3(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}
	client, err := f.s3()
	if err != nil {
		return nil, err
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3: get %s: %w", location, err)
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, location)
		}
		return nil, fmt.Errorf("s3: stat %s: %w", location, err)
	}
	return obj, nil
}

// s3 lazily creates the object storage client on first use.
func (f *Fetcher) s3() (*minio.Client, error) {
	f.s3Once.Do(func() {
		endpoint := strings.TrimSpace(f.cfg.S3.Endpoint)
		if endpoint == "" {
			f.s3Err = errors.New("s3: endpoint is required")
			return
		}
		endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")

		f.s3Client, f.s3Err = minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(strings.TrimSpace(f.cfg.S3.AccessKey), strings.TrimSpace(f.cfg.S3.SecretKey), ""),
			Secure: f.cfg.S3.UseSSL,
			Region: f.cfg.S3.Region,
		})
		if f.s3Err != nil {
			f.s3Err = fmt.Errorf("s3: create client: %w", f.s3Err)
		}
	})
	return f.s3Client, f.s3Err
}

func parseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("s3: invalid location %q: %w", location, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3: location %q must be s3://bucket/key", location)
	}
	return bucket, key, nil
}
