package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploader stores an object and returns its key.
type Uploader interface {
	Upload(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error)
}

const (
	downloadWorkers = 5
	browserUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ImageMirror copies remote product images into object storage.
type ImageMirror struct {
	uploader Uploader
	client   *http.Client
	log      *zap.Logger
}

func NewImageMirror(uploader Uploader, log *zap.Logger) *ImageMirror {
	return &ImageMirror{
		uploader: uploader,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Mirror downloads images from URLs and uploads them under folderPrefix.
// Keys come back in input order; images that fail are logged and skipped.
func (m *ImageMirror) Mirror(ctx context.Context, urls []string, folderPrefix string) []string {
	keys := make([]string, len(urls))
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, downloadWorkers)

	for i, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := fmt.Sprintf("%s/%s%s", folderPrefix, uuid.NewString(), imageExt(url))
			if err := m.downloadAndUpload(ctx, url, objectKey); err != nil {
				m.log.Warn("mirroring image", zap.String("url", url), zap.Error(err))
				return
			}
			keys[i] = objectKey
		}(i, url)
	}

	wg.Wait()

	out := keys[:0]
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func (m *ImageMirror) downloadAndUpload(ctx context.Context, url, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(bodyBytes)
	}

	_, err = m.uploader.Upload(ctx, bytes.NewReader(bodyBytes), objectKey, contentType)
	return err
}

func imageExt(url string) string {
	base := path.Base(strings.SplitN(url, "?", 2)[0])
	ext := strings.ToLower(path.Ext(base))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return ext
	}
	return ".jpg"
}
