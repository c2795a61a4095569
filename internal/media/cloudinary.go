package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
	Folder    string
}

// CloudinaryStore uploads through the signed REST upload API.
type CloudinaryStore struct {
	cfg        CloudinaryConfig
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

func NewCloudinaryStore(cfg CloudinaryConfig, httpClient *http.Client, logger *zap.Logger) *CloudinaryStore {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Minute}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &CloudinaryStore{cfg: cfg, httpClient: httpClient, logger: logger, now: time.Now}
}

// Sign returns the hex SHA-1 of the sorted "k=v" pairs joined by "&" followed by the secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

type cloudinaryUploadResponse struct {
	SecureURL string  `json:"secure_url"`
	PublicID  string  `json:"public_id"`
	Duration  float64 `json:"duration"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *CloudinaryStore) Upload(ctx context.Context, up Upload) (*Asset, error) {
	if up.Kind != KindImage && up.Kind != KindVideo {
		return nil, ErrUnsupportedKind
	}

	params := map[string]string{
		"folder":    s.cfg.Folder + "/" + string(up.Kind) + "s",
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
	signature := Sign(params, s.cfg.APISecret)

	// Stream the multipart body so large videos are never buffered in memory.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := func() error {
			for k, v := range params {
				if err := mw.WriteField(k, v); err != nil {
					return err
				}
			}
			if err := mw.WriteField("api_key", s.cfg.APIKey); err != nil {
				return err
			}
			if err := mw.WriteField("signature", signature); err != nil {
				return err
			}
			part, err := mw.CreateFormFile("file", up.FileName)
			if err != nil {
				return err
			}
			body := io.Reader(NewProgressReader(up.Body, up.Size, up.FileName, s.logger))
			if _, err := io.Copy(part, body); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	endpoint := fmt.Sprintf("%s/%s/%s/upload", s.cfg.BaseURL, s.cfg.CloudName, up.Kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		pr.CloseWithError(err)
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		pr.CloseWithError(err)
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	defer resp.Body.Close()
	defer pr.Close()

	var out cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode cloudinary response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode, msg)
	}

	asset := &Asset{URL: out.SecureURL, PublicID: out.PublicID, Duration: out.Duration}
	if up.Kind == KindVideo {
		asset.Thumbnail = videoThumbnail(out.SecureURL)
	}
	s.logger.Info("Uploaded media",
		zap.String("provider", "cloudinary"),
		zap.String("public_id", out.PublicID),
		zap.String("kind", string(up.Kind)),
	)
	return asset, nil
}

// Delete destroys an asset. Server errors and transport failures are retried with Fibonacci backoff.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	if publicID == "" {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/%s/destroy", s.cfg.BaseURL, s.cfg.CloudName, kind)
	b := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		params := map[string]string{
			"public_id": publicID,
			"timestamp": strconv.FormatInt(s.now().Unix(), 10),
		}
		form := url.Values{}
		for k, v := range params {
			form.Set(k, v)
		}
		form.Set("api_key", s.cfg.APIKey)
		form.Set("signature", Sign(params, s.cfg.APISecret))

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.logger.Warn("Cloudinary destroy failed, retrying", zap.String("public_id", publicID), zap.Error(err))
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("cloudinary destroy returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("cloudinary destroy returned status %d", resp.StatusCode)
		}
		return nil
	})
}

// videoThumbnail swaps the extension for .jpg, which the CDN renders as a poster frame.
func videoThumbnail(videoURL string) string {
	if i := strings.LastIndex(videoURL, "."); i > strings.LastIndex(videoURL, "/") {
		return videoURL[:i] + ".jpg"
	}
	return videoURL + ".jpg"
}
