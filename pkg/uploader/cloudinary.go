package uploader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/pkg/config"
)

const uploadTimeout = 30 * time.Second

// Cloudinary uploads images through the Cloudinary HTTP API using signed
// requests. Only the upload endpoint is needed, so the raw API is called
// directly instead of pulling in the full SDK.
type Cloudinary struct {
	cfg    config.CloudinaryConfig
	client *http.Client
	logger *zap.Logger

	now func() time.Time
}

func NewCloudinary(cfg config.CloudinaryConfig, logger *zap.Logger) *Cloudinary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cloudinary{
		cfg:    cfg,
		client: &http.Client{Timeout: uploadTimeout},
		logger: logger,
		now:    time.Now,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload pushes the file into the given folder and returns its public URL.
func (c *Cloudinary) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if c.cfg.CloudName == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return "", fmt.Errorf("cloudinary: credentials are not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("cloudinary: open upload: %w", err)
	}
	defer src.Close()

	timestamp := fmt.Sprintf("%d", c.now().Unix())
	params := map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}

	// Stream the multipart form through a pipe so the file is never
	// buffered in memory whole.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var werr error
		defer func() { pw.CloseWithError(werr) }()

		for key, value := range params {
			if werr = mw.WriteField(key, value); werr != nil {
				return
			}
		}
		if werr = mw.WriteField("api_key", c.cfg.APIKey); werr != nil {
			return
		}
		if werr = mw.WriteField("signature", c.sign(params)); werr != nil {
			return
		}

		part, perr := mw.CreateFormFile("file", file.Filename)
		if perr != nil {
			werr = perr
			return
		}
		if _, werr = io.Copy(part, src); werr != nil {
			return
		}
		werr = mw.Close()
	}()

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("cloudinary: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary: upload request: %w", err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("cloudinary: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary: upload failed with status %d: %s", resp.StatusCode, result.Error.Message)
	}

	c.logger.Debug("image uploaded",
		zap.String("folder", folder),
		zap.String("filename", file.Filename))

	return result.SecureURL, nil
}

// sign builds the SHA-1 request signature over the sorted parameters, as
// required by the Cloudinary upload API.
func (c *Cloudinary) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	payload := strings.Join(pairs, "&") + c.cfg.APISecret
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
