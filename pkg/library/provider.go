package library

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/filesystem"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/types"
)

const (
	// DefaultTimeout bounds a single remote transfer
	DefaultTimeout = 60 * time.Second
	// DefaultUserAgent is sent with remote requests
	DefaultUserAgent = "photosnap"
)

// Provider implements types.ContentProvider for manifest libraries.
// Local sources are copied from the library root; remote sources are
// downloaded over HTTP.
type Provider struct {
	fs         types.FS
	root       string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// ProviderOption configures a Provider
type ProviderOption func(*Provider)

// WithTimeout sets the timeout of remote transfers
func WithTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) { p.httpClient.Timeout = d }
}

// WithUserAgent sets the User-Agent header of remote requests
func WithUserAgent(ua string) ProviderOption {
	return func(p *Provider) { p.userAgent = ua }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) { p.httpClient = c }
}

// NewProvider creates a provider reading local sources under root
func NewProvider(fs types.FS, root string, opts ...ProviderOption) *Provider {
	p := &Provider{
		fs:         fs,
		root:       root,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		logger:     logging.GetLogger("library"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsRemote reports whether a source is fetched over the network
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch writes the content of res to dest.
func (p *Provider) Fetch(ctx context.Context, res types.RawResource, dest string, networkAllowed bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if IsRemote(res.Source) {
		if !networkAllowed {
			return errors.Newf(errors.ErrNetworkDisabled, "network access disabled for %s", res.Source)
		}
		return p.download(ctx, res.Source, dest)
	}

	src := filepath.FromSlash(res.Source)
	if !filepath.IsAbs(src) {
		src = filepath.Join(p.root, src)
	}
	p.logger.Trace().Str("src", src).Str("dest", dest).Msg("copying local resource")
	return filesystem.CopyFile(p.fs, src, dest)
}

func (p *Provider) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "invalid request for %s", url)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "request failed for %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status), errors.ErrFetch, "unable to download %s", url).
			WithDetail("status", resp.StatusCode)
	}

	out, err := p.fs.Create(dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "unable to create %s", dest)
	}
	written, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = p.fs.Remove(dest)
		return errors.Wrapf(err, errors.ErrFetch, "download interrupted for %s", url)
	}

	p.logger.Debug().Str("url", url).Int64("bytes", written).Msg("downloaded")
	return nil
}
