package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-reportgen/pkg/content"
)

// Loader implements content.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBody   int64
}

var _ content.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options content.LoaderOptions) *Loader {
	timeout := options.RequestTimeout
	maxBody := options.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = content.DefaultMaxBodyBytes
	}

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBody:   maxBody,
	}
}

// Load fetches the text behind src.
func (l *Loader) Load(ctx context.Context, src content.Source) (string, error) {
	if src == nil {
		return "", errors.New("content loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case content.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case content.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case content.SourceKindURL:
		if !l.allowHTTP {
			return "", errors.New("content loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBody)
	default:
		err = errors.New("content loader: unsupported source kind")
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
