package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/i474232898/business-hours/internal/business"
)

// FileFeedProvider reads schedule documents from a local directory. It is the
// fallback when the bucket is unreachable and the source used in development.
type FileFeedProvider struct {
	dir string
}

func NewFileFeedProvider(dir string) *FileFeedProvider {
	return &FileFeedProvider{dir: dir}
}

func (p *FileFeedProvider) Name() string {
	return "file"
}

func (p *FileFeedProvider) Fetch(ctx context.Context, loc business.Location) (business.Feed, error) {
	if err := ctx.Err(); err != nil {
		return business.Feed{}, err
	}

	// Keep lookups inside dir even for paths like "../x.json".
	path := filepath.Join(p.dir, filepath.Clean("/"+loc.Path))
	f, err := os.Open(path)
	if err != nil {
		return business.Feed{}, fmt.Errorf("open schedule for %s: %w", loc.Key, err)
	}
	defer f.Close()

	return decodeFeed(f)
}
