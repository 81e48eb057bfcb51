package persistence

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dfryer1193/tinyblog/blog/domain"
	"github.com/rs/zerolog/log"
)

var _ domain.PostRepository = (*FilePostRepository)(nil)

const (
	postExt     = ".md"
	postPattern = "*" + postExt
)

// FilePostRepository implements domain.PostRepository over a flat directory of markdown files.
// The listing is persisted to cacheFile, one identifier per line, and trusted while younger than ttl.
type FilePostRepository struct {
	contentDir string
	cacheFile  string
	ttl        time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	posts []domain.PostID
}

// NewPostRepository creates a new FilePostRepository reading posts from contentDir
func NewPostRepository(contentDir, cacheFile string, ttl time.Duration) *FilePostRepository {
	return &FilePostRepository{
		contentDir: contentDir,
		cacheFile:  cacheFile,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Refresh loads the listing from the cache file when it is fresh, otherwise rescans the
// content directory and rewrites the cache. The in-memory listing is replaced either way.
func (r *FilePostRepository) Refresh(ctx context.Context) ([]domain.PostID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	posts, fresh, err := r.loadCache()
	if err != nil {
		return nil, err
	}

	if !fresh {
		posts, err = r.scan()
		if err != nil {
			return nil, err
		}
		if err := r.writeCache(posts); err != nil {
			return nil, err
		}
		log.Debug().Int("posts", len(posts)).Str("dir", r.contentDir).Msg("Rescanned content directory")
	}

	r.posts = posts
	return clonePosts(posts), nil
}

// TotalCount returns the length of the current listing
func (r *FilePostRepository) TotalCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.posts)
}

// Posts returns a copy of the current listing in order
func (r *FilePostRepository) Posts() []domain.PostID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clonePosts(r.posts)
}

// ResolveByName returns the first post, in listing order, whose identifier contains query
// ignoring case. Ambiguous queries bind to the earliest match.
func (r *FilePostRepository) ResolveByName(query string) (domain.PostID, bool) {
	if query == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	for _, id := range r.posts {
		if strings.Contains(strings.ToLower(string(id)), needle) {
			return id, true
		}
	}
	return "", false
}

// FetchContent resolves query and reads the backing markdown file
func (r *FilePostRepository) FetchContent(ctx context.Context, query string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, ok := r.ResolveByName(query)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	name := strings.TrimSpace(string(id))
	if name == "" {
		return nil, domain.ErrPostNotFound
	}

	content, err := os.ReadFile(filepath.Join(r.contentDir, name+postExt))
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post %s: %w", name, err)
	}

	return content, nil
}

// Invalidate removes the cache file so that the next Refresh rescans the directory
func (r *FilePostRepository) Invalidate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.cacheFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("failed to remove post cache: %w", err)
	}
	return nil
}

// loadCache reads the cache file. fresh is false when the file is missing or older than the ttl.
func (r *FilePostRepository) loadCache() ([]domain.PostID, bool, error) {
	info, err := os.Stat(r.cacheFile)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat post cache: %w", err)
	}

	if r.now().Sub(info.ModTime()) >= r.ttl {
		return nil, false, nil
	}

	data, err := os.ReadFile(r.cacheFile)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read post cache: %w", err)
	}

	return parseCache(data), true, nil
}

func parseCache(data []byte) []domain.PostID {
	posts := make([]domain.PostID, 0)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		posts = append(posts, domain.PostID(line))
	}
	return posts
}

// scan enumerates markdown files directly under the content directory in directory order
func (r *FilePostRepository) scan() ([]domain.PostID, error) {
	info, err := os.Stat(r.contentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", r.contentDir)
	}

	posts := make([]domain.PostID, 0)
	err = doublestar.GlobWalk(os.DirFS(r.contentDir), postPattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		// a file named just ".md" has no name to list
		id := strings.TrimSuffix(path, postExt)
		if id == "" {
			return nil
		}
		posts = append(posts, domain.PostID(id))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	return posts, nil
}

// writeCache replaces the cache file with a temp file rename so readers never see a partial listing
func (r *FilePostRepository) writeCache(posts []domain.PostID) error {
	lines := make([]string, len(posts))
	for i, id := range posts {
		lines[i] = string(id)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.cacheFile), ".posts-cache-*")
	if err != nil {
		return fmt.Errorf("failed to create post cache: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strings.Join(lines, "\n")); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write post cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write post cache: %w", err)
	}

	if err := os.Rename(tmpName, r.cacheFile); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace post cache: %w", err)
	}

	return nil
}

func clonePosts(posts []domain.PostID) []domain.PostID {
	out := make([]domain.PostID, len(posts))
	copy(out, posts)
	return out
}
