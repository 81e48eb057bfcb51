package domain

import (
	"context"
	"errors"
)

// ErrPostNotFound is returned when a post name does not resolve to a readable file.
// It marks an expected absence, not a failure.
var ErrPostNotFound = errors.New("post not found")

// ErrNoPosts is returned when the content directory holds no posts at all.
var ErrNoPosts = errors.New("no posts")

// PostID identifies a post by its filename stem, e.g. "hello-world" for posts/hello-world.md.
type PostID string

// PostRepository lists the posts available in the content directory and serves their markdown.
// The listing is ordered; names are resolved against it by case-insensitive substring,
// so a short query binds to the first matching post.
type PostRepository interface {
	// Refresh loads the listing from the cache, or rescans the content directory when the cache is stale.
	Refresh(ctx context.Context) ([]PostID, error)
	TotalCount() int
	Posts() []PostID
	ResolveByName(query string) (PostID, bool)
	// FetchContent returns the raw markdown of the post matching query, or ErrPostNotFound.
	FetchContent(ctx context.Context, query string) ([]byte, error)

	// Invalidate drops the listing cache so the next Refresh rescans.
	Invalidate() error
}
