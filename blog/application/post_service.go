package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/dfryer1193/tinyblog/blog/domain"
	"github.com/rs/zerolog/log"
)

// IndexPage is one page of the listing, rendered and ready for the index view.
type IndexPage struct {
	Posts []string
	Page  int
}

type PostService struct {
	repo        domain.PostRepository
	markdown    MarkdownRenderer
	pageSize    int
	frontMatter bool
}

// NewPostService wires a repository to a renderer. A non-positive pageSize uses DefaultPageSize;
// stripFrontMatter drops front matter blocks before rendering.
func NewPostService(repo domain.PostRepository, markdown MarkdownRenderer, pageSize int, stripFrontMatter bool) *PostService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &PostService{
		repo:        repo,
		markdown:    markdown,
		pageSize:    pageSize,
		frontMatter: stripFrontMatter,
	}
}

// Repository exposes the underlying repository, e.g. for views that need the total count.
func (s *PostService) Repository() domain.PostRepository {
	return s.repo
}

func (s *PostService) PageSize() int {
	return s.pageSize
}

// Refresh reloads the post listing. It is called once per request before routing.
func (s *PostService) Refresh(ctx context.Context) error {
	if _, err := s.repo.Refresh(ctx); err != nil {
		return fmt.Errorf("could not refresh post listing: %w", err)
	}
	return nil
}

// Index renders the posts on the given page.
// It returns domain.ErrNoPosts when there are no posts and domain.ErrPostNotFound when the page is empty.
func (s *PostService) Index(ctx context.Context, page int) (*IndexPage, error) {
	if s.repo.TotalCount() == 0 {
		return nil, domain.ErrNoPosts
	}

	names := Paginate(s.repo.Posts(), page, s.pageSize)
	if len(names) == 0 {
		return nil, domain.ErrPostNotFound
	}

	posts := make([]string, 0, len(names))
	for _, name := range names {
		fragment, err := s.render(ctx, string(name))
		if errors.Is(err, domain.ErrPostNotFound) {
			log.Debug().Str("post", string(name)).Msg("Skipping listed post without content")
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, fragment)
	}

	return &IndexPage{
		Posts: posts,
		Page:  page,
	}, nil
}

// Post renders the single post matching name, or returns domain.ErrPostNotFound.
func (s *PostService) Post(ctx context.Context, name string) (string, error) {
	return s.render(ctx, name)
}

func (s *PostService) render(ctx context.Context, name string) (string, error) {
	content, err := s.repo.FetchContent(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to fetch post %s: %w", name, err)
	}

	if s.frontMatter {
		body, err := StripFrontMatter(content)
		if err != nil {
			log.Warn().Err(err).Str("post", name).Msg("Rendering post with unparseable front matter as-is")
		} else {
			content = body
		}
	}

	html, err := s.markdown.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render post %s: %w", name, err)
	}

	return html, nil
}
