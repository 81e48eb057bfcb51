package application

import "github.com/dfryer1193/tinyblog/blog/domain"

const DefaultPageSize = 10

// Paginate returns the posts shown on the 1-based page. It returns nil when the page starts
// past the end of the listing and a shorter slice when the page is the last, partial one.
// Pages far past the end return nil without computing an offset that could overflow.
func Paginate(posts []domain.PostID, page, size int) []domain.PostID {
	if size <= 0 {
		size = DefaultPageSize
	}

	index := page
	if page > 0 {
		index = page - 1
	}
	if index < 0 {
		index = 0
	}

	total := len(posts)
	if index > total/size {
		return nil
	}

	start := index * size
	end := start + size

	length := end - start
	if end > total {
		length = total - start
	}

	return posts[start : start+length]
}
