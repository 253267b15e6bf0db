package service

import (
	"fmt"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
)

// ContentService serve o catálogo de planos e os artigos do blog, carregados no boot.
type ContentService struct {
	plans  []domain.Plan
	posts  []domain.BlogPost
	bySlug map[string]int
}

func NewContentService(plans []domain.Plan, posts []domain.BlogPost) *ContentService {
	bySlug := make(map[string]int, len(posts))
	for i, p := range posts {
		bySlug[p.Slug] = i
	}
	return &ContentService{plans: plans, posts: posts, bySlug: bySlug}
}

func (s *ContentService) Plans() []domain.Plan {
	return s.plans
}

// Posts devolve os resumos dos artigos, sem o corpo HTML.
func (s *ContentService) Posts() []domain.BlogPost {
	out := make([]domain.BlogPost, len(s.posts))
	for i, p := range s.posts {
		p.Content = ""
		out[i] = p
	}
	return out
}

func (s *ContentService) Post(slug string) (*domain.BlogPost, error) {
	i, ok := s.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: artigo %q", ErrNotFound, slug)
	}
	p := s.posts[i]
	return &p, nil
}
