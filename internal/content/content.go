// Package content carrega o catálogo de planos e os artigos do blog.
//
// Os dados padrão ficam embutidos no binário (data/*.yaml) e podem ser
// substituídos por arquivos externos via PLANS_FILE e BLOG_FILE.
package content

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
)

//go:embed data/*.yaml
var defaults embed.FS

// LoadPlans lê os planos de path ou, se path for vazio, do catálogo embutido.
func LoadPlans(path string) ([]domain.Plan, error) {
	var plans []domain.Plan
	if err := load(path, "data/plans.yaml", &plans); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	for i, p := range plans {
		if p.ID == "" || p.StripePriceID == "" {
			return nil, fmt.Errorf("load plans: plano %d sem id ou stripe_price_id", i)
		}
	}
	return plans, nil
}

// LoadPosts lê os artigos de path ou, se path for vazio, do catálogo embutido.
func LoadPosts(path string) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	if err := load(path, "data/blog.yaml", &posts); err != nil {
		return nil, fmt.Errorf("load blog: %w", err)
	}
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if p.Slug == "" {
			return nil, errors.New("load blog: artigo sem slug")
		}
		if _, dup := seen[p.Slug]; dup {
			return nil, fmt.Errorf("load blog: slug duplicado %q", p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return posts, nil
}

func load(path, embedded string, out any) error {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = defaults.ReadFile(embedded)
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
