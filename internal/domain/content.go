package domain

// Plan é um plano de assinatura exibido na página de preços.
type Plan struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Price         int      `json:"price" yaml:"price"`
	Currency      string   `json:"currency" yaml:"currency"`
	Interval      string   `json:"interval" yaml:"interval"`
	Description   string   `json:"description" yaml:"description"`
	Features      []string `json:"features" yaml:"features"`
	StripePriceID string   `json:"stripePriceId" yaml:"stripe_price_id"`
}

// BlogPost é um artigo do blog. Content é HTML já pronto para renderizar.
type BlogPost struct {
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt" yaml:"excerpt"`
	Date     string `json:"date" yaml:"date"`
	Author   string `json:"author" yaml:"author"`
	Category string `json:"category" yaml:"category"`
	ReadTime string `json:"readTime" yaml:"read_time"`
	Image    string `json:"image" yaml:"image"`
	Content  string `json:"content,omitempty" yaml:"content"`
}
