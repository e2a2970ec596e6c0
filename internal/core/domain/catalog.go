package domain

// Course is an entry of the course catalog.
type Course struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     Amount `json:"duration,omitempty"` // minutes
	Price        Amount `json:"price,omitempty"`    // VND
	IsActive     bool   `json:"is_active"`
}

// Facility is a physical facility of the center.
type Facility struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// News is a news article.
type News struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	Category    string `json:"category,omitempty"`
	ReadTime    string `json:"read_time,omitempty"`
	Date        string `json:"date,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Abstract returns the summary, falling back to the description.
func (n News) Abstract() string {
	if n.Summary != "" {
		return n.Summary
	}
	return n.Description
}

// PublishedAt returns created_at, falling back to date.
func (n News) PublishedAt() string {
	if n.CreatedAt != "" {
		return n.CreatedAt
	}
	return n.Date
}
