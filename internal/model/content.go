package model

// ContentItem is an entry in the member-facing content library.
type ContentItem struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Category    ContentCategory `json:"category" db:"category"`
	URL         string          `json:"url" db:"url"`
	Description string          `json:"description" db:"description"`
	Timestamps
}

type ContentRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Category    ContentCategory `json:"category" binding:"omitempty,enum"`
	URL         string          `json:"url" binding:"required,url,max=2048"`
	Description string          `json:"description"`
}

func (r *ContentRequest) Apply(item *ContentItem) {
	item.Title = r.Title
	item.Category = r.Category
	if item.Category == "" {
		item.Category = ContentCategoryVideo
	}
	item.URL = r.URL
	item.Description = r.Description
}

type ContentFilter struct {
	Category ContentCategory `form:"category" binding:"omitempty,enum"`
}
