package domain

import "context"

// Tag represents a named tag attached to events.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category represents an event category. Every event has exactly one.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogRepository defines read access to tags and categories.
type CatalogRepository interface {
	ListTags(ctx context.Context) ([]*Tag, error)
	GetTagByID(ctx context.Context, id string) (*Tag, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
}

// CatalogService exposes tags and categories.
type CatalogService interface {
	ListTags(ctx context.Context) ([]*Tag, error)
	GetTag(ctx context.Context, id string) (*Tag, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
}
