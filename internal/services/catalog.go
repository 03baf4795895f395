package services

import (
	"context"
	"errors"
	"fmt"

	"eventhub/internal/domain"
)

type catalogService struct {
	repo domain.CatalogRepository
}

// NewCatalogService returns a CatalogService backed by repo.
func NewCatalogService(repo domain.CatalogRepository) domain.CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}

func (s *catalogService) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.repo.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}
