package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/samber/lo"
)

//go:generate mockery --name ContentStorage --filename content_storage.go

// ContentStorage persists AI content state on products.
type ContentStorage interface {
	// GetProduct returns one product by id.
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
	// UpdateProductAIState overwrites the product's content and AI
	// bookkeeping fields.
	UpdateProductAIState(ctx context.Context, product *models.Product) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

type systemClock struct{}

func (c systemClock) Now() *time.Time {
	now := time.Now().UTC()
	return &now
}

// ContentOption is custom configuration of ContentService.
type ContentOption func(s *ContentService)

// ContentService drives the AI content lifecycle of products:
// original, processing, generated or error. Each product is handled by
// exactly one task, so concurrent tasks never write the same row.
type ContentService struct {
	rewriter *Rewriter
	storage  ContentStorage
	workers  int
	clock    Clock
}

// NewContentService returns a new ContentService.
func NewContentService(rewriter *Rewriter, storage ContentStorage, ops ...ContentOption) *ContentService {
	svc := &ContentService{
		rewriter: rewriter,
		storage:  storage,
		workers:  defaultWorkers,
		clock:    systemClock{},
	}

	for _, op := range ops {
		op(svc)
	}

	return svc
}

// WithWorkers sets the concurrent task cap.
func WithWorkers(workers int) ContentOption {
	return func(s *ContentService) {
		s.workers = workers
	}
}

// WithContentClock sets ContentService's custom Clock.
func WithContentClock(c Clock) ContentOption {
	return func(s *ContentService) {
		s.clock = c
	}
}

// RewriteProducts rewrites the content of all listed products through
// the worker pool, streaming per-product outcomes in completion order.
// A product's permanent failure is recorded on the product itself and
// never aborts its siblings.
func (s *ContentService) RewriteProducts(ctx context.Context, productIDs []int) <-chan Outcome {
	tasks := lo.Map(productIDs, func(productID int, _ int) Task {
		return func(ctx context.Context) error {
			return s.rewriteProduct(ctx, productID)
		}
	})

	return RunPool(ctx, s.workers, tasks)
}

func (s *ContentService) rewriteProduct(ctx context.Context, productID int) error {
	product, err := s.storage.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("can't load product %d: %w", productID, err)
	}

	// First rewrite keeps the supplier's original text for reverts.
	if product.OriginalName == nil {
		product.OriginalName = lo.ToPtr(product.Name)
	}
	if product.OriginalDescription == nil {
		product.OriginalDescription = lo.ToPtr(product.Description)
	}

	product.AIStatus = models.AIProcessing
	product.AILastRunAt = s.clock.Now()
	if err := s.storage.UpdateProductAIState(ctx, product); err != nil {
		return fmt.Errorf("can't mark product %d processing: %w", productID, err)
	}

	content, err := s.rewriter.Rewrite(ctx, *product)
	if err != nil {
		product.AIStatus = models.AIError
		product.AILastError = lo.ToPtr(err.Error())
		if storeErr := s.storage.UpdateProductAIState(ctx, product); storeErr != nil {
			return fmt.Errorf("can't record rewrite failure of product %d: %w", productID, storeErr)
		}
		return fmt.Errorf("can't rewrite product %d: %w", productID, err)
	}

	product.Name = content.Title
	product.Description = content.Description
	product.AIGeneratedName = lo.ToPtr(content.Title)
	product.AIGeneratedDescription = lo.ToPtr(content.Description)
	product.AIStatus = models.AIGenerated
	product.AILastError = nil

	if err := s.storage.UpdateProductAIState(ctx, product); err != nil {
		return fmt.Errorf("can't store rewritten product %d: %w", productID, err)
	}

	return nil
}

// Revert restores the product's original content and resets the AI
// state.
func (s *ContentService) Revert(ctx context.Context, productID int) error {
	product, err := s.storage.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("can't load product %d: %w", productID, err)
	}

	if product.OriginalName != nil {
		product.Name = *product.OriginalName
	}
	if product.OriginalDescription != nil {
		product.Description = *product.OriginalDescription
	}
	product.AIStatus = models.AIOriginal
	product.AILastError = nil

	if err := s.storage.UpdateProductAIState(ctx, product); err != nil {
		return fmt.Errorf("can't revert product %d: %w", productID, err)
	}

	return nil
}
