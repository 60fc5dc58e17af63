package repository

import (
	"context"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error)
	GetBySource(ctx context.Context, source entity.ProductSource, sourceProductID string) (*entity.Product, error)
	Upsert(ctx context.Context, products []entity.Product) ([]entity.Product, error)
}

type productRepository struct{}

func NewProductRepository() *productRepository {
	return &productRepository{}
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var result entity.Product
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error) {
	var result []entity.Product
	if len(ids) == 0 {
		return result, nil
	}

	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *productRepository) GetBySource(
	ctx context.Context, source entity.ProductSource, sourceProductID string,
) (*entity.Product, error) {
	var result entity.Product
	err := xcontext.DB(ctx).
		Where("source=? AND source_product_id=?", source, sourceProductID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Upsert inserts the products or refreshes the existing rows having the same
// (source, source_product_id). It returns the stored rows in the input order,
// duplicated keys are only kept once.
func (r *productRepository) Upsert(ctx context.Context, products []entity.Product) ([]entity.Product, error) {
	if len(products) == 0 {
		return []entity.Product{}, nil
	}

	unique := []entity.Product{}
	seen := map[string]bool{}
	sourceProductIDs := []string{}
	for _, p := range products {
		key := productKey(p.Source, p.SourceProductID)
		if seen[key] {
			continue
		}

		seen[key] = true
		unique = append(unique, p)
		sourceProductIDs = append(sourceProductIDs, p.SourceProductID)
	}

	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "source"},
				{Name: "source_product_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "image_url", "link_url", "mall_name", "brand", "maker",
				"category1", "category2", "category3", "category4", "price",
				"last_fetched_at", "updated_at",
			}),
		}).
		Create(&unique).Error
	if err != nil {
		return nil, err
	}

	var stored []entity.Product
	err = xcontext.DB(ctx).
		Where("source_product_id IN (?)", sourceProductIDs).
		Find(&stored).Error
	if err != nil {
		return nil, err
	}

	byKey := map[string]entity.Product{}
	for _, p := range stored {
		byKey[productKey(p.Source, p.SourceProductID)] = p
	}

	result := []entity.Product{}
	for _, p := range unique {
		if s, ok := byKey[productKey(p.Source, p.SourceProductID)]; ok {
			result = append(result, s)
		}
	}

	return result, nil
}

func productKey(source entity.ProductSource, sourceProductID string) string {
	return string(source) + "/" + sourceProductID
}
