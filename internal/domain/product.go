package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/giftladder/backend/internal/common"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/api/naver"
	"github.com/giftladder/backend/pkg/enum"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/giftladder/backend/pkg/xredis"
	"gorm.io/gorm"
)

// The shopping search API refuses a start offset greater than this value.
const maxSearchStart = 1000

type ProductDomain interface {
	SearchProducts(context.Context, *model.SearchProductsRequest) (*model.SearchProductsResponse, error)
	GetProduct(context.Context, *model.GetProductRequest) (*model.GetProductResponse, error)
	SaveProduct(context.Context, *model.SaveProductRequest) (*model.SaveProductResponse, error)
}

type productDomain struct {
	productRepo repository.ProductRepository
	searcher    naver.IEndpoint
	redisClient xredis.Client
}

// NewProductDomain creates the product domain. redisClient is optional, search
// results are not cached without it.
func NewProductDomain(
	productRepo repository.ProductRepository,
	searcher naver.IEndpoint,
	redisClient xredis.Client,
) *productDomain {
	return &productDomain{
		productRepo: productRepo,
		searcher:    searcher,
		redisClient: redisClient,
	}
}

func (d *productDomain) SearchProducts(
	ctx context.Context, req *model.SearchProductsRequest,
) (*model.SearchProductsResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty query")
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}

	display := req.Display
	if display <= 0 {
		display = naver.DefaultDisplay
	}

	if display > naver.MaxDisplay {
		display = naver.MaxDisplay
	}

	start := (page-1)*display + 1
	if start > maxSearchStart {
		return nil, errorx.New(errorx.BadRequest, "Page is out of range")
	}

	sort := req.Sort
	if sort == "" {
		sort = naver.DefaultSort
	}

	cacheKey := common.RedisKeyProductSearch(query, start, display, sort)
	if d.redisClient != nil {
		cached := model.SearchProductsResponse{}
		err := d.redisClient.GetObj(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}

		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot get cached search result: %v", err)
		}
	}

	total, records, err := d.searcher.Search(ctx, naver.SearchQuery{
		Query:   query,
		Display: display,
		Start:   start,
		Sort:    sort,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search products: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot search products")
	}

	now := time.Now()
	products := []entity.Product{}
	for _, r := range records {
		products = append(products, entity.Product{
			Source:          entity.ProductSourceNaver,
			SourceProductID: r.SourceProductID,
			Title:           r.Title,
			ImageURL:        r.ImageURL,
			LinkURL:         r.LinkURL,
			MallName:        r.MallName,
			Brand:           r.Brand,
			Maker:           r.Maker,
			Category1:       r.Category1,
			Category2:       r.Category2,
			Category3:       r.Category3,
			Category4:       r.Category4,
			Price:           r.Price,
			LastFetchedAt:   sql.NullTime{Time: now, Valid: true},
		})
	}

	stored, err := d.productRepo.Upsert(ctx, products)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert products: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.SearchProductsResponse{
		Products: []model.Product{},
		Total:    total,
		Page:     page,
		Display:  display,
	}

	for i := range stored {
		resp.Products = append(resp.Products, model.ConvertProduct(&stored[i]))
	}

	if d.redisClient != nil {
		ttl := xcontext.Configs(ctx).Redis.CacheTTL
		if err := d.redisClient.SetObj(ctx, cacheKey, resp, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache search result: %v", err)
		}
	}

	return resp, nil
}

func (d *productDomain) GetProduct(
	ctx context.Context, req *model.GetProductRequest,
) (*model.GetProductResponse, error) {
	product, err := d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetProductResponse{Product: model.ConvertProduct(product)}, nil
}

func (d *productDomain) SaveProduct(
	ctx context.Context, req *model.SaveProductRequest,
) (*model.SaveProductResponse, error) {
	source, err := enum.ToEnum[entity.ProductSource](req.Source)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid product source: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid product source")
	}

	if req.SourceProductID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty source product id")
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.Price < 0 {
		return nil, errorx.New(errorx.BadRequest, "Price must not be negative")
	}

	stored, err := d.productRepo.Upsert(ctx, []entity.Product{{
		Source:          source,
		SourceProductID: req.SourceProductID,
		Title:           naver.CleanTags(req.Title),
		ImageURL:        req.ImageURL,
		LinkURL:         req.LinkURL,
		MallName:        req.MallName,
		Brand:           req.Brand,
		Maker:           req.Maker,
		Category1:       req.Category1,
		Category2:       req.Category2,
		Category3:       req.Category3,
		Category4:       req.Category4,
		Price:           req.Price,
		LastFetchedAt:   sql.NullTime{Time: time.Now(), Valid: true},
	}})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save product: %v", err)
		return nil, errorx.Unknown
	}

	if len(stored) != 1 {
		xcontext.Logger(ctx).Errorf("Saved product is not found after upsert")
		return nil, errorx.Unknown
	}

	return &model.SaveProductResponse{Product: model.ConvertProduct(&stored[0])}, nil
}
