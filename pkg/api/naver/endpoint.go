package naver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/giftladder/backend/config"
	"github.com/giftladder/backend/pkg/api"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

const (
	searchPath = "/v1/search/shop.json"

	MaxDisplay     = 100
	DefaultDisplay = 10
	DefaultSort    = "sim"
)

var validSorts = map[string]bool{"sim": true, "date": true, "asc": true, "dsc": true}

type IEndpoint interface {
	Search(ctx context.Context, query SearchQuery) (int64, []Record, error)
}

type Endpoint struct {
	clientID     string
	clientSecret string
	timeout      time.Duration
	apiGenerator api.Generator
}

func New(cfg config.NaverConfigs) *Endpoint {
	return &Endpoint{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		timeout:      cfg.Timeout,
		apiGenerator: api.NewGenerator(cfg.Endpoint),
	}
}

// Search calls the shopping search API and returns the total number of
// matched items with the normalized records of the requested page.
func (e *Endpoint) Search(ctx context.Context, query SearchQuery) (int64, []Record, error) {
	query = normalizeQuery(query)
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.apiGenerator.New(searchPath).
		Header("X-Naver-Client-Id", e.clientID).
		Header("X-Naver-Client-Secret", e.clientSecret).
		Query(api.Parameter{
			"query":   query.Query,
			"display": strconv.Itoa(query.Display),
			"start":   strconv.Itoa(query.Start),
			"sort":    query.Sort,
		}).
		GET(ctx)
	if err != nil {
		return 0, nil, err
	}

	if resp.Code != http.StatusOK {
		xcontext.Logger(ctx).Errorf("Invalid status code: %v", resp.Body)
		return 0, nil, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return 0, nil, errors.New("invalid body format")
	}

	result := SearchResult{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &result,
	})
	if err != nil {
		return 0, nil, err
	}

	if err := decoder.Decode(map[string]any(body)); err != nil {
		return 0, nil, err
	}

	records := make([]Record, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ProductID == "" {
			continue
		}

		records = append(records, Normalize(item))
	}

	return result.Total, records, nil
}

func normalizeQuery(query SearchQuery) SearchQuery {
	if query.Display <= 0 {
		query.Display = DefaultDisplay
	}

	if query.Display > MaxDisplay {
		query.Display = MaxDisplay
	}

	if query.Start <= 0 {
		query.Start = 1
	}

	if !validSorts[query.Sort] {
		query.Sort = DefaultSort
	}

	return query
}

func Normalize(item Item) Record {
	return Record{
		SourceProductID: item.ProductID,
		Title:           CleanTags(item.Title),
		ImageURL:        item.Image,
		LinkURL:         item.Link,
		MallName:        item.MallName,
		Brand:           item.Brand,
		Maker:           item.Maker,
		Category1:       item.Category1,
		Category2:       item.Category2,
		Category3:       item.Category3,
		Category4:       item.Category4,
		Price:           item.LowPrice,
	}
}

// CleanTags removes the highlight tags wrapped around matched keywords.
func CleanTags(s string) string {
	return strings.NewReplacer("<b>", "", "</b>", "").Replace(s)
}
