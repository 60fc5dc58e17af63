package testutil

import (
	"context"

	"github.com/giftladder/backend/pkg/api/naver"
)

type MockShoppingSearcher struct {
	Calls      int
	SearchFunc func(ctx context.Context, query naver.SearchQuery) (int64, []naver.Record, error)
}

func (m *MockShoppingSearcher) Search(ctx context.Context, query naver.SearchQuery) (int64, []naver.Record, error) {
	m.Calls++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}

	return 0, nil, nil
}
