package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_defaultClient_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "lego", r.URL.Query().Get("query"))
		require.Equal(t, "abc", r.Header.Get("X-Key"))
		w.Write([]byte(`{"total": 3, "name": "x"}`))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL).New("/%s", "search").
		Header("X-Key", "abc").
		Query(Parameter{"query": "lego"}).
		GET(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)

	body, ok := resp.Body.(JSON)
	require.True(t, ok)

	total, err := body.GetInt("total")
	require.NoError(t, err)
	require.Equal(t, 3, total)

	name, err := body.GetString("name")
	require.NoError(t, err)
	require.Equal(t, "x", name)
}

func Test_defaultClient_AllDomainsFailed(t *testing.T) {
	_, err := NewGenerator("http://127.0.0.1:1").New("/search").GET(context.Background())
	require.Error(t, err)
}

func Test_Parameter_Encode(t *testing.T) {
	require.Equal(t, "a=1&b=x%20y", Parameter{"b": "x y", "a": "1"}.Encode())
	require.Equal(t, "query=%EB%A0%88%EA%B3%A0%20%26%20duplo", Parameter{"query": "레고 & duplo"}.Encode())
	require.Equal(t, "sort%20by=sim", Parameter{"sort by": "sim"}.Encode())
}
