package naver

// Item is one entry of the shopping search response.
type Item struct {
	Title       string `mapstructure:"title"`
	Link        string `mapstructure:"link"`
	Image       string `mapstructure:"image"`
	LowPrice    int    `mapstructure:"lprice"`
	HighPrice   int    `mapstructure:"hprice"`
	MallName    string `mapstructure:"mallName"`
	ProductID   string `mapstructure:"productId"`
	ProductType string `mapstructure:"productType"`
	Brand       string `mapstructure:"brand"`
	Maker       string `mapstructure:"maker"`
	Category1   string `mapstructure:"category1"`
	Category2   string `mapstructure:"category2"`
	Category3   string `mapstructure:"category3"`
	Category4   string `mapstructure:"category4"`
}

type SearchResult struct {
	Total   int64  `mapstructure:"total"`
	Start   int    `mapstructure:"start"`
	Display int    `mapstructure:"display"`
	Items   []Item `mapstructure:"items"`
}

// Record is a normalized product ready to be stored in the catalog.
type Record struct {
	SourceProductID string
	Title           string
	ImageURL        string
	LinkURL         string
	MallName        string
	Brand           string
	Maker           string
	Category1       string
	Category2       string
	Category3       string
	Category4       string
	Price           int
}

type SearchQuery struct {
	Query   string
	Display int
	Start   int
	Sort    string
}
