package model

type SearchProductsRequest struct {
	Query   string `json:"query"`
	Page    int    `json:"page"`
	Display int    `json:"display"`
	Sort    string `json:"sort"`
}

type SearchProductsResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Display  int       `json:"display"`
}

type GetProductRequest struct {
	ID int64 `json:"id"`
}

type GetProductResponse struct {
	Product Product `json:"product"`
}

type SaveProductRequest struct {
	Source          string `json:"source"`
	SourceProductID string `json:"source_product_id"`
	Title           string `json:"title"`
	ImageURL        string `json:"image_url"`
	LinkURL         string `json:"link_url"`
	MallName        string `json:"mall_name"`
	Brand           string `json:"brand"`
	Maker           string `json:"maker"`
	Category1       string `json:"category1"`
	Category2       string `json:"category2"`
	Category3       string `json:"category3"`
	Category4       string `json:"category4"`
	Price           int    `json:"price"`
}

type SaveProductResponse struct {
	Product Product `json:"product"`
}
