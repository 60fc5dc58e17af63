package model

type AccessToken struct {
	UserID int64 `json:"user_id"`
}

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortUser struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
}

type Friend struct {
	ID           int64  `json:"id"`
	FriendUserID int64  `json:"friend_user_id"`
	Nickname     string `json:"nickname"`
	CreatedAt    string `json:"created_at"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

type Product struct {
	ID              int64  `json:"id"`
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
	LastFetchedAt   string `json:"last_fetched_at,omitempty"`
}

// ProductInfo is the short product form embedded in room details.
type ProductInfo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Price    int    `json:"price"`
	LinkURL  string `json:"link_url"`
}

type WishlistItem struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	ProductID int64   `json:"product_id"`
	Product   Product `json:"product"`
	Memo      string  `json:"memo"`
	Priority  *int    `json:"priority"`
	CreatedAt string  `json:"created_at"`
}

type Room struct {
	ID                      int64  `json:"id"`
	RoomType                string `json:"room_type"`
	Title                   string `json:"title"`
	Status                  string `json:"status"`
	MaxParticipants         int    `json:"max_participants"`
	IsAutoStart             bool   `json:"is_auto_start"`
	JoinCode                string `json:"join_code"`
	OwnerUserID             int64  `json:"owner_user_id"`
	ProductID               int64  `json:"product_id"`
	GiftOwnerUserID         *int64 `json:"gift_owner_user_id"`
	CreatedAt               string `json:"created_at"`
	UpdatedAt               string `json:"updated_at"`
	CurrentParticipantCount int64  `json:"current_participant_count"`
}

type RoomDetail struct {
	Room

	OwnerNickname     string          `json:"owner_nickname"`
	GiftOwnerNickname string          `json:"gift_owner_nickname"`
	Product           *ProductInfo    `json:"product"`
	Participants      []Participant   `json:"participants"`
	CurrentReadyCount int64           `json:"current_ready_count"`
	GameResult        *GameResultInfo `json:"game_result"`
}

type Participant struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"room_id"`
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	State    string `json:"state"`
	IsReady  bool   `json:"is_ready"`
	JoinedAt string `json:"joined_at"`
	LeftAt   string `json:"left_at,omitempty"`
}

// GameResultInfo is the lottery outcome as seen by one caller. Which fields
// are populated depends on the room type and on who is asking.
type GameResultInfo struct {
	GameID             int64       `json:"game_id"`
	PayerUserID        *int64      `json:"payer_user_id"`
	PayerNickname      string      `json:"payer_nickname,omitempty"`
	RecipientUserID    int64       `json:"recipient_user_id"`
	RecipientNickname  string      `json:"recipient_nickname,omitempty"`
	ProductID          int64       `json:"product_id"`
	ParticipantUserIDs []int64     `json:"participant_user_ids"`
	PayerUserIDs       []int64     `json:"payer_user_ids"`
	Payers             []ShortUser `json:"payers"`
}
