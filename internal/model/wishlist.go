package model

type AddToWishlistRequest struct {
	ProductID int64  `json:"product_id"`
	Memo      string `json:"memo"`
	Priority  *int   `json:"priority"`
}

type AddToWishlistResponse struct {
	Item WishlistItem `json:"item"`
}

type RemoveFromWishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

type RemoveFromWishlistResponse struct{}

type GetMyWishlistRequest struct{}

type GetMyWishlistResponse struct {
	Items []WishlistItem `json:"items"`
}

type GetFriendWishlistRequest struct {
	FriendUserID int64 `json:"friend_user_id"`
}

type GetFriendWishlistResponse struct {
	Items []WishlistItem `json:"items"`
}
