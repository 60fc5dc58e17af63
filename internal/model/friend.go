package model

type AddFriendRequest struct {
	FriendUserID int64  `json:"friend_user_id"`
	Nickname     string `json:"nickname"`
}

type AddFriendResponse struct {
	Friend Friend `json:"friend"`
}

type RemoveFriendRequest struct {
	FriendUserID int64 `json:"friend_user_id"`
}

type RemoveFriendResponse struct{}

type GetFriendsRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

type GetFriendsResponse struct {
	Friends    []Friend   `json:"friends"`
	Pagination Pagination `json:"pagination"`
}
