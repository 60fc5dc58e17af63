package model

type CreateRoomRequest struct {
	WishlistItemID  int64  `json:"wishlist_item_id"`
	Title           string `json:"title"`
	MaxParticipants int    `json:"max_participants"`
}

type CreateRoomResponse struct {
	Room Room `json:"room"`
}

type CreateProductRoomRequest struct {
	ProductID       int64  `json:"product_id"`
	Title           string `json:"title"`
	MaxParticipants int    `json:"max_participants"`
}

type CreateProductRoomResponse struct {
	Room Room `json:"room"`
}

type GetRoomRequest struct {
	RoomID int64 `json:"room_id"`
}

type GetRoomResponse RoomDetail

type GetRoomByJoinCodeRequest struct {
	JoinCode string `json:"join_code"`
}

type GetRoomByJoinCodeResponse RoomDetail

type GetMyRoomsRequest struct{}

type GetMyRoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type GetFriendRoomsRequest struct{}

type GetFriendRoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type GetRoomsByFriendRequest struct {
	FriendUserID int64 `json:"friend_user_id"`
}

type GetRoomsByFriendResponse struct {
	Rooms []Room `json:"rooms"`
}

type GetRoomsByProductRequest struct {
	ProductID int64 `json:"product_id"`
}

type GetRoomsByProductResponse struct {
	Rooms []Room `json:"rooms"`
}

type JoinRoomRequest struct {
	RoomID int64 `json:"room_id"`
}

type JoinRoomResponse struct {
	Participant Participant `json:"participant"`
}

type SetReadyRequest struct {
	RoomID  int64 `json:"room_id"`
	IsReady bool  `json:"is_ready"`
}

type SetReadyResponse struct {
	Participant Participant     `json:"participant"`
	GameStarted bool            `json:"game_started"`
	GameResult  *GameResultInfo `json:"game_result"`
}

type LeaveRoomRequest struct {
	RoomID int64 `json:"room_id"`
}

type LeaveRoomResponse struct {
	Participant Participant `json:"participant"`
}

type DeleteRoomRequest struct {
	RoomID int64 `json:"room_id"`
}

type DeleteRoomResponse struct{}
