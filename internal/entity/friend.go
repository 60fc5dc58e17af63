package entity

// Friend is a directed edge: OwnerUserID has added FriendUserID.
type Friend struct {
	Base

	OwnerUserID int64 `gorm:"not null;uniqueIndex:uq_friends_owner_friend"`
	OwnerUser   User  `gorm:"foreignKey:OwnerUserID"`

	FriendUserID int64 `gorm:"not null;uniqueIndex:uq_friends_owner_friend;index"`
	FriendUser   User  `gorm:"foreignKey:FriendUserID"`
}
