// Package lottery decides who receives and who pays once a room is full of
// ready participants.
package lottery

import (
	"errors"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/crypto"
)

var (
	ErrNoParticipant   = errors.New("no ready participant")
	ErrNoGiftOwner     = errors.New("gift room has no gift owner")
	ErrUnknownRoomType = errors.New("unknown room type")
)

// Picker chooses an index in [0, n).
type Picker interface {
	Pick(n int) int
}

type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int {
	return f(n)
}

// NewCryptoPicker returns a Picker drawing uniformly from crypto/rand.
func NewCryptoPicker() Picker {
	return PickerFunc(crypto.RandIntn)
}

type Outcome struct {
	RecipientUserID int64

	// PayerUserID is the single payer of a WISHLIST_GIFT room, zero otherwise.
	PayerUserID int64

	// PayerUserIDs are the losers of a PRODUCT_LADDER room, in the order of
	// the ready list.
	PayerUserIDs []int64
}

// Draw settles a room. readyUserIDs is the full set of ready participants and
// each call makes one independent uniform choice over it.
func Draw(roomType entity.RoomType, giftOwnerUserID int64, readyUserIDs []int64, picker Picker) (*Outcome, error) {
	if len(readyUserIDs) == 0 {
		return nil, ErrNoParticipant
	}

	chosen := picker.Pick(len(readyUserIDs))

	switch roomType {
	case entity.RoomWishlistGift:
		if giftOwnerUserID == 0 {
			return nil, ErrNoGiftOwner
		}

		return &Outcome{
			RecipientUserID: giftOwnerUserID,
			PayerUserID:     readyUserIDs[chosen],
		}, nil

	case entity.RoomProductLadder:
		outcome := &Outcome{
			RecipientUserID: readyUserIDs[chosen],
			PayerUserIDs:    make([]int64, 0, len(readyUserIDs)-1),
		}

		for i, id := range readyUserIDs {
			if i != chosen {
				outcome.PayerUserIDs = append(outcome.PayerUserIDs, id)
			}
		}

		return outcome, nil
	}

	return nil, ErrUnknownRoomType
}
