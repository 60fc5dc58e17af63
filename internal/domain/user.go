package domain

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/authenticator"
	"github.com/giftladder/backend/pkg/crypto"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	maxNicknameLength = 60
)

type UserDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUserByNickname(context.Context, *model.GetUserByNicknameRequest) (*model.GetUserByNicknameResponse, error)
}

type userDomain struct {
	userRepo          repository.UserRepository
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewUserDomain(
	userRepo repository.UserRepository,
	accessTokenEngine authenticator.TokenEngine[model.AccessToken],
) *userDomain {
	return &userDomain{
		userRepo:          userRepo,
		accessTokenEngine: accessTokenEngine,
	}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Nickname = strings.TrimSpace(req.Nickname)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email")
	}

	if req.Nickname == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty nickname")
	}

	if utf8.RuneCountInString(req.Nickname) > maxNicknameLength {
		return nil, errorx.New(errorx.BadRequest,
			"Nickname too long (at most %d characters)", maxNicknameLength)
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest,
			"Password too short (at least %d characters)", minPasswordLength)
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByNickname(ctx, req.Nickname); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Nickname is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by nickname: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Email:        req.Email,
		Nickname:     req.Nickname,
		PasswordHash: hashed,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Email or nickname is already taken")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *userDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(user.PasswordHash, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	token, err := d.accessTokenEngine.Generate(
		strconv.FormatInt(user.ID, 10), model.AccessToken{UserID: user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(xcontext.Configs(ctx).Auth.AccessToken.Expiration.Seconds()),
		User:        model.ConvertUser(user, true),
	}, nil
}

// Logout does nothing on the server, access tokens are stateless and expire on
// their own.
func (d *userDomain) Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) GetUserByNickname(
	ctx context.Context, req *model.GetUserByNicknameRequest,
) (*model.GetUserByNicknameResponse, error) {
	if req.Nickname == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty nickname")
	}

	user, err := d.userRepo.GetByNickname(ctx, req.Nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by nickname: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserByNicknameResponse{User: model.ConvertUser(user, false)}, nil
}
