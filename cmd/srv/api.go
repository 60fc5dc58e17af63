package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftladder/backend/internal/middleware"
	"github.com/giftladder/backend/pkg/prometheus"
	"github.com/giftladder/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}
	s.loadLogger()

	if s.configs.Auth.TokenSecret == "" {
		return errors.New("token secret is not set")
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRedis()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	if err := s.loadRouter(); err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:              s.configs.ApiServer.Address(),
		Handler:           middleware.AllowCors(s.configs.ApiServer.AllowedOrigins, s.router.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorf("Cannot shutdown server: %v", err)
		}
	}()

	s.logger.Infof("Starting server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Infof("Server stopped")
	return nil
}

type healthRequest struct{}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *srv) health(ctx context.Context, req *healthRequest) (*healthResponse, error) {
	return &healthResponse{Status: "ok"}, nil
}

func (s *srv) loadRouter() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.WithRequestID())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Handle("/metrics", prometheus.NewHandler(sqlDB))
	router.GET(s.router, "/health", s.health)

	// Public APIs
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.userDomain.Register)
		router.POST(publicRouter, "/login", s.userDomain.Login)
		router.GET(publicRouter, "/searchProducts", s.productDomain.SearchProducts)
		router.GET(publicRouter, "/getProduct", s.productDomain.GetProduct)
	}

	// These following APIs need authentication.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken(s.accessTokenEngine)
	if s.configs.Auth.AllowUserIDHeader {
		authVerifier.WithUserID()
	}
	authRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.POST(authRouter, "/logout", s.userDomain.Logout)
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getUserByNickname", s.userDomain.GetUserByNickname)

		// Friend API
		router.POST(authRouter, "/addFriend", s.friendDomain.AddFriend)
		router.POST(authRouter, "/removeFriend", s.friendDomain.RemoveFriend)
		router.GET(authRouter, "/getFriends", s.friendDomain.GetFriends)

		// Product API
		router.POST(authRouter, "/saveProduct", s.productDomain.SaveProduct)

		// Wishlist API
		router.GET(authRouter, "/getMyWishlist", s.wishlistDomain.GetMyWishlist)
		router.GET(authRouter, "/getFriendWishlist", s.wishlistDomain.GetFriendWishlist)
		router.POST(authRouter, "/addToWishlist", s.wishlistDomain.AddToWishlist)
		router.POST(authRouter, "/removeFromWishlist", s.wishlistDomain.RemoveFromWishlist)

		// Room API
		router.POST(authRouter, "/createRoom", s.roomDomain.CreateRoom)
		router.POST(authRouter, "/createProductRoom", s.roomDomain.CreateProductRoom)
		router.GET(authRouter, "/getRoom", s.roomDomain.GetRoom)
		router.GET(authRouter, "/getRoomByJoinCode", s.roomDomain.GetRoomByJoinCode)
		router.GET(authRouter, "/getMyRooms", s.roomDomain.GetMyRooms)
		router.GET(authRouter, "/getFriendRooms", s.roomDomain.GetFriendRooms)
		router.GET(authRouter, "/getRoomsByFriend", s.roomDomain.GetRoomsByFriend)
		router.GET(authRouter, "/getRoomsByProduct", s.roomDomain.GetRoomsByProduct)
		router.POST(authRouter, "/joinRoom", s.roomDomain.JoinRoom)
		router.POST(authRouter, "/setReady", s.roomDomain.SetReady)
		router.POST(authRouter, "/leaveRoom", s.roomDomain.LeaveRoom)
		router.POST(authRouter, "/deleteRoom", s.roomDomain.DeleteRoom)
	}

	return nil
}
