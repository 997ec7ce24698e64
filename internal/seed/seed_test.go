package seed

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/hostelcare/internal/app/repositories/memory"
	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/pkg/auth"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	ctx := context.Background()
	lgr := zerolog.New(io.Discard)
	store := memory.NewStore()
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "t"})
	authSvc := services.NewAuthService(store, jwtSvc, lgr)
	admin := AdminAccount{Username: "admin", Password: "admin123", FullName: "Chief Warden"}

	require.NoError(t, CreateDefaultData(ctx, store, authSvc, admin, true, lgr))
	require.NoError(t, CreateDefaultData(ctx, store, authSvc, admin, true, lgr))

	count, err := store.Repos().Admins.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	hostels, err := store.Repos().Hostels.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, hostels, 2)
	for _, h := range hostels {
		assert.Equal(t, int64(h.TotalRooms), h.TotalRoomsCount)
		assert.Zero(t, h.TotalOccupied)
	}

	available, err := store.Repos().Hostels.ListAvailableRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 14)

	_, err = authSvc.AdminLogin(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestCreateDefaultDataReportsMissingAdminPassword(t *testing.T) {
	ctx := context.Background()
	lgr := zerolog.New(io.Discard)
	store := memory.NewStore()
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "t"})
	authSvc := services.NewAuthService(store, jwtSvc, lgr)

	err := CreateDefaultData(ctx, store, authSvc, AdminAccount{Username: "admin"}, false, lgr)
	assert.Error(t, err)

	hostels, err := store.Repos().Hostels.ListSummaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, hostels)
}
