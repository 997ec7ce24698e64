package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/app/services"
)

// AdminAccount is the account created when no admin exists yet
type AdminAccount struct {
	Username string
	Password string
	FullName string
}

type demoHostel struct {
	hostel models.Hostel
	rooms  []models.Room
}

func demoHostels() []demoHostel {
	rooms := func(prefix string, floors, perFloor, capacity int, roomType string) []models.Room {
		var out []models.Room
		for f := 1; f <= floors; f++ {
			for n := 1; n <= perFloor; n++ {
				out = append(out, models.Room{
					RoomNumber:          fmt.Sprintf("%s%d%02d", prefix, f, n),
					Floor:               f,
					Capacity:            capacity,
					RoomType:            roomType,
					HasAttachedBathroom: n%2 == 0,
				})
			}
		}
		return out
	}

	return []demoHostel{
		{
			hostel: models.Hostel{HostelName: "Boys Hostel A", GenderType: "Male", WardenName: "R. Sharma", WardenPhone: "9000000001"},
			rooms:  rooms("A", 2, 4, 2, "Double"),
		},
		{
			hostel: models.Hostel{HostelName: "Girls Hostel B", GenderType: "Female", WardenName: "M. Iyer", WardenPhone: "9000000002"},
			rooms:  rooms("B", 2, 3, 3, "Triple"),
		},
	}
}

// CreateDefaultData creates the initial admin account and, when demo is set, sample
// hostels and rooms. Existing data is left alone.
func CreateDefaultData(ctx context.Context, store repositories.Store, authService *services.AuthService,
	admin AdminAccount, demo bool, lgr zerolog.Logger) error {
	var finalErr error

	created, err := authService.EnsureAdmin(ctx, admin.Username, admin.Password, admin.FullName)
	switch {
	case err != nil:
		lgr.Error().Err(err).Msg("Error creating default admin")
		finalErr = errors.Join(finalErr, err)
	case created:
		lgr.Info().Str("username", admin.Username).Msg("Default admin account created")
	}

	if demo {
		if err := createDemoHostels(ctx, store, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func createDemoHostels(ctx context.Context, store repositories.Store, lgr zerolog.Logger) error {
	existing, err := store.Repos().Hostels.ListSummaries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list hostels: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, h := range existing {
		have[h.HostelName] = true
	}

	for _, d := range demoHostels() {
		if have[d.hostel.HostelName] {
			continue
		}

		err := store.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
			h := d.hostel
			h.TotalRooms = len(d.rooms)
			if err := repos.Hostels.CreateHostel(ctx, &h); err != nil {
				return err
			}
			for _, r := range d.rooms {
				r.HostelID = h.HostelID
				if err := repos.Hostels.CreateRoom(ctx, &r); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			lgr.Error().Err(err).Str("hostel", d.hostel.HostelName).Msg("Error creating demo hostel")
			return err
		}
		lgr.Info().Str("hostel", d.hostel.HostelName).Int("rooms", len(d.rooms)).Msg("Demo hostel created")
	}
	return nil
}
