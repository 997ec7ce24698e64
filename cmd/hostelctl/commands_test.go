package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/app/repositories/memory"
	"github.com/yigit/hostelcare/internal/config"
	"github.com/yigit/hostelcare/internal/pkg/auth"
)

type mockMigrator struct {
	mock.Mock
}

func (m *mockMigrator) Up() error { return m.Called().Error(0) }

func (m *mockMigrator) Down(steps int) error { return m.Called(steps).Error(0) }

func (m *mockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *mockMigrator) Close() error { return m.Called().Error(0) }

func testApp(store *memory.Store, migrator *mockMigrator) *app {
	return &app{
		loadConfig: func(string) (*config.Config, error) {
			cfg := &config.Config{}
			cfg.JWT.Secret = "test"
			cfg.Admin.Username = "admin"
			cfg.Admin.Password = "admin123"
			return cfg, nil
		},
		openStore: func(*config.Config, zerolog.Logger) (repositories.Store, func(), error) {
			return store, func() {}, nil
		},
		newMigrator: func(*config.Config, zerolog.Logger) (schemaMigrator, error) {
			return migrator, nil
		},
	}
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateCommands(t *testing.T) {
	m := &mockMigrator{}
	m.On("Up").Return(nil).Once()
	m.On("Down", 2).Return(nil).Once()
	m.On("Version").Return(uint(1), false, nil)
	m.On("Close").Return(nil)
	a := testApp(memory.NewStore(), m)

	out, err := execute(t, a, "migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "schema version 1\n", out)

	_, err = execute(t, a, "migrate", "down", "2")
	require.NoError(t, err)

	_, err = execute(t, a, "migrate", "down", "zero")
	assert.Error(t, err)

	m.AssertExpectations(t)
}

func TestCreateAdminAndSetPassword(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	store := memory.NewStore()
	a := testApp(store, &mockMigrator{})

	out, err := execute(t, a, "create-admin", "--username", "warden", "--password", "first1", "--full-name", "Warden")
	require.NoError(t, err)
	assert.Contains(t, out, `admin "warden" created`)

	_, err = execute(t, a, "set-password", "admin", "warden", "second2")
	require.NoError(t, err)

	admin, err := store.Repos().Admins.GetByUsername(context.Background(), "warden")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "second2"))

	_, err = execute(t, a, "set-password", "warden", "x", "second2")
	assert.ErrorContains(t, err, "student or admin")
}

func TestSetStudentPassword(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	store := memory.NewStore()
	require.NoError(t, store.Repos().Students.Create(context.Background(), &models.Student{
		StudentID: "S001", Name: "Student", Email: "s001@college.edu", PasswordHash: "x",
		Department: "CSE", Year: 1, Gender: "Male",
	}))
	a := testApp(store, &mockMigrator{})

	_, err := execute(t, a, "set-password", "student", "S001", "newpass")
	require.NoError(t, err)

	student, err := store.Repos().Students.GetByID(context.Background(), "S001")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(student.PasswordHash, "newpass"))
}

func TestSeedCommand(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	store := memory.NewStore()
	a := testApp(store, &mockMigrator{})

	out, err := execute(t, a, "seed", "--demo")
	require.NoError(t, err)
	assert.Equal(t, "seed complete\n", out)

	count, err := store.Repos().Admins.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	hostels, err := store.Repos().Hostels.ListSummaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, hostels, 2)
}
