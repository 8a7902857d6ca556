package userrepo_test

import (
	"context"
	"testing"
	"time"

	"broker/internal/adapters/out/postgres/userrepo"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/user"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (t *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GormUserRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *userrepo.GormUserRepository
}

func (suite *GormUserRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&userrepo.UserDTO{})
	suite.Require().NoError(err)

	suite.repo = userrepo.NewGormUserRepository(db, &mockAggregateTracker{})
}

func (suite *GormUserRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormUserRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE users CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormUserRepositoryTestSuite) mustNewUser(name, email string) *user.User {
	aggregate, err := user.NewUser(
		kernel.NewUUID(), name, email, "5550001", "hashed-password", time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GormUserRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	alice := suite.mustNewUser("Alice", "alice@example.com")

	err := suite.repo.Add(ctx, alice)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, alice.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(alice.ID()))
	suite.Equal("Alice", restored.Name())
	suite.Equal("alice@example.com", restored.Email())
	suite.Equal("hashed-password", restored.PasswordHash())
	suite.True(restored.Active())
}

func (suite *GormUserRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormUserRepositoryTestSuite) TestGetByEmail() {
	ctx := context.Background()
	alice := suite.mustNewUser("Alice", "alice@example.com")

	err := suite.repo.Add(ctx, alice)
	suite.Require().NoError(err)

	restored, err := suite.repo.GetByEmail(ctx, "alice@example.com")
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(alice.ID()))

	_, err = suite.repo.GetByEmail(ctx, "nobody@example.com")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormUserRepositoryTestSuite) TestAdd_DuplicateEmailFails() {
	ctx := context.Background()

	err := suite.repo.Add(ctx, suite.mustNewUser("Alice", "alice@example.com"))
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, suite.mustNewUser("Impostor", "alice@example.com"))
	suite.Require().Error(err)
}

func (suite *GormUserRepositoryTestSuite) TestUpdate_ClearsDeviceToken() {
	ctx := context.Background()
	alice := suite.mustNewUser("Alice", "alice@example.com")

	err := suite.repo.Add(ctx, alice)
	suite.Require().NoError(err)

	alice.UpdateDeviceToken("fcm-token-1", time.Now().UTC())
	err = suite.repo.Update(ctx, alice)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, alice.ID())
	suite.Require().NoError(err)
	suite.Equal("fcm-token-1", restored.DeviceToken())

	// An empty token must be written back, not skipped as a zero value.
	alice.UpdateDeviceToken("", time.Now().UTC())
	err = suite.repo.Update(ctx, alice)
	suite.Require().NoError(err)

	restored, err = suite.repo.Get(ctx, alice.ID())
	suite.Require().NoError(err)
	suite.Empty(restored.DeviceToken())
}

func (suite *GormUserRepositoryTestSuite) TestUpdate_MissingRow() {
	err := suite.repo.Update(context.Background(), suite.mustNewUser("Ghost", "ghost@example.com"))
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestGormUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormUserRepositoryTestSuite))
}
