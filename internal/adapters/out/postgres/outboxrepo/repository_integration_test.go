package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"broker/internal/adapters/out/postgres/outboxrepo"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/notification"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormOutboxRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *outboxrepo.GormOutboxRepository
}

func (suite *GormOutboxRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&outboxrepo.OutboxMessageDTO{})
	suite.Require().NoError(err)

	suite.repo = outboxrepo.NewGormOutboxRepository(db)
}

func (suite *GormOutboxRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOutboxRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE outbox_messages CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormOutboxRepositoryTestSuite) newBroadcast(createdAt time.Time) *ports.OutboxMessage {
	return &ports.OutboxMessage{
		ID:            kernel.NewUUID(),
		Kind:          ports.OutboxKindBroadcast,
		RecipientRole: notification.RoleCourier,
		NotifType:     notification.TypeNewOrder,
		Title:         "New Order Available",
		Body:          "A new order is waiting",
		Payload:       map[string]string{"order_id": kernel.NewUUID().String()},
		Status:        ports.OutboxStatusPending,
		CreatedAt:     createdAt,
	}
}

func (suite *GormOutboxRepositoryTestSuite) TestAddAndGetPending_RoundTrip() {
	ctx := context.Background()
	message := suite.newBroadcast(time.Now().UTC())

	err := suite.repo.Add(ctx, message)
	suite.Require().NoError(err)

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)

	suite.Require().Len(pending, 1)
	suite.True(message.ID.IsEqual(pending[0].ID))
	suite.Equal(ports.OutboxKindBroadcast, pending[0].Kind)
	suite.Equal(notification.RoleCourier, pending[0].RecipientRole)
	suite.Equal(message.Payload, pending[0].Payload)
	suite.Nil(pending[0].RecipientID)
	suite.Nil(pending[0].SentAt)
}

func (suite *GormOutboxRepositoryTestSuite) TestGetPending_OldestFirstAndLimited() {
	ctx := context.Background()
	base := time.Now().UTC()

	second := suite.newBroadcast(base.Add(-1 * time.Hour))
	third := suite.newBroadcast(base)
	first := suite.newBroadcast(base.Add(-2 * time.Hour))
	for _, m := range []*ports.OutboxMessage{second, third, first} {
		suite.Require().NoError(suite.repo.Add(ctx, m))
	}

	pending, err := suite.repo.GetPending(ctx, 2)
	suite.Require().NoError(err)

	suite.Require().Len(pending, 2)
	suite.True(first.ID.IsEqual(pending[0].ID))
	suite.True(second.ID.IsEqual(pending[1].ID))
}

func (suite *GormOutboxRepositoryTestSuite) TestClaim_OnlyOneWinner() {
	ctx := context.Background()
	message := suite.newBroadcast(time.Now().UTC())
	suite.Require().NoError(suite.repo.Add(ctx, message))

	claimed, err := suite.repo.Claim(ctx, message.ID)
	suite.Require().NoError(err)
	suite.True(claimed)

	// A second relay loses the race and must skip the message.
	claimed, err = suite.repo.Claim(ctx, message.ID)
	suite.Require().NoError(err)
	suite.False(claimed)

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *GormOutboxRepositoryTestSuite) TestClaim_StaleClaimIsTakenOver() {
	ctx := context.Background()
	message := suite.newBroadcast(time.Now().UTC())
	message.Status = ports.OutboxStatusInFlight
	staleClaim := time.Now().UTC().Add(-time.Hour)
	message.ClaimedAt = &staleClaim
	suite.Require().NoError(suite.repo.Add(ctx, message))

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)

	claimed, err := suite.repo.Claim(ctx, message.ID)
	suite.Require().NoError(err)
	suite.True(claimed)
}

func (suite *GormOutboxRepositoryTestSuite) TestMarkFailed_ReturnsClaimedMessageToPending() {
	ctx := context.Background()
	message := suite.newBroadcast(time.Now().UTC())
	suite.Require().NoError(suite.repo.Add(ctx, message))

	claimed, err := suite.repo.Claim(ctx, message.ID)
	suite.Require().NoError(err)
	suite.True(claimed)

	suite.Require().NoError(suite.repo.MarkFailed(ctx, message.ID, 3))

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(ports.OutboxStatusPending, pending[0].Status)
	suite.Equal(1, pending[0].Attempts)

	claimed, err = suite.repo.Claim(ctx, message.ID)
	suite.Require().NoError(err)
	suite.True(claimed)
}

func (suite *GormOutboxRepositoryTestSuite) TestMarkSent_RemovesFromPending() {
	ctx := context.Background()
	message := suite.newBroadcast(time.Now().UTC())
	suite.Require().NoError(suite.repo.Add(ctx, message))

	sentAt := time.Now().UTC()
	err := suite.repo.MarkSent(ctx, message.ID, sentAt)
	suite.Require().NoError(err)

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *GormOutboxRepositoryTestSuite) TestMarkFailed_FlipsAfterMaxAttempts() {
	ctx := context.Background()
	message := suite.newBroadcast(time.Now().UTC())
	suite.Require().NoError(suite.repo.Add(ctx, message))

	// First two failures keep the message pollable.
	for range 2 {
		err := suite.repo.MarkFailed(ctx, message.ID, 3)
		suite.Require().NoError(err)

		pending, err := suite.repo.GetPending(ctx, 10)
		suite.Require().NoError(err)
		suite.Len(pending, 1)
	}

	// Third failure reaches the cap.
	err := suite.repo.MarkFailed(ctx, message.ID, 3)
	suite.Require().NoError(err)

	pending, err := suite.repo.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *GormOutboxRepositoryTestSuite) TestMarkSent_UnknownID_ReturnsNotFound() {
	err := suite.repo.MarkSent(context.Background(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGormOutboxRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOutboxRepositoryTestSuite))
}
