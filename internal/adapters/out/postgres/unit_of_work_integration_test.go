package postgres_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopAggregateTracker struct{}

func (nopAggregateTracker) TrackAggregate(kernel.UUID, any) {}

type GormUnitOfWorkTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *GormUnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))
	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *GormUnitOfWorkTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers, ledger_entries CASCADE").Error)
}

func (suite *GormUnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// creditCourier applies a delivery credit and its ledger entry outside any
// unit of work, as a committed concurrent delivery would.
func (suite *GormUnitOfWorkTestSuite) creditCourier(courierID kernel.UUID, amount int64) {
	ctx := context.Background()

	entry, err := ledger.NewDeliveryCredit(courierID, kernel.NewUUID(), amount)
	suite.Require().NoError(err)
	suite.Require().NoError(ledgerrepo.NewGormLedgerRepository(suite.db).Append(ctx, entry))
	suite.Require().NoError(
		courierrepo.NewGormCourierRepository(suite.db, nopAggregateTracker{}).
			ApplyDeliveryCredit(ctx, courierID, amount))
}

func (suite *GormUnitOfWorkTestSuite) seedCourier() kernel.UUID {
	ctx := context.Background()
	repo := courierrepo.NewGormCourierRepository(suite.db, nopAggregateTracker{})

	c, err := courier.NewCourier(kernel.NewUUID(), "John Doe", "+15550001111", kernel.VehicleMotorcycle)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, c))
	return c.ID()
}

func (suite *GormUnitOfWorkTestSuite) TestBeginSnapshot_CommitBetweenReadsStaysInvisible() {
	ctx := context.Background()
	courierID := suite.seedCourier()
	suite.creditCourier(courierID, 95)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.BeginSnapshot(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	// First read pins the snapshot.
	c, err := uow.CourierRepository().Get(ctx, courierID)
	suite.Require().NoError(err)
	suite.Require().Equal(int64(95), c.Balance())

	// A delivery commits between the two reads.
	suite.creditCourier(courierID, 120)

	sum, err := uow.LedgerRepository().SumForCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(c.Balance(), sum)
	suite.Require().NoError(uow.Commit(ctx))

	// Outside the snapshot the new credit is visible in both places.
	sum, err = ledgerrepo.NewGormLedgerRepository(suite.db).SumForCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(int64(215), sum)
}

func (suite *GormUnitOfWorkTestSuite) TestBeginSnapshot_RejectsWrites() {
	ctx := context.Background()
	courierID := suite.seedCourier()
	suite.creditCourier(courierID, 95)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.BeginSnapshot(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.CourierRepository().ApplyDeliveryCredit(ctx, courierID, 10)
	suite.Require().Error(err)
}

func (suite *GormUnitOfWorkTestSuite) TestBeginSnapshot_NoOpWhenTransactionActive() {
	ctx := context.Background()
	courierID := suite.seedCourier()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	// The active read-write transaction stays in charge.
	suite.Require().NoError(uow.BeginSnapshot(ctx))
	suite.Require().NoError(uow.CourierRepository().ApplyDeliveryCredit(ctx, courierID, 10))
	suite.Require().NoError(uow.Commit(ctx))

	c, err := courierrepo.NewGormCourierRepository(suite.db, nopAggregateTracker{}).
		Get(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(int64(10), c.Balance())
}

func TestGormUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(GormUnitOfWorkTestSuite))
}
