package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetClaimableOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	handler   queries.GetClaimableOrdersQueryHandler
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) SetupSuite() {
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
	suite.handler = queries.NewGetClaimableOrdersQueryHandler(db)
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_history").Error)
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// addOrder persists an order and, when published is set, backdates
// published_at by the given offset so ordering is deterministic.
func (suite *GetClaimableOrdersQueryHandlerTestSuite) addOrder(
	number int64,
	class kernel.VehicleClass,
	published bool,
	age time.Duration,
) kernel.UUID {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(suite.db, nopAggregateTracker{})

	sender, err := kernel.NewContact("Alice", "+15550001111", "12 Main St")
	suite.Require().NoError(err)
	receiver, err := kernel.NewContact("Bob", "+15550002222", "34 Side St")
	suite.Require().NoError(err)
	price, err := order.NewPrice(70, 3, 12, 106, 19.08, 126, 31)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, sender, receiver, class, 12, price)
	suite.Require().NoError(err)
	if published {
		suite.Require().NoError(o.Publish())
	}
	suite.Require().NoError(repo.Add(ctx, o))

	if published && age > 0 {
		suite.Require().NoError(suite.db.Exec(
			"UPDATE orders SET published_at = ? WHERE id = ?",
			time.Now().UTC().Add(-age), o.ID().Bytes(),
		).Error)
	}
	return o.ID()
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_OldestFirstWithinClass() {
	recent := suite.addOrder(1, kernel.VehicleMotorcycle, true, 0)
	oldest := suite.addOrder(2, kernel.VehicleMotorcycle, true, 2*time.Hour)
	middle := suite.addOrder(3, kernel.VehicleMotorcycle, true, time.Hour)
	suite.addOrder(4, kernel.VehicleVan, true, 3*time.Hour)
	suite.addOrder(5, kernel.VehicleMotorcycle, false, 0)

	query, err := queries.NewGetClaimableOrdersQuery(kernel.VehicleMotorcycle, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(oldest))
	suite.True(result[1].ID.IsEqual(middle))
	suite.True(result[2].ID.IsEqual(recent))
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_ExposesPayoutNotTotal() {
	suite.addOrder(1, kernel.VehicleMotorcycle, true, 0)

	query, err := queries.NewGetClaimableOrdersQuery(kernel.VehicleMotorcycle, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(int64(1), result[0].Number)
	suite.Equal("12 Main St", result[0].PickupAddress)
	suite.Equal("34 Side St", result[0].DropAddress)
	suite.Equal(12.0, result[0].DistanceKm)
	suite.Equal(int64(95), result[0].Payout)
	suite.False(result[0].PublishedAt.IsZero())
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_RespectsLimit() {
	for i := range 5 {
		suite.addOrder(int64(i+1), kernel.VehicleCar, true, time.Duration(i)*time.Minute)
	}

	query, err := queries.NewGetClaimableOrdersQuery(kernel.VehicleCar, 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_EmptyBoard() {
	query, err := queries.NewGetClaimableOrdersQuery(kernel.VehicleVan, 10)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetClaimableOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetClaimableOrdersQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrGetClaimableOrdersQueryIsNotConstructed)
}

func TestGetClaimableOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetClaimableOrdersQueryHandlerTestSuite))
}
