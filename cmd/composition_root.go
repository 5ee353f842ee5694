package cmd

import (
	"fmt"
	"log/slog"

	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// defaultClassMultipliers scale the per-km rate by transport class. Larger
// vehicles cost more per kilometer.
func defaultClassMultipliers() map[kernel.VehicleClass]float64 {
	return map[kernel.VehicleClass]float64{
		kernel.VehicleMotorcycle: 1.0,
		kernel.VehicleCar:        1.2,
		kernel.VehicleVan:        1.5,
	}
}

// CompositionRoot assembles the application object graph from the
// configuration and the shared infrastructure handles.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	estimator  ports.DistanceEstimator
	calculator services.PriceCalculator
}

// NewCompositionRoot wires the adapters and the domain services.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	tariff, err := services.NewTariff(
		configs.TariffBase,
		configs.TariffPerKmRate,
		configs.TariffFreeKm,
		configs.TariffVatRate,
		configs.TariffCommissionRate,
		configs.TariffNightMultiplier,
		defaultClassMultipliers(),
	)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build tariff: %w", err)
	}

	calculator, err := services.NewPriceCalculator(tariff)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("build price calculator: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier: kafka.NewOrderNotifier(
			[]string{configs.KafkaHost},
			configs.KafkaOrderChangedTopic,
			logger,
		),
		estimator:  geo.NewClient(configs.GeoServiceAddr),
		calculator: calculator,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.estimator, c.calculator)
}

func (c *CompositionRoot) CreatePublishOrderCommandHandler() commands.PublishOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateClaimNextOrderCommandHandler() commands.ClaimNextOrderCommandHandler {
	return commands.NewClaimNextOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreatePickupOrderCommandHandler() commands.PickupOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickupOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateExpirePublishedOrdersCommandHandler() commands.ExpirePublishedOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpirePublishedOrdersCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierBlockedCommandHandler() commands.SetCourierBlockedCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierBlockedCommandHandler(f)
}

func (c *CompositionRoot) CreateAdjustBalanceCommandHandler() commands.AdjustBalanceCommandHandler {
	return commands.NewAdjustBalanceCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateReconcileCourierBalanceCommandHandler() commands.ReconcileCourierBalanceCommandHandler {
	return commands.NewReconcileCourierBalanceCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateRequestPayoutCommandHandler() commands.RequestPayoutCommandHandler {
	return commands.NewRequestPayoutCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateResolvePayoutCommandHandler() commands.ResolvePayoutCommandHandler {
	return commands.NewResolvePayoutCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCompletePayoutCommandHandler() commands.CompletePayoutCommandHandler {
	return commands.NewCompletePayoutCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderByNumberQueryHandler() queries.GetOrderByNumberQueryHandler {
	return queries.NewGetOrderByNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClaimableOrdersQueryHandler() queries.GetClaimableOrdersQueryHandler {
	return queries.NewGetClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierBalanceQueryHandler() queries.GetCourierBalanceQueryHandler {
	return queries.NewGetCourierBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierLedgerQueryHandler() queries.GetCourierLedgerQueryHandler {
	return queries.NewGetCourierLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// FuncCourierUoWFactory adapts a plain function to commands.CourierUoWFactory.
type FuncCourierUoWFactory func() commands.CourierUoW

// Create invokes the wrapped function.
func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

// FuncOrderUoWFactory adapts a plain function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create invokes the wrapped function.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncUoWFactory adapts a plain function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create invokes the wrapped function.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
