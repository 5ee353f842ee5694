// Package http exposes the dispatch use cases over a JSON API built on
// echo. Handlers translate transport concerns only; every business rule
// lives behind the command and query handlers.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the server routes to.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	PublishOrder    commands.PublishOrderCommandHandler
	ClaimOrder      commands.ClaimOrderCommandHandler
	ClaimNextOrder  commands.ClaimNextOrderCommandHandler
	PickupOrder     commands.PickupOrderCommandHandler
	DeliverOrder    commands.DeliverOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	CreateCourier   commands.CreateCourierCommandHandler
	SetBlocked      commands.SetCourierBlockedCommandHandler
	AdjustBalance   commands.AdjustBalanceCommandHandler
	Reconcile       commands.ReconcileCourierBalanceCommandHandler
	RequestPayout   commands.RequestPayoutCommandHandler
	ResolvePayout   commands.ResolvePayoutCommandHandler
	CompletePayout  commands.CompletePayoutCommandHandler
	OrderByNumber   queries.GetOrderByNumberQueryHandler
	ClaimableOrders queries.GetClaimableOrdersQueryHandler
	OrderHistory    queries.GetOrderHistoryQueryHandler
	CourierBalance  queries.GetCourierBalanceQueryHandler
	CourierLedger   queries.GetCourierLedgerQueryHandler
}

// Server wires the JSON API onto the use case handlers.
type Server struct {
	h Handlers
}

// NewServer creates the HTTP server facade.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.createOrder)
	api.GET("/orders/number/:number", s.getOrderByNumber)
	api.GET("/orders/claimable", s.getClaimableOrders)
	api.GET("/orders/:id/history", s.getOrderHistory)
	api.POST("/orders/:id/publish", s.publishOrder)
	api.POST("/orders/:id/claim", s.claimOrder)
	api.POST("/orders/claim-next", s.claimNextOrder)
	api.POST("/orders/:id/pickup", s.pickupOrder)
	api.POST("/orders/:id/deliver", s.deliverOrder)
	api.POST("/orders/:id/cancel", s.cancelOrder)

	api.POST("/couriers", s.createCourier)
	api.POST("/couriers/:id/blocked", s.setCourierBlocked)
	api.GET("/couriers/:id/balance", s.getCourierBalance)
	api.GET("/couriers/:id/ledger", s.getCourierLedger)
	api.POST("/couriers/:id/adjustments", s.adjustBalance)
	api.POST("/couriers/:id/reconciliation", s.reconcileBalance)

	api.POST("/payouts", s.requestPayout)
	api.POST("/payouts/:id/approve", s.approvePayout)
	api.POST("/payouts/:id/reject", s.rejectPayout)
	api.POST("/payouts/:id/complete", s.completePayout)
}

func (s *Server) createOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sender, err := kernel.NewContact(req.Sender.Name, req.Sender.Phone, req.Sender.Address)
	if err != nil {
		return fail(ctx, err)
	}
	receiver, err := kernel.NewContact(req.Receiver.Name, req.Receiver.Phone, req.Receiver.Address)
	if err != nil {
		return fail(ctx, err)
	}
	vehicleClass, err := kernel.VehicleClassFromString(req.VehicleClass)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), sender, receiver, vehicleClass, req.NightWindow, req.ManualTotal,
	)
	if err != nil {
		return fail(ctx, err)
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

func (s *Server) getOrderByNumber(ctx echo.Context) error {
	number, err := strconv.ParseInt(ctx.Param("number"), 10, 64)
	if err != nil {
		return badRequest(ctx, "Invalid order number")
	}

	query, err := queries.NewGetOrderByNumberQuery(number)
	if err != nil {
		return fail(ctx, err)
	}

	view, err := s.h.OrderByNumber.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, publicOrderToResponse(view))
}

func (s *Server) getClaimableOrders(ctx echo.Context) error {
	vehicleClass, err := kernel.VehicleClassFromString(ctx.QueryParam("vehicle_class"))
	if err != nil {
		return fail(ctx, err)
	}

	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	query, err := queries.NewGetClaimableOrdersQuery(vehicleClass, limit)
	if err != nil {
		return fail(ctx, err)
	}

	views, err := s.h.ClaimableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]ClaimableOrderResponse, len(views))
	for i, view := range views {
		response[i] = ClaimableOrderResponse{
			ID:            view.ID.String(),
			Number:        view.Number,
			PickupAddress: view.PickupAddress,
			DropAddress:   view.DropAddress,
			DistanceKm:    view.DistanceKm,
			Payout:        view.Payout,
			PublishedAt:   view.PublishedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) getOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	entries, err := s.h.OrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		item := HistoryEntryResponse{
			Status:     entry.Status,
			Actor:      entry.Actor,
			Note:       entry.Note,
			OccurredAt: entry.OccurredAt,
		}
		if entry.ActorID != nil {
			id := entry.ActorID.String()
			item.ActorID = &id
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) publishOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewPublishOrderCommand(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.PublishOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) claimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	courierID, err := bindCourierID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return fail(ctx, err)
	}

	claimed, err := s.h.ClaimOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(claimed))
}

func (s *Server) claimNextOrder(ctx echo.Context) error {
	courierID, err := bindCourierID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewClaimNextOrderCommand(courierID)
	if err != nil {
		return fail(ctx, err)
	}

	claimed, err := s.h.ClaimNextOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(claimed))
}

func (s *Server) pickupOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	courierID, err := bindCourierID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewPickupOrderCommand(orderID, courierID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.PickupOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) deliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	courierID, err := bindCourierID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, courierID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) cancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorType, err := actorTypeFromString(req.Actor)
	if err != nil {
		return fail(ctx, err)
	}

	var actorID *kernel.UUID
	if req.ActorID != "" {
		id, idErr := kernel.UUIDFromString(req.ActorID)
		if idErr != nil {
			return badRequest(ctx, "Invalid actor id")
		}
		actorID = &id
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorType, actorID, req.Note)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) createCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleClass, err := kernel.VehicleClassFromString(req.VehicleClass)
	if err != nil {
		return fail(ctx, err)
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, req.Phone, vehicleClass)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": courierID.String()})
}

func (s *Server) setCourierBlocked(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var req SetBlockedRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetCourierBlockedCommand(courierID, req.Blocked)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.SetBlocked.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) getCourierBalance(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	query, err := queries.NewGetCourierBalanceQuery(courierID)
	if err != nil {
		return fail(ctx, err)
	}

	view, err := s.h.CourierBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierBalanceResponse{
		CourierID:       view.CourierID.String(),
		Balance:         view.Balance,
		TotalDeliveries: view.TotalDeliveries,
		TotalEarned:     view.TotalEarned,
		PendingPayouts:  view.PendingPayouts,
	})
}

func (s *Server) getCourierLedger(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	query, err := queries.NewGetCourierLedgerQuery(courierID, limit)
	if err != nil {
		return fail(ctx, err)
	}

	entries, err := s.h.CourierLedger.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		item := LedgerEntryResponse{
			ID:         entry.ID.String(),
			Kind:       entry.Kind,
			Amount:     entry.Amount,
			Reference:  entry.Reference,
			OccurredAt: entry.OccurredAt,
		}
		if entry.OrderID != nil {
			id := entry.OrderID.String()
			item.OrderID = &id
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) adjustBalance(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var req AdjustBalanceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdjustBalanceCommand(courierID, req.Amount, req.Note)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.AdjustBalance.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) reconcileBalance(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewReconcileCourierBalanceCommand(courierID)
	if err != nil {
		return fail(ctx, err)
	}

	report, err := s.h.Reconcile.Handle(ctx.Request().Context(), cmd)
	response := ReconciliationResponse{
		CourierID:     report.CourierID,
		CachedBalance: report.CachedBalance,
		LedgerSum:     report.LedgerSum,
		Consistent:    report.Consistent(),
	}

	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, response)
	case errors.Is(err, commands.ErrBalanceMismatch):
		return ctx.JSON(http.StatusConflict, response)
	default:
		return fail(ctx, err)
	}
}

func (s *Server) requestPayout(ctx echo.Context) error {
	var req RequestPayoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewRequestPayoutCommand(kernel.NewUUID(), courierID, req.Amount)
	if err != nil {
		return fail(ctx, err)
	}

	request, err := s.h.RequestPayout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, payoutToResponse(request))
}

func (s *Server) approvePayout(ctx echo.Context) error {
	return s.resolvePayout(ctx, true)
}

func (s *Server) rejectPayout(ctx echo.Context) error {
	return s.resolvePayout(ctx, false)
}

func (s *Server) resolvePayout(ctx echo.Context, approve bool) error {
	payoutID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid payout id")
	}

	cmd, err := commands.NewResolvePayoutCommand(payoutID, approve)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.ResolvePayout.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) completePayout(ctx echo.Context) error {
	payoutID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid payout id")
	}

	cmd, err := commands.NewCompletePayoutCommand(payoutID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.h.CompletePayout.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func payoutToResponse(request *ledger.PayoutRequest) PayoutResponse {
	return PayoutResponse{
		ID:          request.ID().String(),
		CourierID:   request.CourierID().String(),
		Amount:      request.Amount(),
		Status:      request.Status().String(),
		RequestedAt: request.RequestedAt(),
		ResolvedAt:  request.ResolvedAt(),
	}
}

func bindCourierID(ctx echo.Context) (kernel.UUID, error) {
	var req CourierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(req.CourierID)
}

func actorTypeFromString(s string) (order.ActorType, error) {
	switch s {
	case "operator":
		return order.ActorOperator, nil
	case "courier":
		return order.ActorCourier, nil
	case "system":
		return order.ActorSystem, nil
	default:
		return 0, errs.NewValueIsInvalidError("actor")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail translates a use case error to its HTTP status. Lost races and
// illegal transitions are conflicts, not server faults.
func fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrNoClaimableOrders):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrOrderAlreadyTaken),
		errors.Is(err, ports.ErrStaleState),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, ledger.ErrInvalidPayoutTransition),
		errors.Is(err, courier.ErrInsufficientBalance):
		return http.StatusConflict
	case errors.Is(err, courier.ErrCourierBlocked),
		errors.Is(err, commands.ErrNotOrderAssignee):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
