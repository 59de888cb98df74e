package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/waypointx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	timeout        time.Duration
}

// New creates the routing controller. A positive timeout bounds each request;
// a route search that hits it answers with the best route found so far.
func New(routingService RoutingService, log *zap.Logger, timeout time.Duration) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
		timeout:        timeout,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/optimalRoute", api.optimalRoute)
	group.POST("/planRoute", api.planRoute)
}

func (api *routingAPI) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if api.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), api.timeout)
}

// optimalRoute finds the cheapest visiting order for a cost matrix.
//
//	@Summary		cheapest open path over a directed cost matrix
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Router			/optimalRoute [post]
func (api *routingAPI) optimalRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request optimalRouteRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	ctx, cancel := api.requestContext(r)
	defer cancel()

	res, err := api.routingService.OptimalRoute(ctx, request.toCostMatrix())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewOptimalRouteResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// planRoute geocodes the waypoints and returns them in the fastest visiting
// order together with the route geometry.
//
//	@Summary		plan a trip over addresses or coordinates
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Router			/planRoute [post]
func (api *routingAPI) planRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request planRouteRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := request.checkCoordinatePairs(); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	ctx, cancel := api.requestContext(r)
	defer cancel()

	planned, err := api.routingService.PlanRoute(ctx, request.toWaypoints())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPlanRouteResponse(planned)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
