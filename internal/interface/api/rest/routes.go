package rest

const (
	// api
	RouteApi = "/api"

	// files
	RouteUpload = RouteApi + "/upload"
	RouteFiles  = RouteApi + "/files"
	RouteFile   = RouteFiles + "/:id"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
