package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth     = RouteApi + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"

	// files
	RouteFiles          = RouteApi + "/files"
	RouteFileUpload     = RouteFiles + "/upload"
	RouteFileDownload   = RouteFiles + "/download/:" + ParamStoredFileName
	RouteFile           = RouteFiles + "/:" + ParamStoredFileName
	RouteFilesReconcile = RouteFiles + "/reconcile"

	ParamStoredFileName = "storedFileName"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
