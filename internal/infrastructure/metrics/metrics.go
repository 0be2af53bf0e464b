package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "filevault"

// Values of the "result" label of the general counter.
const (
	AppRequestsTotal     = "app_requests_total"
	UserRegisteredTotal  = "user_registered_total"
	UserLoginTotal       = "user_login_total"
	UserLoginFailedTotal = "user_login_failed_total"
	FileUploadedTotal    = "file_uploaded_total"
	FileDownloadedTotal  = "file_downloaded_total"
	FileDeletedTotal     = "file_deleted_total"
	FileReconciledTotal  = "file_metadata_reconciled_total"
	FileOrphanTotal      = "file_orphan_total"
	FileInconsistent     = "file_inconsistent_total"
	UserCacheHitTotal    = "user_cache_hit_total"
	UserCacheMissTotal   = "user_cache_miss_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(counterOpts(), []string{"result"})
}

// NewUnregisteredCounter is NewCounter without registering in the default
// registry, for tests and secondary instances.
func NewUnregisteredCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(counterOpts(), []string{"result"})
}

func counterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "general_counters",
	}
}
