package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

// Constants representing success or failure states as strings for the metrics labels.
const (
	Completed = "true"  // Represents successful operation
	Failed    = "false" // Represents failed operation
)

// Metrics definitions for the filesystem queries

// MountPointTotal counts the total number of mount-point resolutions.
// It uses a label "functionStatus" to differentiate between successful and failed calls.
var (
	MountPointTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsprobe_mount_point_total",
			Help: "Total number of mount-point resolutions"},
		[]string{"functionStatus"},
	)

	// MountPointDuration tracks the duration of mount-point resolutions.
	// It also uses a "functionStatus" label to capture whether the call succeeded or failed.
	MountPointDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsprobe_mount_point_duration_seconds",
			Help:    "Duration of mount-point resolutions",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"functionStatus"},
	)

	// FilesystemNameTotal counts the total number of mount-table lookups.
	FilesystemNameTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsprobe_filesystem_name_total",
			Help: "Total number of filesystem-name lookups",
		},
		[]string{"functionStatus"},
	)

	// FilesystemNameDuration tracks the duration of mount-table lookups.
	FilesystemNameDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsprobe_filesystem_name_duration_seconds",
			Help:    "Duration of filesystem-name lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"functionStatus"},
	)

	// StatVFSTotal counts the total number of filesystem-statistics queries.
	StatVFSTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsprobe_statvfs_total",
			Help: "Total number of filesystem-statistics queries",
		},
		[]string{"functionStatus"},
	)

	// StatVFSDuration tracks the duration of filesystem-statistics queries.
	StatVFSDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsprobe_statvfs_duration_seconds",
			Help:    "Duration of filesystem-statistics queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"functionStatus"},
	)

	// FreeSpaceTotal counts the total number of free-space checks.
	FreeSpaceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsprobe_free_space_total",
			Help: "Total number of free-space checks",
		},
		[]string{"functionStatus"},
	)

	// FreeSpaceDuration tracks the duration of free-space checks.
	FreeSpaceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsprobe_free_space_duration_seconds",
			Help:    "Duration of free-space checks",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"functionStatus"},
	)

	// PathContainsTotal counts the total number of path-containment checks.
	PathContainsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsprobe_path_contains_total",
			Help: "Total number of path-containment checks",
		},
		[]string{"functionStatus"},
	)

	// PathContainsDuration tracks the duration of path-containment checks.
	PathContainsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsprobe_path_contains_duration_seconds",
			Help:    "Duration of path-containment checks",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"functionStatus"},
	)

	// TempFileTotal counts the total number of temporary-file creations.
	TempFileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsprobe_temp_file_total",
			Help: "Total number of temporary-file creations",
		},
		[]string{"functionStatus"},
	)

	// TempFileDuration tracks the duration of temporary-file creations.
	TempFileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsprobe_temp_file_duration_seconds",
			Help:    "Duration of temporary-file creations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"functionStatus"},
	)
)

func init() {
	prometheus.MustRegister(MountPointTotal)
	prometheus.MustRegister(MountPointDuration)
	prometheus.MustRegister(FilesystemNameTotal)
	prometheus.MustRegister(FilesystemNameDuration)
	prometheus.MustRegister(StatVFSTotal)
	prometheus.MustRegister(StatVFSDuration)
	prometheus.MustRegister(FreeSpaceTotal)
	prometheus.MustRegister(FreeSpaceDuration)
	prometheus.MustRegister(PathContainsTotal)
	prometheus.MustRegister(PathContainsDuration)
	prometheus.MustRegister(TempFileTotal)
	prometheus.MustRegister(TempFileDuration)
}

// RecordMetrics increments the counter and observes the elapsed time for
// one completed operation.
func RecordMetrics(total *prometheus.CounterVec, duration *prometheus.HistogramVec, status string, start time.Time) {
	total.WithLabelValues(status).Inc()
	duration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// StartMetricsServer serves the prometheus registry on addr until the
// context is canceled. Intended for host applications that want the
// query metrics scraped.
func StartMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			klog.Errorf("Failed to stop metrics server: %v", err)
		}
	}()

	klog.Infof("Starting metrics server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		klog.Errorf("Metrics server terminated: %v", err)
	}
}
