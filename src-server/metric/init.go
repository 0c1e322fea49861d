package metric

import (
	"famcal/src-server/model"
	"famcal/src-server/utils"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "famcal_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register famcal_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("famcal_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("famcal_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("famcal_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func eventStatusCounts(as *utils.AppState, tickerInterval *time.Duration) {
	eventsByStatus := promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "famcal_events_by_status",
		Help: "The number of calendar events per approval status",
	}, []string{"status"})
	good := true
	if err := prometheus.Register(eventsByStatus); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register famcal_events_by_status metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("famcal_events_by_status metric registered")
		for _, status := range []model.EventStatus{
			model.StatusPending,
			model.StatusApproved,
			model.StatusRejected,
		} {
			eventsByStatus.WithLabelValues(string(status)).Set(0)
		}
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(eventsByStatus) {
				case true:
					slog.Debug("famcal_events_by_status metric unregistered")
				case false:
					slog.Warn("famcal_events_by_status metric not registered")
				}
				return
			case <-ticker.C:
				counts, err := statusCounts(as)
				if err != nil {
					slog.Error("can't count events by status", "error", err)
					continue
				}
				for status, count := range counts {
					eventsByStatus.WithLabelValues(string(status)).Set(float64(count))
				}
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()

	databaseEmptyRead(as, &tickerInterval)
	eventStatusCounts(as, &tickerInterval)
}
