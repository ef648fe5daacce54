package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/constants"
	"github.com/prometheus/client_golang/prometheus"
)

func fqn(name string) string {
	return prometheus.BuildFQName(constants.AppName, "signer", name)
}

var (
	SignRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fqn("sign_requests_total"),
			Help: "PSBT sign requests by result",
		},
		[]string{"result"},
	)

	SignedInputs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: fqn("signed_inputs_total"),
		Help: "Inputs signed across all requests",
	})

	SignDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    fqn("sign_duration_seconds"),
		Help:    "Duration of PSBT signing",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	HttpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    fqn("http_duration_seconds"),
			Help:    "HTTP request duration",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 5, 15},
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveSign records one finished sign request.
func ObserveSign(started time.Time, inputs int, err error) {
	SignDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		SignRequests.WithLabelValues("error").Inc()
		return
	}
	SignRequests.WithLabelValues("ok").Inc()
	SignedInputs.Add(float64(inputs))
}

// HTTP is a gin middleware timing every request by route.
func HTTP(c *gin.Context) {
	started := time.Now()

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	HttpDuration.WithLabelValues(
		c.Request.Method,
		path,
		strconv.Itoa(c.Writer.Status()),
	).Observe(time.Since(started).Seconds())
}

func init() {
	prometheus.MustRegister(
		SignRequests,
		SignedInputs,
		SignDuration,
		HttpDuration,
	)
}
