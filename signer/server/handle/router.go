package handle

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/internal/metrics"
	"github.com/inscription-c/pins/signer/server/handle/middlewares"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) InitRoute() {
	if h.options.enablePProf {
		pprof.Register(h.Engine())
	}
	h.Engine().Use(gin.Recovery(), middlewares.Logger(), metrics.HTTP)
	h.Engine().GET("/metrics", gin.WrapH(promhttp.Handler()))

	signing := h.Engine().Group("/", middlewares.BearerAuth(h.options.authToken))
	signing.GET("/pubkey", h.PubKey)
	signing.POST("/sign", h.Sign)
}
