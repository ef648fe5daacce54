package handle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/inscription-c/pins/internal/metrics"
	"github.com/inscription-c/pins/signer/server/handle/api"
)

// Sign signs the posted PSBT with the server key.
func (h *Handler) Sign(ctx *gin.Context) {
	req := &api.SignReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, err.Error()))
		return
	}
	res, err := h.doSign(ctx, req)
	if err != nil {
		log.Srv.Errorf("sign: %v", err)
		ctx.JSON(http.StatusOK, api.RespErr(api.CodeSignFailed, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, api.RespOK(res))
}

func (h *Handler) doSign(ctx *gin.Context, req *api.SignReq) (res *inscription.SignResult, err error) {
	started := time.Now()
	inputs := 0
	defer func() {
		metrics.ObserveSign(started, inputs, err)
	}()

	p, err := inscription.DecodePsbt(req.PsbtHex)
	if err != nil {
		return nil, err
	}
	inputs = len(p.Inputs)
	return h.Signer().SignPsbt(ctx.Request.Context(), req.PsbtHex)
}
