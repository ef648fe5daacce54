package handle

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/signer/server/handle/api"
)

// PubKey returns the hex public key the server signs with.
func (h *Handler) PubKey(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, api.RespOK(&api.PubKeyResp{
		PubKey: hex.EncodeToString(h.Signer().PubKey()),
	}))
}
