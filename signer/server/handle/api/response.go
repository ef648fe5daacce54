package api

type Resp struct {
	ErrNo  Code        `json:"err_no"`
	ErrMsg string      `json:"err_msg"`
	Data   interface{} `json:"data"`
}

func RespOK(data interface{}) Resp {
	return Resp{
		Data: data,
	}
}

func RespErr(errNo Code, errMsg string) Resp {
	return Resp{
		ErrNo:  errNo,
		ErrMsg: errMsg,
	}
}

// SignReq is the body of POST /sign.
type SignReq struct {
	PsbtHex string `json:"psbt_hex" binding:"required,hexadecimal"`
}

// PubKeyResp is the data of GET /pubkey.
type PubKeyResp struct {
	PubKey string `json:"pubkey"`
}
