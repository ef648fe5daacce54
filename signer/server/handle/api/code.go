package api

type Code = int

// common
const (
	CodeSuccess       Code = 0
	CodeError500      Code = 500
	CodeParamsInvalid Code = 10000
	CodeUnauthorized  Code = 10001
)

// signing
const (
	CodeSignFailed Code = 20000
)
