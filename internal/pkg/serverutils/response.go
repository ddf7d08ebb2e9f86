package serverutils

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	// ErrorCode is the machine-readable error kind, e.g. PROVIDER_NOT_CONFIGURED.
	ErrorCode string `json:"errorCode,omitempty"`
	Data      T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ErrorResponseWithData attaches partial state, e.g. a message stored before the failure.
func ErrorResponseWithData(code int, message string, data any) BaseResponse[any] {
	res := ErrorResponse(code, message)
	res.Data = data
	return res
}
