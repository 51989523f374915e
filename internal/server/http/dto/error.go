package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody names the error kind and the failed precondition.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
