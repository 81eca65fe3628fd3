package domain

import "time"

// ResponseStatus marks a broker response as success or failure.
type ResponseStatus string

const (
	ResponseSuccess ResponseStatus = "success"
	ResponseFailure ResponseStatus = "failure"
)

// Response is the envelope returned by every broker lifecycle operation.
//
// Invariant: a failure carries no order, a success carries exactly one order
// and no error message. The constructors below are the only ways the broker
// builds one, which keeps the invariant by construction.
type Response struct {
	Status    ResponseStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Data      *Order         `json:"data,omitempty"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// SuccessResponse wraps an order in a success envelope stamped at ts.
func SuccessResponse(ts time.Time, order *Order) Response {
	return Response{
		Status:    ResponseSuccess,
		Timestamp: ts,
		Data:      order,
	}
}

// FailureResponse builds a failure envelope stamped at ts. msg may be empty
// for simulated failures that carry no field-specific detail.
func FailureResponse(ts time.Time, msg string) Response {
	return Response{
		Status:    ResponseFailure,
		Timestamp: ts,
		ErrorMsg:  msg,
	}
}

// OK reports whether the response is a success.
func (r Response) OK() bool {
	return r.Status == ResponseSuccess
}
