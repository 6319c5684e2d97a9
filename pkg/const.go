package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
	HeaderUsername  string = "X-Username"
)

const (
	TraceId       string = "trace_id"
	RequestId     string = "request_id"
	Username      string = "username"
	TransactionId string = "transaction_id"
)

type traceKey struct{}
