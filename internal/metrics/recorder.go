// Package metrics records task store activity.
package metrics

// Operation results.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
)

// Recorder receives store events. Implementations must be cheap; they are
// called synchronously on every operation.
type Recorder interface {
	ObserveOperation(op, result string)
	IncPersistFailure(kind string)
	SetTasks(n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperation(string, string) {}
func (NoopRecorder) IncPersistFailure(string)        {}
func (NoopRecorder) SetTasks(int)                    {}
