package core

// Logger is the application logger.
// args may hold errors and map[string]interface{} extras; they are attached to the log entry.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Metrics receives domain events worth counting.
type Metrics interface {
	CalculationVerified(component string, accepted bool)
	QuizCompleted(experimentID string, score, total int)
	StationCompleted(station string)
	ExplanationServed(topic string, failed bool)
	CertificateIssued(experimentID string)
}

type NopMetrics struct{}

var _ Metrics = NopMetrics{}

func (NopMetrics) CalculationVerified(string, bool) {}
func (NopMetrics) QuizCompleted(string, int, int)   {}
func (NopMetrics) StationCompleted(string)          {}
func (NopMetrics) ExplanationServed(string, bool)   {}
func (NopMetrics) CertificateIssued(string)         {}
