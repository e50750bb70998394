package notify

import (
	"go.uber.org/zap"

	"tasktracker/internal/core/ports"
)

// LogNotifier surfaces fired reminders through the process log. It stands in
// for whatever delivery channel a deployment wires up; the scheduling
// contract does not care how the pair is surfaced.
type LogNotifier struct {
	logger *zap.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.L()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(title, body string) {
	n.logger.Info("reminder fired", zap.String("title", title), zap.String("task", body))
}
