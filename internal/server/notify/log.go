package notify

import (
	"context"

	"github.com/dmitrijs2005/duoledger/internal/logging"
)

// LogNotifier writes messages to the application log. Meant for local
// development, where the verification link is copied from the output.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notify")}
}

func (n *LogNotifier) Send(ctx context.Context, m Message) error {
	n.logger.Info(ctx, "outgoing message", "to", m.To, "subject", m.Subject, "body", m.Body)
	return nil
}
