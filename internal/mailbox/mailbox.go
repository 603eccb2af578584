package mailbox

import (
	"context"

	"go.uber.org/zap"

	"smartmail/config"
)

// Mailbox runs complete fetch cycles against the single configured
// account. Each cycle opens its own connection and fully closes it;
// connections are never pooled or reused.
type Mailbox struct {
	cfg    config.IMAPConfig
	logger *zap.Logger
}

func NewMailbox(cfg config.IMAPConfig, logger *zap.Logger) *Mailbox {
	return &Mailbox{
		cfg:    cfg,
		logger: logger,
	}
}

// FetchUnseen performs one connect-search-fetch pass and returns the raw
// unseen messages. The session is closed on every exit path.
func (m *Mailbox) FetchUnseen(_ context.Context) ([]RawMessage, error) {
	session, err := Dial(m.cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	uids, err := session.SearchUnseen()
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		m.logger.Info("No unseen messages in mailbox")
		return nil, nil
	}

	m.logger.Info("Found unseen messages", zap.Int("count", len(uids)))

	return session.FetchAll(uids)
}
