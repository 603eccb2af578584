package mailbox

import (
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"smartmail/config"
)

// RawMessage is one fetched message in its raw transfer encoding.
type RawMessage struct {
	UID imap.UID
	Raw []byte
}

// Session holds one live IMAP connection. Lifecycle:
// Dial -> SearchUnseen -> FetchAll -> Close. Close is safe to call on
// every exit path and tears the connection down exactly once.
type Session struct {
	client    *imapclient.Client
	folder    string
	closeOnce sync.Once
}

// Dial connects to the mailbox server over TLS, logs in with the fixed
// account, and selects the configured folder.
func Dial(cfg config.IMAPConfig) (*Session, error) {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))

	client, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{ServerName: cfg.Host},
	})
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}

	if err := client.Login(cfg.User, cfg.Password).Wait(); err != nil {
		client.Close()
		return nil, &ConnectionError{Op: "login", Err: err}
	}

	s := &Session{client: client, folder: cfg.Folder}

	if _, err := client.Select(cfg.Folder, nil).Wait(); err != nil {
		s.Close()
		return nil, &ProtocolError{Op: "select " + cfg.Folder, Err: err}
	}

	return s, nil
}

// SearchUnseen returns the UIDs of messages not yet marked read.
func (s *Session) SearchUnseen() ([]imap.UID, error) {
	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}

	data, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, &ProtocolError{Op: "search unseen", Err: err}
	}

	return data.AllUIDs(), nil
}

// FetchAll retrieves the raw bytes of every message in uids. Bodies are
// fetched with PEEK so the server never flips the seen flag; dedup happens
// against the store instead.
func (s *Session) FetchAll(uids []imap.UID) ([]RawMessage, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOptions := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	buffers, err := s.client.Fetch(imap.UIDSetNum(uids...), fetchOptions).Collect()
	if err != nil {
		return nil, &ProtocolError{Op: "fetch", Err: err}
	}

	var messages []RawMessage
	for _, buf := range buffers {
		raw := buf.FindBodySection(bodySection)
		if len(raw) == 0 {
			continue
		}
		messages = append(messages, RawMessage{UID: buf.UID, Raw: raw})
	}

	return messages, nil
}

// Close logs out and drops the connection. Subsequent calls are no-ops.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		_ = s.client.Logout().Wait()
		_ = s.client.Close()
	})
}
