package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-imap/v2"

	"smartmail/internal/mailbox"
	"smartmail/internal/model"
)

// fakeStore is an in-memory EmailStore mirroring the repository's
// semantics, including the conditional ingest insert.
type fakeStore struct {
	mu     sync.Mutex
	emails []model.Email
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) FindByView(_ context.Context, view string) ([]model.Email, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Email
	for _, e := range s.emails {
		switch view {
		case "starred":
			if e.Starred && !e.Bin {
				out = append(out, e)
			}
		case "bin":
			if e.Bin {
				out = append(out, e)
			}
		case "allmail":
			out = append(out, e)
		case "inbox":
			if e.Type == model.TypeInbox && !e.Bin {
				out = append(out, e)
			}
		default:
			if e.Type == view {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (s *fakeStore) FindByIDs(_ context.Context, ids []int64) ([]model.Email, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Email
	for _, e := range s.emails {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (s *fakeStore) Insert(_ context.Context, e *model.Email) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e.ID = s.nextID
	s.emails = append(s.emails, *e)
	return e.ID, nil
}

func (s *fakeStore) InsertIngested(_ context.Context, e *model.Email) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.emails {
		if existing.Type == model.TypeInbox &&
			existing.From == e.From &&
			existing.Subject == e.Subject &&
			existing.Date.Equal(e.Date) {
			return 0, false, nil
		}
	}

	s.nextID++
	e.ID = s.nextID
	s.emails = append(s.emails, *e)
	return e.ID, true, nil
}

func (s *fakeStore) SetStarred(_ context.Context, id int64, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.emails {
		if s.emails[i].ID == id {
			s.emails[i].Starred = value
		}
	}
	return nil
}

func (s *fakeStore) MoveToBin(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.emails {
		for _, id := range ids {
			if s.emails[i].ID == id {
				s.emails[i].Bin = true
				s.emails[i].Starred = false
				s.emails[i].Type = model.TypeNone
			}
		}
	}
	return nil
}

func (s *fakeStore) DeleteByIDs(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []model.Email
	for _, e := range s.emails {
		remove := false
		for _, id := range ids {
			if e.ID == id {
				remove = true
			}
		}
		if !remove {
			kept = append(kept, e)
		}
	}
	s.emails = kept
	return nil
}

func (s *fakeStore) byID(id int64) (model.Email, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.emails {
		if e.ID == id {
			return e, true
		}
	}
	return model.Email{}, false
}

// fakeFetcher serves a fixed batch of raw messages, or fails.
type fakeFetcher struct {
	messages []mailbox.RawMessage
	err      error
	calls    int
}

func (f *fakeFetcher) FetchUnseen(context.Context) ([]mailbox.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

// fakePublisher records published events, or fails.
type fakePublisher struct {
	events []string
	err    error
}

func (p *fakePublisher) Publish(routingKey string, _ any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, routingKey)
	return nil
}

// rawMessage builds a minimal RFC 5322 message. An empty date omits the
// Date header.
func rawMessage(uid uint32, from, subject, date, body string) mailbox.RawMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	if date != "" {
		fmt.Fprintf(&b, "Date: %s\r\n", date)
	}
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return mailbox.RawMessage{
		UID: imap.UID(uid),
		Raw: []byte(b.String()),
	}
}

const testDate = "Mon, 02 Jan 2006 15:04:05 +0000"

func testDateTime() time.Time {
	return time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
}
