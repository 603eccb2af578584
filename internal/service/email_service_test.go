package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartmail/internal/cache"
	"smartmail/internal/mailbox"
	"smartmail/internal/model"
)

// recordingStore is a cache.Store that tracks deleted keys.
type recordingStore struct {
	entries map[string]string
	deleted []string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{entries: make(map[string]string)}
}

func (s *recordingStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *recordingStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.entries[key] = value
	return nil
}

func (s *recordingStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.entries, k)
	}
	s.deleted = append(s.deleted, keys...)
	return nil
}

func newEmailService(store *fakeStore, cacheStore cache.Store, fetcher *fakeFetcher) *EmailService {
	log := zap.NewNop()
	c := cache.New(cacheStore, time.Minute, log)
	if fetcher == nil {
		fetcher = &fakeFetcher{}
	}
	ingest := NewIngestService(store, fetcher, nil, testAccount, log)
	return NewEmailService(store, ingest, c, log)
}

func validSave() *SaveRequest {
	return &SaveRequest{
		To:      "bob@example.com",
		From:    "me@example.com",
		Subject: "hi",
		Body:    "hello",
		Date:    testDateTime(),
		Name:    "Me",
		Type:    model.TypeSent,
	}
}

func TestSaveRejectsMissingFields(t *testing.T) {
	svc := newEmailService(newFakeStore(), newRecordingStore(), nil)

	for name, mutate := range map[string]func(*SaveRequest){
		"name":    func(r *SaveRequest) { r.Name = "" },
		"date":    func(r *SaveRequest) { r.Date = time.Time{} },
		"from":    func(r *SaveRequest) { r.From = "" },
		"to":      func(r *SaveRequest) { r.To = "" },
		"type":    func(r *SaveRequest) { r.Type = "" },
		"subject": func(r *SaveRequest) { r.Subject = "" },
	} {
		req := validSave()
		mutate(req)

		err := svc.Save(context.Background(), req)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "missing %s must be a validation error", name)
	}
}

func TestSaveSentInvalidatesSentAndAllMail(t *testing.T) {
	cacheStore := newRecordingStore()
	svc := newEmailService(newFakeStore(), cacheStore, nil)

	require.NoError(t, svc.Save(context.Background(), validSave()))

	assert.ElementsMatch(t, []string{cache.KeySent, cache.KeyAllMail}, cacheStore.deleted)
}

func TestSaveDraftInvalidatesDrafts(t *testing.T) {
	cacheStore := newRecordingStore()
	svc := newEmailService(newFakeStore(), cacheStore, nil)

	req := validSave()
	req.Type = model.TypeDraft
	require.NoError(t, svc.Save(context.Background(), req))

	assert.Equal(t, []string{cache.KeyDrafts}, cacheStore.deleted)
}

func TestToggleStarredInvalidatesStarredOnly(t *testing.T) {
	store := newFakeStore()
	cacheStore := newRecordingStore()
	svc := newEmailService(store, cacheStore, nil)

	id, _ := store.Insert(context.Background(), &model.Email{Subject: "s", Type: model.TypeInbox})

	require.NoError(t, svc.ToggleStarred(context.Background(), id, true))

	got, ok := store.byID(id)
	require.True(t, ok)
	assert.True(t, got.Starred)
	assert.Equal(t, []string{cache.KeyStarred}, cacheStore.deleted)
}

func TestMoveToBinEnforcesInvariant(t *testing.T) {
	store := newFakeStore()
	cacheStore := newRecordingStore()
	svc := newEmailService(store, cacheStore, nil)

	ctx := context.Background()
	id1, _ := store.Insert(ctx, &model.Email{Subject: "a", Starred: true, Type: model.TypeInbox})
	id2, _ := store.Insert(ctx, &model.Email{Subject: "b", Type: model.TypeSent})

	require.NoError(t, svc.MoveToBin(ctx, []int64{id1, id2}))

	for _, id := range []int64{id1, id2} {
		got, ok := store.byID(id)
		require.True(t, ok)
		assert.True(t, got.Bin)
		assert.False(t, got.Starred)
		assert.Equal(t, model.TypeNone, got.Type)
	}

	// Only the bin view key is invalidated.
	assert.Equal(t, []string{cache.KeyBin}, cacheStore.deleted)
}

func TestDeleteInvalidatesEveryView(t *testing.T) {
	store := newFakeStore()
	cacheStore := newRecordingStore()
	svc := newEmailService(store, cacheStore, nil)

	ctx := context.Background()
	id, _ := store.Insert(ctx, &model.Email{Subject: "a", Type: model.TypeInbox})

	require.NoError(t, svc.Delete(ctx, []int64{id}))

	_, ok := store.byID(id)
	assert.False(t, ok)
	assert.ElementsMatch(t,
		[]string{cache.KeyInbox, cache.KeyStarred, cache.KeySent, cache.KeyDrafts, cache.KeyBin, cache.KeyAllMail},
		cacheStore.deleted,
	)
}

func TestGetEmailsInboxCombinesStoredAndFresh(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	_, _ = store.Insert(ctx, &model.Email{
		From:    "old@example.com",
		Subject: "stored",
		Date:    testDateTime().Add(-time.Hour),
		Type:    model.TypeInbox,
	})

	fetcher := &fakeFetcher{messages: []mailbox.RawMessage{
		rawMessage(1, "new@example.com", "fresh", testDate, "hello"),
	}}
	svc := newEmailService(store, newRecordingStore(), fetcher)

	emails, err := svc.GetEmails(ctx, "inbox")
	require.NoError(t, err)

	require.Len(t, emails, 2)
	assert.Equal(t, "stored", emails[0].Subject)
	assert.Equal(t, "fresh", emails[1].Subject)
}

func TestGetEmailsNonInboxDoesNotTriggerIngestion(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{messages: []mailbox.RawMessage{
		rawMessage(1, "new@example.com", "fresh", testDate, "hello"),
	}}
	svc := newEmailService(store, newRecordingStore(), fetcher)

	_, err := svc.GetEmails(context.Background(), "sent")
	require.NoError(t, err)

	assert.Zero(t, fetcher.calls)
}
