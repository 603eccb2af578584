package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyForType(t *testing.T) {
	assert.Equal(t, KeyInbox, KeyForType("inbox"))
	assert.Equal(t, KeyStarred, KeyForType("starred"))
	assert.Equal(t, KeySent, KeyForType("sent"))
	assert.Equal(t, KeyBin, KeyForType("bin"))
	assert.Equal(t, KeyAllMail, KeyForType("allmail"))
	assert.Equal(t, KeyOther, KeyForType("other"))

	// The route parameter says "draft", the view key says "drafts".
	assert.Equal(t, KeyDrafts, KeyForType("draft"))
}

// The invalidation table is hand-maintained; this pins the exact mapping
// so a new read view cannot ship without its write-side entries.
func TestInvalidationTable(t *testing.T) {
	assert.ElementsMatch(t, []string{KeySent, KeyAllMail}, KeysFor(WriteSaveSent))
	assert.ElementsMatch(t, []string{KeyDrafts}, KeysFor(WriteSaveOther))
	assert.ElementsMatch(t, []string{KeyStarred}, KeysFor(WriteStarToggle))
	assert.ElementsMatch(t,
		[]string{KeyInbox, KeyStarred, KeySent, KeyDrafts, KeyBin, KeyAllMail},
		KeysFor(WriteBulkDelete),
	)
	assert.ElementsMatch(t, []string{KeyBin}, KeysFor(WriteMoveToBin))
}

func TestEveryWriteOpHasAnEntry(t *testing.T) {
	ops := []WriteOp{WriteSaveSent, WriteSaveOther, WriteStarToggle, WriteBulkDelete, WriteMoveToBin}
	for _, op := range ops {
		assert.NotEmpty(t, KeysFor(op))
	}
}
