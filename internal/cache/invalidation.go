package cache

// Canonical view keys for the GET /emails/:type responses.
const (
	KeyInbox   = "emails:inbox"
	KeyStarred = "emails:starred"
	KeySent    = "emails:sent"
	KeyDrafts  = "emails:drafts"
	KeyBin     = "emails:bin"
	KeyAllMail = "emails:allmail"
	KeyOther   = "emails:other"
)

// ViewKeys lists every cacheable view key.
var ViewKeys = []string{
	KeyInbox, KeyStarred, KeySent, KeyDrafts, KeyBin, KeyAllMail, KeyOther,
}

// KeyForType maps the route's :type parameter to its canonical view key.
// The route says "draft", the view key says "drafts"; everything else
// maps to itself.
func KeyForType(emailType string) string {
	if emailType == "draft" {
		return KeyDrafts
	}
	return "emails:" + emailType
}

// WriteOp identifies a write operation for cache invalidation purposes.
type WriteOp int

const (
	WriteSaveSent WriteOp = iota
	WriteSaveOther
	WriteStarToggle
	WriteBulkDelete
	WriteMoveToBin
)

// invalidations is the hand-maintained table mapping each write operation
// to the view keys whose cached response it can stale. Any new read view
// added to the API needs an entry here for every write that can change its
// result set; a missed entry means silently stale reads.
var invalidations = map[WriteOp][]string{
	WriteSaveSent:   {KeySent, KeyAllMail},
	WriteSaveOther:  {KeyDrafts},
	WriteStarToggle: {KeyStarred},
	WriteBulkDelete: {KeyInbox, KeyStarred, KeySent, KeyDrafts, KeyBin, KeyAllMail},
	WriteMoveToBin:  {KeyBin},
}

// KeysFor returns the view keys invalidated by op.
func KeysFor(op WriteOp) []string {
	return invalidations[op]
}
