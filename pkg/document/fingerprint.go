package document

import (
	"Taxflow-Backend/entities"
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the content hash used for duplicate detection. It
// operates on the raw uploaded bytes only, never on the storage handle.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SweepStaleDuplicateRefs clears duplicateOf references that point at
// documents no longer present, mirroring the transaction-side link
// synchronizer. A still-flagged duplicate whose original vanished is reset to
// OK unless the user already resolved it manually. Untouched documents come
// back pointer-identical.
func SweepStaleDuplicateRefs(docs []*entities.Document) ([]*entities.Document, bool) {
	known := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		known[doc.ID.String()] = struct{}{}
	}

	next := make([]*entities.Document, len(docs))
	copy(next, docs)
	changed := false

	for i, doc := range docs {
		if doc.DuplicateOfID == nil {
			continue
		}
		if _, ok := known[*doc.DuplicateOfID]; ok {
			continue
		}
		cleared := *doc
		cleared.DuplicateOfID = nil
		if cleared.Status == entities.DocumentStatusPotentialDuplicate && !cleared.DuplicateIgnored {
			cleared.Status = entities.DocumentStatusOK
		}
		next[i] = &cleared
		changed = true
	}

	return next, changed
}
