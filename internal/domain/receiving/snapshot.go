package receiving

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sangkips/investify-receiving/internal/domain/enum"
)

const snapshotVersion = 1

// Snapshot is the persisted form of a draft. Settlement choices are not part
// of it.
type Snapshot struct {
	Version      int               `json:"version"`
	LocationID   uuid.UUID         `json:"location_id"`
	LineItems    []LineItem        `json:"line_items"`
	SupplierID   *uuid.UUID        `json:"supplier_id,omitempty"`
	Discount     int64             `json:"discount"`
	DiscountMode enum.DiscountMode `json:"discount_mode"`
	SavedAt      time.Time         `json:"saved_at"`
}

// SnapshotKey is the durable store key of a location's draft.
func SnapshotKey(locationID uuid.UUID) string {
	return fmt.Sprintf("receiving:draft:v%d:%s", snapshotVersion, locationID)
}

// Snapshot captures the draft as of now and stamps SavedAt.
func (d *Draft) Snapshot(now time.Time) Snapshot {
	d.SavedAt = now.UTC()
	var supplier *uuid.UUID
	if d.SupplierID != nil {
		id := *d.SupplierID
		supplier = &id
	}
	return Snapshot{
		Version:      snapshotVersion,
		LocationID:   d.LocationID,
		LineItems:    d.ledger.Lines(),
		SupplierID:   supplier,
		Discount:     d.Discount,
		DiscountMode: d.DiscountMode,
		SavedAt:      d.SavedAt,
	}
}

// Restore replaces the draft's lines, supplier and discount with the
// snapshot's. Settlement choices are left unset.
func (d *Draft) Restore(s Snapshot) {
	d.Reset()
	d.ledger.restore(s.LineItems)
	d.SetSupplier(s.SupplierID)
	d.Discount = max(s.Discount, 0)
	d.DiscountMode = s.DiscountMode
	if !d.DiscountMode.IsValid() {
		d.DiscountMode = enum.DiscountModeAmount
	}
	if d.DiscountMode == enum.DiscountModePercent {
		d.Discount = min(d.Discount, 100)
	}
	d.SavedAt = s.SavedAt
}

// Age is how long ago the snapshot was saved.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.SavedAt)
}

// IsStale reports whether the snapshot is older than staleAfter. A snapshot
// exactly staleAfter old is still fresh.
func (s Snapshot) IsStale(now time.Time, staleAfter time.Duration) bool {
	return s.Age(now) > staleAfter
}

// IsEmpty reports whether restoring the snapshot would yield an empty draft.
func (s Snapshot) IsEmpty() bool {
	return len(s.LineItems) == 0 && (s.SupplierID == nil || *s.SupplierID == uuid.Nil)
}

// Encode serializes the snapshot for the durable store.
func (s Snapshot) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", PersistenceFailure(err, "encode")
	}
	return string(b), nil
}

// DecodeSnapshot parses a stored snapshot.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, PersistenceFailure(err, "decode")
	}
	if s.Version > snapshotVersion {
		return Snapshot{}, PersistenceFailure(
			errors.Newf("unsupported snapshot version %d", s.Version), "decode")
	}
	if s.SavedAt.IsZero() {
		return Snapshot{}, PersistenceFailure(errors.New("snapshot has no saved_at"), "decode")
	}
	return s, nil
}
