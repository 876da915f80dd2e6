package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceRecord is one catalog entry read from the source of truth.
// Prices are in major currency units (e.g. Baht).
type SourceRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	// DownstreamIDHint is the POS item id last written back by a sync run.
	DownstreamIDHint string `json:"downstreamIdHint,omitempty"`
}

// DownstreamRecord is one item in the POS catalog.
type DownstreamRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId,omitempty"`
	// Price is the first variant's default price.
	Price decimal.Decimal `json:"price"`
	// VariantID identifies the first variant; updates must reuse it.
	VariantID   string `json:"variantId,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// DownstreamCategory is a POS category.
type DownstreamCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Variant is a single priced variant of a downstream item.
type Variant struct {
	VariantID string          `json:"variantId,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// DownstreamPayload is the body sent to create or update a POS item.
// ID is empty on create.
type DownstreamPayload struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Variants    []Variant `json:"variants"`
}

// SyncStatus is the per-record state reported by Status.
type SyncStatus string

const (
	// StatusSynced means matched with no field differences.
	StatusSynced SyncStatus = "SYNCED"
	// StatusModified means matched with at least one field difference.
	StatusModified SyncStatus = "MODIFIED"
	// StatusLinkedOnly means matched by name while the source lacks the hint.
	StatusLinkedOnly SyncStatus = "LINKED_ONLY"
	// StatusNotInDownstream means the source record has no POS counterpart.
	StatusNotInDownstream SyncStatus = "NOT_IN_LOYVERSE"
	// StatusNotInSource means a POS record in an owned category has no source record.
	StatusNotInSource SyncStatus = "NOT_IN_NOTION"
)

// SyncState is the reported state of one source record or one orphan.
type SyncState struct {
	SourceID         string     `json:"sourceId,omitempty"`
	DownstreamID     string     `json:"downstreamId,omitempty"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	ImageURL         string     `json:"imageUrl,omitempty"`
	DownstreamIDHint string     `json:"downstreamIdHint,omitempty"`
	Status           SyncStatus `json:"status"`
	Diffs            []string   `json:"diffs"`
}

// SyncInput selects what a sync run acts on. The zero value syncs everything
// and deletes nothing.
type SyncInput struct {
	// ItemIDs restricts which source records are acted on. Matching and orphan
	// scoping always run over the full set.
	ItemIDs []string `json:"itemIds,omitempty" validate:"omitempty,dive,required"`
	// DeleteOrphans deletes owned, unmatched POS records after the main pass.
	DeleteOrphans bool `json:"deleteOrphans,omitempty"`
	// OrphanIDs restricts deletion to these POS ids, typically the orphans a
	// user confirmed from a status preview. A listed id that is no longer an
	// orphan when the run starts is left alone.
	OrphanIDs []string `json:"orphanIds,omitempty" validate:"omitempty,dive,required"`
	// ForceImageSync re-pushes images even when no field differs.
	ForceImageSync bool `json:"forceImageSync,omitempty"`
}

// Action is what a sync run did with one record.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionLink   Action = "LINK"
	ActionSkip   Action = "SKIP"
	ActionDelete Action = "DELETE"
)

// Outcome is whether an action succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeError   Outcome = "ERROR"
)

// ItemResult is the per-item outcome of a sync run.
type ItemResult struct {
	SourceID     string  `json:"sourceId,omitempty"`
	DownstreamID string  `json:"downstreamId,omitempty"`
	Name         string  `json:"name"`
	Action       Action  `json:"action"`
	Outcome      Outcome `json:"outcome"`
	Message      string  `json:"message,omitempty"`
}

// SyncReport is the result of one mutating run.
type SyncReport struct {
	RunID      string    `json:"runId"`
	Family     string    `json:"family"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Created int `json:"created"`
	Updated int `json:"updated"`
	Linked  int `json:"linked"`
	Deleted int `json:"deleted"`

	// Errors holds one human-readable line per failure.
	Errors []string `json:"errors"`
	// Failures holds the same failures with their kind.
	Failures    []Failure    `json:"failures"`
	ItemResults []ItemResult `json:"itemResults,omitempty"`
}
