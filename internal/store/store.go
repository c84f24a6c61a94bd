// Package store holds per-session dataset state: raw extracted tables,
// derived record collections, the session's country normalizer, and a
// memo of derived metrics. All state is ephemeral; nothing survives the
// process.
package store

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nacora/cargo-analytics/internal/analytics"
	"github.com/nacora/cargo-analytics/internal/country"
	"github.com/nacora/cargo-analytics/internal/ingest"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("store: session not found")

// Store manages analysis sessions keyed by UUID.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	threshold int
}

// New creates a Store whose sessions normalize countries with the given
// fuzzy threshold.
func New(threshold int) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		threshold: threshold,
	}
}

// Create starts a new empty session.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		norm:      country.NewNormalizer(s.threshold),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get looks up a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session and all its state.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Session owns one analysis session. Raw tables are kept so that mapping
// updates can re-derive every record from source without re-reading the
// uploaded files.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu   sync.RWMutex
	norm *country.Normalizer

	policyTable   *ingest.PolicyTable
	shipmentTable *ingest.ShipmentTable
	policies      []ingest.PolicyRecord
	shipments     []ingest.ShipmentRecord

	// dataVersion increments on every upload or mapping change and keys
	// the metrics memo together with the filter identity.
	dataVersion int
	memoKey     string
	memo        *analytics.Metrics
}

// LoadPolicies parses a policy-ledger workbook and replaces the session's
// policy dataset wholesale. Returns the number of derived records.
func (sess *Session) LoadPolicies(r io.Reader) (int, error) {
	table, err := ingest.ExtractPolicyTable(r)
	if err != nil {
		return 0, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.policyTable = table
	sess.policies = ingest.DerivePolicies(table, sess.norm)
	sess.bumpLocked()
	return len(sess.policies), nil
}

// LoadShipments parses a shipment-ledger workbook and replaces the
// session's shipment dataset wholesale. Returns the number of derived
// records.
func (sess *Session) LoadShipments(r io.Reader) (int, error) {
	table, err := ingest.ExtractShipmentTable(r)
	if err != nil {
		return 0, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.shipmentTable = table
	sess.shipments = ingest.DeriveShipments(table, sess.norm)
	sess.bumpLocked()
	return len(sess.shipments), nil
}

// ApplyMappings merges user country mappings and re-derives every record
// from the stored raw tables. Always a full recomputation pass, never an
// in-place patch.
func (sess *Session) ApplyMappings(mappings map[string]string) {
	sess.norm.AddMappings(mappings)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.policyTable != nil {
		sess.policies = ingest.DerivePolicies(sess.policyTable, sess.norm)
	}
	if sess.shipmentTable != nil {
		sess.shipments = ingest.DeriveShipments(sess.shipmentTable, sess.norm)
	}
	sess.bumpLocked()
}

func (sess *Session) bumpLocked() {
	sess.dataVersion++
	sess.memoKey = ""
	sess.memo = nil
}

// Unmatched returns the country strings still pending manual resolution.
func (sess *Session) Unmatched() []string {
	return sess.norm.Unmatched()
}

// Mappings returns the session's user mapping layer.
func (sess *Session) Mappings() map[string]string {
	return sess.norm.Mappings()
}

// Counts returns the sizes of the loaded datasets.
func (sess *Session) Counts() (policies, shipments int) {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return len(sess.policies), len(sess.shipments)
}

// Options returns the distinct filter values across both datasets.
func (sess *Session) Options() analytics.FilterOptions {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return analytics.Options(sess.policies, sess.shipments)
}

// Metrics filters both collections and computes the derived metrics,
// memoizing on (filter identity, data version). Relative presets depend
// on wall clock, so only clock-independent windows are memoized.
func (sess *Session) Metrics(f analytics.Filters, now time.Time) *analytics.Metrics {
	memoizable := f.DateRange == "" || f.DateRange == analytics.RangeAll || f.DateRange == analytics.RangeCustom
	key := f.Key()

	sess.mu.RLock()
	if memoizable && sess.memoKey == key && sess.memo != nil {
		m := sess.memo
		sess.mu.RUnlock()
		return m
	}
	policies, shipments := sess.policies, sess.shipments
	version := sess.dataVersion
	sess.mu.RUnlock()

	fp, fs := analytics.Apply(policies, shipments, f, now)
	m := analytics.Compute(fp, fs)

	if memoizable {
		sess.storeMemo(version, key, m)
	}
	return m
}

// storeMemo caches a computed result, unless the data changed while the
// computation ran. A result derived from a superseded snapshot must not
// be served for later requests.
func (sess *Session) storeMemo(version int, key string, m *analytics.Metrics) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.dataVersion != version {
		return
	}
	sess.memoKey = key
	sess.memo = m
}

// Intelligence computes the customer-segmentation metrics over the same
// filtered datasets.
func (sess *Session) Intelligence(f analytics.Filters, now time.Time) *analytics.IntelligenceMetrics {
	sess.mu.RLock()
	policies, shipments := sess.policies, sess.shipments
	sess.mu.RUnlock()

	fp, fs := analytics.Apply(policies, shipments, f, now)
	return analytics.ComputeIntelligence(analytics.Compute(fp, fs), fp)
}

// FilteredPolicies returns the policy records passing the filter.
func (sess *Session) FilteredPolicies(f analytics.Filters, now time.Time) []ingest.PolicyRecord {
	sess.mu.RLock()
	policies, shipments := sess.policies, sess.shipments
	sess.mu.RUnlock()

	fp, _ := analytics.Apply(policies, shipments, f, now)
	return fp
}
