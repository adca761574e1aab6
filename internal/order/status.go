package order

import (
	"context"
	"errors"
	"log"
	"strings"
)

// DefaultStatuses is used when no status list is configured.
const DefaultStatuses = "Pending,Approved"

// StatusSet is the configured enumeration of order statuses.
type StatusSet struct {
	values []Status
	index  map[Status]struct{}
}

func NewStatusSet(values ...Status) StatusSet {
	s := StatusSet{index: make(map[Status]struct{}, len(values))}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := s.index[v]; dup {
			continue
		}
		s.index[v] = struct{}{}
		s.values = append(s.values, v)
	}
	return s
}

// ParseStatusSet reads a comma separated list such as "Pending,Approved".
func ParseStatusSet(csv string) StatusSet {
	var vals []Status
	for _, part := range strings.Split(csv, ",") {
		vals = append(vals, Status(strings.TrimSpace(part)))
	}
	return NewStatusSet(vals...)
}

func (s StatusSet) Contains(st Status) bool {
	_, ok := s.index[st]
	return ok
}

func (s StatusSet) Values() []Status {
	return append([]Status(nil), s.values...)
}

// StatusManager applies status changes to single orders. Any configured
// status may replace any other; there is no transition graph.
type StatusManager struct {
	repo    Repository
	allowed StatusSet
}

func NewStatusManager(repo Repository, allowed StatusSet) *StatusManager {
	return &StatusManager{repo: repo, allowed: allowed}
}

func (m *StatusManager) Allowed() StatusSet { return m.allowed }

// SetStatus validates status against the configured set and persists it.
// Store failures are returned unchanged so callers can tell ErrNotFound
// apart from a *StoreError.
func (m *StatusManager) SetStatus(ctx context.Context, id int64, status Status) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "must be positive"}
	}
	if !m.allowed.Contains(status) {
		return &ValidationError{Field: "status", Value: string(status), Reason: "not a configured order status"}
	}
	if err := m.repo.UpdateStatus(ctx, id, status); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[status] order=%d status=%s err=%v", id, status, err)
		}
		return err
	}
	log.Printf("[status] order=%d status=%s", id, status)
	return nil
}
