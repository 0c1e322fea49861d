package model

import (
	"fmt"
	"strings"
)

// EventStatus is the approval state of a proposed event. Every event is
// created PENDING and moves to APPROVED or REJECTED through the store;
// there is no ordering between statuses, only equality.
type EventStatus string

const (
	StatusPending  EventStatus = "PENDING"
	StatusApproved EventStatus = "APPROVED"
	StatusRejected EventStatus = "REJECTED"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func ParseEventStatus(raw string) (EventStatus, error) {
	status := EventStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("ParseEventStatus: %q is not one of PENDING, APPROVED, REJECTED", raw)
	}
	return status, nil
}
