package domain

import "time"

// AuditFields records who created and last touched a row, and when.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps a freshly created entity.
func NewAuditFields(by string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     by,
		LastUpdatedAt: now,
		LastUpdatedBy: by,
	}
}

// Touch records an update by the given user.
func (a *AuditFields) Touch(by string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = by
}
