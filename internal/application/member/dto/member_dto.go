package dto

import (
	"time"

	"pulsefit/internal/domain/member"
)

// MemberDTO is the API representation of a member. EffectiveStatus is always
// computed from the end date at read time; Status is the persisted label and
// is included for auditing only.
type MemberDTO struct {
	ID                uint                     `json:"id"`
	MemberID          string                   `json:"member_id"`
	Name              string                   `json:"name"`
	Phone             string                   `json:"phone"`
	Email             string                   `json:"email,omitempty"`
	PlanID            string                   `json:"plan_id,omitempty"`
	PlanName          string                   `json:"plan_name,omitempty"`
	SubscriptionStart time.Time                `json:"subscription_start"`
	SubscriptionEnd   time.Time                `json:"subscription_end"`
	Status            string                   `json:"status"`
	Membership        member.MembershipStatus  `json:"membership"`
	TotalPaid         string                   `json:"total_paid"`
	LastExpiryNotice  *time.Time               `json:"last_expiry_notice,omitempty"`
	Metadata          map[string]interface{}   `json:"metadata,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// MemberToDTO converts an aggregate to its API shape, evaluating the
// membership state as of now.
func MemberToDTO(m *member.Member, now time.Time, cfg member.EvaluationConfig) *MemberDTO {
	if m == nil {
		return nil
	}
	return &MemberDTO{
		ID:                m.ID(),
		MemberID:          m.MemberID(),
		Name:              m.Name(),
		Phone:             m.Phone(),
		Email:             m.Email(),
		PlanID:            m.PlanID(),
		PlanName:          m.PlanName(),
		SubscriptionStart: m.SubscriptionStart(),
		SubscriptionEnd:   m.SubscriptionEnd(),
		Status:            string(m.Status()),
		Membership:        member.EvaluateMembership(m.SubscriptionEnd(), now, cfg),
		TotalPaid:         m.TotalPaid().StringFixed(2),
		LastExpiryNotice:  m.LastExpiryNotice(),
		Metadata:          m.Metadata(),
		CreatedAt:         m.CreatedAt(),
		UpdatedAt:         m.UpdatedAt(),
	}
}

// MembersToDTO converts a list of aggregates.
func MembersToDTO(members []*member.Member, now time.Time, cfg member.EvaluationConfig) []*MemberDTO {
	dtos := make([]*MemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, MemberToDTO(m, now, cfg))
	}
	return dtos
}
