package domain

// CurrencyINR is the only currency the platform bills in.
const CurrencyINR = "INR"

// SubscriptionStatus represents the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPending   SubscriptionStatus = "pending"
)

// ValidSubscriptionStatuses is the set of accepted subscription statuses.
var ValidSubscriptionStatuses = map[SubscriptionStatus]bool{
	SubscriptionStatusActive:    true,
	SubscriptionStatusExpired:   true,
	SubscriptionStatusCancelled: true,
	SubscriptionStatusPending:   true,
}

// PlanType is the billing period of a subscription.
type PlanType string

const (
	PlanAnnual  PlanType = "annual"
	PlanMonthly PlanType = "monthly"
)

// ValidPlanTypes is the set of accepted plan types.
var ValidPlanTypes = map[PlanType]bool{
	PlanAnnual:  true,
	PlanMonthly: true,
}

// PetType is the species shown on a pet's public tag page.
type PetType string

const (
	PetTypeDog    PetType = "Dog"
	PetTypeCat    PetType = "Cat"
	PetTypeBird   PetType = "Bird"
	PetTypeRabbit PetType = "Rabbit"
	PetTypeOther  PetType = "Other"
)

// ValidPetTypes is the set of accepted pet types.
var ValidPetTypes = map[PetType]bool{
	PetTypeDog:    true,
	PetTypeCat:    true,
	PetTypeBird:   true,
	PetTypeRabbit: true,
	PetTypeOther:  true,
}

// TicketStatus tracks a support ticket through triage.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidTicketStatuses is the set of accepted ticket statuses.
var ValidTicketStatuses = map[TicketStatus]bool{
	TicketStatusOpen:       true,
	TicketStatusInProgress: true,
	TicketStatusResolved:   true,
	TicketStatusClosed:     true,
}

// IsTerminal reports whether the status marks the ticket as finished.
// Moving a ticket into a terminal status stamps resolved_at.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority orders the support queue.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidTicketPriorities is the set of accepted ticket priorities.
var ValidTicketPriorities = map[TicketPriority]bool{
	TicketPriorityLow:    true,
	TicketPriorityMedium: true,
	TicketPriorityHigh:   true,
	TicketPriorityUrgent: true,
}

// TicketCategory groups tickets by the area of the product they concern.
type TicketCategory string

const (
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryLostPet   TicketCategory = "lost_pet"
	TicketCategoryAccount   TicketCategory = "account"
	TicketCategoryOther     TicketCategory = "other"
)

// ValidTicketCategories is the set of accepted ticket categories.
var ValidTicketCategories = map[TicketCategory]bool{
	TicketCategoryTechnical: true,
	TicketCategoryBilling:   true,
	TicketCategoryLostPet:   true,
	TicketCategoryAccount:   true,
	TicketCategoryOther:     true,
}
