package domain

import "time"

// Entity names used in errors and logs.
const (
	EntityUser          = "user"
	EntityPet           = "pet"
	EntitySubscription  = "subscription"
	EntityScan          = "qr_scan"
	EntitySupportTicket = "support_ticket"
)

// User is a pet owner account.
type User struct {
	ID              int64      `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	WhatsApp        *string    `db:"whatsapp" json:"whatsapp"`
	Instagram       *string    `db:"instagram" json:"instagram"`
	Address         *string    `db:"address" json:"address"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	EmailVerified   bool       `db:"email_verified" json:"email_verified"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Pet is a tagged animal. The show_* flags control which owner contact
// details the public tag page exposes.
type Pet struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	Username      string    `db:"username" json:"username"`
	Type          PetType   `db:"type" json:"type"`
	Breed         *string   `db:"breed" json:"breed"`
	Age           *string   `db:"age" json:"age"`
	Color         *string   `db:"color" json:"color"`
	Description   *string   `db:"description" json:"description"`
	PhotoURL      *string   `db:"photo_url" json:"photo_url"`
	ShowPhone     bool      `db:"show_phone" json:"show_phone"`
	ShowWhatsApp  bool      `db:"show_whatsapp" json:"show_whatsapp"`
	ShowInstagram bool      `db:"show_instagram" json:"show_instagram"`
	ShowAddress   bool      `db:"show_address" json:"show_address"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	IsLost        bool      `db:"is_lost" json:"is_lost"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Subscription is a paid plan owned by a user. StartDate and EndDate are
// calendar dates; only their date component is meaningful.
type Subscription struct {
	ID               int64              `db:"id" json:"id"`
	UserID           int64              `db:"user_id" json:"user_id"`
	PlanType         PlanType           `db:"plan_type" json:"plan_type"`
	Status           SubscriptionStatus `db:"status" json:"status"`
	Amount           float64            `db:"amount" json:"amount"`
	Currency         string             `db:"currency" json:"currency"`
	StartDate        time.Time          `db:"start_date" json:"start_date"`
	EndDate          time.Time          `db:"end_date" json:"end_date"`
	PaymentMethod    *string            `db:"payment_method" json:"payment_method"`
	PaymentReference *string            `db:"payment_reference" json:"payment_reference"`
	CreatedAt        time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `db:"updated_at" json:"updated_at"`
}

// QRScan records one scan of a pet's tag.
type QRScan struct {
	ID             int64     `db:"id" json:"id"`
	PetID          int64     `db:"pet_id" json:"pet_id"`
	ScannedAt      time.Time `db:"scanned_at" json:"scanned_at"`
	ScannerCity    *string   `db:"scanner_city" json:"scanner_city"`
	WhatsAppShared bool      `db:"whatsapp_shared" json:"whatsapp_shared"`
}

// SupportTicket is a request raised by an owner or on behalf of one.
// ResolvedAt is set exactly when the ticket enters resolved or closed.
type SupportTicket struct {
	ID           int64          `db:"id" json:"id"`
	UserID       *int64         `db:"user_id" json:"user_id"`
	PetID        *int64         `db:"pet_id" json:"pet_id"`
	AdminID      *int64         `db:"admin_id" json:"admin_id"`
	Subject      string         `db:"subject" json:"subject"`
	Description  string         `db:"description" json:"description"`
	Category     TicketCategory `db:"category" json:"category"`
	Priority     TicketPriority `db:"priority" json:"priority"`
	Status       TicketStatus   `db:"status" json:"status"`
	ContactEmail *string        `db:"contact_email" json:"contact_email"`
	ContactPhone *string        `db:"contact_phone" json:"contact_phone"`
	ResolvedAt   *time.Time     `db:"resolved_at" json:"resolved_at"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// SubscriptionBrief is the subscription expansion attached to user listings.
type SubscriptionBrief struct {
	ID        int64              `db:"id" json:"id"`
	UserID    int64              `db:"user_id" json:"user_id"`
	Status    SubscriptionStatus `db:"status" json:"status"`
	PlanType  PlanType           `db:"plan_type" json:"plan_type"`
	Amount    float64            `db:"amount" json:"amount"`
	StartDate time.Time          `db:"start_date" json:"start_date"`
	EndDate   time.Time          `db:"end_date" json:"end_date"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// UserWithSubscriptions is a user row with its subscriptions expanded.
type UserWithSubscriptions struct {
	User
	Subscriptions []SubscriptionBrief `db:"-" json:"subscriptions"`
}

// OwnerContact is the owner expansion attached to pets and subscriptions.
type OwnerContact struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	Phone     string  `db:"phone" json:"phone"`
	WhatsApp  *string `db:"whatsapp" json:"whatsapp"`
	Instagram *string `db:"instagram" json:"instagram,omitempty"`
	Address   *string `db:"address" json:"address,omitempty"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}

// PetWithOwner is a pet row with its owner's contact details.
type PetWithOwner struct {
	Pet
	Owner OwnerContact `db:"owner" json:"owner"`
}

// SubscriptionWithUser is a subscription row with its owner's contact details.
type SubscriptionWithUser struct {
	Subscription
	Owner OwnerContact `db:"owner" json:"owner"`
}

// ScanPet is the pet expansion attached to scans.
type ScanPet struct {
	Name      string `db:"name" json:"name"`
	Username  string `db:"username" json:"username"`
	OwnerName string `db:"owner_name" json:"owner_name"`
}

// ScanWithPet is a scan row with the scanned pet and its owner's name.
type ScanWithPet struct {
	QRScan
	Pet ScanPet `db:"pet" json:"pet"`
}

// TicketWithRefs is a ticket row with the linked user, pet and admin names.
// Every reference is optional.
type TicketWithRefs struct {
	SupportTicket
	UserName    *string `db:"user_name" json:"user_name"`
	UserEmail   *string `db:"user_email" json:"user_email"`
	PetName     *string `db:"pet_name" json:"pet_name"`
	PetUsername *string `db:"pet_username" json:"pet_username"`
	AdminName   *string `db:"admin_name" json:"admin_name"`
}

// UserDetails is the composite view of one user.
type UserDetails struct {
	User          User           `json:"user"`
	Pets          []Pet          `json:"pets"`
	Subscriptions []Subscription `json:"subscriptions"`
}
