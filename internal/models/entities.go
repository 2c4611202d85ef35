package models

import (
	"time"

	"github.com/lib/pq"
)

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Auth providers
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)

// Booking statuses
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

// Payment statuses
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// Carousel action types
const (
	ActionInternal = "INTERNAL"
	ActionExternal = "EXTERNAL"
)

// User represents an account in the system
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	FirstName    *string   `json:"firstName" db:"first_name"`
	LastName     *string   `json:"lastName" db:"last_name"`
	PhotoURL     *string   `json:"photoUrl" db:"photo_url"`
	GoogleID     *string   `json:"-" db:"google_id"`
	Provider     string    `json:"provider" db:"provider"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ItineraryDay is one day of a package itinerary, stored as JSONB
type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Package represents a travel package. Rating and ReviewCount are cached
// aggregates derived from the approved review set.
type Package struct {
	ID               string         `json:"id" db:"id"`
	Title            string         `json:"title" db:"title"`
	Slug             string         `json:"slug" db:"slug"`
	Description      *string        `json:"description" db:"description"`
	ShortDescription *string        `json:"shortDescription" db:"short_description"`
	Price            float64        `json:"price" db:"price"`
	OriginalPrice    *float64       `json:"originalPrice" db:"original_price"`
	Currency         string         `json:"currency" db:"currency"`
	Duration         int            `json:"duration" db:"duration"`
	MaxGuests        *int           `json:"maxGuests" db:"max_guests"`
	MinAge           *int           `json:"minAge" db:"min_age"`
	Difficulty       *string        `json:"difficulty" db:"difficulty"`
	Category         *string        `json:"category" db:"category"`
	LocationName     string         `json:"locationName" db:"location_name"`
	Country          *string        `json:"country" db:"country"`
	Coordinates      *string        `json:"coordinates" db:"coordinates"`
	Images           pq.StringArray `json:"images" db:"images"`
	CoverImage       *string        `json:"coverImage" db:"cover_image"`
	Highlights       pq.StringArray `json:"highlights" db:"highlights"`
	Includes         pq.StringArray `json:"includes" db:"includes"`
	Excludes         pq.StringArray `json:"excludes" db:"excludes"`
	Itinerary        []ItineraryDay `json:"itinerary,omitempty"`
	IsActive         bool           `json:"isActive" db:"is_active"`
	IsAvailable      bool           `json:"isAvailable" db:"is_available"`
	AvailableFrom    *time.Time     `json:"availableFrom" db:"available_from"`
	AvailableTo      *time.Time     `json:"availableTo" db:"available_to"`
	Tags             pq.StringArray `json:"tags" db:"tags"`
	Rating           float64        `json:"rating" db:"rating"`
	ReviewCount      int            `json:"reviewCount" db:"review_count"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`
}

// ContactInfo carries booking contact details, stored as JSONB
type ContactInfo struct {
	Phone               string `json:"phone,omitempty"`
	Email               string `json:"email,omitempty"`
	SpecialRequirements string `json:"specialRequirements,omitempty"`
}

// Booking represents a booking in the system
type Booking struct {
	ID            string         `json:"id" db:"id"`
	UserID        string         `json:"userId" db:"user_id"`
	PackageID     string         `json:"packageId" db:"package_id"`
	StartDate     time.Time      `json:"startDate" db:"start_date"`
	EndDate       *time.Time     `json:"endDate" db:"end_date"`
	Guests        int            `json:"guests" db:"guests"`
	GuestNames    pq.StringArray `json:"guestNames" db:"guest_names"`
	ContactInfo   *ContactInfo   `json:"contactInfo,omitempty"`
	Notes         *string        `json:"notes" db:"notes"`
	TotalPrice    float64        `json:"totalPrice" db:"total_price"`
	Currency      string         `json:"currency" db:"currency"`
	Status        string         `json:"status" db:"status"`
	PaymentStatus string         `json:"paymentStatus" db:"payment_status"`
	PaymentID     *string        `json:"paymentId" db:"payment_id"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`

	// Filled from joins, not columns of the bookings table
	User    *UserSummary    `json:"user,omitempty"`
	Package *PackageSummary `json:"package,omitempty"`
}

// Review represents a package review
type Review struct {
	ID           string         `json:"id" db:"id"`
	UserID       string         `json:"userId" db:"user_id"`
	PackageID    string         `json:"packageId" db:"package_id"`
	BookingID    *string        `json:"bookingId" db:"booking_id"`
	Rating       int            `json:"rating" db:"rating"`
	Title        *string        `json:"title" db:"title"`
	Comment      *string        `json:"comment" db:"comment"`
	Images       pq.StringArray `json:"images" db:"images"`
	IsApproved   bool           `json:"isApproved" db:"is_approved"`
	IsVerified   bool           `json:"isVerified" db:"is_verified"`
	HelpfulVotes int            `json:"helpfulVotes" db:"helpful_votes"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`

	User    *UserSummary    `json:"user,omitempty"`
	Package *PackageSummary `json:"package,omitempty"`
}

// CarouselItem represents one promotional carousel entry
type CarouselItem struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	ActionType  string    `json:"actionType" db:"action_type"`
	ActionValue *string   `json:"actionValue" db:"action_value"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the joined user shape embedded in bookings and reviews
type UserSummary struct {
	ID        string  `json:"id"`
	Email     string  `json:"email,omitempty"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
}

// PackageSummary is the joined package shape embedded in bookings and reviews
type PackageSummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	LocationName string  `json:"locationName"`
	Duration     int     `json:"duration,omitempty"`
	CoverImage   *string `json:"coverImage,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Currency     string  `json:"currency,omitempty"`
}
