package models

import "time"

// Pagination describes one page of a list response
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for a total row count
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Auth

type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         User   `json:"user"`
}

// Packages

type CreatePackageRequest struct {
	Title            string         `json:"title" binding:"required"`
	Slug             string         `json:"slug"`
	Description      *string        `json:"description"`
	ShortDescription *string        `json:"shortDescription"`
	Price            float64        `json:"price" binding:"required,gt=0"`
	OriginalPrice    *float64       `json:"originalPrice"`
	Currency         string         `json:"currency"`
	Duration         int            `json:"duration" binding:"required,min=1"`
	MaxGuests        *int           `json:"maxGuests"`
	MinAge           *int           `json:"minAge"`
	Difficulty       *string        `json:"difficulty"`
	Category         *string        `json:"category"`
	LocationName     string         `json:"locationName" binding:"required"`
	Country          *string        `json:"country"`
	Coordinates      *string        `json:"coordinates"`
	Images           []string       `json:"images"`
	CoverImage       *string        `json:"coverImage"`
	Highlights       []string       `json:"highlights"`
	Includes         []string       `json:"includes"`
	Excludes         []string       `json:"excludes"`
	Itinerary        []ItineraryDay `json:"itinerary"`
	IsActive         *bool          `json:"isActive"`
	IsAvailable      *bool          `json:"isAvailable"`
	AvailableFrom    *time.Time     `json:"availableFrom"`
	AvailableTo      *time.Time     `json:"availableTo"`
	Tags             []string       `json:"tags"`
}

// UpdatePackageRequest is a partial patch; nil fields are left untouched
type UpdatePackageRequest struct {
	Title            *string        `json:"title"`
	Slug             *string        `json:"slug"`
	Description      *string        `json:"description"`
	ShortDescription *string        `json:"shortDescription"`
	Price            *float64       `json:"price"`
	OriginalPrice    *float64       `json:"originalPrice"`
	Currency         *string        `json:"currency"`
	Duration         *int           `json:"duration"`
	MaxGuests        *int           `json:"maxGuests"`
	MinAge           *int           `json:"minAge"`
	Difficulty       *string        `json:"difficulty"`
	Category         *string        `json:"category"`
	LocationName     *string        `json:"locationName"`
	Country          *string        `json:"country"`
	Coordinates      *string        `json:"coordinates"`
	Images           []string       `json:"images"`
	CoverImage       *string        `json:"coverImage"`
	Highlights       []string       `json:"highlights"`
	Includes         []string       `json:"includes"`
	Excludes         []string       `json:"excludes"`
	Itinerary        []ItineraryDay `json:"itinerary"`
	IsActive         *bool          `json:"isActive"`
	IsAvailable      *bool          `json:"isAvailable"`
	AvailableFrom    *time.Time     `json:"availableFrom"`
	AvailableTo      *time.Time     `json:"availableTo"`
	Tags             []string       `json:"tags"`
}

type PackageListQuery struct {
	Search       string   `form:"search"`
	Category     string   `form:"category"`
	Difficulty   string   `form:"difficulty"`
	LocationName string   `form:"locationName"`
	Country      string   `form:"country"`
	MinPrice     *float64 `form:"minPrice"`
	MaxPrice     *float64 `form:"maxPrice"`
	MinDuration  *int     `form:"minDuration"`
	MaxDuration  *int     `form:"maxDuration"`
	Page         int      `form:"page,default=1"`
	Limit        int      `form:"limit,default=10"`
	SortBy       string   `form:"sortBy,default=createdAt"`
	SortOrder    string   `form:"sortOrder,default=desc"`
}

type PackageListResponse struct {
	Data       []Package  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Bookings

type CreateBookingRequest struct {
	PackageID   string       `json:"packageId" binding:"required"`
	StartDate   time.Time    `json:"startDate" binding:"required"`
	EndDate     *time.Time   `json:"endDate"`
	Guests      int          `json:"guests" binding:"required,min=1,max=20"`
	GuestNames  []string     `json:"guestNames" binding:"required"`
	ContactInfo *ContactInfo `json:"contactInfo"`
	Notes       *string      `json:"notes"`
	TotalPrice  *float64     `json:"totalPrice"`
	Currency    *string      `json:"currency"`
}

// UpdateBookingRequest is a partial patch. Status, payment status and
// payment id are admin-only except cancellation by the owner.
type UpdateBookingRequest struct {
	StartDate     *time.Time   `json:"startDate"`
	EndDate       *time.Time   `json:"endDate"`
	Guests        *int         `json:"guests"`
	GuestNames    []string     `json:"guestNames"`
	ContactInfo   *ContactInfo `json:"contactInfo"`
	Notes         *string      `json:"notes"`
	TotalPrice    *float64     `json:"totalPrice"`
	Currency      *string      `json:"currency"`
	Status        *string      `json:"status"`
	PaymentStatus *string      `json:"paymentStatus"`
	PaymentID     *string      `json:"paymentId"`
}

type BookingListQuery struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
	UserID        string `form:"userId"`
	PackageID     string `form:"packageId"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=10"`
	SortBy        string `form:"sortBy,default=createdAt"`
	SortOrder     string `form:"sortOrder,default=desc"`
}

type BookingListResponse struct {
	Data       []Booking  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string  `json:"paymentStatus" binding:"required"`
	PaymentID     *string `json:"paymentId"`
}

type BookingStats struct {
	TotalBookings     int     `json:"totalBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	CompletedBookings int     `json:"completedBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// Reviews

type CreateReviewRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Title   *string  `json:"title"`
	Comment *string  `json:"comment"`
	Images  []string `json:"images"`
}

type ReviewListQuery struct {
	Rating   *int  `form:"rating"`
	Verified *bool `form:"verified"`
	Page     int   `form:"page,default=1"`
	Limit    int   `form:"limit,default=10"`
}

type AdminReviewListQuery struct {
	IsApproved *bool  `form:"isApproved"`
	IsVerified *bool  `form:"isVerified"`
	Rating     *int   `form:"rating"`
	PackageID  string `form:"packageId"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}

type ReviewListResponse struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

// Carousel

type CreateCarouselItemRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ImageURL    string  `json:"imageUrl" binding:"required"`
	ActionType  string  `json:"actionType"`
	ActionValue *string `json:"actionValue"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

type UpdateCarouselItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ActionType  *string `json:"actionType"`
	ActionValue *string `json:"actionValue"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

// Admin

type UserListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type UserListResponse struct {
	Data       []User     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type DashboardResponse struct {
	TotalUsers    int          `json:"totalUsers"`
	TotalPackages int          `json:"totalPackages"`
	TotalBookings int          `json:"totalBookings"`
	TotalReviews  int          `json:"totalReviews"`
	BookingStats  BookingStats `json:"bookingStats"`
}

// Uploads

type UploadedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}
