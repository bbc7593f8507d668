package model

import (
	"time"
)

type Role string

const (
	RoleBurrower Role = "burrower"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusBurrowed Status = "burrowed"
	StatusReturned Status = "returned"
	// StatusOverdue is derived at read time, never stored.
	StatusOverdue Status = "overdue"
)

// BorrowPeriod is the loan term applied at borrow time.
const BorrowPeriod = 15 * 24 * time.Hour

type Book struct {
	ID              int       `json:"-" db:"id"`
	BookUid         string    `json:"bookUid" db:"book_uid"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	Category        string    `json:"category" db:"category"`
	Description     string    `json:"description" db:"description"`
	ISBN            string    `json:"isbn" db:"isbn"`
	Publisher       string    `json:"publisher" db:"publisher"`
	PublishedYear   int       `json:"publishedYear" db:"published_year"`
	CoverImage      string    `json:"coverImage" db:"cover_image"`
	TotalCopies     int       `json:"totalCopies" db:"total_copies"`
	AvailableCopies int       `json:"availableCopies" db:"available_copies"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type User struct {
	ID           int       `json:"-" db:"id"`
	UserUid      string    `json:"userUid" db:"user_uid"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// BorrowRecord is a borrowing joined with its user and book references, the
// shape every read path serializes.
type BorrowRecord struct {
	ID         int        `json:"-" db:"id"`
	RecordUid  string     `json:"recordUid" db:"record_uid"`
	UserUid    string     `json:"userUid" db:"user_uid"`
	FullName   string     `json:"fullName" db:"full_name"`
	Email      string     `json:"email" db:"email"`
	BookUid    string     `json:"bookUid" db:"book_uid"`
	Title      string     `json:"title" db:"title"`
	Author     string     `json:"author" db:"author"`
	Category   string     `json:"category" db:"category"`
	BurrowDate time.Time  `json:"burrowDate" db:"burrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
	Status     Status     `json:"status" db:"status"`
}

// EffectiveStatus is the single overdue derivation: an active record past its
// due date reads as overdue without any write having occurred.
func (r BorrowRecord) EffectiveStatus(now time.Time) Status {
	if r.Status == StatusBurrowed && r.DueDate.Before(now) {
		return StatusOverdue
	}
	return r.Status
}

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Description     string `json:"description" validate:"required"`
	ISBN            string `json:"isbn" validate:"required"`
	Publisher       string `json:"publisher" validate:"required"`
	PublishedYear   int    `json:"publishedYear" validate:"required"`
	CoverImage      string `json:"coverImage" validate:"required"`
	TotalCopies     *int   `json:"totalCopies" validate:"omitempty,gte=0"`
	AvailableCopies *int   `json:"availableCopies" validate:"omitempty,gte=0"`
}

type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Category      *string `json:"category"`
	Description   *string `json:"description"`
	ISBN          *string `json:"isbn"`
	Publisher     *string `json:"publisher"`
	PublishedYear *int    `json:"publishedYear"`
	CoverImage    *string `json:"coverImage"`
	TotalCopies   *int    `json:"totalCopies" validate:"omitempty,gte=0"`
}

type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,fullname"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FullName        string `json:"fullName" validate:"required,fullname"`
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=8"`
}

type BurrowRequest struct {
	User string `json:"user" validate:"required"`
	Book string `json:"book" validate:"required"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// CirculationEvent is the borrow/return message published to kafka for
// dashboards and audit.
type CirculationEvent struct {
	Action    string    `json:"action"`
	RecordUid string    `json:"recordUid"`
	UserUid   string    `json:"userUid"`
	BookUid   string    `json:"bookUid"`
	At        time.Time `json:"at"`
}

type StatsOverview struct {
	TotalBooks     int `json:"totalBooks"`
	TotalUsers     int `json:"totalUsers"`
	BurrowerCount  int `json:"burrowerCount"`
	BurrowedBooks  int `json:"burrowedBooksCount"`
	OverdueBooks   int `json:"overdueBooksCount"`
	TotalBorrowing int `json:"totalBorrowings"`
}
