package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	// RoleTerritoryManager may see, export, and delete every submission.
	RoleTerritoryManager UserRole = "TERRITORY_MANAGER"
	// RoleSalesPromotionAssistant is limited to submissions it owns.
	RoleSalesPromotionAssistant UserRole = "SALES_PROMOTION_ASSISTANT"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         UserRole  `db:"role" json:"role"`
	District     string    `db:"district" json:"district"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}
