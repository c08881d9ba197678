package constants

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gin context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyEmail    = "email"
)

// Table names
const (
	TableMembers  = "members"
	TablePayments = "payments"
	TablePlans    = "plans"
	TableUsers    = "users"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
