package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to user-facing messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthAccountInactive    = "AUTH_ACCOUNT_INACTIVE"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND"

	// ==================== Branches (BRANCH_) ====================
	BranchNotFound   = "BRANCH_NOT_FOUND"
	BranchCodeExists = "BRANCH_CODE_EXISTS"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound         = "REVIEW_NOT_FOUND"
	ReviewInvalidRating    = "REVIEW_INVALID_RATING"
	ReviewEmptyContent     = "REVIEW_EMPTY_CONTENT"
	ReviewEmptyResponse    = "REVIEW_EMPTY_RESPONSE"
	ReviewAlreadyResponded = "REVIEW_ALREADY_RESPONDED"

	// ==================== Templates (TEMPLATE_) ====================
	TemplateNotFound = "TEMPLATE_NOT_FOUND"

	// ==================== Analytics (ANALYTICS_) ====================
	AnalyticsInvalidWindow = "ANALYTICS_INVALID_WINDOW"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
