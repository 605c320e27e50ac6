package validator

// RegisterRequest represents the request structure for account registration
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=50"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required,email,max=100"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	UserType  string `json:"user_type" validate:"required,oneof=student teacher"`
}

// LoginRequest represents the request structure for credential verification
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateClassRequest represents the request structure for creating classes.
// Capacity must be a positive integer; zero or negative capacity is
// rejected up front rather than producing a class nobody can enroll in.
type CreateClassRequest struct {
	ClassCode   string  `json:"class_code" validate:"required,max=10"`
	ClassName   string  `json:"class_name" validate:"required,max=100"`
	Capacity    int     `json:"capacity" validate:"required,gt=0"`
	Description *string `json:"description"`
}

// UpdateGradeRequest represents the request structure for grade updates.
// Grade is a pointer so an explicit 0.0 is distinguishable from absent.
type UpdateGradeRequest struct {
	Grade *float64 `json:"grade" validate:"required"`
}

// EnrollRequest represents the request structure for class enrollment
type EnrollRequest struct {
	ClassID uint `json:"class_id" validate:"required"`
}
