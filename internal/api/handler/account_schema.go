package handler

import "time"

type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,max=255"`
}

type adminTokenData struct {
	BearerToken string     `json:"bearer_token"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type adminLoginResponse struct {
	Data adminTokenData `json:"data"`
}

type customerTokenData struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type customerLoginResponse struct {
	Data customerTokenData `json:"data"`
}

type customerLoginError struct {
	Error string `json:"error"`
}

type registerCustomerRequest struct {
	FirstName   string `json:"firstname"    validate:"required,max=50"`
	LastName    string `json:"lastname"     validate:"required,max=50"`
	Email       string `json:"email"        validate:"required,max=50,email"`
	Password    string `json:"password"     validate:"required,password"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=255"`
}

type createCustomerRequest struct {
	FirstName   string  `json:"firstname"    validate:"required,max=255"`
	LastName    string  `json:"lastname"     validate:"required,max=255"`
	Email       string  `json:"email"        validate:"required,max=255,email"`
	Password    string  `json:"password"     validate:"required,password"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,max=255"`
	IsSuspended *string `json:"is_suspended" validate:"omitnil,max=255"`
}

type updateCustomerRequest struct {
	FirstName   *string `json:"firstname"    validate:"omitnil,filled,max=255"`
	LastName    *string `json:"lastname"     validate:"omitnil,filled,max=255"`
	Email       *string `json:"email"        validate:"omitnil,filled,max=255,email"`
	Password    *string `json:"password"     validate:"omitnil,password"`
	PhoneNumber *string `json:"phone_number" validate:"omitnil,max=255"`
	IsSuspended *string `json:"is_suspended" validate:"omitnil,max=255"`
}

// customerResource is the public shape of a customer. It never carries the password.
type customerResource struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstname"`
	LastName    string     `json:"lastname"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	IsSuspended *string    `json:"is_suspended"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type customerDataResponse struct {
	Data customerResource `json:"data"`
}

type customerListResponse struct {
	Customers []customerResource `json:"customers"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
