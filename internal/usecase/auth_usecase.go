// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account. The
// contact fields seed the default contact created alongside the account;
// optional fields left empty fall back to fixed defaults.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	BirthDate   *time.Time
	Category    string
	Subcategory string
	City        string
	Country     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the stored username. Password material never leaves
// the service.
type RegisterOutput struct {
	Username string
}

// LoginOutput returns the username and the issued bearer token.
type LoginOutput struct {
	Username string
	Token    string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g. API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
