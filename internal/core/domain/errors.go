package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrEmptyCart = errors.New("cart is empty")
var ErrInvalidInput = errors.New("invalid input")
var ErrAccountExists = errors.New("an account with this email already exists")

// ErrInvalidCredentials deliberately does not distinguish "no such account"
// from "wrong password" so login failures never leak account existence.
var ErrInvalidCredentials = errors.New("invalid email or password")
