package forms

import (
	"context"
	"strings"
	"unicode"
)

const (
	nameMin     = 4
	nameMax     = 80
	passwordMin = 4
	passwordMax = 80
)

// NameChecker answers whether a user name is already registered.
type NameChecker interface {
	NameTaken(ctx context.Context, name string) (bool, error)
}

type LoginForm struct {
	Name     string `form:"name"`
	Password string `form:"password"`
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	requiredLength(errs, "name", f.Name, nameMin, nameMax)
	requiredLength(errs, "password", f.Password, passwordMin, passwordMax)
	return errs
}

type RegisterForm struct {
	Name     string `form:"name"`
	Password string `form:"password"`
}

const (
	msgNameForbidden = "Username cannot contain %, spaces, quotes, backslashes, or slashes."
	msgNameTaken     = "That username already exists. Please choose a different one."
)

// Validate runs the field rules. The store error, if any, is returned
// separately so the caller can tell a bad form from a broken database.
func (f RegisterForm) Validate(ctx context.Context, names NameChecker) (Errors, error) {
	errs := Errors{}
	requiredLength(errs, "password", f.Password, passwordMin, passwordMax)

	if !requiredLength(errs, "name", f.Name, nameMin, nameMax) {
		return errs, nil
	}
	if strings.ContainsFunc(f.Name, forbiddenInName) {
		errs.Add("name", msgNameForbidden)
		return errs, nil
	}

	taken, err := names.NameTaken(ctx, f.Name)
	if err != nil {
		return errs, err
	}
	if taken {
		errs.Add("name", msgNameTaken)
	}
	return errs, nil
}

// NameTakenErrors is the field error reported when the unique index rejects
// a registration that passed the pre-check.
func NameTakenErrors() Errors {
	return Errors{"name": {msgNameTaken}}
}

func forbiddenInName(r rune) bool {
	switch r {
	case '%', '"', '\\', '/':
		return true
	}
	return unicode.IsSpace(r)
}

type ChangePasswordForm struct {
	CurrentPassword string `form:"current_password"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

const (
	msgPasswordForbidden = "Password cannot contain quotes, semicolons, backslashes, or angle brackets."
	msgCurrentIncorrect  = "Current password is incorrect"
	msgPasswordMismatch  = "Passwords do not match"
)

// Validate runs the structural rules and the forbidden character rule.
// Matching against the stored hash needs the user and is done by Check.
func (f ChangePasswordForm) Validate() Errors {
	errs := Errors{}
	requiredLength(errs, "current_password", f.CurrentPassword, passwordMin, passwordMax)
	if requiredLength(errs, "new_password", f.NewPassword, passwordMin, passwordMax) &&
		strings.ContainsAny(f.NewPassword, `'";\<>`) {
		errs.Add("new_password", msgPasswordForbidden)
	}
	requiredLength(errs, "confirm_password", f.ConfirmPassword, passwordMin, passwordMax)
	return errs
}

// Check applies the cross-field rules after Validate passed. verify reports
// whether a plaintext matches the stored hash. The first failing rule wins.
func (f ChangePasswordForm) Check(verify func(plain string) bool) Errors {
	errs := Errors{}
	switch {
	case !verify(f.CurrentPassword):
		errs.Add("current_password", msgCurrentIncorrect)
	case f.NewPassword != f.ConfirmPassword:
		errs.Add("confirm_password", msgPasswordMismatch)
	}
	return errs
}
