package forms

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gear4music/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNames struct {
	taken map[string]bool
	err   error
	calls int
}

func (f *fakeNames) NameTaken(_ context.Context, name string) (bool, error) {
	f.calls++
	return f.taken[name], f.err
}

func TestLoginFormValidate(t *testing.T) {
	assert.True(t, LoginForm{Name: "alice", Password: "secret"}.Validate().Valid())

	errs := LoginForm{Name: "", Password: "abc"}.Validate()
	assert.Equal(t, []string{"This field is required."}, errs["name"])
	assert.Equal(t, []string{"Field must be between 4 and 80 characters long."}, errs["password"])
}

func TestRegisterFormAcceptsFreshName(t *testing.T) {
	names := &fakeNames{}
	errs, err := RegisterForm{Name: "newuser", Password: "abcd"}.Validate(context.Background(), names)
	require.NoError(t, err)
	assert.True(t, errs.Valid())
	assert.Equal(t, 1, names.calls)
}

func TestRegisterFormRejectsForbiddenCharacters(t *testing.T) {
	for _, name := range []string{"al%ice", "al ice", "al\tice", `al"ice`, `al\ice`, "al/ice"} {
		names := &fakeNames{}
		errs, err := RegisterForm{Name: name, Password: "abcd"}.Validate(context.Background(), names)
		require.NoError(t, err)
		assert.Equal(t, []string{msgNameForbidden}, errs["name"], "name %q", name)
		assert.Zero(t, names.calls, "store consulted for %q", name)
	}
}

func TestRegisterFormRejectsExistingName(t *testing.T) {
	names := &fakeNames{taken: map[string]bool{"alice": true}}

	errs, err := RegisterForm{Name: "alice", Password: "abcd"}.Validate(context.Background(), names)
	require.NoError(t, err)
	assert.Equal(t, []string{msgNameTaken}, errs["name"])

	// comparison is case-sensitive
	errs, err = RegisterForm{Name: "Alice", Password: "abcd"}.Validate(context.Background(), names)
	require.NoError(t, err)
	assert.True(t, errs.Valid())
}

func TestRegisterFormKeepsAllFieldErrors(t *testing.T) {
	names := &fakeNames{}
	errs, err := RegisterForm{Name: "ab", Password: ""}.Validate(context.Background(), names)
	require.NoError(t, err)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("password"))
	assert.Zero(t, names.calls)
}

func TestRegisterFormSurfacesStoreError(t *testing.T) {
	boom := errors.New("db down")
	_, err := RegisterForm{Name: "alice", Password: "abcd"}.Validate(context.Background(), &fakeNames{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestChangePasswordFormValidate(t *testing.T) {
	f := ChangePasswordForm{CurrentPassword: "old-pass", NewPassword: "new-pass", ConfirmPassword: "new-pass"}
	assert.True(t, f.Validate().Valid())

	for _, bad := range []string{"it's", `say"hi`, "a;b;c", `back\slash`, "<tag>"} {
		f := ChangePasswordForm{CurrentPassword: "old-pass", NewPassword: bad, ConfirmPassword: bad}
		assert.Equal(t, []string{msgPasswordForbidden}, f.Validate()["new_password"], "password %q", bad)
	}

	errs := ChangePasswordForm{}.Validate()
	assert.Len(t, errs, 3)
}

func TestChangePasswordFormCheck(t *testing.T) {
	verify := func(plain string) bool { return plain == "old-pass" }

	f := ChangePasswordForm{CurrentPassword: "old-pass", NewPassword: "new-pass", ConfirmPassword: "new-pass"}
	assert.True(t, f.Check(verify).Valid())

	f.ConfirmPassword = "other-pass"
	assert.Equal(t, Errors{"confirm_password": {msgPasswordMismatch}}, f.Check(verify))

	f.CurrentPassword = "wrong-pass"
	assert.Equal(t, Errors{"current_password": {msgCurrentIncorrect}}, f.Check(verify))
}

func testChoices() InstrumentChoices {
	return InstrumentChoices{
		Categories: []models.Category{{ID: 1, Name: "Guitars"}, {ID: 2, Name: "Drums"}},
		Suppliers:  []models.Supplier{{ID: 7, Name: "Fender"}},
	}
}

func TestInstrumentFormValidate(t *testing.T) {
	f := InstrumentForm{Name: "Stratocaster", CategoryID: "1", SupplierID: "7"}
	assert.True(t, f.Validate(testChoices()).Valid())

	f.Image = "img/strat.png"
	f.Image2 = "https://example.com/strat-back.png"
	assert.True(t, f.Validate(testChoices()).Valid())
}

func TestInstrumentFormRejects(t *testing.T) {
	errs := InstrumentForm{
		Name:       "abc",
		CategoryID: "3",
		SupplierID: "x",
		Image:      "a.b",
		Image2:     strings.Repeat("i", 501),
	}.Validate(testChoices())

	assert.Equal(t, []string{"Field must be between 4 and 80 characters long."}, errs["name"])
	assert.Equal(t, []string{"Not a valid choice."}, errs["category_id"])
	assert.Equal(t, []string{"Not a valid choice."}, errs["supplier_id"])
	assert.True(t, errs.Has("image"))
	assert.True(t, errs.Has("image_2"))

	errs = InstrumentForm{}.Validate(testChoices())
	assert.Equal(t, "This field is required.", errs.First("name"))
	assert.Equal(t, "This field is required.", errs.First("category_id"))
	assert.Equal(t, "This field is required.", errs.First("supplier_id"))
	assert.False(t, errs.Has("image"))
}

func TestInstrumentFormCountsCharactersNotBytes(t *testing.T) {
	f := InstrumentForm{Name: "Гусли", CategoryID: "2", SupplierID: "7"}
	assert.True(t, f.Validate(testChoices()).Valid())

	f.Name = strings.Repeat("ñ", 80)
	assert.True(t, f.Validate(testChoices()).Valid())
	f.Name = strings.Repeat("ñ", 81)
	assert.False(t, f.Validate(testChoices()).Valid())
}

func TestInstrumentFormMapping(t *testing.T) {
	f := InstrumentForm{Name: "  Jazz Bass ", CategoryID: " 2", SupplierID: "7 ", Image: " a.png "}
	f.Normalize()

	var inst models.Instrument
	f.Apply(&inst)
	assert.Equal(t, models.Instrument{Name: "Jazz Bass", CategoryID: 2, SupplierID: 7, Image: "a.png"}, inst)

	inst.ID = 9
	back := InstrumentFormFrom(inst)
	assert.Equal(t, InstrumentForm{Name: "Jazz Bass", CategoryID: "2", SupplierID: "7", Image: "a.png"}, back)
}
