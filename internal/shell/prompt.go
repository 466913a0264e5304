package shell

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/nguyentranbao-ct/product-console/internal/form"
)

// ErrAborted is returned by a Prompter when the user backs out of a prompt.
var ErrAborted = errors.New("prompt aborted")

type Option struct {
	Key   string
	Label string
}

// Prompter asks the user for input. Every form validates each field with
// the same schemas the web front uses.
type Prompter interface {
	Menu(title string, options []Option) (string, error)
	Login(in *form.LoginInput) error
	Register(in *form.RegisterInput) error
	Product(title string, in *form.ProductInput) error
	Confirm(title, affirmative string) (bool, error)
	Spin(title string, action func()) error
}

type huhPrompter struct{}

func NewPrompter() Prompter {
	return huhPrompter{}
}

func fieldError(errs form.FieldErrors, field string) error {
	if msg := errs.Get(field); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func run(f *huh.Form) error {
	if err := f.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func (huhPrompter) Menu(title string, options []Option) (string, error) {
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Key)
	}

	var selected string
	selectField := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected)

	if err := run(huh.NewForm(huh.NewGroup(selectField))); err != nil {
		return "", err
	}
	return selected, nil
}

func (huhPrompter) Login(in *form.LoginInput) error {
	email := huh.NewInput().
		Title("Email").
		Value(&in.Email).
		Validate(func(v string) error {
			probe := *in
			probe.Email = v
			return fieldError(probe.Validate(), "email")
		})
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&in.Password).
		Validate(func(v string) error {
			probe := *in
			probe.Password = v
			return fieldError(probe.Validate(), "password")
		})

	return run(huh.NewForm(huh.NewGroup(email, password).Title("Login")))
}

func (huhPrompter) Register(in *form.RegisterInput) error {
	check := func(field string, set func(*form.RegisterInput, string)) func(string) error {
		return func(v string) error {
			probe := *in
			set(&probe, v)
			return fieldError(probe.Validate(), field)
		}
	}

	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&in.Name).
			Validate(check("name", func(p *form.RegisterInput, v string) { p.Name = v })),
		huh.NewInput().Title("Email").Value(&in.Email).
			Validate(check("email", func(p *form.RegisterInput, v string) { p.Email = v })),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password).
			Validate(check("password", func(p *form.RegisterInput, v string) { p.Password = v })),
		huh.NewSelect[string]().Title("Gender").
			Options(huh.NewOption("Male", "male"), huh.NewOption("Female", "female")).
			Value(&in.Gender),
	}

	return run(huh.NewForm(huh.NewGroup(fields...).Title("Register")))
}

func (huhPrompter) Product(title string, in *form.ProductInput) error {
	check := func(field string, set func(*form.ProductInput, string)) func(string) error {
		return func(v string) error {
			probe := *in
			set(&probe, v)
			_, errs := probe.Parse()
			return fieldError(errs, field)
		}
	}

	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&in.Name).
			Validate(check("name", func(p *form.ProductInput, v string) { p.Name = v })),
		huh.NewInput().Title("Price").Value(&in.Price).
			Validate(check("price", func(p *form.ProductInput, v string) { p.Price = v })),
		huh.NewInput().Title("Quantity").Placeholder("optional").Value(&in.Quantity).
			Validate(check("quantity", func(p *form.ProductInput, v string) { p.Quantity = v })),
	}

	return run(huh.NewForm(huh.NewGroup(fields...).Title(title)))
}

func (huhPrompter) Confirm(title, affirmative string) (bool, error) {
	var confirmed bool
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative(affirmative).
		Negative("Cancel").
		Value(&confirmed)

	if err := run(huh.NewForm(huh.NewGroup(confirm))); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (huhPrompter) Spin(title string, action func()) error {
	return spinner.New().Title(title).Action(action).Run()
}
