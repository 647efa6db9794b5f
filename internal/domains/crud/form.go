package crud

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/domains/entity"
)

var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Form is an add or edit form bound to one descriptor.
type Form struct {
	Entity  *entity.Descriptor
	Mode    entity.Mode
	ID      string // edit mode only
	Values  entity.Values
	Errors  entity.FieldErrors
	Options map[string][]entity.Option

	initial    entity.Values
	submitting atomic.Bool
}

// NewForm opens an add form seeded with the descriptor defaults.
func (s *Service) NewForm(ctx context.Context, d *entity.Descriptor) (*Form, error) {
	if !d.CanAdd() {
		return nil, ErrReadOnly
	}
	defaults := d.Defaults()
	return &Form{
		Entity:  d,
		Mode:    entity.ModeAdd,
		Values:  defaults.Clone(),
		Options: s.Options(ctx, d),
		initial: defaults,
	}, nil
}

// EditForm fetches the record and seeds the form from it. Password fields
// stay blank, meaning "do not change".
func (s *Service) EditForm(ctx context.Context, d *entity.Descriptor, id string) (*Form, error) {
	if !d.CanEdit() {
		return nil, ErrReadOnly
	}
	rec, err := s.Fetch(ctx, d, id)
	if err != nil {
		log.Error().Err(err).Str("entity", d.Name).Str("id", id).Msg("fetch for edit failed")
		return nil, err
	}

	seeded := d.Seed(rec)
	return &Form{
		Entity:  d,
		Mode:    entity.ModeEdit,
		ID:      id,
		Values:  seeded.Clone(),
		Options: s.Options(ctx, d),
		initial: seeded,
	}, nil
}

// Set assigns a typed value to a field.
func (f *Form) Set(name string, v any) error {
	if _, ok := f.Entity.Field(name); !ok {
		return fmt.Errorf("%w: %s has no field %q", entity.ErrUnknownField, f.Entity.Name, name)
	}
	f.Values[name] = v
	return nil
}

// SetInput parses raw text for a field and assigns it.
func (f *Form) SetInput(name, raw string) error {
	v, err := f.Entity.ParseInput(name, raw)
	if err != nil {
		return err
	}
	f.Values[name] = v
	return nil
}

// Reset restores the add-mode defaults. Edit forms are left alone and
// false is returned.
func (f *Form) Reset() bool {
	if f.Mode != entity.ModeAdd {
		return false
	}
	f.Values = f.initial.Clone()
	f.Errors = nil
	return true
}

// Validate runs the schema and records per-field messages.
func (f *Form) Validate() bool {
	f.Errors = f.Entity.Schema(f.Mode).Validate(f.Values)
	return len(f.Errors) == 0
}

// Payload is the body the form would submit right now.
func (f *Form) Payload() map[string]any {
	return f.Entity.Payload(f.Mode, f.Values)
}

// Submitting reports whether a submission is outstanding.
func (f *Form) Submitting() bool { return f.submitting.Load() }

// SubmitResult is what the caller needs after a submission: whether the
// record was saved, and the notice to show.
type SubmitResult struct {
	Saved  bool
	Notice Notice
	Err    error
}

// Submit validates locally and, only when the schema passes, sends the
// payload: POST to the collection for add, PUT to the item for edit. File
// fields switch the body to multipart. Values are kept on failure.
func (s *Service) Submit(ctx context.Context, f *Form) SubmitResult {
	if !f.submitting.CompareAndSwap(false, true) {
		return SubmitResult{Err: ErrSubmitInFlight}
	}
	defer f.submitting.Store(false)

	if !f.Validate() {
		return SubmitResult{Err: ErrInvalidForm}
	}

	d := f.Entity
	payload := f.Payload()

	var err error
	if f.Mode == entity.ModeEdit {
		err = s.Update(ctx, d, f.ID, payload)
	} else {
		err = s.Create(ctx, d, payload)
	}

	if err != nil {
		log.Error().Err(err).Str("entity", d.Name).Str("mode", f.Mode.String()).Msg("form submit failed")
		msg := CreateFailed(d, err)
		if f.Mode == entity.ModeEdit {
			msg = UpdateFailed(d, err)
		}
		return SubmitResult{Notice: failure(msg), Err: err}
	}

	msg := CreatedMessage(d)
	if f.Mode == entity.ModeEdit {
		msg = UpdatedMessage(d)
	}
	log.Info().Str("entity", d.Name).Str("mode", f.Mode.String()).Str("id", f.ID).Msg("record saved")
	return SubmitResult{Saved: true, Notice: success(msg)}
}
