package crud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/domains/registry"
	"kitabcloud-admin/internal/infrastructure/apiclient"
)

// Backend is the request surface the workflow needs. *apiclient.Client
// satisfies it.
type Backend interface {
	Do(ctx context.Context, method, path string, body apiclient.Body, out any) error
}

// Service runs list, fetch, create, update, delete and status requests for
// any descriptor. It holds no record cache; every read goes to the backend.
type Service struct {
	api Backend
}

func NewService(api Backend) *Service {
	return &Service{api: api}
}

// List fetches every record of a resource. The backend may answer with a
// bare array or with {data: [...]}.
func (s *Service) List(ctx context.Context, d *entity.Descriptor) ([]entity.Record, error) {
	return s.listPath(ctx, d.ListEndpoint())
}

// SearchLimit caps the rows a search asks the backend for, matching the
// largest page size.
const SearchLimit = 100

// Search asks the backend for the records of d matching term.
func (s *Service) Search(ctx context.Context, d *entity.Descriptor, term string) ([]entity.Record, error) {
	return s.listPath(ctx, registry.Search(d.ListEndpoint(), term, 1, SearchLimit))
}

func (s *Service) listPath(ctx context.Context, path string) ([]entity.Record, error) {
	var raw json.RawMessage
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList(raw)
}

// Fetch loads one record by id. Accepts a bare object or {data: {...}}.
func (s *Service) Fetch(ctx context.Context, d *entity.Descriptor, id string) (entity.Record, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	var raw json.RawMessage
	if err := s.api.Do(ctx, http.MethodGet, d.ItemEndpoint(id), nil, &raw); err != nil {
		if apiclient.StatusOf(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%s %s: %w", d.Name, id, ErrNotFound)
		}
		return nil, err
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%s %s: %w", d.Name, id, ErrNotFound)
	}
	return rec, nil
}

// Create POSTs a payload to the collection endpoint.
func (s *Service) Create(ctx context.Context, d *entity.Descriptor, payload map[string]any) error {
	if !d.CanAdd() {
		return ErrReadOnly
	}
	return s.api.Do(ctx, http.MethodPost, d.ListEndpoint(), apiclient.FormBody(payload), nil)
}

// Update PUTs a payload to the item endpoint.
func (s *Service) Update(ctx context.Context, d *entity.Descriptor, id string, payload map[string]any) error {
	if !d.CanEdit() {
		return ErrReadOnly
	}
	if id == "" {
		return ErrMissingID
	}
	return s.api.Do(ctx, http.MethodPut, d.ItemEndpoint(id), apiclient.FormBody(payload), nil)
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, d *entity.Descriptor, id string) error {
	if !d.CanDelete() {
		return ErrNotDeletable
	}
	if id == "" {
		return ErrMissingID
	}
	return s.api.Do(ctx, http.MethodDelete, d.ItemEndpoint(id), nil, nil)
}

// SetStatus commits a status toggle through the status sub-resource.
func (s *Service) SetStatus(ctx context.Context, d *entity.Descriptor, id string, status bool) error {
	if !d.CanToggle() {
		return ErrNoStatus
	}
	if id == "" {
		return ErrMissingID
	}
	body := apiclient.JSONBody(map[string]bool{"status": status})
	return s.api.Do(ctx, d.StatusVerb(), d.StatusEndpoint(id), body, nil)
}

// Options resolves the choices of every select field of d. Dynamic lists
// that fail to load are logged and left empty; a 401 stops the lookups.
func (s *Service) Options(ctx context.Context, d *entity.Descriptor) map[string][]entity.Option {
	out := make(map[string][]entity.Option)
	for _, f := range d.Fields {
		if f.Kind != entity.KindSelect {
			continue
		}
		if !f.IsDynamic() {
			out[f.Name] = f.Options
			continue
		}

		path, ok := registry.Path(f.OptionsFrom.Resource)
		if !ok {
			log.Error().Str("field", f.Name).Str("resource", f.OptionsFrom.Resource).Msg("option source not registered")
			continue
		}
		records, err := s.listPath(ctx, path)
		if Unauthorized(err) {
			return out
		}
		if err != nil {
			log.Warn().Err(err).Str("entity", d.Name).Str("field", f.Name).Msg("failed to load select options")
			continue
		}
		out[f.Name] = f.OptionsFrom.OptionsFromRecords(records)
	}
	return out
}

// DecodeList accepts a bare array or {data: array}.
func DecodeList(raw json.RawMessage) ([]entity.Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []entity.Record{}, nil
	}

	if raw[0] == '[' {
		var rows []entity.Record
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
		}
		return compact(rows), nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: list is neither an array nor {data: array}", ErrUnexpectedBody)
	}
	return DecodeList(data)
}

func decodeRecord(raw json.RawMessage) (entity.Record, error) {
	var rec entity.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}
	if inner, ok := rec["data"].(map[string]any); ok {
		return entity.Record(inner), nil
	}
	return rec, nil
}

// compact drops null entries a sloppy backend may return inside arrays.
func compact(rows []entity.Record) []entity.Record {
	out := rows[:0]
	for _, r := range rows {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Unauthorized reports whether err ended the session.
func Unauthorized(err error) bool {
	return errors.Is(err, apiclient.ErrUnauthorized)
}
