package crud

import (
	"context"

	"github.com/rs/zerolog/log"

	"kitabcloud-admin/internal/domains/entity"
)

// Outcome of a list action: the notifications to show, in order, and the
// error of the action itself.
type Outcome struct {
	Notices []Notice
	Err     error
}

func (o Outcome) OK() bool { return o.Err == nil }

func (o *Outcome) add(n Notice) { o.Notices = append(o.Notices, n) }

// ListView is the state of one list screen. Rows are always the result of
// the latest successful fetch; mutations never patch them locally.
type ListView struct {
	svc *Service
	d   *entity.Descriptor

	Query  string // backend search term, empty for the full list
	Rows   []entity.Record
	Loaded bool
}

func NewListView(svc *Service, d *entity.Descriptor) *ListView {
	return &ListView{svc: svc, d: d}
}

func (v *ListView) Descriptor() *entity.Descriptor { return v.d }

// Load replaces the row set with a fresh fetch. On failure the previous rows
// stay and the outcome carries a notice.
func (v *ListView) Load(ctx context.Context) Outcome {
	var (
		rows []entity.Record
		err  error
	)
	if v.Query != "" {
		rows, err = v.svc.Search(ctx, v.d, v.Query)
	} else {
		rows, err = v.svc.List(ctx, v.d)
	}
	v.Loaded = true
	if err != nil {
		log.Error().Err(err).Str("entity", v.d.Name).Msg("list fetch failed")
		return Outcome{Notices: []Notice{failure(FetchFailed(v.d))}, Err: err}
	}
	v.Rows = rows
	return Outcome{}
}

// Delete commits a confirmed delete. Success re-fetches the list; failure
// leaves the rows untouched.
func (v *ListView) Delete(ctx context.Context, id string) Outcome {
	if err := v.svc.Delete(ctx, v.d, id); err != nil {
		log.Error().Err(err).Str("entity", v.d.Name).Str("id", id).Msg("delete failed")
		return Outcome{Notices: []Notice{failure(DeleteFailed(v.d, err))}, Err: err}
	}

	out := Outcome{}
	out.add(success(DeletedMessage(v.d)))
	if reload := v.Load(ctx); !reload.OK() {
		out.Notices = append(out.Notices, reload.Notices...)
	}
	return out
}

// ToggleStatus commits a status change and re-fetches whatever the result,
// so a rejected toggle shows the true server state again.
func (v *ListView) ToggleStatus(ctx context.Context, id string, status bool) Outcome {
	out := Outcome{}

	if err := v.svc.SetStatus(ctx, v.d, id, status); err != nil {
		log.Error().Err(err).Str("entity", v.d.Name).Str("id", id).Bool("status", status).Msg("status update failed")
		out.Err = err
		out.add(failure(StatusFailed(err)))
		if Unauthorized(err) {
			return out
		}
	} else {
		out.add(success(StatusUpdated))
	}

	if reload := v.Load(ctx); !reload.OK() {
		out.Notices = append(out.Notices, reload.Notices...)
	}
	return out
}

// Find returns the loaded row with the given id.
func (v *ListView) Find(id string) (entity.Record, bool) {
	for _, r := range v.Rows {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}
