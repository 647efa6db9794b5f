package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/domains/registry"
	"kitabcloud-admin/internal/infrastructure/apiclient"
)

// FailedMessage is the notice shown when the summary cannot be loaded.
const FailedMessage = "Failed to load dashboard data"

type Backend interface {
	Do(ctx context.Context, method, path string, body apiclient.Body, out any) error
}

// Counter is one stat card.
type Counter struct {
	Key   string
	Label string
	Route string // console route the card links to, may be empty
	Value int64
}

// Share is one slice of the device split.
type Share struct {
	Name    string
	Value   int64
	Percent decimal.Decimal
}

// Point is one sample of the revenue chart.
type Point struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Summary is everything the dashboard screen shows. The backend computes
// the figures; nothing is derived here except the device percentages.
type Summary struct {
	Revenue       decimal.Decimal
	Counters      []Counter
	Devices       []Share
	Chart         []Point
	RecentBooks   []entity.Record
	RecentAuthors []entity.Record
}

// Counter returns the card with the given key.
func (s *Summary) Counter(key string) (Counter, bool) {
	for _, c := range s.Counters {
		if c.Key == key {
			return c, true
		}
	}
	return Counter{}, false
}

type counterSpec struct {
	key   string
	label string
	route string
	path  *entity.Path
}

func counter(key, label, route string) counterSpec {
	return counterSpec{key: key, label: label, route: route, path: entity.MustPath("data." + key)}
}

var counterSpecs = []counterSpec{
	counter("book", "Total Books", "/books"),
	counter("user", "Total Users", "/users"),
	counter("author", "Total Authors", "/authors"),
	counter("reader", "Total Readers", "/readers"),
	counter("publisher", "Total Publishers", "/publishers"),
	counter("video", "Total Videos", "/videos"),
	counter("podcast", "Total Podcasts", "/podcasts"),
	counter("audiobook", "Audio Books", ""),
	counter("ebooks", "E-Books", ""),
	counter("androiduser", "Android Users", ""),
	counter("iosuser", "iOS Users", ""),
}

var (
	revenuePath       = entity.MustPath("data.subscription")
	recentBooksPath   = entity.MustPath("data.recentbooks")
	recentAuthorsPath = entity.MustPath("data.recentauthor")
	chartPath         = entity.MustPath("data.chartDataJson")
)

type Service struct {
	api Backend
}

func NewService(api Backend) *Service {
	return &Service{api: api}
}

// Load fetches the summary endpoint. Missing counters read as zero.
func (s *Service) Load(ctx context.Context) (*Summary, error) {
	var body map[string]any
	if err := s.api.Do(ctx, http.MethodGet, registry.Dashboard, nil, &body); err != nil {
		log.Error().Err(err).Msg("dashboard fetch failed")
		return nil, err
	}
	return parse(body), nil
}

func parse(body map[string]any) *Summary {
	sum := &Summary{
		Revenue:       decimalAt(body, revenuePath),
		RecentBooks:   recordsAt(body, recentBooksPath),
		RecentAuthors: recordsAt(body, recentAuthorsPath),
		Chart:         chartAt(body),
	}

	for _, spec := range counterSpecs {
		sum.Counters = append(sum.Counters, Counter{
			Key:   spec.key,
			Label: spec.label,
			Route: spec.route,
			Value: intAt(body, spec.path),
		})
	}

	android, _ := sum.Counter("androiduser")
	ios, _ := sum.Counter("iosuser")
	sum.Devices = shares(Share{Name: "Android", Value: android.Value}, Share{Name: "iOS", Value: ios.Value})
	return sum
}

func shares(parts ...Share) []Share {
	var total int64
	for _, p := range parts {
		total += p.Value
	}
	hundred := decimal.NewFromInt(100)
	for i := range parts {
		if total == 0 {
			parts[i].Percent = decimal.Zero
			continue
		}
		parts[i].Percent = decimal.NewFromInt(parts[i].Value).
			Mul(hundred).
			Div(decimal.NewFromInt(total)).
			Round(1)
	}
	return parts
}

func decimalAt(body map[string]any, p *entity.Path) decimal.Decimal {
	v, ok := p.Lookup(body)
	if !ok {
		return decimal.Zero
	}
	d, err := toDecimal(v)
	if err != nil {
		log.Warn().Err(err).Str("path", p.String()).Msg("dashboard value is not numeric")
		return decimal.Zero
	}
	return d
}

func intAt(body map[string]any, p *entity.Path) int64 {
	return decimalAt(body, p).IntPart()
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case string:
		if t == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(t)
	case json.Number:
		return decimal.NewFromString(t.String())
	default:
		return decimal.Zero, fmt.Errorf("unsupported value %T", v)
	}
}

func recordsAt(body map[string]any, p *entity.Path) []entity.Record {
	v, ok := p.Lookup(body)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]entity.Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, entity.Record(m))
		}
	}
	return out
}

// chartAt reads the chart series, which the backend ships as a JSON string.
func chartAt(body map[string]any) []Point {
	v, ok := chartPath.Lookup(body)
	if !ok {
		return nil
	}

	var raw []byte
	switch t := v.(type) {
	case string:
		raw = []byte(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		raw = b
	}

	var points []Point
	if err := json.Unmarshal(raw, &points); err != nil {
		log.Warn().Err(err).Msg("dashboard chart data is malformed")
		return nil
	}
	return points
}
