package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tankmate/pkg/domain"
)

// Record is one loosely typed catalog entry as read from storage. Key names
// and casing vary between catalog sources.
type Record map[string]any

// Canonical field names used as keys into fieldAliases.
const (
	fieldID            = "id"
	fieldName          = "name"
	fieldCompatibility = "compatibility"
	fieldMinTankSize   = "min_tank_size"
	fieldAdultSize     = "adult_size"
	fieldTemperament   = "temperament"
	fieldDiet          = "diet"
	fieldSchooling     = "schooling"
	fieldMinGroupSize  = "min_group_size"
	fieldImage         = "image"
)

// fieldAliases lists, per canonical field, the accepted record keys in
// priority order. The first key holding a non-empty value wins.
var fieldAliases = map[string][]string{
	fieldID:            {"id", "ID"},
	fieldName:          {"name", "Name"},
	fieldCompatibility: {"compatibility", "compat"},
	fieldMinTankSize:   {"min_tank_size", "minTankSize"},
	fieldAdultSize:     {"adult_size", "avg_size"},
	fieldTemperament:   {"temperament", "behavior"},
	fieldDiet:          {"diet"},
	fieldSchooling:     {"schooling"},
	fieldMinGroupSize:  {"min_group_size", "min_group", "minGroup"},
	fieldImage:         {"image", "img"},
}

// rangeAliases lists the accepted base keys for each range parameter. A base
// key resolves either as a two-element array or as <key>_min/<key>_max scalars.
var rangeAliases = map[domain.Parameter][]string{
	domain.ParameterTemperature: {"temperature", "Temperature"},
	domain.ParameterPH:          {"ph", "pH", "PH"},
	domain.ParameterHardness:    {"hardness", "Hardness"},
}

// Aliases returns a copy of the accepted keys for a canonical field, in priority order.
func Aliases(field string) []string {
	return append([]string(nil), fieldAliases[field]...)
}

// Normalize converts raw records into canonical species in input order.
// Records without an id or name are dropped; duplicates are kept.
func Normalize(records []Record) []domain.Species {
	out := make([]domain.Species, 0, len(records))
	for _, rec := range records {
		if sp, ok := NormalizeRecord(rec); ok {
			out = append(out, sp)
		}
	}
	return out
}

// NormalizeRecord resolves a single record. It reports false when the
// trimmed id or name is empty. It never fails on malformed values.
func NormalizeRecord(rec Record) (domain.Species, bool) {
	id := resolveText(rec, fieldID, "")
	name := resolveText(rec, fieldName, "")
	if id == "" || name == "" {
		return domain.Species{}, false
	}

	schooling := resolveBool(rec, fieldSchooling)
	groupDefault := domain.DefaultGroupSize
	if schooling {
		groupDefault = domain.DefaultSchoolingGroupSize
	}
	group := resolveInt(rec, fieldMinGroupSize, groupDefault)
	if group < 1 {
		group = groupDefault
	}

	return domain.Species{
		ID:            id,
		Name:          name,
		Compatibility: resolveStrings(rec, fieldCompatibility),
		MinTankSize:   resolveOptionalFloat(rec, fieldMinTankSize),
		AdultSize:     resolveOptionalFloat(rec, fieldAdultSize),
		Temperature:   resolveRange(rec, domain.ParameterTemperature),
		PH:            resolveRange(rec, domain.ParameterPH),
		Hardness:      resolveRange(rec, domain.ParameterHardness),
		Temperament:   resolveText(rec, fieldTemperament, domain.DefaultTemperament),
		Diet:          resolveText(rec, fieldDiet, domain.DefaultDiet),
		Schooling:     schooling,
		MinGroupSize:  group,
		Image:         resolveText(rec, fieldImage, domain.DefaultImage),
	}, true
}

// ToRecord renders a species using canonical keys. NormalizeRecord(ToRecord(s))
// reproduces s for any normalized species.
func ToRecord(s domain.Species) Record {
	compat := make([]any, 0, len(s.Compatibility))
	for _, id := range s.Compatibility {
		compat = append(compat, id)
	}
	rec := Record{
		fieldID:            s.ID,
		fieldName:          s.Name,
		fieldCompatibility: compat,
		fieldTemperament:   s.Temperament,
		fieldDiet:          s.Diet,
		fieldSchooling:     s.Schooling,
		fieldMinGroupSize:  s.MinGroupSize,
		fieldImage:         s.Image,
	}
	for _, p := range domain.Parameters {
		r := s.RangeFor(p)
		rec[string(p)] = []any{r.Low, r.High}
	}
	if s.MinTankSize != nil {
		rec[fieldMinTankSize] = *s.MinTankSize
	}
	if s.AdultSize != nil {
		rec[fieldAdultSize] = *s.AdultSize
	}
	return rec
}

// lookup returns the first non-empty value among keys.
func lookup(rec Record, keys []string) (any, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case []float64:
		return len(t) == 0
	}
	return false
}

func resolveText(rec Record, field, fallback string) string {
	v, ok := lookup(rec, fieldAliases[field])
	if !ok {
		return fallback
	}
	if text := strings.TrimSpace(stringify(v)); text != "" {
		return text
	}
	return fallback
}

func resolveStrings(rec Record, field string) []string {
	out := []string{}
	v, ok := lookup(rec, fieldAliases[field])
	if !ok {
		return out
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, stringify(item))
		}
	case []string:
		out = append(out, t...)
	default:
		out = append(out, stringify(t))
	}
	return out
}

func resolveOptionalFloat(rec Record, field string) *float64 {
	v, ok := lookup(rec, fieldAliases[field])
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func resolveInt(rec Record, field string, fallback int) int {
	v, ok := lookup(rec, fieldAliases[field])
	if !ok {
		return fallback
	}
	n, ok := toInt(v)
	if !ok {
		return fallback
	}
	return n
}

func resolveBool(rec Record, field string) bool {
	v, ok := lookup(rec, fieldAliases[field])
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return false
}

// resolveRange tries each base key as an array first, then as a _min/_max
// pair. An array that is present but unparsable yields the default range.
func resolveRange(rec Record, p domain.Parameter) domain.Range {
	fallback := domain.DefaultRange(p)
	keys := rangeAliases[p]
	if v, ok := lookup(rec, keys); ok {
		if r, ok := rangeFromList(v); ok {
			return r
		}
		return fallback
	}
	for _, key := range keys {
		lowRaw, lowOK := lookup(rec, []string{key + "_min"})
		highRaw, highOK := lookup(rec, []string{key + "_max"})
		if !lowOK || !highOK {
			continue
		}
		low, lowOK := toFloat(lowRaw)
		high, highOK := toFloat(highRaw)
		if lowOK && highOK {
			return domain.Range{Low: low, High: high}
		}
	}
	return fallback
}

func rangeFromList(v any) (domain.Range, bool) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []float64:
		for _, f := range t {
			items = append(items, f)
		}
	default:
		return domain.Range{}, false
	}
	if len(items) < 2 {
		return domain.Range{}, false
	}
	low, lowOK := toFloat(items[0])
	high, highOK := toFloat(items[1])
	if !lowOK || !highOK {
		return domain.Range{}, false
	}
	return domain.Range{Low: low, High: high}, true
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case fmt.Stringer:
		return parseFloat(t.String())
	case string:
		return parseFloat(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt accepts whole numbers within the int32 range so conversions behave
// the same on every platform.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, t >= math.MinInt32 && t <= math.MaxInt32
	case int64:
		if t < math.MinInt32 || t > math.MaxInt32 {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 32)
		return int(n), err == nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
