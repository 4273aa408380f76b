package core

import (
	"cmp"
	"slices"
	"strings"
)

// sortValue is a field normalized for comparison.
// Absent values order before everything else.
type sortValue struct {
	present bool
	numeric bool
	num     float64
	str     string
}

func numValue(v float64) sortValue { return sortValue{present: true, numeric: true, num: v} }

func strValue(s string) sortValue { return sortValue{present: true, str: s} }

func boolValue(b bool) sortValue {
	if b {
		return numValue(1)
	}
	return numValue(0)
}

func optInt(v *int) sortValue {
	if v == nil {
		return sortValue{}
	}
	return numValue(float64(*v))
}

func optFloat(v *float64) sortValue {
	if v == nil {
		return sortValue{}
	}
	return numValue(*v)
}

func optBool(v *bool) sortValue {
	if v == nil {
		return sortValue{}
	}
	return boolValue(*v)
}

func optString(v *string) sortValue {
	if v == nil {
		return sortValue{}
	}
	return strValue(*v)
}

func compareValues(a, b sortValue) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return -1
	case !b.present:
		return 1
	case a.numeric && b.numeric:
		return cmp.Compare(a.num, b.num)
	default:
		return strings.Compare(a.str, b.str)
	}
}

type sortField struct {
	name  string
	value func(p *Pokemon) sortValue
}

var sortFields = []sortField{
	{"id", func(p *Pokemon) sortValue { return numValue(float64(p.ID)) }},
	{"name", func(p *Pokemon) sortValue { return strValue(p.Name) }},
	{"type1", func(p *Pokemon) sortValue { return strValue(string(p.PrimaryType)) }},
	{"type2", func(p *Pokemon) sortValue {
		if p.SecondaryType == nil {
			return sortValue{}
		}
		return strValue(string(*p.SecondaryType))
	}},
	{"hp", func(p *Pokemon) sortValue { return numValue(float64(p.Stats.HP)) }},
	{"attack", func(p *Pokemon) sortValue { return numValue(float64(p.Stats.Attack)) }},
	{"defense", func(p *Pokemon) sortValue { return numValue(float64(p.Stats.Defense)) }},
	{"sp_atk", func(p *Pokemon) sortValue { return numValue(float64(p.Stats.SpAtk)) }},
	{"sp_def", func(p *Pokemon) sortValue { return numValue(float64(p.Stats.SpDef)) }},
	{"speed", func(p *Pokemon) sortValue { return numValue(float64(p.Stats.Speed)) }},
	{"bst", func(p *Pokemon) sortValue { return numValue(float64(p.BST)) }},
	{"mean", func(p *Pokemon) sortValue { return optFloat(p.Mean) }},
	{"sd", func(p *Pokemon) sortValue { return optFloat(p.StandardDeviation) }},
	{"generation", func(p *Pokemon) sortValue { return numValue(float64(p.Generation)) }},
	{"exptype", func(p *Pokemon) sortValue { return optString(p.ExperienceType) }},
	{"expto100", func(p *Pokemon) sortValue { return optInt(p.ExperienceTo100) }},
	{"finalevolution", func(p *Pokemon) sortValue { return optBool(p.FinalEvolution) }},
	{"catchrate", func(p *Pokemon) sortValue { return optInt(p.CatchRate) }},
	{"legendary", func(p *Pokemon) sortValue { return boolValue(p.Legendary) }},
	{"mega", func(p *Pokemon) sortValue { return optBool(p.Mega) }},
	{"alolan", func(p *Pokemon) sortValue { return optBool(p.Alolan) }},
	{"galarian", func(p *Pokemon) sortValue { return optBool(p.Galarian) }},
	{"height", func(p *Pokemon) sortValue { return optFloat(p.Height) }},
	{"weight", func(p *Pokemon) sortValue { return optFloat(p.Weight) }},
	{"bmi", func(p *Pokemon) sortValue { return optFloat(p.BMI) }},
}

// sortAliases maps the JSON field names onto the short sort keys.
var sortAliases = map[string]string{
	"primarytype":       "type1",
	"secondarytype":     "type2",
	"spatk":             "sp_atk",
	"spdef":             "sp_def",
	"standarddeviation": "sd",
	"experiencetype":    "exptype",
	"experienceto100":   "expto100",
}

var sortFieldIndex = func() map[string]sortField {
	m := make(map[string]sortField, len(sortFields)+len(sortAliases))
	for _, f := range sortFields {
		m[f.name] = f
	}
	for alias, name := range sortAliases {
		m[alias] = m[name]
	}
	return m
}()

// SortKeys returns the accepted sort field names, without aliases.
func SortKeys() []string {
	keys := make([]string, len(sortFields))
	for i, f := range sortFields {
		keys[i] = f.name
	}
	return keys
}

// SortSpec is one parsed sort key.
type SortSpec struct {
	Field string
	Desc  bool
	value func(p *Pokemon) sortValue
}

// ParseSort parses a comma-separated list of field[:asc|desc] tokens.
// Field names match case-insensitively; unknown fields are dropped.
// Any direction other than desc means ascending.
func ParseSort(s string) []SortSpec {
	var specs []SortSpec
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		field, dir, _ := strings.Cut(tok, ":")
		f, ok := sortFieldIndex[strings.ToLower(strings.TrimSpace(field))]
		if !ok {
			continue
		}
		specs = append(specs, SortSpec{
			Field: f.name,
			Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
			value: f.value,
		})
	}
	return specs
}

// SortRecords stably sorts records in place by specs, left to right.
func SortRecords(records []Pokemon, specs []SortSpec) {
	if len(specs) == 0 {
		return
	}
	slices.SortStableFunc(records, func(a, b Pokemon) int {
		for _, s := range specs {
			c := compareValues(s.value(&a), s.value(&b))
			if c == 0 {
				continue
			}
			if s.Desc {
				return -c
			}
			return c
		}
		return 0
	})
}
