package core

import (
	"fmt"
	"strings"
)

// Base stat bounds enforced when MapOptions.ValidateStats is set.
const (
	MinBaseStat = 1
	MaxBaseStat = 255
)

// MapOptions controls the integrity checks applied by ToPokemon.
type MapOptions struct {
	ValidateStats bool
}

// ParseType matches raw against the elemental types case-insensitively
// and returns the canonical spelling.
func ParseType(raw string) (Type, error) {
	i := Type(strings.TrimSpace(raw)).Index()
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return Types[i], nil
}

// parseSecondaryType treats an empty cell or "None" as no secondary type.
func parseSecondaryType(raw string) (*Type, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") {
		return nil, nil
	}
	t, err := ParseType(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseMultiplier validates a damage multiplier. A nil value means the
// column was empty and defaults to 1.
func ParseMultiplier(v *float64) (Multiplier, error) {
	if v == nil {
		return 1, nil
	}
	m := Multiplier(*v)
	if !m.IsLegal() {
		return 0, fmt.Errorf("%w: %v", ErrIllegalMultiplier, *v)
	}
	return m, nil
}

// ToPokemon maps a parsed row to its record. index is the 0-based data row
// used in error reports.
func ToPokemon(row Row, index int, opts MapOptions) (Pokemon, error) {
	primary, err := ParseType(row.Type1)
	if err != nil {
		return Pokemon{}, rowError(index, ColType1, err)
	}
	secondary, err := parseSecondaryType(row.Type2)
	if err != nil {
		return Pokemon{}, rowError(index, ColType2, err)
	}

	stats := Stats{
		HP:      row.HP,
		Attack:  row.Att,
		Defense: row.Def,
		SpAtk:   row.Spa,
		SpDef:   row.Spd,
		Speed:   row.Spe,
	}
	if opts.ValidateStats {
		if err := validateStats(stats, index); err != nil {
			return Pokemon{}, err
		}
	}

	var against Against
	for i, t := range Types {
		m, err := ParseMultiplier(row.Against[i])
		if err != nil {
			return Pokemon{}, rowError(index, AgainstColumn(t), err)
		}
		against[i] = m
	}

	bst := stats.Total()
	if row.BST != nil {
		bst = *row.BST
	}

	legendary := false
	if b := ParseBoolLike(row.Legendary); b != nil {
		legendary = *b
	}

	return Pokemon{
		ID:                row.Number,
		Name:              row.Name,
		PrimaryType:       primary,
		SecondaryType:     secondary,
		Abilities:         ParseAbilities(row.Abilities),
		Stats:             stats,
		BST:               bst,
		Generation:        row.Generation,
		Mean:              row.Mean,
		StandardDeviation: row.StandardDeviation,
		ExperienceType:    row.ExperienceType,
		ExperienceTo100:   row.ExperienceTo100,
		FinalEvolution:    ParseBoolLike(row.FinalEvolution),
		CatchRate:         row.CatchRate,
		Legendary:         legendary,
		Mega:              ParseBoolLike(row.Mega),
		Alolan:            ParseBoolLike(row.Alolan),
		Galarian:          ParseBoolLike(row.Galarian),
		Against:           against,
		Height:            row.Height,
		Weight:            row.Weight,
		BMI:               row.BMI,
	}, nil
}

var statColumns = [6]string{ColHP, ColAtt, ColDef, ColSpa, ColSpd, ColSpe}

func validateStats(s Stats, index int) error {
	for i, v := range s.Vector() {
		if v < MinBaseStat || v > MaxBaseStat {
			return rowError(index, statColumns[i],
				fmt.Errorf("%w: %d not in [%d,%d]", ErrStatOutOfRange, v, MinBaseStat, MaxBaseStat))
		}
	}
	return nil
}
