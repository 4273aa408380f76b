package core

// validation.go turns untyped CSV records into strictly typed rows.
//
// Validation happens at two levels:
//  1. Header validation: ensures every required column is present
//  2. Row parsing: coerces each cell to its column's type, failing on the first bad cell
//
// Errors are *DataLoadError values carrying the 1-based data row and the
// column name, so a bad dataset can be fixed without guessing.

import (
	"fmt"
	"strings"
)

// Column names as they appear in the backing CSV header.
const (
	ColNumber            = "Number"
	ColName              = "Name"
	ColType1             = "Type 1"
	ColType2             = "Type 2"
	ColAbilities         = "Abilities"
	ColHP                = "HP"
	ColAtt               = "Att"
	ColDef               = "Def"
	ColSpa               = "Spa"
	ColSpd               = "Spd"
	ColSpe               = "Spe"
	ColBST               = "BST"
	ColMean              = "Mean"
	ColStandardDeviation = "Standard Deviation"
	ColGeneration        = "Generation"
	ColExperienceType    = "Experience type"
	ColExperienceTo100   = "Experience to level 100"
	ColFinalEvolution    = "Final Evolution"
	ColCatchRate         = "Catch Rate"
	ColLegendary         = "Legendary"
	ColMega              = "Mega Evolution"
	ColAlolan            = "Alolan Form"
	ColGalarian          = "Galarian Form"
	ColHeight            = "Height"
	ColWeight            = "Weight"
	ColBMI               = "BMI"
)

// AgainstColumn returns the multiplier column name for t, e.g. "Against Fire".
func AgainstColumn(t Type) string {
	return "Against " + string(t)
}

// FieldType describes how a column's cells are coerced.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldNumber
	FieldBool
	FieldElement
)

// String returns the lowercase name used in schema listings.
func (ft FieldType) String() string {
	switch ft {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldNumber:
		return "number"
	case FieldBool:
		return "bool"
	case FieldElement:
		return "type"
	default:
		return "value"
	}
}

// FieldSpec describes one CSV column.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
}

// Columns lists every column the parser understands, in export order.
var Columns = buildColumns()

func buildColumns() []FieldSpec {
	cols := []FieldSpec{
		{Name: ColNumber, Type: FieldInteger, Required: true},
		{Name: ColName, Type: FieldText, Required: true},
		{Name: ColType1, Type: FieldElement, Required: true},
		{Name: ColType2, Type: FieldElement},
		{Name: ColAbilities, Type: FieldText},
		{Name: ColHP, Type: FieldInteger, Required: true},
		{Name: ColAtt, Type: FieldInteger, Required: true},
		{Name: ColDef, Type: FieldInteger, Required: true},
		{Name: ColSpa, Type: FieldInteger, Required: true},
		{Name: ColSpd, Type: FieldInteger, Required: true},
		{Name: ColSpe, Type: FieldInteger, Required: true},
		{Name: ColBST, Type: FieldInteger},
		{Name: ColMean, Type: FieldNumber},
		{Name: ColStandardDeviation, Type: FieldNumber},
		{Name: ColGeneration, Type: FieldInteger, Required: true},
		{Name: ColExperienceType, Type: FieldText},
		{Name: ColExperienceTo100, Type: FieldInteger},
		{Name: ColFinalEvolution, Type: FieldBool},
		{Name: ColCatchRate, Type: FieldInteger},
		{Name: ColLegendary, Type: FieldBool},
		{Name: ColMega, Type: FieldBool},
		{Name: ColAlolan, Type: FieldBool},
		{Name: ColGalarian, Type: FieldBool},
	}
	for _, t := range Types {
		cols = append(cols, FieldSpec{Name: AgainstColumn(t), Type: FieldNumber})
	}
	return append(cols,
		FieldSpec{Name: ColHeight, Type: FieldNumber},
		FieldSpec{Name: ColWeight, Type: FieldNumber},
		FieldSpec{Name: ColBMI, Type: FieldNumber},
	)
}

// HeaderIndex maps lowercase column names to their position in a CSV record.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header record.
// The first occurrence of a repeated column wins.
func MakeHeaderIndex(headers []string) HeaderIndex {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		key := strings.ToLower(CleanCell(h))
		if key == "" {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// ValidateHeaders checks that every required column in specs exists in headers.
// Names match case-insensitively. All missing columns are reported at once.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &DataLoadError{
			Err: fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", ")),
		}
	}
	return idx, nil
}

// RawRow is one untyped record keyed by canonical column name.
// Absent columns have no key.
type RawRow map[string]string

// NewRawRow picks the cells named by specs out of record.
// Keys are the canonical column names regardless of header casing.
func NewRawRow(record []string, idx HeaderIndex, specs []FieldSpec) RawRow {
	raw := make(RawRow, len(specs))
	for _, spec := range specs {
		pos, ok := idx[strings.ToLower(spec.Name)]
		if !ok || pos >= len(record) {
			continue
		}
		raw[spec.Name] = record[pos]
	}
	return raw
}

// Row is a strictly typed record. Optional cells are nil when absent.
// Type and boolean cells stay as text; the mapper owns their semantics.
type Row struct {
	Number            int
	Name              string
	Type1             string
	Type2             string
	Abilities         string
	HP                int
	Att               int
	Def               int
	Spa               int
	Spd               int
	Spe               int
	BST               *int
	Mean              *float64
	StandardDeviation *float64
	Generation        int
	ExperienceType    *string
	ExperienceTo100   *int
	FinalEvolution    string
	CatchRate         *int
	Legendary         string
	Mega              string
	Alolan            string
	Galarian          string
	Against           [NumTypes]*float64
	Height            *float64
	Weight            *float64
	BMI               *float64
}

// ParseRow converts raw into a Row. index is the 0-based data row and is
// reported 1-based in the returned *DataLoadError.
func ParseRow(raw RawRow, index int) (Row, error) {
	c := cellReader{raw: raw, index: index}

	row := Row{
		Number:            c.integer(ColNumber),
		Name:              c.text(ColName),
		Type1:             c.text(ColType1),
		Type2:             strings.TrimSpace(raw[ColType2]),
		Abilities:         raw[ColAbilities],
		HP:                c.integer(ColHP),
		Att:               c.integer(ColAtt),
		Def:               c.integer(ColDef),
		Spa:               c.integer(ColSpa),
		Spd:               c.integer(ColSpd),
		Spe:               c.integer(ColSpe),
		BST:               c.optInteger(ColBST),
		Mean:              c.optNumber(ColMean),
		StandardDeviation: c.optNumber(ColStandardDeviation),
		Generation:        c.integer(ColGeneration),
		ExperienceType:    c.optText(ColExperienceType),
		ExperienceTo100:   c.optInteger(ColExperienceTo100),
		FinalEvolution:    raw[ColFinalEvolution],
		CatchRate:         c.optInteger(ColCatchRate),
		Legendary:         raw[ColLegendary],
		Mega:              raw[ColMega],
		Alolan:            raw[ColAlolan],
		Galarian:          raw[ColGalarian],
		Height:            c.optNumber(ColHeight),
		Weight:            c.optNumber(ColWeight),
		BMI:               c.optNumber(ColBMI),
	}
	for i, t := range Types {
		row.Against[i] = c.optNumber(AgainstColumn(t))
	}

	if c.err == nil && row.Number <= 0 {
		c.fail(ColNumber, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidNumber, row.Number))
	}
	if c.err != nil {
		return Row{}, c.err
	}
	return row, nil
}

// cellReader coerces cells and keeps the first failure.
type cellReader struct {
	raw   RawRow
	index int
	err   error
}

func (c *cellReader) fail(column string, err error) {
	if c.err == nil {
		c.err = rowError(c.index, column, err)
	}
}

func (c *cellReader) text(column string) string {
	v := strings.TrimSpace(c.raw[column])
	if v == "" {
		c.fail(column, ErrRequired)
	}
	return v
}

func (c *cellReader) optText(column string) *string {
	v := strings.TrimSpace(c.raw[column])
	if v == "" {
		return nil
	}
	return &v
}

func (c *cellReader) integer(column string) int {
	v, ok, err := ParseInteger(c.raw[column])
	switch {
	case err != nil:
		c.fail(column, err)
	case !ok:
		c.fail(column, ErrRequired)
	}
	return v
}

func (c *cellReader) optInteger(column string) *int {
	v, ok, err := ParseInteger(c.raw[column])
	if err != nil {
		c.fail(column, err)
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

func (c *cellReader) optNumber(column string) *float64 {
	v, ok, err := ParseNumber(c.raw[column])
	if err != nil {
		c.fail(column, err)
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}
