// Package core provides the data access and query layer for the Pokémon dataset.
// This package has no transport dependencies and can be used by any frontend.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is one of the 18 elemental types.
type Type string

const (
	TypeNormal   Type = "Normal"
	TypeFire     Type = "Fire"
	TypeWater    Type = "Water"
	TypeElectric Type = "Electric"
	TypeGrass    Type = "Grass"
	TypeIce      Type = "Ice"
	TypeFighting Type = "Fighting"
	TypePoison   Type = "Poison"
	TypeGround   Type = "Ground"
	TypeFlying   Type = "Flying"
	TypePsychic  Type = "Psychic"
	TypeBug      Type = "Bug"
	TypeRock     Type = "Rock"
	TypeGhost    Type = "Ghost"
	TypeDragon   Type = "Dragon"
	TypeDark     Type = "Dark"
	TypeSteel    Type = "Steel"
	TypeFairy    Type = "Fairy"
)

// NumTypes is the size of the type enumeration.
const NumTypes = 18

// Types lists every elemental type in canonical order.
// The order defines the index layout of Against.
var Types = [NumTypes]Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// typeIndex maps lowercase type names to their position in Types.
var typeIndex = func() map[string]int {
	m := make(map[string]int, NumTypes)
	for i, t := range Types {
		m[strings.ToLower(string(t))] = i
	}
	return m
}()

// Index returns the position of t in Types, or -1 if t is not a known type.
func (t Type) Index() int {
	if i, ok := typeIndex[strings.ToLower(string(t))]; ok {
		return i
	}
	return -1
}

// Multiplier is a damage multiplier taken from an attack of a given type.
type Multiplier float64

// LegalMultipliers is the closed set of allowed multiplier values.
var LegalMultipliers = [...]Multiplier{0, 0.25, 0.5, 1, 2, 4}

// IsLegal reports whether m is one of LegalMultipliers.
func (m Multiplier) IsLegal() bool {
	for _, l := range LegalMultipliers {
		if m == l {
			return true
		}
	}
	return false
}

// Against holds one multiplier per elemental type, indexed like Types.
type Against [NumTypes]Multiplier

// Get returns the multiplier for t. Unknown types report 1.
func (a Against) Get(t Type) Multiplier {
	if i := t.Index(); i >= 0 {
		return a[i]
	}
	return 1
}

// MarshalJSON encodes the multipliers as an object keyed by type name.
func (a Against) MarshalJSON() ([]byte, error) {
	m := make(map[Type]Multiplier, NumTypes)
	for i, t := range Types {
		m[t] = a[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by type name. Missing types default to 1.
func (a *Against) UnmarshalJSON(data []byte) error {
	var m map[string]Multiplier
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for i := range a {
		a[i] = 1
	}
	for k, v := range m {
		i := Type(k).Index()
		if i < 0 {
			return fmt.Errorf("against: %w: %q", ErrUnknownType, k)
		}
		a[i] = v
	}
	return nil
}

// StatKey names one of the six base stats.
type StatKey string

const (
	StatHP      StatKey = "hp"
	StatAttack  StatKey = "attack"
	StatDefense StatKey = "defense"
	StatSpAtk   StatKey = "spAtk"
	StatSpDef   StatKey = "spDef"
	StatSpeed   StatKey = "speed"
)

// StatKeys lists the six base stats in vector order.
var StatKeys = [6]StatKey{StatHP, StatAttack, StatDefense, StatSpAtk, StatSpDef, StatSpeed}

// Stats holds the six base stats.
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	SpAtk   int `json:"spAtk"`
	SpDef   int `json:"spDef"`
	Speed   int `json:"speed"`
}

// Vector returns the stats in StatKeys order.
func (s Stats) Vector() [6]int {
	return [6]int{s.HP, s.Attack, s.Defense, s.SpAtk, s.SpDef, s.Speed}
}

// Total returns the sum of the six stats.
func (s Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpAtk + s.SpDef + s.Speed
}

// Pokemon is one validated dataset record.
// Records are shared between snapshots and callers; treat them as read-only.
type Pokemon struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	PrimaryType       Type     `json:"primaryType"`
	SecondaryType     *Type    `json:"secondaryType"`
	Abilities         []string `json:"abilities"`
	Stats             Stats    `json:"stats"`
	BST               int      `json:"bst"`
	Generation        int      `json:"generation"`
	Mean              *float64 `json:"mean,omitempty"`
	StandardDeviation *float64 `json:"standardDeviation,omitempty"`
	ExperienceType    *string  `json:"experienceType,omitempty"`
	ExperienceTo100   *int     `json:"experienceTo100,omitempty"`
	FinalEvolution    *bool    `json:"finalEvolution,omitempty"`
	CatchRate         *int     `json:"catchRate,omitempty"`
	Legendary         bool     `json:"legendary"`
	Mega              *bool    `json:"mega,omitempty"`
	Alolan            *bool    `json:"alolan,omitempty"`
	Galarian          *bool    `json:"galarian,omitempty"`
	Against           Against  `json:"against"`
	Height            *float64 `json:"height,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	BMI               *float64 `json:"bmi,omitempty"`
}

// Types returns the record's primary type followed by its secondary type, if any.
func (p Pokemon) Types() []Type {
	if p.SecondaryType == nil {
		return []Type{p.PrimaryType}
	}
	return []Type{p.PrimaryType, *p.SecondaryType}
}

// ListParams are the inputs of a list query.
// Zero values mean "not set": no search, no legendary filter, default paging.
type ListParams struct {
	Query     string
	Legendary *bool
	Sort      string
	Page      int
	PageSize  int
}

// ListResult is one page of a filtered, sorted list query.
type ListResult struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Data     []Pokemon `json:"data"`
}

// Detail is a record together with its nearest neighbors by base stats.
type Detail struct {
	Pokemon Pokemon   `json:"pokemon"`
	Similar []Pokemon `json:"similar"`
}

// SnapshotInfo describes the currently cached dataset.
type SnapshotInfo struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loadedAt"`
	Checksum string    `json:"checksum,omitempty"`
}
