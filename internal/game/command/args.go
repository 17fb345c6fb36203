package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
)

// DefaultLevel is used by "gun" when no level is given.
const DefaultLevel = 1

// ParseGunArgs builds generator constraints from "gun" arguments. Options
// are type (or weapon), maker (or manufacturer), rarity and level; a bare
// number is taken as the level.
//
// Postcondition: Returns constraints or an error naming the bad argument.
func ParseGunArgs(tables *gear.Tables, args []string) (generator.Constraints, error) {
	opts, positional := Options(args)
	c := generator.Constraints{Level: DefaultLevel}

	for _, p := range positional {
		n, err := strconv.Atoi(p)
		if err != nil {
			return c, fmt.Errorf("unexpected argument %q", p)
		}
		c.Level = n
	}

	for key, value := range opts {
		switch key {
		case "type", "weapon":
			w, err := tables.ParseWeapon(value)
			if err != nil {
				return c, err
			}
			c.Weapon = &w
		case "maker", "manufacturer":
			m, err := tables.ParseManufacturer(value)
			if err != nil {
				return c, err
			}
			c.Manufacturer = &m
		case "rarity":
			r, err := gear.ParseRarity(value)
			if err != nil {
				return c, err
			}
			c.Rarity = r
		case "level":
			n, err := strconv.Atoi(value)
			if err != nil {
				return c, fmt.Errorf("level must be a number, got %q", value)
			}
			c.Level = n
		default:
			return c, fmt.Errorf("unknown option %q", key)
		}
	}

	if c.Level < gear.MinLevel || c.Level > gear.MaxLevel {
		return c, fmt.Errorf("level must be %d-%d, got %d", gear.MinLevel, gear.MaxLevel, c.Level)
	}
	return c, nil
}

// ParseRank reads the single rank argument of "loot". Out-of-range ranks
// are accepted; the loot generator clamps them.
func ParseRank(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: loot <rank>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("rank must be a number, got %q", args[0])
	}
	return n, nil
}

// ParseElementArgs reads "<rarity> [bonus]".
func ParseElementArgs(args []string) (gear.Rarity, int, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", 0, errors.New("usage: element <rarity> [bonus]")
	}
	r, err := gear.ParseRarity(args[0])
	if err != nil {
		return "", 0, err
	}
	bonus := 0
	if len(args) == 2 {
		bonus, err = strconv.Atoi(strings.TrimPrefix(args[1], "+"))
		if err != nil {
			return "", 0, fmt.Errorf("bonus must be a number, got %q", args[1])
		}
	}
	return r, bonus, nil
}

// ParseRollArgs joins the arguments into one dice expression, so
// "roll 2d6 + 3" works.
func ParseRollArgs(args []string) (dice.Expression, error) {
	if len(args) == 0 {
		return dice.Expression{}, errors.New("usage: roll <dice>")
	}
	return dice.Parse(strings.Join(args, ""))
}

// SheetRequest names the class and archetype for "sheet".
type SheetRequest struct {
	Name      string
	Class     string
	Archetype string
}

// ParseSheetArgs reads "<class> [archetype] [name=<name>]". Class and
// archetype may also be given as class= and archetype= options.
func ParseSheetArgs(args []string) (SheetRequest, error) {
	opts, positional := Options(args)
	var req SheetRequest
	if len(positional) > 2 {
		return req, errors.New("usage: sheet <class> [archetype] [name=<name>]")
	}
	if len(positional) > 0 {
		req.Class = positional[0]
	}
	if len(positional) > 1 {
		req.Archetype = positional[1]
	}
	for key, value := range opts {
		switch key {
		case "name":
			req.Name = value
		case "class":
			req.Class = value
		case "archetype", "arch":
			req.Archetype = value
		default:
			return req, fmt.Errorf("unknown option %q", key)
		}
	}
	return req, nil
}

// ListTopic is a catalog that "list" can print.
type ListTopic string

// List topics.
const (
	ListWeapons       ListTopic = "types"
	ListManufacturers ListTopic = "makers"
	ListRarities      ListTopic = "rarities"
	ListClasses       ListTopic = "classes"
	ListArchetypes    ListTopic = "archetypes"
)

// ListTopics returns every topic in display order.
func ListTopics() []ListTopic {
	return []ListTopic{ListWeapons, ListManufacturers, ListRarities, ListClasses, ListArchetypes}
}

// ParseListTopic reads the topic of "list". A few synonyms are accepted.
func ParseListTopic(args []string) (ListTopic, error) {
	if len(args) != 1 {
		return "", errors.New("usage: list <types|makers|rarities|classes|archetypes>")
	}
	switch strings.ToLower(args[0]) {
	case "types", "type", "weapons":
		return ListWeapons, nil
	case "makers", "maker", "manufacturers":
		return ListManufacturers, nil
	case "rarities", "rarity":
		return ListRarities, nil
	case "classes", "class":
		return ListClasses, nil
	case "archetypes", "archetype":
		return ListArchetypes, nil
	}
	return "", fmt.Errorf("unknown list %q", args[0])
}
