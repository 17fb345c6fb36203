package handlers

import (
	"fmt"
	"strings"

	"github.com/rowolff/bb-character-sheet/internal/frontend/telnet"
	"github.com/rowolff/bb-character-sheet/internal/game/character"
	"github.com/rowolff/bb-character-sheet/internal/game/command"
	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// RarityColor returns the ANSI color for a rarity tier.
func RarityColor(r gear.Rarity) string {
	switch r {
	case gear.Common:
		return telnet.White
	case gear.Uncommon:
		return telnet.Green
	case gear.Rare:
		return telnet.Blue
	case gear.Epic:
		return telnet.Magenta
	case gear.Legendary:
		return telnet.Yellow
	default:
		return ""
	}
}

// RenderItem formats a generated gun as terminal lines.
//
// Postcondition: the first line is the colored title and rarity.
func RenderItem(it generator.Item) []string {
	color := RarityColor(it.Rarity)
	lines := []string{
		telnet.Colorize(telnet.Bold+color, it.Title()) + "  " + telnet.Colorize(color, "["+string(it.Rarity)+"]"),
	}

	if it.HasStats() {
		s := it.Stats
		lines = append(lines, fmt.Sprintf("  Level %d (band %d-%d)  Range %s  Damage %s",
			it.Level, s.MinLevel, s.MaxLevel, s.Range, s.Damage))
		for _, tier := range s.Tiers() {
			lines = append(lines, fmt.Sprintf("    %s %s",
				telnet.PadRight(tier.Label, 6), renderTier(tier, s.Damage)))
		}
		if s.Bonus != "" {
			lines = append(lines, "  Bonus: "+s.Bonus)
		}
	} else {
		lines = append(lines, fmt.Sprintf("  Level %d  %s", it.Level,
			telnet.Colorize(telnet.Dim, "(no stat block for this weapon)")))
	}

	lines = append(lines, "  Element: "+renderElement(it.Element))
	if info := it.Manufacturer.Info(); info != "" {
		lines = append(lines, fmt.Sprintf("  (%s) %s", it.Manufacturer.Name(), info))
	}
	if flavor := it.Manufacturer.Flavor(it.Rarity); flavor != "" {
		lines = append(lines, "  "+it.Manufacturer.Name()+": "+flavor)
	}
	if it.Prefix != nil {
		lines = append(lines, fmt.Sprintf("  %s: %s", telnet.Colorize(color, it.Prefix.Name), it.Prefix.Effect))
	}
	if it.RedText != nil {
		lines = append(lines, "  "+telnet.Colorize(telnet.Red, fmt.Sprintf("%q %s", it.RedText.Name, it.RedText.Effect)))
	}
	return lines
}

// renderTier shows a tier's hits and crits, and the damage its hits roll
// together when there are any.
func renderTier(t gear.RollTier, damage string) string {
	out := fmt.Sprintf("%d %s, %d %s", t.Hits, plural(t.Hits, "hit"), t.Crits, plural(t.Crits, "crit"))
	if t.Hits > 0 && dice.IsDamageExpression(damage) {
		out += " = " + dice.Scale(damage, t.Hits)
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func renderElement(o gear.ElementalOutcome) string {
	if len(o.Types) == 1 && o.IsKinetic() {
		return telnet.Colorize(telnet.Dim, o.String())
	}
	return telnet.Colorize(telnet.Cyan, o.String())
}

// RenderElementRoll formats a standalone elemental roll.
func RenderElementRoll(r gear.Rarity, bonus int, o gear.ElementalOutcome) string {
	return fmt.Sprintf("%s elemental roll (bonus %+d): %s",
		telnet.Colorize(RarityColor(r), string(r)), bonus, renderElement(o))
}

// RenderLoot formats the piles dropped for a rank.
func RenderLoot(rank int, piles []string) []string {
	lines := []string{telnet.Colorize(telnet.BrightYellow, fmt.Sprintf("Loot for rank %d: %d %s", rank, len(piles), plural(len(piles), "pile")))}
	for i, p := range piles {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, p))
	}
	return lines
}

// RenderRoll formats a dice roll.
func RenderRoll(r dice.RollResult) string {
	return fmt.Sprintf("%s %v %+d = %s", r.Expression, r.Dice, r.Modifier,
		telnet.Colorize(telnet.BrightWhite, fmt.Sprint(r.Total())))
}

// RenderSheet formats a character sheet as an attribute table.
//
// Precondition: s is non-nil.
func RenderSheet(s *character.Sheet) []string {
	name := s.Name
	if name == "" {
		name = "Unnamed Vault Hunter"
	}
	header := telnet.Colorize(telnet.BrightWhite, name)
	if s.Class != nil {
		header += "  " + s.Class.Name
	}
	if s.Archetype != nil {
		header += " / " + s.Archetype.Name
	}
	lines := []string{header, telnet.Colorize(telnet.Dim, "  Attribute       Base  Total  Mod")}
	for _, row := range s.Rows() {
		label := fmt.Sprintf("%s (%s)", row.Label.Name, row.Label.Shorthand)
		lines = append(lines, fmt.Sprintf("  %s %4d  %5d  %+3d",
			telnet.PadRight(label, 15), row.Base, row.Total, row.Mod))
	}
	return lines
}

// RenderHelp lists commands grouped by category.
func RenderHelp(reg *command.Registry) []string {
	byCat := reg.CommandsByCategory()
	var lines []string
	for _, cat := range command.CategoryOrder() {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		lines = append(lines, telnet.Colorize(telnet.BrightYellow, strings.ToUpper(cat)))
		for _, c := range cmds {
			name := c.Name
			if len(c.Aliases) > 0 {
				name += " (" + strings.Join(c.Aliases, ", ") + ")"
			}
			lines = append(lines, fmt.Sprintf("  %s %s", telnet.PadRight(telnet.Colorize(telnet.Cyan, name), 18), c.Help))
			if c.Usage != "" {
				lines = append(lines, "  "+strings.Repeat(" ", 18)+telnet.Colorize(telnet.Dim, "usage: "+c.Usage))
			}
		}
	}
	return lines
}

// RenderList prints one catalog.
func RenderList(topic command.ListTopic, tables *gear.Tables, rules *ruleset.Registry) []string {
	var lines []string
	switch topic {
	case command.ListWeapons:
		for _, w := range tables.Weapons() {
			lines = append(lines, fmt.Sprintf("  %s %s (range %s)", telnet.PadRight(w.Key, 14), w.Name, w.Range))
		}
	case command.ListManufacturers:
		for _, m := range tables.Manufacturers() {
			lines = append(lines, fmt.Sprintf("  %s %s, elemental %s", telnet.PadRight(m.Key, 14), m.Name, m.Rule))
		}
	case command.ListRarities:
		for _, r := range gear.Rarities() {
			lines = append(lines, "  "+telnet.Colorize(RarityColor(r), string(r)))
		}
	case command.ListClasses:
		for _, c := range rules.Classes() {
			lines = append(lines, fmt.Sprintf("  %s %s", telnet.PadRight(c.ID, 16), c.Name))
		}
	case command.ListArchetypes:
		for _, a := range rules.Archetypes() {
			lines = append(lines, fmt.Sprintf("  %s %s", telnet.PadRight(a.ID, 16), a.Name))
		}
	}
	return lines
}

// RenderError formats an error message in red.
func RenderError(msg string) string {
	return telnet.Colorize(telnet.Red, msg)
}
