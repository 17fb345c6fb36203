package api

import (
	"net/url"
	"strconv"
	"strings"
)

// GunRequest is the query of GET /api/v1/guns. Empty fields are left to
// the tables.
type GunRequest struct {
	Type         string `query:"type" validate:"omitempty,weapon"`
	Manufacturer string `query:"manufacturer" validate:"omitempty,manufacturer"`
	Rarity       string `query:"rarity" validate:"omitempty,rarity"`
	Level        int    `query:"level" validate:"min=1,max=30"`
}

// LootRequest is the query of GET /api/v1/loot.
type LootRequest struct {
	Rank int `query:"rank" validate:"required,min=1,max=100"`
}

// ElementRequest is the query of GET /api/v1/elements.
type ElementRequest struct {
	Rarity string `query:"rarity" validate:"required,rarity"`
	Bonus  int    `query:"bonus" validate:"min=-100,max=100"`
}

// SheetRequest is the query of GET /api/v1/sheets. Empty IDs mean "none".
type SheetRequest struct {
	Name      string `query:"name" validate:"max=64"`
	Class     string `query:"class" validate:"omitempty,class"`
	Archetype string `query:"archetype" validate:"omitempty,archetype"`
}

// queryReader collects number-format errors while reading a query, so
// they can be reported together with validation failures.
type queryReader struct {
	values url.Values
	errs   map[string]string
}

func newQueryReader(values url.Values) *queryReader {
	return &queryReader{values: values, errs: make(map[string]string)}
}

func (q *queryReader) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

// intOr returns def when key is absent.
func (q *queryReader) intOr(key string, def int) int {
	raw := q.str(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimPrefix(raw, "+"))
	if err != nil {
		q.errs[key] = ErrMsgMustBeNumber
		return def
	}
	return n
}

func decodeGunRequest(values url.Values) (GunRequest, map[string]string) {
	q := newQueryReader(values)
	req := GunRequest{
		Type:         q.str("type"),
		Manufacturer: q.str("manufacturer"),
		Rarity:       q.str("rarity"),
		Level:        q.intOr("level", 1),
	}
	return req, q.errs
}

func decodeLootRequest(values url.Values) (LootRequest, map[string]string) {
	q := newQueryReader(values)
	return LootRequest{Rank: q.intOr("rank", 0)}, q.errs
}

func decodeElementRequest(values url.Values) (ElementRequest, map[string]string) {
	q := newQueryReader(values)
	return ElementRequest{Rarity: q.str("rarity"), Bonus: q.intOr("bonus", 0)}, q.errs
}

func decodeSheetRequest(values url.Values) (SheetRequest, map[string]string) {
	q := newQueryReader(values)
	return SheetRequest{Name: q.str("name"), Class: q.str("class"), Archetype: q.str("archetype")}, q.errs
}
