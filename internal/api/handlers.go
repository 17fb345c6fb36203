package api

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/game/character"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/game/loot"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// Handlers serves the JSON endpoints over the shared generators.
type Handlers struct {
	guns     *generator.Generator
	loot     *loot.Generator
	rules    *ruleset.Registry
	sheets   *character.Builder
	validate *Validator
	logger   *zap.Logger
}

// NewHandlers builds the endpoint handlers.
//
// Precondition: all arguments are non-nil.
func NewHandlers(guns *generator.Generator, lootGen *loot.Generator, rules *ruleset.Registry, logger *zap.Logger) *Handlers {
	return &Handlers{
		guns:     guns,
		loot:     lootGen,
		rules:    rules,
		sheets:   character.NewBuilder(rules),
		validate: NewValidator(guns.Tables(), rules),
		logger:   logger,
	}
}

// check merges decode errors with struct validation and writes a 400 when
// either fails. It reports whether the handler may continue.
func (h *Handlers) check(w http.ResponseWriter, req any, decodeErrs map[string]string) bool {
	fields := make(map[string]string, len(decodeErrs))
	if err := h.validate.ValidateStruct(req); err != nil {
		for k, v := range FormatValidationError(err) {
			fields[k] = v
		}
	}
	// Decode errors win: a bad number also fails its range check.
	for k, v := range decodeErrs {
		fields[k] = v
	}
	if len(fields) == 0 {
		return true
	}
	respondValidation(w, h.logger, fields)
	return false
}

// HandleHealthz is the liveness check.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, HealthResponse{Status: HealthStatusOK})
}

// HandleGun rolls one gun.
func (h *Handlers) HandleGun(w http.ResponseWriter, r *http.Request) {
	req, decodeErrs := decodeGunRequest(r.URL.Query())
	if !h.check(w, req, decodeErrs) {
		return
	}

	tables := h.guns.Tables()
	c := generator.Constraints{Level: req.Level}
	// Validation guarantees the parses below succeed.
	if req.Type != "" {
		ws, _ := tables.ParseWeapon(req.Type)
		c.Weapon = &ws
	}
	if req.Manufacturer != "" {
		ms, _ := tables.ParseManufacturer(req.Manufacturer)
		c.Manufacturer = &ms
	}
	if req.Rarity != "" {
		c.Rarity, _ = gear.ParseRarity(req.Rarity)
	}

	item := h.guns.Generate(c)
	respondJSON(w, h.logger, http.StatusOK, NewGunResponse(uuid.New(), item))
}

// HandleLoot rolls loot piles for a rank.
func (h *Handlers) HandleLoot(w http.ResponseWriter, r *http.Request) {
	req, decodeErrs := decodeLootRequest(r.URL.Query())
	if !h.check(w, req, decodeErrs) {
		return
	}
	respondJSON(w, h.logger, http.StatusOK, LootResponse{Rank: req.Rank, Piles: h.loot.Generate(req.Rank)})
}

// HandleElement rolls on the elemental table.
func (h *Handlers) HandleElement(w http.ResponseWriter, r *http.Request) {
	req, decodeErrs := decodeElementRequest(r.URL.Query())
	if !h.check(w, req, decodeErrs) {
		return
	}
	rarity, _ := gear.ParseRarity(req.Rarity)
	outcome := h.guns.ResolveElemental(rarity, req.Bonus)
	respondJSON(w, h.logger, http.StatusOK, ElementResponse{Rarity: rarity, Bonus: req.Bonus, Element: outcome})
}

// HandleSheet builds a character sheet.
func (h *Handlers) HandleSheet(w http.ResponseWriter, r *http.Request) {
	req, decodeErrs := decodeSheetRequest(r.URL.Query())
	if !h.check(w, req, decodeErrs) {
		return
	}
	sheet, err := h.sheets.Build(req.Name, req.Class, req.Archetype)
	if err != nil {
		h.logger.Error("building validated sheet", zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, ErrMsgInternalError)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, NewSheetResponse(sheet))
}

// HandleCatalog lists weapons, manufacturers, rarities, classes and
// archetypes.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, NewCatalogResponse(h.guns.Tables(), h.rules))
}

// HandleNotFound answers unknown routes in JSON.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, h.logger, http.StatusNotFound, ErrMsgNotFound)
}

// HandleMethodNotAllowed answers known routes with the wrong method.
func (h *Handlers) HandleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, h.logger, http.StatusMethodNotAllowed, ErrMsgMethodNotAllowed)
}
