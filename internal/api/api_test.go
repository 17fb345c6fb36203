package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/rowolff/bb-character-sheet/internal/api"
	"github.com/rowolff/bb-character-sheet/internal/config"
	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/game/loot"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
	"github.com/rowolff/bb-character-sheet/internal/observability"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	src := dice.NewSeededSource(3)

	guns := generator.New(gear.Default(), src, logger, generator.WithObserver(metrics))
	lootGen := loot.NewGenerator(loot.Default(), src, logger, metrics)
	h := api.NewHandlers(guns, lootGen, ruleset.Default(), logger)
	return api.NewRouter(h, metrics, reg, logger)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	w := get(t, newRouter(t), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestGun_Constrained(t *testing.T) {
	w := get(t, newRouter(t), "/api/v1/guns?type=sniper_rifle&manufacturer=Black%20Powder&rarity=L&level=15")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode[api.GunResponse](t, w)
	assert.NotEqual(t, uuid.Nil, resp.DropID)
	assert.Equal(t, "SNIPER_RIFLE", resp.Weapon.Key)
	assert.Equal(t, "BLACK_POWDER", resp.Manufacturer.Key)
	assert.Equal(t, gear.Legendary, resp.Rarity)
	assert.Equal(t, 15, resp.Level)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 13, resp.Stats.MinLevel)
	assert.Equal(t, 18, resp.Stats.MaxLevel)
	require.Len(t, resp.Stats.Tiers, 3)
	assert.Equal(t, "8", resp.Stats.Range)
	for _, tier := range resp.Stats.Tiers {
		if tier.Hits > 0 {
			assert.Equal(t, dice.Scale(resp.Stats.Damage, tier.Hits), tier.Damage, tier.Label)
		} else {
			assert.Empty(t, tier.Damage, tier.Label)
		}
	}
	assert.NotEmpty(t, resp.Info)
	assert.NotNil(t, resp.Prefix)
	assert.NotNil(t, resp.RedText)
	assert.NotEmpty(t, resp.Element.Types)
}

func TestGun_DefaultsAndUniqueDropIDs(t *testing.T) {
	router := newRouter(t)
	a := decode[api.GunResponse](t, get(t, router, "/api/v1/guns"))
	b := decode[api.GunResponse](t, get(t, router, "/api/v1/guns"))
	assert.Equal(t, 1, a.Level)
	assert.NotEqual(t, a.DropID, b.DropID)
}

func TestGun_WildcardWeaponHasNullStats(t *testing.T) {
	w := get(t, newRouter(t), "/api/v1/guns?type=choice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stats":null`)
}

func TestGun_ValidationErrors(t *testing.T) {
	w := get(t, newRouter(t), "/api/v1/guns?type=laser&manufacturer=acme&rarity=mythic&level=31")
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[api.ValidationErrorResponse](t, w)
	assert.Equal(t, api.ErrMsgInvalidQuery, resp.Error)
	assert.Equal(t, map[string]string{
		"type":         "Unknown weapon type",
		"manufacturer": "Unknown manufacturer",
		"rarity":       "Unknown rarity",
		"level":        "Must be at most 30",
	}, resp.Fields)
}

func TestGun_LevelNotANumber(t *testing.T) {
	w := get(t, newRouter(t), "/api/v1/guns?level=ten")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[api.ValidationErrorResponse](t, w)
	assert.Equal(t, api.ErrMsgMustBeNumber, resp.Fields["level"])
}

func TestLoot(t *testing.T) {
	router := newRouter(t)

	resp := decode[api.LootResponse](t, get(t, router, "/api/v1/loot?rank=13"))
	assert.Equal(t, 13, resp.Rank)
	assert.Len(t, resp.Piles, 4)

	for target, msg := range map[string]string{
		"/api/v1/loot":          "This field is required",
		"/api/v1/loot?rank=101": "Must be at most 100",
		"/api/v1/loot?rank=-2":  "Must be at least 1",
	} {
		w := get(t, router, target)
		require.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, msg, decode[api.ValidationErrorResponse](t, w).Fields["rank"], target)
	}
}

func TestElements(t *testing.T) {
	router := newRouter(t)

	w := get(t, router, "/api/v1/elements?rarity=epic&bonus=%2B20")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[api.ElementResponse](t, w)
	assert.Equal(t, gear.Epic, resp.Rarity)
	assert.Equal(t, 20, resp.Bonus)
	assert.NotEmpty(t, resp.Element.Types)

	w = get(t, router, "/api/v1/elements")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This field is required", decode[api.ValidationErrorResponse](t, w).Fields["rarity"])
}

func TestSheets(t *testing.T) {
	router := newRouter(t)

	w := get(t, router, "/api/v1/sheets?class=psycho&archetype=enforcer&name=Krieg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[api.SheetResponse](t, w)
	assert.Equal(t, "Krieg", resp.Name)
	assert.Equal(t, "psycho", resp.Class.Key)
	assert.Equal(t, "enforcer", resp.Archetype.Key)
	require.Len(t, resp.Attributes, len(ruleset.AttributeLabels()))
	assert.Equal(t, ruleset.Accuracy, resp.Attributes[0].Label.ID)

	none := decode[api.SheetResponse](t, get(t, router, "/api/v1/sheets"))
	assert.Equal(t, ruleset.NoneID, none.Class.Key)

	w = get(t, router, "/api/v1/sheets?class=wizard")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown class", decode[api.ValidationErrorResponse](t, w).Fields["class"])
}

func TestCatalog(t *testing.T) {
	w := get(t, newRouter(t), "/api/v1/catalog")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[api.CatalogResponse](t, w)
	assert.Len(t, resp.Weapons, len(gear.Default().Weapons()))
	assert.Len(t, resp.Manufacturers, len(gear.Default().Manufacturers()))
	assert.Equal(t, gear.Rarities(), resp.Rarities)
	assert.Len(t, resp.Classes, len(ruleset.Default().Classes()))
	for _, m := range resp.Manufacturers {
		assert.NotNil(t, m.Builds, m.Key)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	router := newRouter(t)

	w := get(t, router, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.ErrMsgNotFound, decode[api.ErrorResponse](t, w).Error)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guns", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t)
	get(t, router, "/api/v1/guns?rarity=rare")
	get(t, router, "/api/v1/loot?rank=3")

	w := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "bbgen_items_generated_total")
	assert.Contains(t, body, "bbgen_loot_piles_total")
	assert.Contains(t, body, `path="/api/v1/guns"`)
}

func TestServer_StartStop(t *testing.T) {
	cfg := config.HTTPConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}
	srv := api.NewServer(cfg, newRouter(t), zap.NewNop())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartFailsOnBadAddr(t *testing.T) {
	srv := api.NewServer(config.HTTPConfig{Host: "256.0.0.1", Port: 1}, http.NotFoundHandler(), zap.NewNop())
	err := srv.Start()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "listening on"))
}
