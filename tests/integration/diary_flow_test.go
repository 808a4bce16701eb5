package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestDiaryFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "diary@example.com", "password123")

	// The built-in meal types are available right away.
	rec := app.request("GET", "/api/v1/meals/types", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list meal types failed: %d %s", rec.Code, rec.Body.String())
	}

	// Create a food to log.
	rec = app.request("POST", "/api/v1/foods", `{"name":"Rolled Oats","brand":"Acme","servingSizeValue":30,"servingSizeUnit":"g"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create food failed: %d %s", rec.Code, rec.Body.String())
	}
	food := parseJSON(t, rec)
	foodID := food["id"].(float64)

	// Find the Breakfast meal type id.
	var breakfastID float64
	{
		rec := app.request("GET", "/api/v1/meals/types", "", token)
		var types []interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
			t.Fatalf("failed to parse meal types: %v", err)
		}
		for _, raw := range types {
			mt := raw.(map[string]interface{})
			if mt["name"] == "Breakfast" {
				breakfastID = mt["id"].(float64)
			}
		}
	}
	if breakfastID == 0 {
		t.Fatal("expected a built-in Breakfast meal type")
	}

	// Log the food for breakfast.
	body := fmt.Sprintf(`{"date":"2024-05-12","mealTypeId":%.0f,"foodId":%.0f,"quantityValue":60,"quantityUnit":"g","note":"with milk"}`, breakfastID, foodID)
	rec = app.request("POST", "/api/v1/diary/entries", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add entry failed: %d %s", rec.Code, rec.Body.String())
	}
	entry := parseJSON(t, rec)
	entryID := entry["id"].(float64)

	// The day shows the entry with its food.
	rec = app.request("GET", "/api/v1/diary/2024-05-12", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get diary day failed: %d %s", rec.Code, rec.Body.String())
	}
	day := parseJSON(t, rec)
	entries := day["entries"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	first := entries[0].(map[string]interface{})
	if first["food"].(map[string]interface{})["name"] != "Rolled Oats" {
		t.Error("expected the food preloaded on the entry")
	}

	// Edit then delete the entry.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/diary/entries/%.0f", entryID), `{"quantityValue":80}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update entry failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/diary/entries/%.0f", entryID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete entry failed: %d %s", rec.Code, rec.Body.String())
	}

	t.Run("bad date", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/diary/May-12", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestFoodSearchAndFavorites(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "foods@example.com", "password123")

	for _, name := range []string{"Apple", "Apple Juice", "Banana"} {
		body := fmt.Sprintf(`{"name":%q}`, name)
		rec := app.request("POST", "/api/v1/foods", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create food failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("GET", "/api/v1/foods?q=apple", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("search failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 2 {
		t.Errorf("expected 2 matches, got %v", result["total_items"])
	}

	// Favorite the first hit via an alias.
	items := result["data"].([]interface{})
	foodID := items[0].(map[string]interface{})["id"].(float64)
	rec = app.request("PUT", fmt.Sprintf("/api/v1/foods/%.0f/alias", foodID), `{"alias":"my apple","isFavorite":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set alias failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/foods/favorites", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("favorites failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestShareFlow(t *testing.T) {
	app := setupApp(t)
	ownerToken, _ := app.registerUser(t, "owner@example.com", "password123")
	_, _ = app.registerUser(t, "partner@example.com", "password123")

	rec := app.request("POST", "/api/v1/shares", `{"targetEmail":"partner@example.com","scope":"view","scopeType":"meal","label":"family"}`, ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create share failed: %d %s", rec.Code, rec.Body.String())
	}
	share := parseJSON(t, rec)
	shareID := share["id"].(float64)

	t.Run("self share rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/shares", `{"targetEmail":"owner@example.com","scopeType":"meal"}`, ownerToken)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/shares", `{"targetEmail":"partner@example.com","scopeType":"meal"}`, ownerToken)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	rec = app.request("GET", "/api/v1/shares", "", ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list shares failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if len(result["granted"].([]interface{})) != 1 {
		t.Error("expected 1 granted share")
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/shares/%.0f", shareID), "", ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke share failed: %d %s", rec.Code, rec.Body.String())
	}
}
