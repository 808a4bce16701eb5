package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRecurringFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "recurring@example.com", "password123")

	// Create a monthly bill.
	rec := app.request("POST", "/api/v1/budget/recurring", `{"name":"Internet","amount":6500,"frequency":"MONTHLY","dueDay":5}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create recurring failed: %d %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	recurringID := created["id"].(float64)
	if created["next_due_date"] == nil {
		t.Error("expected next due date from due day")
	}
	if created["payment_method"] != "TRANSFER" {
		t.Errorf("expected default payment method, got %v", created["payment_method"])
	}

	// The listing shows it.
	rec = app.request("GET", "/api/v1/budget/recurring", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list recurring failed: %d %s", rec.Code, rec.Body.String())
	}

	// Mark it paid: a log appears and the due date advances.
	rec = app.request("POST", fmt.Sprintf("/api/v1/budget/recurring/%.0f/pay", recurringID), `{"note":"paid online"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("mark paid failed: %d %s", rec.Code, rec.Body.String())
	}
	payment := parseJSON(t, rec)
	log := payment["log"].(map[string]interface{})
	if log["status"] != "PAID" {
		t.Errorf("expected PAID log, got %v", log["status"])
	}
	if log["amount_paid"] == nil {
		t.Error("expected amount paid to default to the recurring amount")
	}

	// The detail endpoint includes the payment history.
	rec = app.request("GET", fmt.Sprintf("/api/v1/budget/recurring/%.0f", recurringID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get recurring failed: %d %s", rec.Code, rec.Body.String())
	}
	detail := parseJSON(t, rec)
	logs := detail["logs"].([]interface{})
	if len(logs) != 1 {
		t.Errorf("expected 1 log, got %d", len(logs))
	}

	// Deactivate removes it from the active listing but keeps history.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/budget/recurring/%.0f", recurringID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/budget/recurring/%.0f", recurringID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected deactivated recurring to stay readable, got %d", rec.Code)
	}
	detail = parseJSON(t, rec)
	if detail["active"] != false {
		t.Error("expected inactive recurring expense")
	}
}

func TestRecurringValidation(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "recval@example.com", "password123")

	t.Run("bad frequency", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/budget/recurring", `{"name":"x","amount":10,"frequency":"DAILY"}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("bad due day", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/budget/recurring", `{"name":"x","amount":10,"dueDay":32}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/budget/recurring/9999/pay", "", token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSavingsFlow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "savings@example.com", "password123")

	rec := app.request("POST", "/api/v1/budget/savings", `{"name":"Vacation","targetAmount":500000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create saving failed: %d %s", rec.Code, rec.Body.String())
	}
	saving := parseJSON(t, rec)
	savingID := saving["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/budget/savings/%.0f/logs", savingID), `{"amount":25000,"note":"first deposit"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add saving log failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/budget/savings", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list savings failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/budget/savings/%.0f", savingID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate saving failed: %d %s", rec.Code, rec.Body.String())
	}
}
