package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	httpadapter "github.com/lftbrito/bip-teste-integrado/internal/adapter/http"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/dto"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/handler"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/idgen"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/repository/memory"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore(time.Second)
	strategy := usecase.NewOptimisticStrategy(store, 10, usecase.NoBackoff(), nil)
	transferUC := usecase.NewTransferUseCase(strategy, nil)
	benefitUC := usecase.NewBenefitUseCase(store, idgen.NewULIDGenerator(), usecase.NewRetrier(), nil)

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		BenefitHandler:  handler.NewBenefitHandler(benefitUC),
		TransferHandler: handler.NewTransferHandler(transferUC),
		HealthHandler:   handler.NewHealthHandler(nil),
		Logger:          zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func createBenefit(t *testing.T, srv *httptest.Server, name string, amount int64) dto.BenefitResponse {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"amount":"%d"}`, name, amount)
	resp, err := http.Post(srv.URL+"/api/v1/benefits", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create benefit: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var benefit dto.BenefitResponse
	if err := json.NewDecoder(resp.Body).Decode(&benefit); err != nil {
		t.Fatalf("decode benefit: %v", err)
	}

	return benefit
}

func TestRouter_BenefitLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createBenefit(t, srv, "Meal voucher", 500)
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if !created.Active || created.Version != 1 {
		t.Errorf("unexpected new benefit state: %+v", created)
	}

	// Duplicate name conflicts.
	body := `{"name":"Meal voucher","amount":"10"}`
	resp, err := http.Post(srv.URL+"/api/v1/benefits", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate name, got %d", resp.StatusCode)
	}

	// Get by id.
	resp, err = http.Get(srv.URL + "/api/v1/benefits/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	var fetched dto.BenefitResponse
	json.NewDecoder(resp.Body).Decode(&fetched)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || fetched.ID != created.ID {
		t.Errorf("get returned %d / %+v", resp.StatusCode, fetched)
	}

	// Unknown id is a 404.
	resp, err = http.Get(srv.URL + "/api/v1/benefits/does-not-exist")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	// Update.
	update := `{"name":"Meal voucher","description":"lunch","amount":"750"}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/benefits/"+created.ID, strings.NewReader(update))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var updated dto.BenefitResponse
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update returned %d", resp.StatusCode)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(750)) || updated.Version != 2 {
		t.Errorf("unexpected updated benefit: %+v", updated)
	}

	// Soft delete.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/benefits/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}

	// Deactivated benefits drop off the active listing but not the full one.
	resp, err = http.Get(srv.URL + "/api/v1/benefits/active")
	if err != nil {
		t.Fatal(err)
	}
	var active []dto.BenefitResponse
	json.NewDecoder(resp.Body).Decode(&active)
	resp.Body.Close()
	if len(active) != 0 {
		t.Errorf("expected no active benefits, got %d", len(active))
	}

	resp, err = http.Get(srv.URL + "/api/v1/benefits")
	if err != nil {
		t.Fatal(err)
	}
	var all []dto.BenefitResponse
	json.NewDecoder(resp.Body).Decode(&all)
	resp.Body.Close()
	if len(all) != 1 {
		t.Errorf("expected 1 benefit in full listing, got %d", len(all))
	}
}

func TestRouter_Transfer(t *testing.T) {
	srv := newTestServer(t)

	source := createBenefit(t, srv, "Source", 100)
	destination := createBenefit(t, srv, "Destination", 20)

	body := fmt.Sprintf(`{"source_id":%q,"destination_id":%q,"amount":"30"}`, source.ID, destination.ID)
	resp, err := http.Post(srv.URL+"/api/v1/transfers", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result dto.TransferResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !result.Success || result.Detail == nil {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !result.Detail.SourceBalanceAfter.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected source after 70, got %s", result.Detail.SourceBalanceAfter)
	}
	if !result.Detail.DestinationBalanceAfter.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected destination after 50, got %s", result.Detail.DestinationBalanceAfter)
	}
	if result.Detail.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestRouter_TransferFailures(t *testing.T) {
	srv := newTestServer(t)

	source := createBenefit(t, srv, "Source", 10)
	destination := createBenefit(t, srv, "Destination", 0)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "insufficient balance",
			body:       fmt.Sprintf(`{"source_id":%q,"destination_id":%q,"amount":"500"}`, source.ID, destination.ID),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown source",
			body:       fmt.Sprintf(`{"source_id":"missing","destination_id":%q,"amount":"5"}`, destination.ID),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing amount",
			body:       fmt.Sprintf(`{"source_id":%q,"destination_id":%q}`, source.ID, destination.ID),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/transfers", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s returned %d", path, resp.StatusCode)
		}
	}
}
