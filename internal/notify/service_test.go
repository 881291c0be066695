package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		HighSuccessThreshold:   70,
		MediumSuccessThreshold: 50,
		FromAddress:            "QS Empire <onboarding@resend.dev>",
		OwnerEmail:             "owner@example.com",
	}
}

func TestService_Tier(t *testing.T) {
	service := NewService(testConfig())

	tests := []struct {
		rate     int
		expected string
	}{
		{95, "high"},
		{70, "high"},
		{69, "medium"},
		{50, "medium"},
		{49, "low"},
		{0, "low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, service.Tier(tt.rate), "rate %d", tt.rate)
	}
}

func TestService_BuildDigestHTML(t *testing.T) {
	service := NewService(testConfig())

	digest := &models.Digest{
		Date: "Tuesday, June 10, 2025",
		Opportunities: []models.Opportunity{
			{
				ID: "opp_1_aaa", Title: "BOQ for villa", Platform: "Upwork",
				Budget: "$500", SuccessRate: 85, Link: "https://a.com",
				Proposal: "I can deliver in 3 days.",
			},
			{
				ID: "opp_2_bbb", Title: "تسعير تشطيبات", Platform: "Mostaql",
				Budget: "unspecified", SuccessRate: 55, Link: "https://b.com",
				Proposal: "p2", Warning: "الميزانية غير واضحة",
			},
			{
				ID: "opp_3_ccc", Title: "audit", Platform: "Freelancer",
				Budget: "$50", SuccessRate: 30, Link: "https://c.com", Proposal: "p3",
			},
		},
		TotalCount: 3,
		HighCount:  1,
	}

	html, err := service.BuildDigestHTML(digest)
	require.NoError(t, err)

	assert.Contains(t, html, "Tuesday, June 10, 2025")
	assert.Contains(t, html, "1. BOQ for villa")
	assert.Contains(t, html, "2. تسعير تشطيبات")
	assert.Contains(t, html, "3. audit")

	// Badge tiers follow the configured thresholds.
	assert.Contains(t, html, `success-rate high`)
	assert.Contains(t, html, `success-rate medium`)
	assert.Contains(t, html, `success-rate low`)

	// Warning banner only renders when present.
	assert.Contains(t, html, "الميزانية غير واضحة")

	assert.Contains(t, html, `href="https://a.com"`)
	assert.Contains(t, html, "I can deliver in 3 days.")
}

func TestService_BuildDigestHTML_Empty(t *testing.T) {
	service := NewService(testConfig())

	html, err := service.BuildDigestHTML(&models.Digest{Date: "Monday, June 9, 2025"})
	require.NoError(t, err)

	assert.Contains(t, html, "لم يتم العثور على فرص جديدة اليوم")
	assert.NotContains(t, html, `<div class="opportunity">`)
}

func TestService_SendEmail_ViaAPI(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ResendAPIKey = "test-key"
	cfg.ResendBaseURL = server.URL
	service := NewService(cfg)

	id, err := service.SendEmail("owner@example.com", "subject", "<p>hi</p>")

	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
	assert.Equal(t, "QS Empire <onboarding@resend.dev>", captured["from"])
	assert.Equal(t, []interface{}{"owner@example.com"}, captured["to"])
	assert.Equal(t, "subject", captured["subject"])
	assert.Equal(t, "<p>hi</p>", captured["html"])
}

func TestService_SendEmail_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"invalid recipient"}}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ResendAPIKey = "test-key"
	cfg.ResendBaseURL = server.URL
	service := NewService(cfg)

	_, err := service.SendEmail("bad", "s", "<p></p>")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestService_SendDigest(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"id":"msg_456"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ResendAPIKey = "test-key"
	cfg.ResendBaseURL = server.URL
	service := NewService(cfg)

	digest := &models.Digest{
		Date:          "Tuesday, June 10, 2025",
		Opportunities: []models.Opportunity{{Title: "BOQ job", SuccessRate: 90}},
		TotalCount:    1,
		HighCount:     1,
	}

	err := service.SendDigest(digest, "owner@example.com")

	require.NoError(t, err)
	subject := captured["subject"].(string)
	assert.Contains(t, subject, "QS Empire")
	assert.Contains(t, subject, "Tuesday, June 10, 2025")
	assert.Contains(t, captured["html"].(string), "BOQ job")
}
