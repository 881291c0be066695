package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/llm"
	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/baselomar044-dev/qs-empire/internal/notify"
	"github.com/baselomar044-dev/qs-empire/internal/pipeline"
	"github.com/baselomar044-dev/qs-empire/internal/store"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers exposes the application's HTTP surface
type Handlers struct {
	config        *config.Config
	pipeline      *pipeline.Service
	opportunities store.OpportunityStore
	agent         *llm.Agent
	notifier      notify.NotificationInterface
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	cfg *config.Config,
	pipelineService *pipeline.Service,
	opportunities store.OpportunityStore,
	agent *llm.Agent,
	notifier notify.NotificationInterface,
) *Handlers {
	return &Handlers{
		config:        cfg,
		pipeline:      pipelineService,
		opportunities: opportunities,
		agent:         agent,
		notifier:      notifier,
	}
}

// Register wires all API routes onto the router
func (h *Handlers) Register(router *mux.Router) {
	router.Use(corsMiddleware)
	router.MethodNotAllowedHandler = methodNotAllowedHandler()

	router.HandleFunc("/api/search", h.searchHandler).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/cron", h.cronHandler).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/chat", h.chatHandler).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/email", h.emailHandler).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/opportunities", h.opportunitiesHandler).Methods("GET", "OPTIONS")
}

// searchHandler runs the pipeline on demand without persisting or notifying
// and returns the discovered opportunities directly.
func (h *Handlers) searchHandler(w http.ResponseWriter, r *http.Request) {
	_, records, err := h.pipeline.Run(r.Context(), pipeline.Options{})
	if err != nil {
		logrus.Errorf("Search error: %v", err)
		writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	if records == nil {
		records = []models.Opportunity{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"count":         len(records),
		"opportunities": records,
		"searchedAt":    time.Now().Format(time.RFC3339),
	})
}

// cronHandler runs the full daily job: search, classify, persist, notify
func (h *Handlers) cronHandler(w http.ResponseWriter, r *http.Request) {
	summary, _, err := h.pipeline.Run(r.Context(), pipeline.Options{
		Recipient: h.config.OwnerEmail,
		Persist:   true,
		Notify:    true,
	})
	if err != nil {
		logrus.Errorf("Cron job error: %v", err)
		writeError(w, http.StatusInternalServerError, "Cron job failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daily job completed successfully",
		"stats": map[string]interface{}{
			"searched":      summary.Searched,
			"relevant":      summary.Relevant,
			"emailSent":     summary.EmailSent,
			"githubUpdated": summary.GithubUpdated,
			"dbSaved":       summary.DBSaved,
		},
	})
}

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// chatHandler proxies one user message to the AI agent persona
func (h *Handlers) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	reply, err := h.agent.Reply(r.Context(), req.Message, req.Language)
	if err != nil {
		logrus.Errorf("Chat error: %v", err)
		writeError(w, http.StatusInternalServerError, "Agent processing failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reply":   reply,
		"model":   llm.AgentModelName,
	})
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// emailHandler sends one raw HTML email, defaulting to the owner recipient
func (h *Handlers) emailHandler(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	to := req.To
	if to == "" {
		to = h.config.OwnerEmail
	}
	subject := req.Subject
	if subject == "" {
		subject = "🏗️ QS Empire Report"
	}
	body := req.Body
	if body == "" {
		body = "<p>No content</p>"
	}

	messageID, err := h.notifier.SendEmail(to, subject, body)
	if err != nil {
		logrus.Errorf("Email error: %v", err)
		writeError(w, http.StatusInternalServerError, "Email delivery failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"messageId": messageID,
		"sentTo":    to,
	})
}

// opportunityView reshapes a stored record for the dashboard
type opportunityView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	Budget      string `json:"budget"`
	SuccessRate int    `json:"successRate"`
	Status      string `json:"status"`
	URL         string `json:"url"`
	Proposal    string `json:"proposal"`
	Posted      string `json:"posted"`
}

// opportunitiesHandler returns the persisted collection, newest first
func (h *Handlers) opportunitiesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.opportunities.List(r.Context())
	if err != nil {
		logrus.Errorf("Database error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch opportunities", err.Error())
		return
	}

	views := make([]opportunityView, 0, len(records))
	for _, opp := range records {
		views = append(views, newOpportunityView(opp))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"count":         len(views),
		"opportunities": views,
		"updatedAt":     time.Now().Format(time.RFC3339),
	})
}

func newOpportunityView(opp models.Opportunity) opportunityView {
	budget := opp.Budget
	if budget == "" {
		budget = pipeline.DefaultBudget
	}
	successRate := opp.SuccessRate
	if successRate == 0 {
		successRate = pipeline.DefaultSuccessRate
	}

	posted := opp.FoundDate
	if t, err := time.Parse("2006-01-02", opp.FoundDate); err == nil {
		posted = t.Format("Jan 2, 2006")
	}

	return opportunityView{
		ID:          opp.ID,
		Title:       opp.Title,
		Platform:    opp.Platform,
		Budget:      budget,
		SuccessRate: successRate,
		Status:      opp.Status,
		URL:         opp.Link,
		Proposal:    opp.Proposal,
		Posted:      posted,
	}
}
