package main

import (
	"fmt"
	"os"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/baselomar044-dev/qs-empire/internal/notify"
)

// Renders the digest email with sample opportunities so template changes
// can be checked in a browser without sending anything.
func main() {
	cfg := &config.Config{
		HighSuccessThreshold:   70,
		MediumSuccessThreshold: 50,
	}
	service := notify.NewService(cfg)

	now := time.Now()
	opportunities := []models.Opportunity{
		{
			ID:          "opp_1700000000000_a1b2c3d4e",
			Title:       "حصر كميات لفيلا سكنية G+1",
			Platform:    "Upwork",
			Budget:      "$500-$1000",
			SuccessRate: 85,
			Status:      "new",
			Deadline:    now.AddDate(0, 0, 7).Format("2006-01-02"),
			Link:        "https://www.upwork.com/jobs/~012345",
			Proposal:    "With over 10 years of quantity surveying experience and 300+ completed projects, I can deliver an accurate BOQ for your villa within 3 days.",
			FoundDate:   now.Format("2006-01-02"),
		},
		{
			ID:          "opp_1700000000001_f5g6h7i8j",
			Title:       "تسعير أعمال تشطيبات",
			Platform:    "Mostaql",
			Budget:      "unspecified",
			SuccessRate: 55,
			Status:      "new",
			Deadline:    now.AddDate(0, 0, 7).Format("2006-01-02"),
			Link:        "https://mostaql.com/project/98765",
			Proposal:    "I specialize in finishing works estimation for residential projects across the UAE.",
			Warning:     "الميزانية غير واضحة في الإعلان",
			FoundDate:   now.Format("2006-01-02"),
		},
		{
			ID:          "opp_1700000000002_k9l0m1n2o",
			Title:       "مراجعة مستخلصات مقاول",
			Platform:    "Freelancer",
			Budget:      "$100",
			SuccessRate: 30,
			Status:      "new",
			Deadline:    now.AddDate(0, 0, 7).Format("2006-01-02"),
			Link:        "https://www.freelancer.com/projects/54321",
			Proposal:    "I can audit your contractor payment applications against site measurements.",
			FoundDate:   now.Format("2006-01-02"),
		},
	}

	digest := &models.Digest{
		Date:          now.Format("Monday, January 2, 2006"),
		Opportunities: opportunities,
		TotalCount:    len(opportunities),
		HighCount:     1,
	}

	html, err := service.BuildDigestHTML(digest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	out := "digest_preview.html"
	if err := os.WriteFile(out, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d opportunities)\n", out, len(opportunities))
}
