package ingest

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// sampleTotal — размер детерминированного корпуса генератора.
const sampleTotal = 120

// SampleSource — детерминированный генератор статей для dev/тестов.
//
// Один и тот же seed всегда даёт один и тот же корпус: тесты могут
// пересеивать хранилище между кейсами и сравнивать выдачу побайтово.
type SampleSource struct {
	seed int64
}

// NewSample создаёт генератор с фиксированным зерном.
func NewSample(seed int64) *SampleSource {
	return &SampleSource{seed: seed}
}

var (
	sampleCategories = []string{"general", "business", "technology", "science", "health", "sports", "entertainment", "environment", "politics"}
	sampleCountries  = []string{"us", "gb", "de", "fr", "ca", "au", "in"}
	sampleTopics     = []string{
		"Climate Summit", "Stock Market", "Election Campaign", "Vaccine Rollout",
		"Space Launch", "Trade Deal", "Wildfire Season", "Tech Regulation",
		"Energy Prices", "Championship Final", "Film Festival", "AI Research",
	}
	sampleVerbs = []string{"Reached", "Stalls", "Rises", "Under Fire", "Explained", "in Numbers", "Takes Off", "Divides Experts"}
)

// Fetch возвращает срез [offset:offset+limit] детерминированного корпуса.
func (s *SampleSource) Fetch(_ context.Context, q FetchQuery) (*Result, error) {
	rng := rand.New(rand.NewSource(s.seed))
	sources := models.DefaultBiasSources()
	base := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	corpus := make([]models.Article, 0, sampleTotal)
	for i := 0; i < sampleTotal; i++ {
		topic := sampleTopics[rng.Intn(len(sampleTopics))]
		verb := sampleVerbs[rng.Intn(len(sampleVerbs))]
		src := sources[rng.Intn(len(sources))]
		category := sampleCategories[rng.Intn(len(sampleCategories))]
		country := sampleCountries[rng.Intn(len(sampleCountries))]
		title := fmt.Sprintf("%s %s", topic, verb)

		corpus = append(corpus, models.Article{
			Title:       title,
			Description: fmt.Sprintf("%s: coverage of %s.", src.Name, strings.ToLower(topic)),
			Content:     fmt.Sprintf("Full report on %s by %s correspondents.", strings.ToLower(topic), src.Name),
			URL:         fmt.Sprintf("https://sample.invalid/articles/%d", i),
			Source:      src.Name,
			Category:    category,
			Country:     country,
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
			FetchedAt:   time.Now().UTC(),
		})
	}

	// Фильтры применяются к корпусу так же, как у настоящего провайдера.
	var filtered []models.Article
	for _, a := range corpus {
		if len(q.Categories) > 0 && !containsFold(q.Categories, a.Category) {
			continue
		}
		if len(q.Countries) > 0 && !containsFold(q.Countries, a.Country) {
			continue
		}
		if q.Keywords != "" && !strings.Contains(strings.ToLower(a.Title+" "+a.Description), strings.ToLower(q.Keywords)) {
			continue
		}
		filtered = append(filtered, a)
	}

	total := int64(len(filtered))

	offset := int(q.Offset)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(filtered) {
		return &Result{Items: []models.Article{}, Total: total}, nil
	}

	end := len(filtered)
	if q.Limit > 0 && offset+int(q.Limit) < end {
		end = offset + int(q.Limit)
	}

	return &Result{Items: filtered[offset:end], Total: total}, nil
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

var _ Source = (*SampleSource)(nil)
