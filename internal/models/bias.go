package models

// BiasSource — запись таблицы предвзятости/надёжности источника.
//
// Особенности:
//   - Name — уникальный ключ; сопоставление регистронезависимое (см. DESIGN.md);
//   - Rating — метка 7-балльной шкалы (far_left … far_right);
//   - Reliability — в канонической шкале [0..1].
type BiasSource struct {
	Name        string
	Rating      string
	Reliability float64
	Description string
}

// Метки 7-балльной шкалы предвзятости.
const (
	RatingFarLeft     = "far_left"
	RatingLeft        = "left"
	RatingCenterLeft  = "center_left"
	RatingCenter      = "center"
	RatingCenterRight = "center_right"
	RatingRight       = "right"
	RatingFarRight    = "far_right"
)

// biasScoreByRating — фиксированная таблица «метка -> каноническая оценка [-1..1]».
var biasScoreByRating = map[string]float64{
	RatingFarLeft:     -1.0,
	RatingLeft:        -0.6,
	RatingCenterLeft:  -0.3,
	RatingCenter:      0.0,
	RatingCenterRight: 0.3,
	RatingRight:       0.6,
	RatingFarRight:    1.0,
}

// BiasScoreForRating переводит метку шкалы в каноническую оценку.
// Неизвестная метка -> (0, false): вызывающий обязан отличать это от
// настоящей центральной оценки.
func BiasScoreForRating(rating string) (float64, bool) {
	score, ok := biasScoreByRating[rating]
	return score, ok
}

// Score возвращает каноническую оценку предвзятости источника.
func (b BiasSource) Score() (float64, bool) {
	return BiasScoreForRating(b.Rating)
}

// CanonicalBias приводит оценку предвзятости из симметричной шкалы
// [-max..max] к канонической [-1..1] с обрезкой по границам.
// Единственная точка конвертации шкал — граница инжеста; внутренняя
// логика от исходной шкалы не зависит.
func CanonicalBias(value, max float64) float64 {
	if max <= 0 {
		return clamp(value, -1, 1)
	}

	return clamp(value/max, -1, 1)
}

// CanonicalReliability приводит надёжность из шкалы [0..max] к [0..1].
func CanonicalReliability(value, max float64) float64 {
	if max <= 0 {
		return clamp(value, 0, 1)
	}

	return clamp(value/max, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// DefaultBiasSources — посев таблицы источников.
// Оценки основаны на общеизвестных media-bias-чартах.
func DefaultBiasSources() []BiasSource {
	return []BiasSource{
		{Name: "CNN", Rating: RatingCenterLeft, Reliability: 0.7, Description: "Cable News Network"},
		{Name: "Fox News", Rating: RatingRight, Reliability: 0.5, Description: "Fox News Channel"},
		{Name: "MSNBC", Rating: RatingLeft, Reliability: 0.6, Description: "American news-based pay television cable channel"},
		{Name: "BBC", Rating: RatingCenter, Reliability: 0.9, Description: "British Broadcasting Corporation"},
		{Name: "Reuters", Rating: RatingCenter, Reliability: 0.95, Description: "International news organization"},
		{Name: "Associated Press", Rating: RatingCenter, Reliability: 0.95, Description: "American non-profit news agency"},
		{Name: "The New York Times", Rating: RatingCenterLeft, Reliability: 0.85, Description: "American daily newspaper"},
		{Name: "The Washington Post", Rating: RatingCenterLeft, Reliability: 0.85, Description: "American daily newspaper, Washington D.C."},
		{Name: "The Wall Street Journal", Rating: RatingCenterRight, Reliability: 0.9, Description: "American business-focused daily newspaper"},
		{Name: "Breitbart", Rating: RatingFarRight, Reliability: 0.3, Description: "American far-right news and opinion website"},
		{Name: "HuffPost", Rating: RatingLeft, Reliability: 0.6, Description: "American news aggregator and blog"},
		{Name: "The Guardian", Rating: RatingCenterLeft, Reliability: 0.8, Description: "British daily newspaper"},
		{Name: "Al Jazeera", Rating: RatingCenter, Reliability: 0.75, Description: "Qatari state-owned news channel"},
		{Name: "NPR", Rating: RatingCenterLeft, Reliability: 0.85, Description: "National Public Radio"},
		{Name: "The Economist", Rating: RatingCenter, Reliability: 0.9, Description: "British weekly newspaper"},
		{Name: "Vox", Rating: RatingLeft, Reliability: 0.7, Description: "American news and opinion website"},
		{Name: "Daily Wire", Rating: RatingRight, Reliability: 0.5, Description: "American conservative news website"},
		{Name: "The Daily Beast", Rating: RatingLeft, Reliability: 0.6, Description: "American news and opinion website"},
	}
}
