package classify

import (
	"strings"

	"callscout-engine/internal/domain"
)

// Keyword table mapping each development goal to the terms that flag it.
// Source pages are a mix of Spanish (ministries) and English (international
// portals), so both are listed.
var goalKeywords = map[domain.Goal][]string{
	1:  {"pobreza", "pobres", "poverty"},
	2:  {"hambre", "alimentación", "agricultura", "hunger", "agriculture", "food security"},
	3:  {"salud", "bienestar", "enfermedad", "health", "disease", "wellbeing"},
	4:  {"educación", "escuela", "universidad", "education", "school", "university"},
	5:  {"igualdad de género", "mujer", "género", "gender", "women"},
	6:  {"agua", "saneamiento", "hidráulica", "water", "sanitation"},
	7:  {"energía", "renovable", "electrificación", "energy", "renewable"},
	8:  {"trabajo", "empleo", "economía", "employment", "economic growth"},
	9:  {"industria", "innovación", "infraestructura", "tecnología", "industry", "innovation", "infrastructure", "technology"},
	10: {"desigualdad", "inclusión", "migración", "inequality", "inclusion", "migration"},
	11: {"ciudades", "comunidades", "urbanismo", "cities", "urban"},
	12: {"consumo", "producción", "residuos", "consumption", "waste"},
	13: {"clima", "cambio climático", "carbono", "climate", "carbon"},
	14: {"océano", "mar", "pesca", "ocean", "marine", "fisheries"},
	15: {"ecosistema", "bosque", "biodiversidad", "ecosystem", "forest", "biodiversity"},
	16: {"paz", "justicia", "instituciones", "peace", "justice", "institutions"},
	17: {"alianzas", "cooperación", "financiación", "partnership", "cooperation"},
}

// Goals scans a summary for keywords associated with each of the 17 goals
// and returns the matching tags in ascending order. An empty or unmatched
// summary yields the GoalUnknown sentinel.
func Goals(summary string) []domain.Goal {
	if strings.TrimSpace(summary) == "" {
		return []domain.Goal{domain.GoalUnknown}
	}
	text := strings.ToLower(summary)
	var matched []domain.Goal
	for g := domain.Goal(1); g <= 17; g++ {
		for _, kw := range goalKeywords[g] {
			if strings.Contains(text, kw) {
				matched = append(matched, g)
				break
			}
		}
	}
	return domain.NormalizeGoals(matched)
}
