package classify

import (
	"sync/atomic"

	"github.com/madx-labs/brandpulse/internal/core/domain"
)

// SnapshotHolder hands out the current taxonomy snapshot and swaps refreshed
// snapshots atomically, so no in-flight classification observes a
// half-updated taxonomy.
type SnapshotHolder struct {
	ptr atomic.Pointer[domain.TaxonomySnapshot]
}

// NewSnapshotHolder creates a holder seeded with the given snapshot.
func NewSnapshotHolder(snap *domain.TaxonomySnapshot) *SnapshotHolder {
	h := &SnapshotHolder{}
	h.ptr.Store(snap)

	return h
}

// Current returns the snapshot in effect. The returned value must be treated
// as immutable.
func (h *SnapshotHolder) Current() *domain.TaxonomySnapshot {
	return h.ptr.Load()
}

// Swap replaces the snapshot as a whole. The old snapshot is simply dropped
// once unreferenced.
func (h *SnapshotHolder) Swap(snap *domain.TaxonomySnapshot) {
	h.ptr.Store(snap)
}

// defaultCategoryKeywords is the built-in bilingual taxonomy used when a
// tenant has not configured one.
var defaultCategoryKeywords = []domain.TaxonomyEntry{
	{Category: "Audience & Research", Keywords: []string{"audience", "publico", "target", "investigacion", "research"}},
	{Category: "Motivation & Triggers", Keywords: []string{"motivacion", "motivation", "trigger", "triggers", "detonante", "inspiracion"}},
	{Category: "Parents & Family Concerns", Keywords: []string{"padres", "familia", "parents", "preocupaciones", "concerns", "temores"}},
	{Category: "Competition & Benchmarking", Keywords: []string{"competencia", "competidores", "competitor", "benchmark", "comparacion", "competitive"}},
	{Category: "Brand & Reputation", Keywords: []string{"marca", "brand", "reputacion", "monitoring", "percepcion"}},
	{Category: "Digital Trends & Marketing", Keywords: []string{"tendencias", "trends", "search", "busquedas", "marketing", "digital", "social", "plataformas"}},
	{Category: "Industry & Market", Keywords: []string{"industria", "industry", "mercado", "market", "buzz"}},
	{Category: "Students & Experience", Keywords: []string{"estudiantes", "students", "alumnos", "experiencia", "expectativas", "voice"}},
	{Category: "Innovation & Technology", Keywords: []string{"innovacion", "ia", "ai", "vr", "ar", "tecnologia", "virtual"}},
	{Category: "Employment & Jobs", Keywords: []string{"empleabilidad", "empleo", "empleos", "trabajos", "jobs", "salarios", "salaries", "outcomes"}},
	{Category: "Share of Voice & Monitoring", Keywords: []string{"share of voice", "sov", "voz", "monitoring"}},
	{Category: "Future Outlook & Trends", Keywords: []string{"futuro", "future", "outlook"}},
	{Category: "Partnerships & Collaborations", Keywords: []string{"colaboraciones", "partnerships", "partners", "alianzas"}},
	{Category: "Admissions & Enrollment", Keywords: []string{"admisiones", "admission", "inscripcion", "matricula", "requisitos", "plazos", "solicitud"}},
	{Category: "Scholarships & Cost", Keywords: []string{"becas", "beca", "scholarship", "tuition", "coste", "costo", "precio", "financiacion", "roi"}},
	{Category: "Curriculum & Programs", Keywords: []string{"curriculo", "curriculum", "plan de estudios", "programas", "asignaturas", "grados", "masters"}},
	{Category: "Alumni & Success Stories", Keywords: []string{"alumni", "egresados", "testimonios", "trayectorias", "salidas"}},
	{Category: "Campus & Facilities", Keywords: []string{"campus", "instalaciones", "equipamiento", "platos", "laboratorios", "recursos"}},
	{Category: "Events & Community", Keywords: []string{"eventos", "open day", "jornadas", "ferias", "festival", "comunidad", "networking"}},
}

// defaultPatterns are the phrase patterns complementing keyword scoring.
// Expressions are matched against the normalized (accent-stripped, lowercase)
// combined input text.
var defaultPatterns = []domain.PhrasePattern{
	{Expr: `alumni|casos de exito|testimonios|trayectorias`, Category: "Alumni & Success Stories", Weight: PatternWeight},
	{Expr: `plan de estudios|curriculum|asignaturas|programas`, Category: "Curriculum & Programs", Weight: PatternWeight},
	{Expr: `empleo|empleabilidad|profesiones|trabajo|job market|salar`, Category: "Employment & Jobs", Weight: PatternWeight},
	{Expr: `becas?|precio|coste|costo|financiacion|roi|scholarship|tuition`, Category: "Scholarships & Cost", Weight: PatternWeight},
	{Expr: `competencia|competidores|benchmark`, Category: "Competition & Benchmarking", Weight: PatternWeight},
	{Expr: `marca|reputacion|monitor`, Category: "Brand & Reputation", Weight: PatternWeight},
	{Expr: `tendencias|digital|marketing|redes`, Category: "Digital Trends & Marketing", Weight: PatternWeight},
	{Expr: `campus|instalaciones|recursos`, Category: "Campus & Facilities", Weight: PatternWeight},
	{Expr: `innovacion|tecnologia|\b(ia|ai|vr|ar)\b`, Category: "Innovation & Technology", Weight: PatternWeight},
	{Expr: `estudiantes|experiencia|expectativas`, Category: "Students & Experience", Weight: PatternWeight},
	{Expr: `padres|familia|preocupaciones`, Category: "Parents & Family Concerns", Weight: PatternWeight},
	{Expr: `admisiones?|admission|inscripcion|matricula`, Category: "Admissions & Enrollment", Weight: PatternWeight},
}

// DefaultSnapshot builds the built-in taxonomy snapshot for a tenant.
func DefaultSnapshot(tenant string) *domain.TaxonomySnapshot {
	categories := make([]domain.TaxonomyEntry, len(defaultCategoryKeywords))
	copy(categories, defaultCategoryKeywords)

	for i := range categories {
		categories[i].Tenant = tenant
	}

	patterns := make([]domain.PhrasePattern, len(defaultPatterns))
	copy(patterns, defaultPatterns)

	return &domain.TaxonomySnapshot{Tenant: tenant, Categories: categories, Patterns: patterns}
}
