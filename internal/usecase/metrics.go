package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	editsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_editor_edits_total",
		Help: "Text edits by outcome: applied or the validation error kind.",
	}, []string{"outcome"})

	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_editor_saves_total",
		Help: "Save requests by outcome.",
	}, []string{"outcome"})

	pdfRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_editor_pdf_renders_total",
		Help: "PDF export attempts by outcome.",
	}, []string{"outcome"})
)
