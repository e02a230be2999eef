package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

func TestResolveRelation(t *testing.T) {
	tests := []struct {
		key  string
		want domain.Relation
	}{
		{"mother", domain.Mother},
		{"maternal_aunt_1700000000000", domain.MaternalAunt},
		{"paternal_half_brother_42", domain.PaternalHalfBrother},
		{"immediate_Moeder_1700000000000", domain.Mother},
		{"immediate_sister_1700000000000", domain.Sister},
		{"maternal_Tante_17", domain.MaternalAunt},
		{"paternal_oma_17", domain.PaternalGrandmother},
		{"maternal_half-sister", domain.MaternalHalfSister},
		{"paternal_Oma (vaderskant)_1700000000000", domain.PaternalGrandmother},
		{"Tante (moederskant)", domain.MaternalAunt},
		{"Half-brother (paternal side)", domain.PaternalHalfBrother},
		{"Father", domain.Father},
		{"  Zus  ", domain.Sister},
		{"Niemand", domain.NoRelation},
		{"Geen van bovenstaande of onbekend", domain.NoRelation},
		{"none_1700000000000", domain.NoRelation},

		// Unresolvable keys come back with the suffix and immediate prefix stripped.
		{"immediate_cousin_1700000000000", "cousin"},
		{"maternal_cousin_5", "maternal_cousin"},
		{"Neef", "Neef"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRelation(tt.key))
		})
	}
}

func TestResolveRelation_KinshipNeedsSide(t *testing.T) {
	// Side-less kinship words only resolve behind a maternal or paternal prefix.
	assert.Equal(t, domain.Relation("Tante"), ResolveRelation("immediate_Tante_1"))
	assert.Equal(t, domain.Relation("oma"), ResolveRelation("oma"))
}
