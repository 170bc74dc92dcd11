package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFullSpec(t *testing.T) {
	s := Sample{
		CrystalType:   "X",
		Categories:    StringList{"A", "B"},
		Form:          "F",
		OriginalSize:  "10um",
		ProcessedSize: "5um",
		Nickname:      "N",
	}
	assert.Equal(t, "X A B F - 10um > 5um (N)", s.DeriveName())
}

func TestDeriveNameDropsEmptyConstituents(t *testing.T) {
	s := Sample{CrystalType: "CVD", Form: "powder"}
	assert.Equal(t, "CVD powder", s.DeriveName())

	s = Sample{CrystalType: "CVD", OriginalSize: "10um"}
	assert.Equal(t, "CVD - 10um", s.DeriveName())

	s = Sample{CrystalType: "CVD", ProcessedSize: "5um"}
	assert.Equal(t, "CVD - 5um", s.DeriveName())

	s = Sample{Nickname: "sample one"}
	assert.Equal(t, "(sample one)", s.DeriveName())

	s = Sample{}
	assert.Equal(t, "", s.DeriveName())
}

func TestDeriveNameSkipsBlankCategories(t *testing.T) {
	s := Sample{CrystalType: "HPHT", Categories: StringList{"", "abrasive", ""}}
	assert.Equal(t, "HPHT abrasive", s.DeriveName())
}
