package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want string
	}{
		{ebiten.KeyA, "a"},
		{ebiten.KeyF, "f"},
		{ebiten.KeyDigit7, "7"},
		{ebiten.KeySpace, " "},
		{ebiten.KeyArrowLeft, "ArrowLeft"},
		{ebiten.KeyEnter, "Enter"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyName(tt.key), tt.key.String())
	}
}
