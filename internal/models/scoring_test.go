package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_SubAndGift(t *testing.T) {
	for _, amount := range []int{0, 1, 3, 5, 10, 250} {
		assert.Equal(t, 10*amount, Score(Contribution{Type: TypeSub, Amount: amount}))
		assert.Equal(t, 10*amount, Score(Contribution{Type: TypeGift, Amount: amount}))
	}
}

func TestScore_Bits(t *testing.T) {
	tests := []struct {
		amount   int
		expected int
	}{
		{0, 0},
		{1, 0},
		{99, 0},
		{100, 1},
		{300, 3},
		{500, 5},
		{30000, 300},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Score(Contribution{Type: TypeBits, Amount: tt.amount}), "amount=%d", tt.amount)
	}
}

func TestScore_NegativeBitsTruncateTowardZero(t *testing.T) {
	assert.Equal(t, 0, ScoreOf(TypeBits, -50))
	assert.Equal(t, -1, ScoreOf(TypeBits, -150))
	assert.Equal(t, -10, ScoreOf(TypeSub, -1))
}

func TestScore_UnknownType(t *testing.T) {
	assert.Equal(t, 0, Score(Contribution{Type: "Follow", Amount: 1000}))
	assert.Equal(t, 0, Score(Contribution{Type: "", Amount: 5}))
	assert.Equal(t, 0, Score(Contribution{Type: "sub", Amount: 5}))
}
