package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestResolveDownPayment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount *float64
		pct    *float64
		want   DownPayment
	}{
		{"neither", nil, nil, NoDownPayment()},
		{"amount only", ptr(50000), nil, DownPaymentAmount(50000)},
		{"pct only", nil, ptr(0.2), DownPaymentPct(0.2)},
		{"amount wins over pct", ptr(10000), ptr(0.5), DownPaymentAmount(10000)},
		{"zero amount still wins", ptr(0), ptr(0.5), DownPaymentAmount(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResolveDownPayment(tt.amount, tt.pct))
		})
	}
}

func TestDownPaymentKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "none", DownPaymentNone.String())
	assert.Equal(t, "amount", DownPaymentAbsolute.String())
	assert.Equal(t, "pct", DownPaymentFraction.String())
	assert.Equal(t, DownPaymentNone, DownPayment{}.Kind)
}
