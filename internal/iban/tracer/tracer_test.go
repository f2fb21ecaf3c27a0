package tracer_test

import (
	"context"
	"errors"
	"testing"

	"ibanq/internal/iban/tracer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, "test.span",
		tracer.String("key", "value"),
		tracer.Bool("flag", true),
	)

	// Context should be returned unchanged
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	// Span methods should not panic
	span.SetAttributes(tracer.String("another", "attr"))
	span.AddEvent("test.event", tracer.Int64("count", 42))
	span.End(nil)
}

func TestNoopTracer_SpanEndWithError(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	_, span := tr.Start(ctx, "test.span")
	require.NotNil(t, span)

	span.End(errors.New("test error"))
}

func TestHashIBAN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{
			name:    "empty string returns empty",
			input:   "",
			wantLen: 0,
		},
		{
			name:    "short input produces 16 char hash",
			input:   "DE02",
			wantLen: 16,
		},
		{
			name:    "full IBAN produces 16 char hash",
			input:   "DE02120300000000202051",
			wantLen: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tracer.HashIBAN(tt.input)
			assert.Len(t, result, tt.wantLen)
		})
	}
}

func TestHashIBAN_Deterministic(t *testing.T) {
	iban := "DE02120300000000202051"
	hash1 := tracer.HashIBAN(iban)
	hash2 := tracer.HashIBAN(iban)
	assert.Equal(t, hash1, hash2, "same input should produce same hash")
}

func TestHashIBAN_DifferentInputs(t *testing.T) {
	hash1 := tracer.HashIBAN("DE02120300000000202051")
	hash2 := tracer.HashIBAN("FR7630006000011234567890189")
	assert.NotEqual(t, hash1, hash2, "different inputs should produce different hashes")
}

func TestAttributeConstructors(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		attr := tracer.String("key", "value")
		assert.Equal(t, "key", attr.Key)
		assert.Equal(t, "value", attr.Value)
	})

	t.Run("Bool", func(t *testing.T) {
		attr := tracer.Bool("flag", true)
		assert.Equal(t, "flag", attr.Key)
		assert.Equal(t, true, attr.Value)
	})

	t.Run("Int64", func(t *testing.T) {
		attr := tracer.Int64("count", 42)
		assert.Equal(t, "count", attr.Key)
		assert.Equal(t, int64(42), attr.Value)
	})

	t.Run("Float64", func(t *testing.T) {
		attr := tracer.Float64("ratio", 3.14)
		assert.Equal(t, "ratio", attr.Key)
		assert.Equal(t, 3.14, attr.Value)
	})

	t.Run("Duration", func(t *testing.T) {
		attr := tracer.Duration("latency", 150*1e6) // 150ms in nanoseconds
		assert.Equal(t, "latency", attr.Key)
		assert.Equal(t, int64(150), attr.Value)
	})
}

func TestSpanConstants(t *testing.T) {
	assert.Equal(t, "iban.decode", tracer.SpanDecode)
	assert.Equal(t, "iban.encode", tracer.SpanEncode)
	assert.Equal(t, "iban.validate", tracer.SpanValidate)
	assert.Equal(t, "iban.validate_batch", tracer.SpanValidateBatch)
	assert.Equal(t, "iban.countries", tracer.SpanCountries)
	assert.Equal(t, "iban.qr", tracer.SpanQR)
}
