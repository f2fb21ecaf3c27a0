// External test package: the registry imports the codec for template
// normalization, so building a real registry from an internal test file
// would cycle.
package codec_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"ibanq/internal/iban/codec"
	"ibanq/internal/iban/registry"
	"ibanq/pkg/testutil"
)

// The registry is immutable after construction and the codec keeps no state
// between calls, so mixed decode and encode traffic from many goroutines must
// behave exactly like sequential calls.
func TestCodecParallelReaders(t *testing.T) {
	cdc := codec.New(registry.New())
	const goroutines = 64

	result := testutil.RunConcurrent(goroutines, func(idx int) error {
		country := testutil.FixtureCountries[idx%len(testutil.FixtureCountries)]
		iban := testutil.ValidIBANs[country]

		parsed, err := cdc.Decode(iban)
		if err != nil {
			return err
		}
		if !parsed.Valid {
			return fmt.Errorf("%s flagged invalid: %s", iban, parsed.LastError)
		}

		rec, err := parsed.Record()
		if err != nil {
			return err
		}
		regenerated, err := cdc.Encode(rec)
		if err != nil {
			return err
		}
		if regenerated != iban {
			return fmt.Errorf("round trip drifted: %s -> %s", iban, regenerated)
		}
		return nil
	})

	assert.EqualValues(t, goroutines, result.Successes)
	assert.Zero(t, result.Failures)
}

func TestCodecParallelRecordBuilds(t *testing.T) {
	cdc := codec.New(registry.New())

	successes, errs := testutil.RunConcurrentCollect(32, func(idx int) error {
		rec, err := testutil.NewRecordBuilder().Build()
		if err != nil {
			return err
		}
		iban, err := cdc.Encode(rec)
		if err != nil {
			return err
		}
		if iban != testutil.ValidIBANs["DE"] {
			return fmt.Errorf("unexpected IBAN %s", iban)
		}
		return nil
	})

	assert.EqualValues(t, 32, successes)
	assert.Empty(t, errs)
}
