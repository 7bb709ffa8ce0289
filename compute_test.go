package progcalc_test

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/progcalc"
)

// corpusCase is one expression in testdata/compute.yaml along with either the
// representations it should produce or the kind of error it should fail with.
type corpusCase struct {
	Src      string   `yaml:"src"`
	Error    string   `yaml:"error,omitempty"`
	Expected snapshot `yaml:",inline"`
}

// snapshot records the present representations of a Result.
type snapshot struct {
	U32  *uint32  `yaml:"u32,omitempty"`
	I32  *int32   `yaml:"i32,omitempty"`
	U64  *uint64  `yaml:"u64,omitempty"`
	Real *float64 `yaml:"real,omitempty"`
	Big  *bigInt  `yaml:"big,omitempty"`
}

type bigInt struct {
	big.Int
}

func (b *bigInt) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: big must be a scalar", value.Line)
	}
	if _, ok := b.SetString(value.Value, 0); !ok {
		return fmt.Errorf("line %d: invalid integer %q", value.Line, value.Value)
	}
	return nil
}

func snap(r progcalc.Result) snapshot {
	var s snapshot
	if v, ok := r.U32(); ok {
		s.U32 = &v
	}
	if v, ok := r.I32(); ok {
		s.I32 = &v
	}
	if v, ok := r.U64(); ok {
		s.U64 = &v
	}
	if v, ok := r.Real(); ok {
		s.Real = &v
	}
	if v, ok := r.Big(); ok {
		s.Big = new(bigInt)
		s.Big.Set(v)
	}
	return s
}

func errorKind(err error) string {
	var (
		se *progcalc.ScanError
		pe *progcalc.ParseError
		ae *progcalc.ArityError
		de *progcalc.DomainError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return "scan"
	case errors.As(err, &pe):
		return "parse"
	case errors.As(err, &ae):
		return "arity"
	case errors.As(err, &de):
		return "domain"
	default:
		return err.Error()
	}
}

func loadCorpus(t *testing.T, name string) []corpusCase {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var cases []corpusCase
	if err := dec.Decode(&cases); err != nil {
		t.Fatalf("decoding %s: %v", name, err)
	}
	return cases
}

var snapshotOpts = cmp.Options{
	cmpopts.EquateNaNs(),
	cmp.Comparer(func(x, y *bigInt) bool {
		if x == nil || y == nil {
			return x == y
		}
		return x.Cmp(&y.Int) == 0
	}),
}

func TestComputeCorpus(t *testing.T) {
	for _, c := range loadCorpus(t, "testdata/compute.yaml") {
		c := c
		t.Run(c.Src, func(t *testing.T) {
			r, err := progcalc.Compute(c.Src)
			if kind := errorKind(err); kind != c.Error {
				t.Fatalf("%q: want error %q, got %q (%v)", c.Src, c.Error, kind, err)
			}
			if diff := cmp.Diff(c.Expected, snap(r), snapshotOpts); diff != "" {
				t.Errorf("%q mismatch (-want +got):\n%s", c.Src, diff)
			}
		})
	}
}
