package ingest

import (
	"errors"
	"fmt"
	"time"
)

const MonthLayout = "2006-01"

// Batch names one generator run: every puzzle file a generator produced for
// a variant in a given month.
type Batch struct {
	Variant   string
	Month     string
	Generator string
}

func (b Batch) Validate() error {
	if b.Variant == "" {
		return errors.New("need variant")
	}
	if b.Generator == "" {
		return errors.New("need generator")
	}
	if _, err := time.Parse(MonthLayout, b.Month); err != nil {
		return fmt.Errorf("month %q is not in YYYY-MM form", b.Month)
	}
	return nil
}

func (b Batch) Prefix() string {
	return fmt.Sprintf("puzzles/%v/%v/%v/", b.Variant, b.Month, b.Generator)
}

func (b Batch) String() string {
	return fmt.Sprintf("%v %v %v", b.Variant, b.Month, b.Generator)
}
