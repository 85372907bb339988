// Package life defines the age-indexed demographic tables the behavioral
// rules consume: survivorship (lx) and fecundity (bx).
package life

import "fmt"

// Table holds the life-history parameters for a species.
//
// Survivorship[a] is the fraction of a cohort still alive by age a,
// indexed from birth (age 0). Fecundity[a] is the expected offspring per
// individual at age a. Fecundity may be shorter than Survivorship; missing
// ages contribute zero births.
type Table struct {
	Survivorship []float64
	Fecundity    []float64
}

// Default returns the illustrative life table the model ships with.
// Numbers are placeholders for a hypothetical small lizard, not
// calibrated data.
func Default() Table {
	return Table{
		Survivorship: []float64{1.0, 0.6, 0.4, 0.3, 0.2, 0.15, 0.10, 0.06, 0.02},
		Fecundity:    []float64{0, 2, 4, 5, 5, 4, 3, 1, 0},
	}
}

// Validate checks the table contract: survivorship non-empty, every entry
// in (0,1], and non-increasing with age. Under that contract every
// conditional survival probability returned by SurvivalProb lies in (0,1],
// so callers never need to clamp.
func (t Table) Validate() error {
	if len(t.Survivorship) == 0 {
		return fmt.Errorf("life: survivorship table must not be empty")
	}
	for i, v := range t.Survivorship {
		if v <= 0 || v > 1 {
			return fmt.Errorf("life: survivorship[%d] = %v outside (0,1]", i, v)
		}
		if i > 0 && v > t.Survivorship[i-1] {
			return fmt.Errorf("life: survivorship must be non-increasing, rises at age %d", i)
		}
	}
	for i, v := range t.Fecundity {
		if v < 0 {
			return fmt.Errorf("life: fecundity[%d] = %v must be non-negative", i, v)
		}
	}
	return nil
}

// MaxTrackedAge returns the highest age the survivorship table covers.
func (t Table) MaxTrackedAge() int {
	return len(t.Survivorship) - 1
}

// SurvivalProb returns the conditional probability of surviving the current
// step at the given age, derived from the cumulative survivorship curve as
// lx[age]/lx[age-1]. Ages past the table return 0 (certain death); age 0
// returns 1 (newborns survive the step they are born).
func (t Table) SurvivalProb(age int) float64 {
	if age <= 0 {
		return 1
	}
	if age >= len(t.Survivorship) {
		return 0
	}
	return t.Survivorship[age] / t.Survivorship[age-1]
}

// BirthRate returns the expected offspring count at the given age, zero for
// ages outside the fecundity table.
func (t Table) BirthRate(age int) float64 {
	if age < 0 || age >= len(t.Fecundity) {
		return 0
	}
	return t.Fecundity[age]
}
