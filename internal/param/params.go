package param

// #region imports
import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// #endregion

// #region fidelity-param

// FidelityName is the distinguished parameter carrying the fidelity level
// of a sample. The planner service appends it to every proposed assignment.
const FidelityName = "s"

// #endregion

// #region assignment

// Assignment is an immutable mapping from parameter name to value.
// Continuous and discrete parameters are float64, categorical parameters
// are strings. Construct with NewAssignment; the maps are copied on the
// way in and on the way out.
type Assignment struct {
	values  map[string]float64
	classes map[string]string
}

// NewAssignment builds an assignment from numeric and categorical values.
// Either map may be nil.
func NewAssignment(values map[string]float64, classes map[string]string) Assignment {
	a := Assignment{
		values:  make(map[string]float64, len(values)),
		classes: make(map[string]string, len(classes)),
	}
	for k, v := range values {
		a.values[k] = v
	}
	for k, v := range classes {
		a.classes[k] = v
	}
	return a
}

// Value returns the numeric value for name.
func (a Assignment) Value(name string) (float64, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Class returns the categorical value for name.
func (a Assignment) Class(name string) (string, bool) {
	v, ok := a.classes[name]
	return v, ok
}

// Fidelity returns the value of the fidelity parameter.
func (a Assignment) Fidelity() (float64, bool) {
	return a.Value(FidelityName)
}

// Values returns a copy of the numeric parameters.
func (a Assignment) Values() map[string]float64 {
	out := make(map[string]float64, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// Classes returns a copy of the categorical parameters.
func (a Assignment) Classes() map[string]string {
	out := make(map[string]string, len(a.classes))
	for k, v := range a.classes {
		out[k] = v
	}
	return out
}

// Names returns all parameter names in sorted order.
func (a Assignment) Names() []string {
	names := make([]string, 0, len(a.values)+len(a.classes))
	for k := range a.values {
		names = append(names, k)
	}
	for k := range a.classes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of parameters in the assignment.
func (a Assignment) Len() int {
	return len(a.values) + len(a.classes)
}

// #endregion

// #region key

// Key returns the canonical string form of the assignment: parameter names
// in sorted order, numeric values in shortest round-trip formatting, pairs
// joined with '|'. Two assignments with equal parameters always produce the
// same key, which is what the oracle table is indexed by.
func (a Assignment) Key() string {
	names := a.Names()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if v, ok := a.values[name]; ok {
			parts = append(parts, name+"="+strconv.FormatFloat(v, 'g', -1, 64))
			continue
		}
		parts = append(parts, name+"="+a.classes[name])
	}
	return strings.Join(parts, "|")
}

// Equal reports whether two assignments carry identical parameters.
func (a Assignment) Equal(b Assignment) bool {
	return a.Key() == b.Key()
}

// String implements fmt.Stringer using the canonical key.
func (a Assignment) String() string {
	return a.Key()
}

// #endregion

// #region json

// assignmentJSON is the serialized form used in fixtures and the campaign DB.
type assignmentJSON struct {
	Values  map[string]float64 `json:"values,omitempty"`
	Classes map[string]string  `json:"classes,omitempty"`
}

// MarshalJSON serializes the assignment as {"values": ..., "classes": ...}.
func (a Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(assignmentJSON{Values: a.values, Classes: a.classes})
}

// UnmarshalJSON restores an assignment from its serialized form.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	var aux assignmentJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("unmarshal assignment: %w", err)
	}
	*a = NewAssignment(aux.Values, aux.Classes)
	return nil
}

// #endregion
