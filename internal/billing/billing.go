// Package billing prices a visit from the services selected on the bill
// form.
package billing

// Service is a billable service code.
type Service string

const (
	Consultation Service = "consultation"
	LabTests     Service = "lab_tests"
)

// Flat rates per service.
var rates = map[Service]int{
	Consultation: 500,
	LabTests:     1500,
}

// ComputeTotal adds up the rate of every distinct known service in
// selected. Repeated codes count once and unknown codes count nothing, so
// an empty selection totals 0.
func ComputeTotal(selected []Service) int {
	seen := make(map[Service]bool, len(selected))
	total := 0
	for _, s := range selected {
		if seen[s] {
			continue
		}
		seen[s] = true
		total += rates[s]
	}
	return total
}
