package booking

import "okclinic/models"

// DepositRate is the share of the total collected up front.
const DepositRate = 0.5

// CalculateTotals sums the snapshot prices and derives the deposit.
// An empty list costs nothing and needs no deposit.
func CalculateTotals(services []models.ServiceSnapshot) (total, deposit float64) {
	for _, svc := range services {
		total += svc.Price
	}
	if total > 0 {
		deposit = total * DepositRate
	}
	return total, deposit
}
